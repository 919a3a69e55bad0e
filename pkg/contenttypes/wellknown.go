// Package contenttypes builds the [Content_Types].xml manifest of an
// AppX/OPC package: one Default declaration per file extension, plus
// Override declarations for parts whose type diverges from their
// extension's default.
package contenttypes

// Element and attribute names of the content-types document.
const (
	defaultElement       = "Default"
	overrideElement      = "Override"
	contentTypeAttribute = "ContentType"
	extensionAttribute   = "Extension"
	partNameAttribute    = "PartName"
	xmlnsAttribute       = "xmlns"
)

// Fixed content types of the AppX packaging pipeline.
const (
	ManifestContentType      = "application/vnd.ms-appx.manifest+xml"
	BlockMapContentType      = "application/vnd.ms-appx.blockmap+xml"
	SignatureContentType     = "application/vnd.ms-appx.signature"
	CodeIntegrityContentType = "application/vnd.ms-pkiseccat"
)

// WellKnown carries the fixed identifiers the writer needs: the root
// element and namespace of the document, and the two signing-related part
// names whose overrides may already be present in an earlier manifest.
// It is passed in at construction so the writer has no hidden globals and
// tests can substitute alternates.
type WellKnown struct {
	RootElement       string
	Namespace         string
	SignatureFile     string
	CodeIntegrityFile string
}

// DefaultWellKnown returns the AppX values.
func DefaultWellKnown() WellKnown {
	return WellKnown{
		RootElement:       "Types",
		Namespace:         "http://schemas.openxmlformats.org/package/2006/content-types",
		SignatureFile:     "AppxSignature.p7x",
		CodeIntegrityFile: "AppxMetadata/CodeIntegrity.cat",
	}
}
