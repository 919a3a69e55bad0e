package contenttypes

import (
	"github.com/fulmenhq/appxpack/pkg/xmlwriter"
)

// Writer accumulates (file name, content type) declarations and serializes
// them as a content-types document. Files sharing an extension collapse
// into one Default declaration; files whose type diverges from their
// extension's default get an individual Override.
//
// A Writer is single-use and write-once: after Close it accepts no further
// declarations. It is not safe for concurrent use.
type Writer struct {
	wk       WellKnown
	xw       *xmlwriter.Writer
	defaults *Registry

	// Computed once at construction from existing manifest text, never
	// mutated afterwards. They keep re-runs of the packaging pipeline
	// (re-signing) from duplicating the signing overrides.
	hasSignatureOverride     bool
	hasCodeIntegrityOverride bool

	closed bool
}

// New returns a Writer that starts a fresh document: root element open,
// namespace attribute set, empty registry.
func New(wk WellKnown) *Writer {
	xw := xmlwriter.New(wk.RootElement, true)
	xw.AddAttribute(xmlnsAttribute, wk.Namespace)
	return &Writer{
		wk:       wk,
		xw:       xw,
		defaults: NewRegistry(),
	}
}

// NewFromManifest returns a Writer that appends inside the root element of
// a previously produced manifest. The existing text seeds the idempotency
// flags for the two well-known signing parts.
func NewFromManifest(existing []byte, wk WellKnown) (*Writer, error) {
	xw, err := xmlwriter.Initialize(existing, wk.RootElement)
	if err != nil {
		return nil, &StructuralError{Op: "initialize from existing manifest", Err: err}
	}
	return &Writer{
		wk:                       wk,
		xw:                       xw,
		defaults:                 NewRegistry(),
		hasSignatureOverride:     HasOverride(existing, wk.SignatureFile),
		hasCodeIntegrityOverride: HasOverride(existing, wk.CodeIntegrityFile),
	}, nil
}

// AddContentType declares the content type of one file. With forceOverride
// the file is always declared individually. Otherwise the file maps to its
// extension's default: the first type seen for an extension becomes the
// default, later files with the same pair emit nothing, and a conflicting
// type escalates to an Override for that file only.
func (w *Writer) AddContentType(name, contentType string, forceOverride bool) error {
	if w.closed {
		return &StructuralError{Op: "add content type", Err: ErrClosed}
	}

	// Skip the signing parts when a prior pipeline stage already declared them.
	if (name == w.wk.SignatureFile && w.hasSignatureOverride) ||
		(name == w.wk.CodeIntegrityFile && w.hasCodeIntegrityOverride) {
		return nil
	}

	if forceOverride {
		return w.addOverride(name, contentType)
	}

	ext := ExtensionOf(name)
	if existing, ok := w.defaults.Lookup(ext); ok {
		if existing != contentType {
			// The extension is registered with a different content type;
			// only this file diverges, the default stands.
			return w.addOverride(name, contentType)
		}
		return nil
	}
	if err := w.defaults.Register(ext, contentType); err != nil {
		return err
	}
	return w.addDefault(ext, contentType)
}

// Close closes the root element and returns the serialized document. It
// fails with a StructuralError when the element writer did not reach its
// terminal state, which means it was driven out of protocol order.
func (w *Writer) Close() ([]byte, error) {
	w.closed = true
	w.xw.CloseElement()
	if w.xw.State() != xmlwriter.StateFinish {
		err := w.xw.Err()
		if err == nil {
			err = ErrNotFinished
		}
		return nil, &StructuralError{Op: "close", Err: err}
	}
	return w.xw.Bytes(), nil
}

// <Default ContentType="application/vnd.ms-appx.manifest+xml" Extension="xml"/>
func (w *Writer) addDefault(ext, contentType string) error {
	w.xw.StartElement(defaultElement)
	w.xw.AddAttribute(contentTypeAttribute, contentType)
	w.xw.AddAttribute(extensionAttribute, ext)
	w.xw.CloseElement()
	return w.writerErr("add default")
}

// <Override ContentType="application/vnd.ms-appx.signature" PartName="/AppxSignature.p7x"/>
func (w *Writer) addOverride(file, contentType string) error {
	partName := "/" + file
	w.xw.StartElement(overrideElement)
	w.xw.AddAttribute(contentTypeAttribute, contentType)
	w.xw.AddAttribute(partNameAttribute, partName)
	w.xw.CloseElement()
	return w.writerErr("add override")
}

func (w *Writer) writerErr(op string) error {
	if err := w.xw.Err(); err != nil {
		return &StructuralError{Op: op, Err: err}
	}
	return nil
}
