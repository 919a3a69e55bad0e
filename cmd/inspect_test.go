package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default ContentType="image/png" Extension="png"/>` +
	`<Default ContentType="text/xml" Extension="xml"/>` +
	`<Override ContentType="application/vnd.ms-appx.blockmap+xml" PartName="/AppxBlockMap.xml"/>` +
	`</Types>`

func writeManifestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ct.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0600))
	return path
}

func TestInspectSummary(t *testing.T) {
	path := writeManifestFile(t)

	out, err := execRoot(t, []string{"inspect", path})
	require.NoError(t, err, out)

	assert.Contains(t, out, "2 default(s)")
	assert.Contains(t, out, "1 override(s)")
	assert.Contains(t, out, "image/png")
	assert.Contains(t, out, "/AppxBlockMap.xml")
}

func TestInspectPretty(t *testing.T) {
	path := writeManifestFile(t)

	out, err := execRoot(t, []string{"inspect", path, "--pretty"})
	require.NoError(t, err, out)

	// Re-indented output puts each declaration on its own line.
	assert.Contains(t, out, "\n  <Default")
	assert.Contains(t, out, "\n  <Override")
}

func TestInspectRejectsMalformedXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Types><Default</Types>"), 0600))

	_, err := execRoot(t, []string{"inspect", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not well-formed")
}

func TestInspectMissingFile(t *testing.T) {
	_, err := execRoot(t, []string{"inspect", filepath.Join(t.TempDir(), "absent.xml")})
	require.Error(t, err)
}
