package mimemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverlay(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultTable(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", m.Version())
	assert.Greater(t, m.Len(), 20)

	ct, ok := m.Resolve("Assets/Logo.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", ct)

	ct, ok = m.Resolve("app.exe")
	require.True(t, ok)
	assert.Equal(t, "application/x-msdownload", ct)
}

func TestResolveNormalizesCase(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	upper, ok := m.Resolve("LOGO.PNG")
	require.True(t, ok)
	lower, ok2 := m.Resolve("logo.png")
	require.True(t, ok2)
	assert.Equal(t, lower, upper)
}

func TestResolveOrDefaultFallsBack(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	_, ok := m.Resolve("data.zzz")
	assert.False(t, ok)
	assert.Equal(t, FallbackContentType, m.ResolveOrDefault("data.zzz"))
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := writeOverlay(t, "overlay.yaml", "version: 2.0.0\ntypes:\n  PNG: image/x-custom-png\n  dat: application/x-dat\n")
	overlay, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", overlay.Version())

	// Extensions are lowercased on load.
	ct, ok := overlay.Resolve("a.png")
	require.True(t, ok)
	assert.Equal(t, "image/x-custom-png", ct)
}

func TestLoadJSONOverlay(t *testing.T) {
	path := writeOverlay(t, "overlay.json", `{"types": {"dat": "application/x-dat"}}`)
	overlay, err := Load(path)
	require.NoError(t, err)

	ct, ok := overlay.Resolve("x.dat")
	require.True(t, ok)
	assert.Equal(t, "application/x-dat", ct)
}

func TestLoadTOMLOverlay(t *testing.T) {
	path := writeOverlay(t, "overlay.toml", "version = \"1.1.0\"\n\n[types]\ndat = \"application/x-dat\"\n")
	overlay, err := Load(path)
	require.NoError(t, err)

	ct, ok := overlay.Resolve("x.dat")
	require.True(t, ok)
	assert.Equal(t, "application/x-dat", ct)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeOverlay(t, "overlay.ini", "[types]\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported mime map format")
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"content type not a mime string", "types:\n  png: not-a-mime-type\n"},
		{"types missing", "version: 1.0.0\n"},
		{"unknown top-level key", "types: {}\nextra: true\n"},
		{"empty content type", `{"types": {"png": ""}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := ".yaml"
			if tt.content[0] == '{' {
				ext = ".json"
			}
			path := writeOverlay(t, "bad"+ext, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestMergeOverlayWins(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	basePNG, _ := base.Resolve("a.png")
	require.Equal(t, "image/png", basePNG)

	path := writeOverlay(t, "overlay.yaml", "types:\n  png: image/x-custom-png\n  zzz: application/x-zzz\n")
	overlay, err := Load(path)
	require.NoError(t, err)

	base.Merge(overlay)
	ct, _ := base.Resolve("a.png")
	assert.Equal(t, "image/x-custom-png", ct, "overlay entry wins")
	ct, ok := base.Resolve("b.zzz")
	require.True(t, ok, "new overlay entries are added")
	assert.Equal(t, "application/x-zzz", ct)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
