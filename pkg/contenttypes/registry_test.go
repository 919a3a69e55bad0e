package contenttypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "image.png", "png"},
		{"uppercase folded", "Logo.PNG", "png"},
		{"mixed case", "A.PnG", "png"},
		{"multiple dots", "archive.tar.gz", "gz"},
		{"nested path", "Assets/Square44x44Logo.png", "png"},
		{"trailing dot", "name.", ""},
		// A dotless name yields the whole name; such files get a
		// one-entry default bucket keyed by their full name.
		{"no dot", "LICENSE", "license"},
		{"no dot with path chars", "bin/LICENSE", "bin/license"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtensionOf(tt.input))
		})
	}
}

func TestRegistryLookupAndRegister(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("png")
	assert.False(t, ok)

	require.NoError(t, r.Register("png", "image/png"))
	ct, ok := r.Lookup("png")
	require.True(t, ok)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryReRegisterSamePairIsNoOp(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("png", "image/png"))
	require.NoError(t, r.Register("png", "image/png"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistryConflictingRegisterFails(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("dat", "application/octet-stream"))

	err := r.Register("dat", "text/plain")
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))

	// The original default must be untouched.
	ct, ok := r.Lookup("dat")
	require.True(t, ok)
	assert.Equal(t, "application/octet-stream", ct)
}
