package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	out, err := execRoot(t, []string{"version"})
	require.NoError(t, err)
	assert.Contains(t, out, "appxpack dev")
}

func TestVersionExtended(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--extended"})
	require.NoError(t, err)
	assert.Contains(t, out, "go:")
	assert.Contains(t, out, "platform:")
}

func TestVersionJSON(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--json"})
	require.NoError(t, err)

	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "dev", v["version"])
}
