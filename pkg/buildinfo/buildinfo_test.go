package buildinfo

import "testing"

func TestBinaryVersionDefault(t *testing.T) {
	if BinaryVersion == "" {
		t.Error("BinaryVersion should not be empty")
	}
	if BinaryVersion != "dev" {
		t.Errorf("expected default BinaryVersion 'dev', got %q", BinaryVersion)
	}
}

func TestModuleVersion(t *testing.T) {
	// Build info may be unavailable in test environments; an empty result
	// is acceptable.
	_ = ModuleVersion()
}
