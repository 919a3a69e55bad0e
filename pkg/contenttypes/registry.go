package contenttypes

import "strings"

// Registry maps normalized file extensions to the content type recorded as
// that extension's default. It is a plain mapping: insertion and lookup, no
// implicit overwrite.
type Registry struct {
	defaults map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defaults: make(map[string]string)}
}

// Lookup returns the default content type recorded for ext, if any.
func (r *Registry) Lookup(ext string) (string, bool) {
	ct, ok := r.defaults[ext]
	return ct, ok
}

// Register records contentType as the default for ext. Re-registering the
// same pair is a no-op; a conflicting content type returns an
// InvariantViolation — callers must route conflicts to the override path
// instead.
func (r *Registry) Register(ext, contentType string) error {
	if existing, ok := r.defaults[ext]; ok {
		if existing == contentType {
			return nil
		}
		return &InvariantViolation{Extension: ext, Existing: existing, Proposed: contentType}
	}
	r.defaults[ext] = contentType
	return nil
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	return len(r.defaults)
}

// ExtensionOf extracts the lowercased extension of a file name: the
// substring after the last dot. A name with no dot yields the whole name,
// matching the packaging pipeline's historical behavior (such files get a
// one-entry default bucket keyed by their full name).
func ExtensionOf(name string) string {
	ext := name[strings.LastIndex(name, ".")+1:]
	return strings.ToLower(ext)
}
