// Package mimemap resolves file names to content types through an
// extension table. The embedded table covers the extensions the AppX
// packaging pipeline commonly encounters; user overlay files (YAML, JSON,
// or TOML) merge over it, later entries winning. Overlays are validated
// against an embedded JSON Schema before merging.
package mimemap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/appxpack/pkg/contenttypes"
)

//go:embed types.yaml
var embeddedTable []byte

//go:embed mimemap.schema.json
var embeddedSchema []byte

// FallbackContentType is assigned to files whose extension has no entry.
const FallbackContentType = "application/octet-stream"

// document is the on-disk shape of a mime map file.
type document struct {
	Version string            `yaml:"version" json:"version" toml:"version"`
	Types   map[string]string `yaml:"types" json:"types" toml:"types"`
}

// Map is an extension to content type table.
type Map struct {
	version string
	types   map[string]string
}

// Default returns the embedded table.
func Default() (*Map, error) {
	var doc document
	if err := yaml.Unmarshal(embeddedTable, &doc); err != nil {
		return nil, fmt.Errorf("embedded mime map is invalid: %w", err)
	}
	return fromDocument(doc), nil
}

// Load reads an overlay file, validates it, and returns it as a Map. The
// format is chosen by file extension: .yaml/.yml, .json, or .toml.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied overlay path
	if err != nil {
		return nil, fmt.Errorf("failed to read mime map %s: %w", path, err)
	}

	var raw interface{}
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid mime map in %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid mime map in %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid TOML in %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid mime map in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported mime map format: %s", filepath.Ext(path))
	}

	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("mime map %s failed schema validation: %w", path, err)
	}
	return fromDocument(doc), nil
}

// validate checks a decoded mime map document against the embedded schema.
func validate(doc interface{}) error {
	schemaLoader := gojsonschema.NewBytesLoader(embeddedSchema)
	docLoader := gojsonschema.NewGoLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

func fromDocument(doc document) *Map {
	m := &Map{
		version: strings.TrimSpace(doc.Version),
		types:   make(map[string]string, len(doc.Types)),
	}
	for ext, ct := range doc.Types {
		m.types[strings.ToLower(ext)] = ct
	}
	return m
}

// Version returns the table's declared version, if any.
func (m *Map) Version() string {
	return m.version
}

// Len returns the number of extensions in the table.
func (m *Map) Len() int {
	return len(m.types)
}

// Merge overlays another map onto this one; overlay entries win.
func (m *Map) Merge(overlay *Map) {
	for ext, ct := range overlay.types {
		m.types[ext] = ct
	}
	if overlay.version != "" {
		m.version = overlay.version
	}
}

// Resolve returns the content type for a file name's extension.
func (m *Map) Resolve(fileName string) (string, bool) {
	ct, ok := m.types[contenttypes.ExtensionOf(fileName)]
	return ct, ok
}

// ResolveOrDefault is Resolve with the octet-stream fallback for unknown
// extensions.
func (m *Map) ResolveOrDefault(fileName string) string {
	if ct, ok := m.Resolve(fileName); ok {
		return ct
	}
	return FallbackContentType
}
