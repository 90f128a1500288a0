// Package config loads and validates the optional fern.json project
// manifest: search path, default color mode, and a few compiler defaults.
// Validation is grounded in the teacher's core/types.Validator — compile a
// JSON Schema with santhosh-tekuri/jsonschema/v5 and run it against the
// decoded manifest before trusting any field.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Error wraps a manifest load/validation failure so callers can
// distinguish "no fern.json" (not an error) from "invalid fern.json".
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Manifest is the decoded, validated fern.json contents.
type Manifest struct {
	Name       string   `json:"name"`
	Entry      string   `json:"entry"`
	Color      string   `json:"color"`      // "auto", "always", "never"
	SourceDirs []string `json:"sourceDirs"` // search path for `import` resolution
}

func defaultManifest() *Manifest {
	return &Manifest{Color: "auto", SourceDirs: []string{"."}}
}

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "entry": {"type": "string", "minLength": 1},
    "color": {"type": "string", "enum": ["auto", "always", "never"]},
    "sourceDirs": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    }
  },
  "additionalProperties": false
}`

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	url := "schema://fern-manifest.json"
	if err := compiler.AddResource(url, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("config: adding schema resource: %w", err)
	}
	return compiler.Compile(url)
}

// Load searches dir and its parents for fern.json, returning the default
// manifest (no error) if none is found anywhere up to the filesystem root.
func Load(dir string) (*Manifest, error) {
	path, ok := findManifest(dir)
	if !ok {
		return defaultManifest(), nil
	}
	return LoadFile(path)
}

func findManifest(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, "fern.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadFile loads and validates one manifest file.
func LoadFile(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: err.Error()}
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, &Error{Path: path, Message: fmt.Sprintf("invalid JSON: %s", err)}
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, &Error{Path: path, Message: err.Error()}
	}
	if err := schema.Validate(generic); err != nil {
		return nil, &Error{Path: path, Message: err.Error()}
	}

	m := defaultManifest()
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, &Error{Path: path, Message: err.Error()}
	}
	if m.Color == "" {
		m.Color = "auto"
	}
	if len(m.SourceDirs) == 0 {
		m.SourceDirs = []string{filepath.Dir(path)}
	}
	return m, nil
}
