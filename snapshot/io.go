package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/jsonschema"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"
)

// SchemaError is the one fatal error this package raises: a snapshot file
// that does not conform to the schema for its declared schema_version.
// Every other I/O failure (missing file, permission denied) is returned as
// a plain error instead, since those are ordinary, expected conditions a
// caller handles by retrying or reporting, not a format-integrity failure.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("snapshot: %s: failed schema validation: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// snapshotSchemaV1 is the JSON Schema every schema_version: 1 snapshot
// must satisfy. It only requires the fields capture.go always populates;
// everything else is optional, since a snapshot captured without a
// project path legitimately omits lock/config/checksum data.
const snapshotSchemaV1 = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["schema_version", "snapshot_id", "timestamp", "platform", "tool_versions", "tool_paths"],
  "properties": {
    "schema_version": {"type": "integer", "const": 1},
    "snapshot_id": {"type": "string", "minLength": 1},
    "timestamp": {"type": "string"},
    "platform": {"type": "string", "minLength": 1},
    "architecture": {"type": "string"},
    "tool_versions": {"type": "object"},
    "tool_paths": {"type": "object"}
  }
}`

var compiledSchemaV1 *jsonschema.Schema

func schemaFor(version int) (*jsonschema.Schema, error) {
	if version != CurrentSchemaVersion {
		return nil, fmt.Errorf("snapshot: unsupported schema_version %d", version)
	}
	if compiledSchemaV1 != nil {
		return compiledSchemaV1, nil
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile([]byte(snapshotSchemaV1))
	if err != nil {
		return nil, err
	}
	compiledSchemaV1 = schema
	return schema, nil
}

// Format selects the on-disk encoding Save/Load use.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Save writes snap to path atomically: it encodes to a temp file in the
// same directory, then renames over the destination, so a crash or
// concurrent read never observes a partially written snapshot.
func Save(snap *EnvironmentSnapshot, path string, format Format) error {
	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(snap)
	default:
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}
	return nil
}

// Load reads and decodes the snapshot at path, validating it against the
// schema for its declared schema_version. Validation failure is always a
// *SchemaError, the one fatal condition in this system per the error
// taxonomy: every other snapshot package failure is an ordinary error.
func Load(path string) (*EnvironmentSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}

	var decodeFn func([]byte, any) error = json.Unmarshal
	if isYAMLPath(path) {
		decodeFn = func(b []byte, v any) error { return yaml.Unmarshal(b, v) }
	}

	var generic map[string]any
	if err := decodeFn(data, &generic); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", path, err)
	}

	version := CurrentSchemaVersion
	if v, ok := generic["schema_version"].(float64); ok {
		version = int(v)
	}
	schema, err := schemaFor(version)
	if err != nil {
		return nil, &SchemaError{Path: path, Err: err}
	}
	if err := schema.Validate(generic); err != nil {
		return nil, &SchemaError{Path: path, Err: err}
	}

	var snap EnvironmentSnapshot
	if err := decodeFn(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s into model: %w", path, err)
	}
	return &snap, nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
