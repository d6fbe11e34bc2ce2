package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/envkit-dev/envkit/taxonomy"
)

func sampleSnapshot() *EnvironmentSnapshot {
	snap := newSnapshotSkeleton()
	snap.SnapshotID = "envkit_lin_20260101_000000_deadbeef"
	snap.Timestamp = time.Now()
	snap.Platform = taxonomy.Linux
	snap.Architecture = "amd64"
	snap.ToolVersions["git"] = "2.40.0"
	snap.ToolPaths["git"] = "/usr/bin/git"
	return snap
}

func TestSaveLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")

	snap := sampleSnapshot()
	if err := Save(snap, path, FormatJSON); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.SnapshotID != snap.SnapshotID {
		t.Errorf("SnapshotID = %q, want %q", loaded.SnapshotID, snap.SnapshotID)
	}
	if loaded.ToolVersions["git"] != "2.40.0" {
		t.Errorf("expected git version to round-trip, got %v", loaded.ToolVersions)
	}
}

func TestSaveLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.yaml")

	snap := sampleSnapshot()
	if err := Save(snap, path, FormatYAML); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Platform != taxonomy.Linux {
		t.Errorf("Platform = %q, want %q", loaded.Platform, taxonomy.Linux)
	}
}

func TestLoad_SchemaError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	bad := []byte(`{"schema_version": 1, "snapshot_id": ""}`)
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a schema error for an incomplete snapshot")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("expected *SchemaError, got %T: %v", err, err)
	}
}
