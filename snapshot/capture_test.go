package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/envkit-dev/envkit/taxonomy"
)

func TestCapture_NoEngine(t *testing.T) {
	snap, err := Capture(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if snap.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", snap.SchemaVersion, CurrentSchemaVersion)
	}
	if snap.Platform != taxonomy.CurrentPlatform() {
		t.Errorf("Platform = %q, want %q", snap.Platform, taxonomy.CurrentPlatform())
	}
	if snap.SnapshotID == "" {
		t.Error("expected a non-empty SnapshotID")
	}
}

func TestCapture_ProjectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", "[project]\nname=\"x\"\n")
	writeFile(t, dir, "poetry.lock", "locked content\n")

	snap, err := Capture(context.Background(), Options{
		ProjectPath:    dir,
		IncludeConfigs: true,
	})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if _, ok := snap.ConfigFiles["pyproject.toml"]; !ok {
		t.Error("expected pyproject.toml to be embedded")
	}
	if _, ok := snap.LockFiles["poetry.lock"]; !ok {
		t.Error("expected poetry.lock to be embedded")
	}
	if _, ok := snap.Checksums["poetry.lock"]; !ok {
		t.Error("expected a checksum for poetry.lock")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
