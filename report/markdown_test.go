package report

import (
	"strings"
	"testing"
	"time"
)

func TestWriteSnapshotGuide(t *testing.T) {
	var b strings.Builder
	err := WriteSnapshotGuide(&b, SnapshotView{
		SnapshotID:   "envkit_lin_20260101_000000_deadbeef",
		Platform:     "linux",
		Architecture: "amd64",
		Timestamp:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ToolVersions: map[string]string{"git": "2.40.0"},
		LockFiles:    []string{"poetry.lock"},
		Steps:        []string{"Install git 2.40.0"},
	})
	if err != nil {
		t.Fatalf("WriteSnapshotGuide() error = %v", err)
	}
	out := b.String()
	for _, want := range []string{"envkit_lin_20260101_000000_deadbeef", "git", "2.40.0", "poetry.lock", "Install git 2.40.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected guide to mention %q, got:\n%s", want, out)
		}
	}
}

func TestWriteReproductionGuide(t *testing.T) {
	var b strings.Builder
	err := WriteReproductionGuide(&b, ReproductionView{
		Success:          false,
		SnapshotID:       "envkit_lin_20260101_000000_deadbeef",
		Platform:         "linux",
		MissingTools:     []string{"docker"},
		ToolsVerified:    map[string]bool{"git": true},
		VersionsVerified: map[string]bool{"git": true},
		Warnings:         []string{"checksum mismatch for poetry.lock"},
	})
	if err != nil {
		t.Fatalf("WriteReproductionGuide() error = %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "FAILED") {
		t.Error("expected status FAILED")
	}
	for _, want := range []string{"docker", "git", "checksum mismatch"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected guide to mention %q, got:\n%s", want, out)
		}
	}
}
