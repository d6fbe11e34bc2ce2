package envkit

import (
	"context"
	"testing"

	"github.com/envkit-dev/envkit/probe"
)

func TestNew_BuildsUsableToolkit(t *testing.T) {
	tk := New()
	if tk.registry == nil || tk.engine == nil {
		t.Fatal("New() should populate registry and engine")
	}
}

func TestToolkit_Classify(t *testing.T) {
	dir := t.TempDir()
	tk := New()
	analysis, err := tk.Classify(dir)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if analysis.ProjectPath != dir {
		t.Errorf("ProjectPath = %q, want %q", analysis.ProjectPath, dir)
	}
}

func TestToolkit_Snapshot_NoEngineCategories(t *testing.T) {
	tk := New()
	snap, err := tk.Snapshot(context.Background(), SnapshotOptions{
		Categories: []string{"version_control"},
		Tools:      []string{"git"},
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.SnapshotID == "" {
		t.Error("expected a non-empty SnapshotID")
	}
}

func TestToolkit_Reproduce_NoToolsIsSuccess(t *testing.T) {
	tk := New()
	snap, err := tk.Snapshot(context.Background(), SnapshotOptions{Categories: []string{"no_such_category"}})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	result := tk.Reproduce(context.Background(), snap, ReproduceOptions{})
	if !result.Success {
		t.Errorf("expected Success = true with an empty tool set, got %+v", result)
	}
}

func TestMergeTrees(t *testing.T) {
	into := probe.NewToolTree()
	from := probe.NewToolTree()
	from.Set("version_control", "git", probe.ToolResult{Tool: "git", Category: "version_control", Installed: true})

	mergeTrees(into, from)

	if _, ok := into.Get("version_control", "git"); !ok {
		t.Error("expected git to be merged into the target tree")
	}
}
