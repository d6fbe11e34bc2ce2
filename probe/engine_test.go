package probe

import (
	"context"
	"testing"
	"time"

	"github.com/envkit-dev/envkit/taxonomy"
)

func TestEngine_Run_FiltersByTool(t *testing.T) {
	reg := taxonomy.NewRegistry()
	engine := NewEngine(reg, EngineOptions{Workers: 4, CommandTimeout: 2 * time.Second})

	tree, err := engine.Run(context.Background(), nil, []string{"git"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	result, ok := tree.Get("version_control", "git")
	if !ok {
		t.Fatal("expected a git result in the tree")
	}
	if result.Tool != "git" {
		t.Errorf("expected tool name git, got %q", result.Tool)
	}
}

func TestEngine_Run_EmptySelection(t *testing.T) {
	reg := taxonomy.NewRegistry()
	engine := NewEngine(reg, EngineOptions{})

	tree, err := engine.Run(context.Background(), []string{"no_such_category"}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(tree.Snapshot()) != 0 {
		t.Errorf("expected an empty tree, got %#v", tree.Snapshot())
	}
}

func TestFilterSpecs(t *testing.T) {
	reg := taxonomy.NewRegistry()
	all := reg.AllTools()

	byCategory := filterSpecs(all, []string{"package_managers.language.python"}, nil)
	for _, spec := range byCategory {
		if spec.Category != "package_managers.language.python" {
			t.Errorf("unexpected category %q in filtered results", spec.Category)
		}
	}
	if len(byCategory) == 0 {
		t.Error("expected at least one python package manager spec")
	}
}
