package toolcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/envkit-dev/envkit/probe"
)

func TestCache_PutGet(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache.json"), time.Hour)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	c.Put("version_control", "git", probe.ToolResult{
		Tool: "git", Category: "version_control", Installed: true,
		Fields: map[string]any{"version": "2.40.0"},
	})

	result, ok := c.Get("version_control", "git")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if result.Fields["version"] != "2.40.0" {
		t.Errorf("Fields[version] = %v, want 2.40.0", result.Fields["version"])
	}
}

func TestCache_ExpiredEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache.json"), time.Millisecond)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.Put("version_control", "git", probe.ToolResult{Tool: "git", Category: "version_control"})

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("version_control", "git"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestCache_SaveAndReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	c, err := Open(path, time.Hour)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.Put("version_control", "git", probe.ToolResult{
		Tool: "git", Category: "version_control", Installed: true,
		Fields: map[string]any{"version": "2.40.0"},
	})
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened, err := Open(path, time.Hour)
	if err != nil {
		t.Fatalf("Open() reopen error = %v", err)
	}
	result, ok := reopened.Get("version_control", "git")
	if !ok {
		t.Fatal("expected reopened cache to retain the entry")
	}
	if result.Tool != "git" {
		t.Errorf("Tool = %q, want git", result.Tool)
	}
}

func TestCache_WrongHostnameIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	doc := newDocument("some-other-host-entirely")
	doc.Entries["version_control.git"] = Entry{
		Result:   probe.ToolResult{Tool: "git", Category: "version_control"},
		CachedAt: time.Now(),
	}
	data, _ := json.Marshal(doc)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Open(path, time.Hour)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected a cache from a different host to be discarded, got %d entries", c.Len())
	}
}

func TestCache_FillTreeFiltersByCategory(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache.json"), time.Hour)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.Put("version_control", "git", probe.ToolResult{Tool: "git", Category: "version_control", Installed: true})
	c.Put("language_runtimes", "python3", probe.ToolResult{Tool: "python3", Category: "language_runtimes", Installed: true})

	tree := probe.NewToolTree()
	filled := c.FillTree(tree, []string{"version_control"}, nil)

	if len(filled) != 1 {
		t.Fatalf("expected exactly one filled key, got %v", filled)
	}
	if _, ok := tree.Get("version_control", "git"); !ok {
		t.Error("expected git to be filled into the tree")
	}
	if _, ok := tree.Get("language_runtimes", "python3"); ok {
		t.Error("python3 should have been excluded by the category filter")
	}
}

func TestCache_Prune(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache.json"), time.Millisecond)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c.Put("version_control", "git", probe.ToolResult{Tool: "git"})
	time.Sleep(5 * time.Millisecond)

	if removed := c.Prune(); removed != 1 {
		t.Errorf("Prune() removed %d entries, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("expected cache to be empty after prune, got %d entries", c.Len())
	}
}
