// Package envkit is a deterministic development-environment toolkit: it
// discovers which interpreters, compilers, package managers, and
// auxiliary tools are present on a host, classifies a project's
// framework and category, and captures/reproduces a fully specified
// environment on another machine. Toolkit composes the four public
// entry points — Diagnose, Classify, Snapshot, Reproduce — from the
// taxonomy/guardian/probe/classify/snapshot/reproduce packages.
package envkit

import (
	"context"
	"strings"

	"github.com/envkit-dev/envkit/classify"
	"github.com/envkit-dev/envkit/probe"
	"github.com/envkit-dev/envkit/reproduce"
	"github.com/envkit-dev/envkit/snapshot"
	"github.com/envkit-dev/envkit/taxonomy"
	"github.com/envkit-dev/envkit/toolcache"
)

// Toolkit is the composition root: a taxonomy-backed CommandRegistry, a
// ProbeEngine built on it, and an optional on-disk toolcache. The zero
// value is not usable; construct with New or NewWithConfig.
type Toolkit struct {
	registry *taxonomy.CommandRegistry
	engine   *probe.Engine
	cache    *toolcache.Cache
	config   *AppConfig
}

// New builds a Toolkit using package defaults with no on-disk cache.
func New() *Toolkit {
	return NewWithConfig(NewAppConfig())
}

// NewWithConfig builds a Toolkit whose ProbeEngine and Guardian defaults
// are drawn from cfg: Probe.Workers, Probe.WallClock, Guardian.Timeout and
// Guardian.MaxOutputBytes are applied. Guardian.MaxRetries and
// Guardian.MemoryLimitMB are not passed to the engine, so probes run
// without retries and without a memory limit.
func NewWithConfig(cfg *AppConfig) *Toolkit {
	if cfg == nil {
		cfg = NewAppConfig()
	}
	registry := taxonomy.NewRegistry()

	opts := probe.EngineOptions{}
	if cfg.Probe != nil {
		if cfg.Probe.Workers != nil {
			opts.Workers = *cfg.Probe.Workers
		}
		if cfg.Probe.WallClock != nil {
			opts.WallClock = cfg.Probe.WallClock.Duration
		}
	}
	if cfg.Guardian != nil {
		if cfg.Guardian.Timeout != nil {
			opts.CommandTimeout = cfg.Guardian.Timeout.Duration
		}
		if cfg.Guardian.MaxOutputBytes != nil {
			opts.MaxOutputBytes = *cfg.Guardian.MaxOutputBytes
		}
	}

	return &Toolkit{
		registry: registry,
		engine:   probe.NewEngine(registry, opts),
		config:   cfg,
	}
}

// WithCache attaches an on-disk toolcache Diagnose consults before
// re-probing, and returns the Toolkit for chaining.
func (tk *Toolkit) WithCache(cache *toolcache.Cache) *Toolkit {
	tk.cache = cache
	return tk
}

// DiagnoseOptions scopes a Diagnose call. When both Categories and Tools
// are empty, the config's Probe.DefaultCategories/DefaultTools apply.
type DiagnoseOptions struct {
	Categories []string
	Tools      []string
	// UseCache, when true and a cache is attached, skips re-probing any
	// tool with a fresh cached entry.
	UseCache bool
}

// Diagnose runs the ProbeEngine over every applicable tool (optionally
// restricted to categories/tools), filling cached entries first when a
// cache is attached and UseCache is set.
func (tk *Toolkit) Diagnose(ctx context.Context, opts DiagnoseOptions) (*probe.ToolTree, error) {
	categories, tools := opts.Categories, opts.Tools
	if len(categories) == 0 && len(tools) == 0 && tk.config != nil && tk.config.Probe != nil {
		categories, tools = tk.config.Probe.DefaultCategories, tk.config.Probe.DefaultTools
	}

	tree := probe.NewToolTree()
	remainingCategories := categories
	remainingTools := tools

	if tk.cache != nil && opts.UseCache {
		filled := tk.cache.FillTree(tree, categories, tools)
		if len(filled) > 0 {
			remainingTools = excludeFilled(tree, tk.registry, categories, tools, filled)
			if len(remainingTools) == 0 {
				return tree, nil
			}
		}
	}

	fresh, err := tk.engine.Run(ctx, remainingCategories, remainingTools)
	if err != nil && fresh == nil {
		return tree, err
	}
	mergeTrees(tree, fresh)

	if tk.cache != nil {
		cacheTree(tk.cache, fresh)
		_ = tk.cache.Save()
	}

	return tree, err
}

// excludeFilled narrows a tool filter to exclude tools already satisfied
// from cache, so Diagnose doesn't re-probe them.
func excludeFilled(tree *probe.ToolTree, registry *taxonomy.CommandRegistry, categories, tools, filled []string) []string {
	specs := registry.CommandsFor(taxonomy.CurrentPlatform())
	var remaining []string
	for _, spec := range specs {
		if len(categories) > 0 && !categoryMatches(spec.Category, categories) {
			continue
		}
		if len(tools) > 0 && !toolMatches(tools, spec.Name) {
			continue
		}
		if _, ok := tree.Get(spec.Category, spec.Name); ok {
			continue
		}
		remaining = append(remaining, spec.Name)
	}
	return remaining
}

func categoryMatches(category string, prefixes []string) bool {
	for _, p := range prefixes {
		if category == p || strings.HasPrefix(category, p+".") {
			return true
		}
	}
	return false
}

func toolMatches(tools []string, tool string) bool {
	for _, t := range tools {
		if t == tool {
			return true
		}
	}
	return false
}

func mergeTrees(into, from *probe.ToolTree) {
	if from == nil {
		return
	}
	walkSnapshot(from.Snapshot(), into)
}

func walkSnapshot(node map[string]any, into *probe.ToolTree) {
	for _, v := range node {
		switch val := v.(type) {
		case map[string]any:
			walkSnapshot(val, into)
		case probe.ToolResult:
			into.Set(val.Category, val.Tool, val)
		}
	}
}

func cacheTree(cache *toolcache.Cache, tree *probe.ToolTree) {
	if tree == nil {
		return
	}
	walkCacheSnapshot(tree.Snapshot(), cache)
}

func walkCacheSnapshot(node map[string]any, cache *toolcache.Cache) {
	for _, v := range node {
		switch val := v.(type) {
		case map[string]any:
			walkCacheSnapshot(val, cache)
		case probe.ToolResult:
			cache.Put(val.Category, val.Tool, val)
		}
	}
}

// Classify analyzes the project rooted at path and returns its detected
// type, category, and confidence.
func (tk *Toolkit) Classify(path string) (*classify.Analysis, error) {
	return classify.Classify(path)
}

// SnapshotOptions scopes a Snapshot capture.
type SnapshotOptions struct {
	ProjectPath       string
	IncludeSystemInfo bool
	IncludeConfigs    bool
	Categories        []string
	Tools             []string
}

// Snapshot captures the current environment into a portable,
// schema-versioned EnvironmentSnapshot, probing tools through tk's
// Engine.
func (tk *Toolkit) Snapshot(ctx context.Context, opts SnapshotOptions) (*snapshot.EnvironmentSnapshot, error) {
	return snapshot.Capture(ctx, snapshot.Options{
		ProjectPath:       opts.ProjectPath,
		IncludeSystemInfo: opts.IncludeSystemInfo,
		IncludeConfigs:    opts.IncludeConfigs,
		Engine:            tk.engine,
		Categories:        opts.Categories,
		Tools:             opts.Tools,
	})
}

// ReproduceOptions scopes a Reproduce call.
type ReproduceOptions struct {
	TargetPath string
}

// Reproduce verifies snap against the current host, restoring project
// lock/config files into TargetPath when set.
func (tk *Toolkit) Reproduce(ctx context.Context, snap *snapshot.EnvironmentSnapshot, opts ReproduceOptions) *reproduce.Result {
	policy := reproduce.Lenient
	if tk.config != nil && tk.config.Reproduce != nil && tk.config.Reproduce.Strict != nil && *tk.config.Reproduce.Strict {
		policy = reproduce.Strict
	}
	return reproduce.Reproduce(ctx, snap, reproduce.Options{
		TargetPath:    opts.TargetPath,
		DefaultPolicy: policy,
		Engine:        tk.engine,
	})
}
