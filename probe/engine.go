package probe

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/envkit-dev/envkit/guardian"
	"github.com/envkit-dev/envkit/probe/outparse"
	"github.com/envkit-dev/envkit/taxonomy"
)

const (
	// DefaultWorkers bounds how many tools are probed concurrently.
	DefaultWorkers = 10
	// DefaultWallClock bounds the whole Engine.Run call; when it fires,
	// Run returns whatever results have been gathered so far instead of
	// blocking until every worker finishes.
	DefaultWallClock = 300 * time.Second
	// DefaultCommandTimeout is passed to guardian for each individual
	// probe command.
	DefaultCommandTimeout = 30 * time.Second
)

// EngineOptions configures a ProbeEngine. The zero value applies the
// package defaults.
type EngineOptions struct {
	Workers         int
	WallClock       time.Duration
	CommandTimeout  time.Duration
	MaxOutputBytes  int64
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.WallClock <= 0 {
		o.WallClock = DefaultWallClock
	}
	if o.CommandTimeout <= 0 {
		o.CommandTimeout = DefaultCommandTimeout
	}
	return o
}

// Engine runs every applicable ToolSpec from a CommandRegistry concurrently
// through a fixed-width worker pool, assembling a ToolTree.
type Engine struct {
	registry *taxonomy.CommandRegistry
	opts     EngineOptions
}

// NewEngine builds a ProbeEngine bound to registry, with opts applied over
// the package defaults.
func NewEngine(registry *taxonomy.CommandRegistry, opts EngineOptions) *Engine {
	return &Engine{registry: registry, opts: opts.withDefaults()}
}

// Run probes every ToolSpec valid on the current platform, restricted to
// categories and tools when either is non-empty (an empty filter means
// "all"). It always returns whatever ToolTree it managed to build: a wall
// clock timeout yields a partial tree and a non-nil error, never an empty
// result.
func (e *Engine) Run(ctx context.Context, categories, tools []string) (*ToolTree, error) {
	wallCtx, cancel := context.WithTimeout(ctx, e.opts.WallClock)
	defer cancel()

	specs := filterSpecs(e.registry.CommandsFor(taxonomy.CurrentPlatform()), categories, tools)
	tree := NewToolTree()
	if len(specs) == 0 {
		return tree, nil
	}

	taskChan := make(chan taxonomy.ToolSpec, len(specs))
	for _, spec := range specs {
		taskChan <- spec
	}
	close(taskChan)

	numWorkers := e.opts.Workers
	if len(specs) < numWorkers {
		numWorkers = len(specs)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range taskChan {
				select {
				case <-wallCtx.Done():
					tree.Set(spec.Category, spec.Name, ToolResult{
						Tool: spec.Name, Category: spec.Category,
						Errors:   []string{"probe engine wall clock exceeded"},
						ProbedAt: time.Now(),
					})
					continue
				default:
				}
				tree.Set(spec.Category, spec.Name, e.probeTool(wallCtx, spec))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return tree, nil
	case <-wallCtx.Done():
		return tree, wallCtx.Err()
	}
}

func filterSpecs(specs []taxonomy.ToolSpec, categories, tools []string) []taxonomy.ToolSpec {
	filtered := make([]taxonomy.ToolSpec, 0, len(specs))
	for _, spec := range specs {
		if len(categories) > 0 && !matchesAny(spec.Category, categories) {
			continue
		}
		if len(tools) > 0 && !containsString(tools, spec.Name) {
			continue
		}
		filtered = append(filtered, spec)
	}
	return filtered
}

func matchesAny(category string, prefixes []string) bool {
	for _, p := range prefixes {
		if category == p || strings.HasPrefix(category, p+".") {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// probeTool runs the "version" (or first available) command as an install
// check, then every remaining probe kind in sequence, merging their
// parsed fields into one ToolResult. A NotFound on the install check short
// circuits the rest: there is no point probing "config"/"info" kinds for a
// binary that isn't on PATH.
func (e *Engine) probeTool(ctx context.Context, spec taxonomy.ToolSpec) ToolResult {
	start := time.Now()
	result := ToolResult{Tool: spec.Name, Category: spec.Category, Fields: map[string]any{}}

	kinds := orderedKinds(spec.Commands)
	if len(kinds) == 0 {
		result.ProbedAt = start
		return result
	}

	installKind := kinds[0]
	installCmd := spec.Commands[installKind]
	gopts := guardian.Options{Timeout: e.opts.CommandTimeout, MaxOutputBytes: e.opts.MaxOutputBytes}

	res, err := guardian.Run(ctx, installCmd[0], installCmd[1:], gopts)
	if err != nil {
		if guardian.IsNotFound(err) {
			result.Installed = false
		} else {
			result.Installed = false
			result.Errors = append(result.Errors, err.Error())
		}
		result.ProbedAt = start
		result.Duration = time.Since(start)
		return result
	}
	result.Installed = true
	mergeParsed(result.Fields, res.Stdout, spec.FormatHint)

	for _, kind := range kinds[1:] {
		cmd := spec.Commands[kind]
		res, err := guardian.Run(ctx, cmd[0], cmd[1:], gopts)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if kind == "path" {
			result.Fields["executable_path"] = strings.TrimSpace(res.Stdout)
			continue
		}
		mergeParsed(result.Fields, res.Stdout, spec.FormatHint)
	}

	if _, ok := result.Fields["version"]; !ok {
		if v := outparse.ExtractVersion(res.Stdout); v != "" {
			result.Fields["version"] = v
		}
	}

	result.ProbedAt = start
	result.Duration = time.Since(start)
	return result
}

func mergeParsed(into map[string]any, stdout string, hint taxonomy.FormatHint) {
	parsed := outparse.Parse(stdout, outparse.Hint(hint))
	for k, v := range outparse.WithUnparsed(parsed.Data, parsed.Unparsed) {
		into[k] = v
	}
}

// orderedKinds returns probe kinds with "version" first when present, so
// the install check always runs before any secondary probe.
func orderedKinds(commands map[string][]string) []string {
	kinds := make([]string, 0, len(commands))
	if _, ok := commands["version"]; ok {
		kinds = append(kinds, "version")
	}
	for k := range commands {
		if k != "version" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
