// Package toolcache persists recent probe results to disk so a Diagnose
// run can skip re-invoking slow or expensive probes (docker, cloud CLIs)
// within a TTL window. A cache entry is always scoped to the hostname it
// was written on; a cache file copied to a different machine is treated
// as stale and rebuilt, never silently trusted.
package toolcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/envkit-dev/envkit/probe"
)

// DefaultTTL is how long a cached ToolResult is considered fresh enough
// to skip re-probing.
const DefaultTTL = 24 * time.Hour

// CacheFormatVersion guards against decoding a cache file written by an
// incompatible future version of this package.
const CacheFormatVersion = 1

// Entry is one cached probe.ToolResult plus the bookkeeping needed to
// decide whether it's still fresh.
type Entry struct {
	Result    probe.ToolResult `json:"result"`
	CachedAt  time.Time        `json:"cachedAt"`
}

// Document is the on-disk representation of a Cache.
type Document struct {
	Version  int              `json:"version"`
	Hostname string           `json:"hostname"`
	Entries  map[string]Entry `json:"entries"` // keyed by "category.tool"
}

// Cache is a hostname-scoped, on-disk store of recent probe.ToolResults.
// It never suppresses a probe the caller explicitly asks to refresh:
// callers decide that by simply not calling Get before probing.
type Cache struct {
	path string
	ttl  time.Duration

	mu  sync.RWMutex
	doc Document
}

// Open loads the cache file at path, creating an empty, hostname-scoped
// cache if the file doesn't exist or was written by a different host or
// a different format version. ttl <= 0 uses DefaultTTL.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{path: path, ttl: ttl}

	hostname, _ := os.Hostname()
	data, err := os.ReadFile(path)
	if err != nil {
		c.doc = newDocument(hostname)
		return c, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		c.doc = newDocument(hostname)
		return c, nil
	}
	if doc.Version != CacheFormatVersion || doc.Hostname != hostname {
		c.doc = newDocument(hostname)
		return c, nil
	}

	c.doc = doc
	return c, nil
}

func newDocument(hostname string) Document {
	return Document{
		Version:  CacheFormatVersion,
		Hostname: hostname,
		Entries:  make(map[string]Entry),
	}
}

// key builds the dotted lookup key for a category/tool pair.
func key(category, tool string) string {
	return category + "." + tool
}

// Get returns a cached result for category/tool if present and still
// within the cache's TTL.
func (c *Cache) Get(category, tool string) (probe.ToolResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.doc.Entries[key(category, tool)]
	if !ok {
		return probe.ToolResult{}, false
	}
	if time.Since(entry.CachedAt) > c.ttl {
		return probe.ToolResult{}, false
	}
	return entry.Result, true
}

// Put stores result under category/tool, stamped with the current time.
func (c *Cache) Put(category, tool string, result probe.ToolResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Entries[key(category, tool)] = Entry{Result: result, CachedAt: time.Now()}
}

// FillTree copies every fresh cached entry matching categories/tools into
// tree, returning the dotted keys it filled. An empty filter matches
// everything. Callers typically use the returned set to skip those
// tools when building the probe worklist for a fresh Engine.Run.
func (c *Cache) FillTree(tree *probe.ToolTree, categories, tools []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var filled []string
	for _, entry := range c.doc.Entries {
		if time.Since(entry.CachedAt) > c.ttl {
			continue
		}
		if len(categories) > 0 && !matchesCategory(entry.Result.Category, categories) {
			continue
		}
		if len(tools) > 0 && !containsTool(tools, entry.Result.Tool) {
			continue
		}
		tree.Set(entry.Result.Category, entry.Result.Tool, entry.Result)
		filled = append(filled, key(entry.Result.Category, entry.Result.Tool))
	}
	return filled
}

func matchesCategory(category string, prefixes []string) bool {
	for _, p := range prefixes {
		if category == p || len(category) > len(p) && category[:len(p)+1] == p+"." {
			return true
		}
	}
	return false
}

func containsTool(tools []string, tool string) bool {
	for _, t := range tools {
		if t == tool {
			return true
		}
	}
	return false
}

// Save persists the cache to disk atomically.
func (c *Cache) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.doc, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("toolcache: encode: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("toolcache: create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".toolcache-*.tmp")
	if err != nil {
		return fmt.Errorf("toolcache: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("toolcache: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("toolcache: close: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return fmt.Errorf("toolcache: rename into place: %w", err)
	}
	return nil
}

// Prune drops entries older than the cache's TTL, returning the count
// removed.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, entry := range c.doc.Entries {
		if time.Since(entry.CachedAt) > c.ttl {
			delete(c.doc.Entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently stored, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.doc.Entries)
}

// DefaultPath returns the conventional cache location under a project's
// .envkit directory.
func DefaultPath(projectDir string) string {
	return filepath.Join(projectDir, ".envkit", "toolcache.json")
}
