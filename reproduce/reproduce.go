package reproduce

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/envkit-dev/envkit/probe"
	"github.com/envkit-dev/envkit/snapshot"
	"github.com/envkit-dev/envkit/taxonomy"
)

// Result is the outcome of reproducing an EnvironmentSnapshot on the
// current host: what was verified, what's missing, and what was restored.
type Result struct {
	Success           bool            `json:"success"`
	SnapshotID        string          `json:"snapshot_id"`
	Platform          string          `json:"platform"`
	ActionsCompleted  []string        `json:"actions_completed,omitempty"`
	ActionsFailed     []string        `json:"actions_failed,omitempty"`
	Warnings          []string        `json:"warnings,omitempty"`
	MissingTools      []string        `json:"missing_tools,omitempty"`
	ToolsVerified     map[string]bool `json:"tools_verified"`
	VersionsVerified  map[string]bool `json:"versions_verified"`
}

// Options configures a Reproduce call. TargetPath, when set, is where
// project lock/config files from the snapshot are restored.
type Options struct {
	TargetPath    string
	DefaultPolicy Policy
	Engine        *probe.Engine
}

// Reproduce walks the fixed verification state machine (platform ->
// tools -> project restore -> config verify), always returning a Result
// even when some stage fails, so a caller can see exactly how far
// reproduction got.
func Reproduce(ctx context.Context, snap *snapshot.EnvironmentSnapshot, opts Options) *Result {
	result := &Result{
		SnapshotID:       snap.SnapshotID,
		Platform:         string(taxonomy.CurrentPlatform()),
		ToolsVerified:    map[string]bool{},
		VersionsVerified: map[string]bool{},
	}

	verifyPlatform(snap, result)
	verifyTools(ctx, snap, opts, result)

	if opts.TargetPath != "" {
		restoreProject(snap, opts.TargetPath, result)
		verifyConfigs(snap, opts.TargetPath, result)
	}

	result.Success = len(result.ActionsFailed) == 0 &&
		len(result.MissingTools) == 0 &&
		allTrue(result.ToolsVerified) &&
		allTrue(result.VersionsVerified)

	return result
}

func verifyPlatform(snap *snapshot.EnvironmentSnapshot, result *Result) {
	current := taxonomy.CurrentPlatform()
	if snap.Platform != current {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"snapshot was captured on %q, reproducing on %q", snap.Platform, current))
	} else {
		result.ActionsCompleted = append(result.ActionsCompleted, "platform matches snapshot")
	}
}

func verifyTools(ctx context.Context, snap *snapshot.EnvironmentSnapshot, opts Options, result *Result) {
	if opts.Engine == nil {
		for tool := range snap.ToolVersions {
			result.MissingTools = append(result.MissingTools, tool)
		}
		return
	}

	tools := make([]string, 0, len(snap.ToolVersions))
	for tool := range snap.ToolVersions {
		tools = append(tools, tool)
	}

	reg := taxonomy.NewRegistry()
	tree, _ := opts.Engine.Run(ctx, nil, tools)

	for tool, expected := range snap.ToolVersions {
		spec, ok := reg.Lookup(tool)
		if !ok {
			result.MissingTools = append(result.MissingTools, tool)
			result.ToolsVerified[tool] = false
			continue
		}
		tr, ok := tree.Get(spec.Category, tool)
		if !ok || !tr.Installed {
			result.MissingTools = append(result.MissingTools, tool)
			result.ToolsVerified[tool] = false
			continue
		}
		result.ToolsVerified[tool] = true

		observed, _ := tr.Fields["version"].(string)
		cmp := Compare(tool, expected, observed, opts.DefaultPolicy)
		result.VersionsVerified[tool] = cmp.Match
		if cmp.Warning != "" {
			result.Warnings = append(result.Warnings, tool+": "+cmp.Warning)
		}
		if !cmp.Match {
			result.ActionsFailed = append(result.ActionsFailed, fmt.Sprintf(
				"version mismatch for %s: expected %s, observed %s", tool, expected, observed))
		}
	}
}

func restoreProject(snap *snapshot.EnvironmentSnapshot, targetPath string, result *Result) {
	if err := os.MkdirAll(targetPath, 0o755); err != nil {
		result.ActionsFailed = append(result.ActionsFailed, fmt.Sprintf("create target directory: %v", err))
		return
	}

	for name, content := range snap.LockFiles {
		restoreFile(name, content, targetPath, snap.Checksums[name], result)
	}
	for name, content := range snap.ConfigFiles {
		full := filepath.Join(targetPath, name)
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			result.ActionsFailed = append(result.ActionsFailed, fmt.Sprintf("restore config %s: %v", name, err))
			continue
		}
		result.ActionsCompleted = append(result.ActionsCompleted, "restored config "+name)
	}
}

func restoreFile(name, content, targetPath, expectedChecksum string, result *Result) {
	full := filepath.Join(targetPath, name)
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		result.ActionsFailed = append(result.ActionsFailed, fmt.Sprintf("restore %s: %v", name, err))
		return
	}

	sum := sha256.Sum256([]byte(content))
	actual := hex.EncodeToString(sum[:])
	if expectedChecksum != "" && actual != expectedChecksum {
		result.Warnings = append(result.Warnings, fmt.Sprintf("checksum mismatch for %s", name))
		return
	}
	result.ActionsCompleted = append(result.ActionsCompleted, "restored "+name)
}

func verifyConfigs(snap *snapshot.EnvironmentSnapshot, targetPath string, result *Result) {
	for name := range snap.ConfigFiles {
		full := filepath.Join(targetPath, name)
		if _, err := os.Stat(full); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("config %s not present after restore", name))
		}
	}
}

func allTrue(m map[string]bool) bool {
	for _, v := range m {
		if !v {
			return false
		}
	}
	return true
}
