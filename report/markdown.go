// Package report renders snapshots and reproduction results as
// human-readable Markdown guides, the artifact a developer actually reads
// alongside the machine-readable snapshot/result JSON.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// SnapshotView is the subset of an EnvironmentSnapshot a guide renders.
// It is a plain view type rather than snapshot.EnvironmentSnapshot itself
// so this package never needs to import snapshot or reproduce, keeping
// the dependency graph one-directional.
type SnapshotView struct {
	SnapshotID   string
	Platform     string
	Architecture string
	Timestamp    time.Time
	ToolVersions map[string]string
	ProjectPath  string
	LockFiles    []string
	ConfigFiles  []string
	Steps        []string
}

// ReproductionView is the subset of a reproduce.Result a guide renders.
type ReproductionView struct {
	Success          bool
	SnapshotID       string
	Platform         string
	ActionsCompleted []string
	ActionsFailed    []string
	Warnings         []string
	MissingTools     []string
	ToolsVerified    map[string]bool
	VersionsVerified map[string]bool
}

// WriteSnapshotGuide renders a snapshot as a Markdown document describing
// what was captured and the manual steps to reproduce it elsewhere.
func WriteSnapshotGuide(w io.Writer, v SnapshotView) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Environment Snapshot `%s`\n\n", v.SnapshotID)
	fmt.Fprintf(&b, "Captured %s on **%s/%s**.\n\n", v.Timestamp.Format(time.RFC3339), v.Platform, v.Architecture)

	if v.ProjectPath != "" {
		fmt.Fprintf(&b, "Project: `%s`\n\n", v.ProjectPath)
	}

	b.WriteString("## Tools\n\n")
	if len(v.ToolVersions) == 0 {
		b.WriteString("No tools were captured.\n\n")
	} else {
		b.WriteString("| Tool | Version |\n|------|---------|\n")
		for _, name := range sortedKeys(v.ToolVersions) {
			fmt.Fprintf(&b, "| %s | %s |\n", name, v.ToolVersions[name])
		}
		b.WriteString("\n")
	}

	if len(v.LockFiles) > 0 {
		b.WriteString("## Lock files\n\n")
		for _, name := range v.LockFiles {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}

	if len(v.ConfigFiles) > 0 {
		b.WriteString("## Config files\n\n")
		for _, name := range v.ConfigFiles {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}

	if len(v.Steps) > 0 {
		b.WriteString("## Reproduction steps\n\n")
		for i, step := range v.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteReproductionGuide renders a reproduce.Result as a Markdown report
// narrating what was verified, what mismatched, and what's still missing.
func WriteReproductionGuide(w io.Writer, v ReproductionView) error {
	var b strings.Builder

	status := "FAILED"
	if v.Success {
		status = "SUCCEEDED"
	}
	fmt.Fprintf(&b, "# Reproduction Report: %s\n\n", status)
	fmt.Fprintf(&b, "Snapshot `%s` reproduced on **%s**.\n\n", v.SnapshotID, v.Platform)

	if len(v.ToolsVerified) > 0 {
		b.WriteString("## Tool verification\n\n")
		b.WriteString("| Tool | Installed | Version matches |\n|------|-----------|------------------|\n")
		for _, tool := range sortedBoolKeys(v.ToolsVerified) {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", tool, checkmark(v.ToolsVerified[tool]), checkmark(v.VersionsVerified[tool]))
		}
		b.WriteString("\n")
	}

	if len(v.MissingTools) > 0 {
		b.WriteString("## Missing tools\n\n")
		for _, tool := range v.MissingTools {
			fmt.Fprintf(&b, "- `%s` was not found on this host\n", tool)
		}
		b.WriteString("\n")
	}

	if len(v.ActionsCompleted) > 0 {
		b.WriteString("## Completed\n\n")
		for _, a := range v.ActionsCompleted {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	if len(v.ActionsFailed) > 0 {
		b.WriteString("## Failed\n\n")
		for _, a := range v.ActionsFailed {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	if len(v.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warn := range v.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func checkmark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
