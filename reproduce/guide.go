package reproduce

import (
	"context"
	"io"

	"github.com/envkit-dev/envkit/report"
	"github.com/envkit-dev/envkit/snapshot"
)

// Reproducer bundles the Options for repeated Reproduce/WriteGuide calls
// against the same target, mirroring the original's reproducer object
// that both verifies an environment and narrates the result.
type Reproducer struct {
	Opts Options
}

// NewReproducer builds a Reproducer bound to opts.
func NewReproducer(opts Options) *Reproducer {
	return &Reproducer{Opts: opts}
}

// Reproduce verifies snap against the current host per r.Opts.
func (r *Reproducer) Reproduce(ctx context.Context, snap *snapshot.EnvironmentSnapshot) *Result {
	return Reproduce(ctx, snap, r.Opts)
}

// WriteGuide renders result as a Markdown reproduction report.
func (r *Reproducer) WriteGuide(w io.Writer, result *Result) error {
	return report.WriteReproductionGuide(w, report.ReproductionView{
		Success:          result.Success,
		SnapshotID:       result.SnapshotID,
		Platform:         result.Platform,
		ActionsCompleted: result.ActionsCompleted,
		ActionsFailed:    result.ActionsFailed,
		Warnings:         result.Warnings,
		MissingTools:     result.MissingTools,
		ToolsVerified:    result.ToolsVerified,
		VersionsVerified: result.VersionsVerified,
	})
}
