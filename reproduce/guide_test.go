package reproduce

import (
	"context"
	"strings"
	"testing"
)

func TestReproducer_ReproduceAndWriteGuide(t *testing.T) {
	snap := baseSnapshot()
	snap.ToolVersions["git"] = "2.40.0"

	r := NewReproducer(Options{})
	result := r.Reproduce(context.Background(), snap)

	var b strings.Builder
	if err := r.WriteGuide(&b, result); err != nil {
		t.Fatalf("WriteGuide() error = %v", err)
	}
	if !strings.Contains(b.String(), "git") {
		t.Errorf("expected guide to mention git, got:\n%s", b.String())
	}
}
