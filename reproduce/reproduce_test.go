package reproduce

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/envkit-dev/envkit/snapshot"
	"github.com/envkit-dev/envkit/taxonomy"
)

func baseSnapshot() *snapshot.EnvironmentSnapshot {
	return &snapshot.EnvironmentSnapshot{
		SchemaVersion: snapshot.CurrentSchemaVersion,
		SnapshotID:    "envkit_lin_20260101_000000_deadbeef",
		Platform:      taxonomy.CurrentPlatform(),
		ToolVersions:  map[string]string{},
		ToolPaths:     map[string]string{},
		LockFiles:     map[string]string{},
		ConfigFiles:   map[string]string{},
		Checksums:     map[string]string{},
	}
}

func TestReproduce_NoEngineMeansAllToolsMissing(t *testing.T) {
	snap := baseSnapshot()
	snap.ToolVersions["git"] = "2.40.0"

	result := Reproduce(context.Background(), snap, Options{})

	if len(result.MissingTools) != 1 || result.MissingTools[0] != "git" {
		t.Errorf("MissingTools = %v, want [git]", result.MissingTools)
	}
	if result.Success {
		t.Error("expected Success = false when a tool can't be verified")
	}
}

func TestReproduce_PlatformMismatchIsWarningNotFailure(t *testing.T) {
	snap := baseSnapshot()
	if snap.Platform == taxonomy.Windows {
		snap.Platform = taxonomy.Linux
	} else {
		snap.Platform = taxonomy.Windows
	}

	result := Reproduce(context.Background(), snap, Options{})

	if len(result.Warnings) == 0 {
		t.Error("expected a platform mismatch warning")
	}
	if containsString(result.ActionsFailed, "platform") {
		t.Error("platform mismatch must not be recorded as a failure")
	}
}

func TestReproduce_RestoresProjectFilesAndVerifiesChecksum(t *testing.T) {
	snap := baseSnapshot()
	snap.LockFiles["poetry.lock"] = "locked content\n"
	snap.Checksums["poetry.lock"] = sha256Hex("locked content\n")
	snap.ConfigFiles["pyproject.toml"] = "[project]\nname=\"x\"\n"

	target := t.TempDir()
	result := Reproduce(context.Background(), snap, Options{TargetPath: target})

	lockContent, err := os.ReadFile(filepath.Join(target, "poetry.lock"))
	if err != nil {
		t.Fatalf("expected poetry.lock to be restored: %v", err)
	}
	if string(lockContent) != "locked content\n" {
		t.Errorf("restored lock content = %q", lockContent)
	}
	if !containsString(result.ActionsCompleted, "restored poetry.lock") {
		t.Errorf("expected restore action recorded, got %v", result.ActionsCompleted)
	}
	if _, err := os.Stat(filepath.Join(target, "pyproject.toml")); err != nil {
		t.Errorf("expected pyproject.toml to be restored: %v", err)
	}
}

func TestReproduce_ChecksumMismatchIsWarningNotFailure(t *testing.T) {
	snap := baseSnapshot()
	snap.LockFiles["poetry.lock"] = "locked content\n"
	snap.Checksums["poetry.lock"] = "0000000000000000000000000000000000000000000000000000000000000000"

	target := t.TempDir()
	result := Reproduce(context.Background(), snap, Options{TargetPath: target})

	foundWarning := false
	for _, w := range result.Warnings {
		if w == "checksum mismatch for poetry.lock" {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected a checksum mismatch warning, got %v", result.Warnings)
	}
	if len(result.ActionsFailed) != 0 {
		t.Errorf("checksum mismatch must not fail reproduction, got %v", result.ActionsFailed)
	}
}

func TestReproduce_SuccessWhenNothingToVerify(t *testing.T) {
	snap := baseSnapshot()
	result := Reproduce(context.Background(), snap, Options{})
	if !result.Success {
		t.Errorf("expected Success = true with no tools or project to verify, got %+v", result)
	}
}

func TestIsVersionCritical(t *testing.T) {
	if !IsVersionCritical("python3") {
		t.Error("python3 must be version-critical")
	}
	if IsVersionCritical("curl") {
		t.Error("curl must be behavior-compatible, not version-critical")
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		tool               string
		expected, observed string
		policy             Policy
		wantMatch          bool
		wantWarning        bool
	}{
		{"python3", "1.2.3", "1.2.3", Strict, true, false},
		{"python3", "1.2.3", "1.2.4", Strict, false, false},
		{"python3", "1.2.3", "1.2.4", Lenient, true, true},
		{"python3", "1.2.3", "1.3.0", Lenient, true, true},
		{"python3", "2.0.0", "1.9.9", Lenient, false, false},
		// Behavior-compatible tools always match, in both policies.
		{"curl", "8.0.0", "8.4.0", Strict, true, false},
		{"curl", "8.0.0", "9.0.0", Lenient, true, false},
		{"jq", "1.6", "1.7", Strict, true, false},
	}
	for _, c := range cases {
		got := Compare(c.tool, c.expected, c.observed, c.policy)
		if got.Match != c.wantMatch {
			t.Errorf("Compare(%q, %q, %q, %v).Match = %v, want %v", c.tool, c.expected, c.observed, c.policy, got.Match, c.wantMatch)
		}
		if (got.Warning != "") != c.wantWarning {
			t.Errorf("Compare(%q, %q, %q, %v) warning presence = %v, want %v", c.tool, c.expected, c.observed, c.policy, got.Warning != "", c.wantWarning)
		}
	}
}

func containsString(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func sha256Hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
