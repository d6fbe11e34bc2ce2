package snapshot

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/envkit-dev/envkit/probe"
	"github.com/envkit-dev/envkit/taxonomy"
)

// lockFileNames and configFileNames are the project files a capture looks
// for and embeds (with checksums) into the snapshot, so Reproduce can
// restore them byte-for-byte on another host.
var lockFileNames = []string{
	"poetry.lock", "Pipfile.lock", "uv.lock", "package-lock.json",
	"yarn.lock", "pnpm-lock.yaml", "Cargo.lock", "Gemfile.lock",
}
var configFileNames = []string{
	"pyproject.toml", "setup.cfg", "package.json", "Cargo.toml",
	"Pipfile", "environment.yml", ".python-version",
}

// sensitiveEnvSubstrings are environment variable name fragments that are
// never captured, regardless of allowlisting: a snapshot is meant to be
// shared across hosts, so secrets have no business in it.
var sensitiveEnvSubstrings = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL", "AUTH"}

// capturedEnvVars is the allowlist of environment variables worth
// recording for reproduction purposes (locale/toolchain configuration),
// as opposed to the full, often sensitive, process environment.
var capturedEnvVars = []string{
	"PATH", "HOME", "SHELL", "LANG", "LC_ALL", "PYTHONPATH", "VIRTUAL_ENV",
	"GOPATH", "GOROOT", "NODE_ENV", "JAVA_HOME", "CARGO_HOME",
}

// Options configures a Capture call.
type Options struct {
	ProjectPath       string
	IncludeSystemInfo bool
	IncludeConfigs    bool
	Engine            *probe.Engine
	Categories        []string
	Tools             []string
}

// Capture builds a full EnvironmentSnapshot of the current host, probing
// tool versions via opts.Engine and, when ProjectPath is set, embedding
// the project's lock/config files.
func Capture(ctx context.Context, opts Options) (*EnvironmentSnapshot, error) {
	snap := newSnapshotSkeleton()
	snap.SnapshotID = generateSnapshotID()
	snap.Timestamp = time.Now()
	snap.Platform = taxonomy.CurrentPlatform()
	snap.Architecture = runtime.GOARCH

	if opts.Engine != nil {
		tree, err := opts.Engine.Run(ctx, opts.Categories, opts.Tools)
		if err != nil && tree == nil {
			return nil, err
		}
		captureToolVersions(tree, snap)
	}

	if opts.IncludeSystemInfo {
		captureEnvironmentVariables(snap)
	}

	if opts.ProjectPath != "" {
		snap.ProjectPath = opts.ProjectPath
		if opts.IncludeConfigs {
			captureProjectFiles(opts.ProjectPath, snap)
		}
	}

	generateReproductionSteps(snap)
	return snap, nil
}

func generateSnapshotID() string {
	platformShort := string(taxonomy.CurrentPlatform())
	if len(platformShort) > 3 {
		platformShort = platformShort[:3]
	}
	timestamp := time.Now().UTC().Format("20060102_150405")
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("envkit_%s_%s_%s", platformShort, timestamp, hex.EncodeToString(suffix))
}

func captureToolVersions(tree *probe.ToolTree, snap *EnvironmentSnapshot) {
	if tree == nil {
		return
	}
	walkToolTree(tree.Snapshot(), snap)

	if v, ok := snap.ToolVersions["python3"]; ok {
		snap.PythonVersion = v
	}
	if p, ok := snap.ToolPaths["python3"]; ok {
		snap.PythonExecutable = p
	}
}

func walkToolTree(node map[string]any, snap *EnvironmentSnapshot) {
	for _, v := range node {
		switch val := v.(type) {
		case map[string]any:
			walkToolTree(val, snap)
		case probe.ToolResult:
			if !val.Installed {
				continue
			}
			if version, ok := val.Fields["version"].(string); ok {
				snap.ToolVersions[val.Tool] = version
			}
			if path, ok := val.Fields["executable_path"].(string); ok {
				snap.ToolPaths[val.Tool] = path
			}
		}
	}
}

func captureEnvironmentVariables(snap *EnvironmentSnapshot) {
	for _, name := range capturedEnvVars {
		if isSensitiveEnvName(name) {
			continue
		}
		if value, ok := os.LookupEnv(name); ok {
			snap.EnvironmentVariables[name] = value
		}
	}
}

func isSensitiveEnvName(name string) bool {
	upper := strings.ToUpper(name)
	for _, frag := range sensitiveEnvSubstrings {
		if strings.Contains(upper, frag) {
			return true
		}
	}
	return false
}

func captureProjectFiles(projectPath string, snap *EnvironmentSnapshot) {
	for _, name := range lockFileNames {
		embedFile(projectPath, name, snap.LockFiles, snap.Checksums)
	}
	for _, name := range configFileNames {
		embedFile(projectPath, name, snap.ConfigFiles, snap.Checksums)
	}
}

func embedFile(projectPath, name string, into map[string]string, checksums map[string]string) {
	full := filepath.Join(projectPath, name)
	data, err := os.ReadFile(full)
	if err != nil {
		return
	}
	into[name] = string(data)
	sum := sha256.Sum256(data)
	checksums[name] = hex.EncodeToString(sum[:])
}

func generateReproductionSteps(snap *EnvironmentSnapshot) {
	steps := []string{
		fmt.Sprintf("Verify host platform matches %q (architecture %q).", snap.Platform, snap.Architecture),
	}
	if snap.PythonVersion != "" {
		steps = append(steps, fmt.Sprintf("Install Python %s.", snap.PythonVersion))
	}
	for tool, version := range snap.ToolVersions {
		if tool == "python3" {
			continue
		}
		steps = append(steps, fmt.Sprintf("Install %s %s.", tool, version))
	}
	if len(snap.LockFiles) > 0 {
		steps = append(steps, "Restore project lock files and verify their checksums.")
	}
	if len(snap.ConfigFiles) > 0 {
		steps = append(steps, "Restore project configuration files.")
	}
	snap.ReproductionSteps = steps
}
