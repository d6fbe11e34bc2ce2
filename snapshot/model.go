// Package snapshot captures the current environment (tool versions,
// Python interpreter, project lock/config files) into a portable,
// schema-versioned document that the reproduce package can later compare
// against or restore on another host.
package snapshot

import (
	"time"

	"github.com/envkit-dev/envkit/taxonomy"
)

// CurrentSchemaVersion is written into every snapshot this package
// produces. Bumping it is a breaking change to the on-disk format; io.go
// validates loaded snapshots against the schema for this version.
const CurrentSchemaVersion = 1

// EnvironmentSnapshot is the full, portable record of one host's
// development environment at a point in time.
type EnvironmentSnapshot struct {
	SchemaVersion int               `json:"schema_version" yaml:"schema_version"`
	SnapshotID    string            `json:"snapshot_id" yaml:"snapshot_id"`
	Timestamp     time.Time         `json:"timestamp" yaml:"timestamp"`
	Platform      taxonomy.Platform `json:"platform" yaml:"platform"`
	Architecture  string            `json:"architecture" yaml:"architecture"`

	PythonVersion    string `json:"python_version,omitempty" yaml:"python_version,omitempty"`
	PythonExecutable string `json:"python_executable,omitempty" yaml:"python_executable,omitempty"`

	ToolVersions map[string]string `json:"tool_versions" yaml:"tool_versions"`
	ToolPaths    map[string]string `json:"tool_paths" yaml:"tool_paths"`

	EnvironmentVariables map[string]string `json:"environment_variables,omitempty" yaml:"environment_variables,omitempty"`

	ProjectPath string            `json:"project_path,omitempty" yaml:"project_path,omitempty"`
	LockFiles   map[string]string `json:"lock_files,omitempty" yaml:"lock_files,omitempty"`
	ConfigFiles map[string]string `json:"config_files,omitempty" yaml:"config_files,omitempty"`
	Checksums   map[string]string `json:"checksums,omitempty" yaml:"checksums,omitempty"`

	ReproductionSteps []string `json:"reproduction_steps,omitempty" yaml:"reproduction_steps,omitempty"`
}

// newSnapshotSkeleton allocates an EnvironmentSnapshot with every map
// field initialized, so capture code never needs a nil check before a
// first write.
func newSnapshotSkeleton() *EnvironmentSnapshot {
	return &EnvironmentSnapshot{
		SchemaVersion:        CurrentSchemaVersion,
		ToolVersions:         map[string]string{},
		ToolPaths:            map[string]string{},
		EnvironmentVariables: map[string]string{},
		LockFiles:            map[string]string{},
		ConfigFiles:          map[string]string{},
		Checksums:            map[string]string{},
	}
}
