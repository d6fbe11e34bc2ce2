package envkit

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// ConfigLoader reads and merges envkit's three-tier configuration: a
// per-user global file, a project file, and a project-local override
// file that's expected to be gitignored.
type ConfigLoader struct {
	projectDir string
	homeDir    string
}

// NewConfigLoader builds a loader rooted at the current working
// directory and the user's home directory.
func NewConfigLoader() (*ConfigLoader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("envkit: get home directory: %w", err)
	}
	projectDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("envkit: get working directory: %w", err)
	}
	return &ConfigLoader{projectDir: projectDir, homeDir: homeDir}, nil
}

// LoadConfig merges the three config tiers in ascending precedence:
// user global, project, then project-local.
func (cl *ConfigLoader) LoadConfig() (*AppConfig, error) {
	return cl.LoadConfigWithPaths(cl.GetConfigPaths())
}

// LoadConfigWithPaths merges configuration from specific paths, in the
// order given, later paths taking precedence.
func (cl *ConfigLoader) LoadConfigWithPaths(paths []string) (*AppConfig, error) {
	config := NewAppConfig()
	for _, path := range paths {
		if err := cl.loadAndMergeConfig(config, path); err != nil {
			return nil, err
		}
	}
	return config, nil
}

func (cl *ConfigLoader) loadAndMergeConfig(config *AppConfig, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("envkit: read config file %s: %w", path, err)
	}

	var fileConfig AppConfig
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("envkit: parse config file %s: %w", path, err)
	}

	config.Merge(&fileConfig)
	return nil
}

// GetConfigPaths returns the paths searched for configuration, in
// ascending precedence order.
func (cl *ConfigLoader) GetConfigPaths() []string {
	return []string{
		filepath.Join(cl.homeDir, ".config", "envkit", "config.json"),
		filepath.Join(cl.projectDir, ".envkit", "config.json"),
		filepath.Join(cl.projectDir, ".envkit", "config.local.json"),
	}
}

// ConfigExists reports whether any of the three config tiers exist.
func (cl *ConfigLoader) ConfigExists() bool {
	for _, path := range cl.GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from the working directory looking for a
// .git directory, falling back to the working directory itself.
func (cl *ConfigLoader) FindProjectRoot() (string, error) {
	dir := cl.projectDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cl.projectDir, nil
}
