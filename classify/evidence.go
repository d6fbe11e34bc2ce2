package classify

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
)

const (
	// maxWalkedFiles bounds how many paths Evidence gathering will visit,
	// so a classification request against an enormous monorepo still
	// returns promptly instead of walking every file.
	maxWalkedFiles = 100
	maxWalkDepth   = 5
)

var skippedDirs = map[string]bool{
	".git": true, "node_modules": true, "__pycache__": true,
	".venv": true, "venv": true, ".tox": true, ".mypy_cache": true,
	"dist": true, "build": true, ".pytest_cache": true, "target": true,
}

// markerFiles are the file names recorded in Evidence.MarkerFiles when seen
// anywhere in the walked tree. What each one is worth is set per rule in
// rules.go: some are strong markers (manage.py, setup.py), others generic.
var markerFiles = map[string]bool{
	"manage.py": true, "settings.py": true, "urls.py": true, "models.py": true,
	"wsgi.py": true, "asgi.py": true,
	"main.py": true, "app.py": true,
	"setup.py": true, "setup.cfg": true,
}

// structuralDirs are directory names worth a lesser weight than a marker
// file: they suggest, but don't confirm, a given project shape.
var structuralDirs = map[string]bool{
	"routers": true, "models": true, "notebooks": true, "data": true,
	"migrations": true, "templates": true, "static": true,
}

// configFiles are manifest/config files worth the "config file present"
// scoring weight, independent of what they contain.
var configFiles = map[string]bool{
	"pyproject.toml": true, "package.json": true, "Cargo.toml": true,
	"Pipfile": true, "poetry.lock": true, "Pipfile.lock": true,
	"environment.yml": true, "requirements.txt": true,
}

// Evidence is everything the classifier's rule table scores against,
// gathered with a single bounded filesystem walk plus a handful of
// targeted manifest reads.
type Evidence struct {
	MarkerFiles    map[string]bool
	StructuralDirs map[string]bool
	ConfigFiles    map[string]bool
	Dependencies   map[string]bool // lowercased dependency names, across all manifests
	DevDependencies map[string]bool
	Imports        map[string]bool // lowercased top-level module names imported anywhere
	HasNotebooks   bool
	HasPyproject   bool
	HasSetupPy     bool
	UsesPoetryLock bool
	UsesPipenvLock bool
	UsesCondaEnv   bool
	FilePaths      []string // all relative file paths visited, for marker-by-substring checks
}

// Gather walks root (bounded by maxWalkedFiles/maxWalkDepth) and reads the
// manifests it finds along the way.
func Gather(root string) (*Evidence, error) {
	ev := &Evidence{
		MarkerFiles:     map[string]bool{},
		StructuralDirs:  map[string]bool{},
		ConfigFiles:     map[string]bool{},
		Dependencies:    map[string]bool{},
		DevDependencies: map[string]bool{},
		Imports:         map[string]bool{},
	}

	visited := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if visited >= maxWalkedFiles {
			return filepath.SkipAll
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		depth := strings.Count(rel, string(filepath.Separator))

		if d.IsDir() {
			if rel != "." && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if depth > maxWalkDepth {
				return filepath.SkipDir
			}
			if structuralDirs[d.Name()] {
				ev.StructuralDirs[d.Name()] = true
			}
			return nil
		}

		visited++
		name := d.Name()
		ev.FilePaths = append(ev.FilePaths, rel)

		if markerFiles[name] {
			ev.MarkerFiles[name] = true
		}
		if configFiles[name] {
			ev.ConfigFiles[name] = true
		}
		if strings.HasSuffix(name, ".ipynb") {
			ev.HasNotebooks = true
		}

		switch name {
		case "poetry.lock":
			ev.UsesPoetryLock = true
		case "Pipfile.lock":
			ev.UsesPipenvLock = true
		case "environment.yml":
			ev.UsesCondaEnv = true
		case "pyproject.toml":
			ev.HasPyproject = true
			readPyproject(path, ev)
		case "setup.py", "setup.cfg":
			ev.HasSetupPy = true
		case "package.json":
			readPackageJSON(path, ev)
		case "Cargo.toml":
			readCargoToml(path, ev)
		case "requirements.txt":
			readRequirementsTxt(path, ev)
		}

		if strings.HasSuffix(name, ".py") {
			scanPythonImports(path, ev)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func readPyproject(path string, ev *Evidence) {
	var doc struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies    map[string]any `toml:"dependencies"`
				DevDependencies map[string]any `toml:"dev-dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return
	}
	for _, dep := range doc.Project.Dependencies {
		ev.Dependencies[normalizeDepName(dep)] = true
	}
	for name := range doc.Tool.Poetry.Dependencies {
		ev.Dependencies[strings.ToLower(name)] = true
	}
	for name := range doc.Tool.Poetry.DevDependencies {
		ev.DevDependencies[strings.ToLower(name)] = true
	}
}

func readPackageJSON(path string, ev *Evidence) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var doc struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}
	for name := range doc.Dependencies {
		ev.Dependencies[strings.ToLower(name)] = true
	}
	for name := range doc.DevDependencies {
		ev.DevDependencies[strings.ToLower(name)] = true
	}
}

func readCargoToml(path string, ev *Evidence) {
	var doc struct {
		Dependencies map[string]any `toml:"dependencies"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return
	}
	for name := range doc.Dependencies {
		ev.Dependencies[strings.ToLower(name)] = true
	}
}

func readRequirementsTxt(path string, ev *Evidence) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev.Dependencies[normalizeDepName(line)] = true
	}
}

// normalizeDepName strips version specifiers ("django>=4.0" -> "django").
func normalizeDepName(spec string) string {
	spec = strings.TrimSpace(spec)
	for _, sep := range []string{">=", "<=", "==", "~=", "!=", ">", "<", "[", " "} {
		if i := strings.Index(spec, sep); i >= 0 {
			spec = spec[:i]
		}
	}
	return strings.ToLower(strings.TrimSpace(spec))
}
