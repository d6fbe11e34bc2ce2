// Package taxonomy is the single source of truth for which development
// tools exist, what each one can report, and where it is valid to invoke it.
package taxonomy

import "runtime"

// Platform identifies a normalized host operating system.
type Platform string

const (
	MacOS   Platform = "macos"
	Linux   Platform = "linux"
	Windows Platform = "windows"
)

// Other returns a normalized Platform value for an unrecognized GOOS.
func Other(goos string) Platform {
	return Platform(goos)
}

// CurrentPlatform returns the normalized platform of the running host.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Other(runtime.GOOS)
	}
}

// platformExclusions lists tools that must never be invoked on a given
// platform, even though they carry no explicit Platforms restriction on
// their ToolSpec.
var platformExclusions = map[Platform]map[string]bool{
	MacOS: set(
		"apt", "apt-get", "yum", "dnf", "zypper", "pacman",
		"msvc", "wsl", "choco", "scoop", "winget", "systemctl", "systemd",
	),
	Windows: set(
		"brew", "macports",
		"apt", "apt-get", "yum", "dnf", "zypper", "pacman",
		"systemctl", "systemd",
	),
	Linux: set(
		"brew", "macports",
		"msvc", "choco", "scoop", "winget", "wsl",
	),
}

// crossPlatformTools are always available regardless of platform exclusions;
// kept primarily so IsAvailableOn has a fast true for the common case.
var crossPlatformTools = set(
	"git", "hg", "svn",
	"python", "python3", "node", "java", "ruby", "go", "rust", "dotnet",
	"pip", "pip3", "npm", "yarn", "pnpm", "cargo", "maven", "gradle", "bundler", "gem",
	"poetry", "pipenv", "pdm", "hatch", "setuptools", "twine",
	"make", "cmake", "ninja", "scons", "bazel", "buck", "pants",
	"gcc", "g++", "clang", "clang++", "rustc", "javac",
	"docker", "podman", "kubectl", "helm", "minikube", "kind",
	"aws", "gcloud", "az", "terraform", "ansible", "puppet", "chef",
	"tar", "gzip", "zip", "7z", "rar",
	"curl", "wget", "openssl", "ssh", "rsync", "netcat", "telnet",
	"mysql", "psql", "redis-cli", "mongo", "sqlite3",
	"pytest", "unittest", "jest", "mocha", "jasmine", "karma", "selenium",
	"jenkins", "travis", "circleci", "gitlab-runner", "github", "drone", "tekton", "argocd",
	"jq", "yq", "xmllint", "pandoc", "graphviz", "plantuml",
)

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// IsAvailableOn reports whether tool may be invoked on platform p. An empty
// platform defaults to available, matching the reference taxonomy.
func IsAvailableOn(tool string, p Platform) bool {
	if p == "" {
		return true
	}
	if crossPlatformTools[tool] {
		return true
	}
	return !platformExclusions[p][tool]
}
