package taxonomy

// builtinCategories enumerates every node of the taxonomy tree that
// CommandsInCategory can be asked about. Leaf categories (the ones that
// actually own ToolSpecs) are a subset of this list; the rest are
// groupings used purely for classification/reporting.
var builtinCategories = []Category{
	{Path: "version_control", Description: "Source control tools"},
	{Path: "language_runtimes", Description: "Language interpreters and runtimes"},
	{Path: "package_managers", Description: "Dependency and package managers"},
	{Path: "package_managers.language", Description: "Per-language package managers"},
	{Path: "package_managers.language.python", Description: "Python package managers"},
	{Path: "package_managers.language.node", Description: "Node.js package managers"},
	{Path: "package_managers.language.rust", Description: "Rust package managers"},
	{Path: "package_managers.language.ruby", Description: "Ruby package managers"},
	{Path: "package_managers.language.go", Description: "Go module tooling"},
	{Path: "package_managers.language.java", Description: "Java/JVM build tools"},
	{Path: "package_managers.system", Description: "OS-level package managers"},
	{Path: "package_managers.system.macos", Description: "macOS package managers"},
	{Path: "package_managers.system.linux", Description: "Linux distro package managers"},
	{Path: "package_managers.system.windows", Description: "Windows package managers"},
	{Path: "build_tools", Description: "Generic build systems"},
	{Path: "compilers", Description: "Compilers and code generators"},
	{Path: "containers_virtualization", Description: "Container and VM tooling"},
	{Path: "cloud_tools", Description: "Cloud provider CLIs and IaC"},
	{Path: "ci_cd_tools", Description: "CI/CD runners"},
	{Path: "testing_tools", Description: "Test runners and frameworks"},
	{Path: "database_tools", Description: "Database clients"},
	{Path: "monitoring_tools", Description: "Observability CLIs"},
	{Path: "network_tools", Description: "Network diagnostics and transfer"},
	{Path: "security_tools", Description: "Security scanning and crypto"},
	{Path: "text_processing", Description: "Structured text/query tools"},
	{Path: "documentation_tools", Description: "Documentation generators"},
	{Path: "ide_editors", Description: "Editors and IDEs invoked from the shell"},
	{Path: "archive_managers", Description: "Archive and compression tools"},
	{Path: "system_tools", Description: "General system utilities"},
	{Path: "hardware_info", Description: "Hardware/platform introspection"},
}

// builtinToolSpecs is the static registry content, grounded on
// original_source/src/DHT/modules/system_taxonomy.py's PRACTICAL_TAXONOMY.
// Each entry's Commands map gives the argv template for each probe kind;
// "%s" markers are filled by the caller (usually the project root or a
// package name) where present.
var builtinToolSpecs = []ToolSpec{
	{
		Name: "git", Category: "version_control", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"git", "--version"}, "config": {"git", "config", "--list"}},
		Fields:   []string{"version", "user_name", "user_email"},
	},
	{
		Name: "hg", Category: "version_control", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"hg", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "svn", Category: "version_control", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"svn", "--version", "--quiet"}},
		Fields:   []string{"version"},
	},

	{
		Name: "python3", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"python3", "--version"}, "path": {"python3", "-c", "import sys; print(sys.executable)"}},
		Fields:   []string{"version", "executable_path"},
	},
	{
		Name: "node", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"node", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "go", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"go", "version"}, "env": {"go", "env", "-json"}},
		Fields:   []string{"version", "goroot", "gopath"},
	},
	{
		Name: "ruby", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"ruby", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "java", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"java", "-version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "rustc", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"rustc", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "dotnet", Category: "language_runtimes", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"dotnet", "--version"}, "info": {"dotnet", "--info"}},
		Fields:   []string{"version"},
	},

	{
		Name: "pip", Category: "package_managers.language.python", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"pip", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "poetry", Category: "package_managers.language.python", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"poetry", "--version"}, "config": {"poetry", "config", "--list"}},
		Fields:   []string{"version"},
	},
	{
		Name: "pipenv", Category: "package_managers.language.python", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"pipenv", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "uv", Category: "package_managers.language.python", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"uv", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "conda", Category: "package_managers.language.python", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"conda", "--version"}, "info": {"conda", "info", "--json"}},
		Fields:   []string{"version"},
	},
	{
		Name: "pdm", Category: "package_managers.language.python", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"pdm", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "npm", Category: "package_managers.language.node", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"npm", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "yarn", Category: "package_managers.language.node", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"yarn", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "pnpm", Category: "package_managers.language.node", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"pnpm", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "cargo", Category: "package_managers.language.rust", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"cargo", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "bundler", Category: "package_managers.language.ruby", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"bundle", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "gem", Category: "package_managers.language.ruby", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"gem", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "gomod", Category: "package_managers.language.go", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"go", "version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "maven", Category: "package_managers.language.java", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"mvn", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "gradle", Category: "package_managers.language.java", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"gradle", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "brew", Category: "package_managers.system.macos", FormatHint: FormatKeyValue, Platforms: []Platform{MacOS},
		Commands: map[string][]string{"version": {"brew", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "macports", Category: "package_managers.system.macos", FormatHint: FormatKeyValue, Platforms: []Platform{MacOS},
		Commands: map[string][]string{"version": {"port", "version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "apt", Category: "package_managers.system.linux", FormatHint: FormatKeyValue, Platforms: []Platform{Linux},
		Commands: map[string][]string{"version": {"apt", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "dnf", Category: "package_managers.system.linux", FormatHint: FormatKeyValue, Platforms: []Platform{Linux},
		Commands: map[string][]string{"version": {"dnf", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "pacman", Category: "package_managers.system.linux", FormatHint: FormatKeyValue, Platforms: []Platform{Linux},
		Commands: map[string][]string{"version": {"pacman", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "choco", Category: "package_managers.system.windows", FormatHint: FormatKeyValue, Platforms: []Platform{Windows},
		Commands: map[string][]string{"version": {"choco", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "winget", Category: "package_managers.system.windows", FormatHint: FormatKeyValue, Platforms: []Platform{Windows},
		Commands: map[string][]string{"version": {"winget", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "make", Category: "build_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"make", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "cmake", Category: "build_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"cmake", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "ninja", Category: "build_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"ninja", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "bazel", Category: "build_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"bazel", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "gcc", Category: "compilers", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"gcc", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "clang", Category: "compilers", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"clang", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "javac", Category: "compilers", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"javac", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "docker", Category: "containers_virtualization", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"docker", "version", "--format", "{{json .}}"}, "info": {"docker", "info", "--format", "{{json .}}"}},
		Fields:   []string{"version", "server_version"},
	},
	{
		Name: "podman", Category: "containers_virtualization", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"podman", "version", "--format", "json"}},
		Fields:   []string{"version"},
	},
	{
		Name: "kubectl", Category: "containers_virtualization", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"kubectl", "version", "--client", "--output=json"}},
		Fields:   []string{"version"},
	},
	{
		Name: "helm", Category: "containers_virtualization", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"helm", "version", "--short"}},
		Fields:   []string{"version"},
	},

	{
		Name: "aws", Category: "cloud_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"aws", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "gcloud", Category: "cloud_tools", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"gcloud", "version", "--format=json"}},
		Fields:   []string{"version"},
	},
	{
		Name: "az", Category: "cloud_tools", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"az", "version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "terraform", Category: "cloud_tools", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"terraform", "version", "-json"}},
		Fields:   []string{"version"},
	},

	{
		Name: "jenkins", Category: "ci_cd_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"jenkins", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "gitlab-runner", Category: "ci_cd_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"gitlab-runner", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "github", Category: "ci_cd_tools", FormatHint: FormatJSON,
		Commands: map[string][]string{"version": {"gh", "version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "pytest", Category: "testing_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"pytest", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "jest", Category: "testing_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"jest", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "psql", Category: "database_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"psql", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "mysql", Category: "database_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"mysql", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "redis-cli", Category: "database_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"redis-cli", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "sqlite3", Category: "database_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"sqlite3", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "curl", Category: "network_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"curl", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "wget", Category: "network_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"wget", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "rsync", Category: "network_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"rsync", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "openssl", Category: "security_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"openssl", "version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "ssh", Category: "security_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"ssh", "-V"}},
		Fields:   []string{"version"},
	},

	{
		Name: "jq", Category: "text_processing", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"jq", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "yq", Category: "text_processing", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"yq", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "pandoc", Category: "documentation_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"pandoc", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "sphinx-build", Category: "documentation_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"sphinx-build", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "mkdocs", Category: "documentation_tools", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"mkdocs", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "vim", Category: "ide_editors", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"vim", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "code", Category: "ide_editors", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"code", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "tar", Category: "archive_managers", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"tar", "--version"}},
		Fields:   []string{"version"},
	},
	{
		Name: "zip", Category: "archive_managers", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"zip", "-v"}},
		Fields:   []string{"version"},
	},
	{
		Name: "7z", Category: "archive_managers", FormatHint: FormatKeyValue,
		Commands: map[string][]string{"version": {"7z"}},
		Fields:   []string{"version"},
	},

	{
		Name: "uname", Category: "system_tools", FormatHint: FormatKeyValue, Platforms: []Platform{Linux, MacOS},
		Commands: map[string][]string{"info": {"uname", "-a"}},
		Fields:   []string{"kernel"},
	},
	{
		Name: "systemctl", Category: "system_tools", FormatHint: FormatKeyValue, Platforms: []Platform{Linux},
		Commands: map[string][]string{"version": {"systemctl", "--version"}},
		Fields:   []string{"version"},
	},

	{
		Name: "lscpu", Category: "hardware_info", FormatHint: FormatKeyValue, Platforms: []Platform{Linux},
		Commands: map[string][]string{"info": {"lscpu"}},
		Fields:   []string{"model_name", "architecture"},
	},
	{
		Name: "sysctl", Category: "hardware_info", FormatHint: FormatKeyValue, Platforms: []Platform{MacOS},
		Commands: map[string][]string{"info": {"sysctl", "-a"}},
		Fields:   []string{"hw.model"},
	},
}
