package classify

import (
	"bufio"
	"os"
	"regexp"
)

// importPattern matches both "import foo" and "from foo import bar",
// capturing the top-level module name. Go has no Python-AST equivalent in
// the retrieval pack, so this is a deliberate regex approximation of the
// reference implementation's AST-based import walk: it will over- and
// under-match in edge cases (aliased imports, conditional imports inside
// strings) but is accurate enough for framework-presence detection, which
// only needs "was this module ever imported anywhere in the tree".
var importPattern = regexp.MustCompile(`^\s*(?:from\s+([\w.]+)|import\s+([\w.]+))`)

// scanPythonImports reads path line by line and records every top-level
// module name it imports into ev.Imports, lowercased.
func scanPythonImports(path string, ev *Evidence) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		m := importPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		module := m[1]
		if module == "" {
			module = m[2]
		}
		top := topLevelModule(module)
		if top != "" {
			ev.Imports[top] = true
		}
	}
}

func topLevelModule(dotted string) string {
	for i, r := range dotted {
		if r == '.' {
			return toLower(dotted[:i])
		}
	}
	return toLower(dotted)
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
