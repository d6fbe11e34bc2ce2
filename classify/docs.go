package classify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
)

var docMarkdown = goldmark.New(goldmark.WithExtensions(&frontmatter.Extender{}))

// detectFrontmatterDocs looks for a README or index Markdown file with a
// parsed YAML frontmatter block (the convention Sphinx/MkDocs-style
// documentation sites use) and reports whether one was found. The result is
// reported as Analysis.HasDocumentation only; it does not change the
// ProjectType or the score.
func detectFrontmatterDocs(root string, paths []string) bool {
	for _, rel := range paths {
		base := strings.ToLower(filepath.Base(rel))
		if !strings.HasPrefix(base, "readme") && !strings.HasPrefix(base, "index") {
			continue
		}
		if !strings.HasSuffix(base, ".md") && !strings.HasSuffix(base, ".markdown") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		ctx := parser.NewContext()
		var doc strings.Builder
		if err := docMarkdown.Convert(data, &doc, parser.WithContext(ctx)); err != nil {
			continue
		}
		fm := frontmatter.Get(ctx)
		if fm != nil {
			return true
		}
	}
	return false
}
