package taxonomy

import "strings"

// FormatHint tells the OutputParser how to interpret a probe's raw output.
type FormatHint string

const (
	FormatJSON     FormatHint = "json"
	FormatYAML     FormatHint = "yaml"
	FormatKeyValue FormatHint = "key_value"
	FormatAuto     FormatHint = "auto"
)

// ToolSpec is a single entry in the CommandRegistry: one tool, the probe
// commands it supports, and where it is valid to run them.
type ToolSpec struct {
	Name   string
	Category string // dotted path, e.g. "package_managers.language.python"
	// Commands maps a probe kind ("version", "config", "list", ...) to the
	// command template to execute (argv, %s placeholders resolved by callers).
	Commands   map[string][]string
	FormatHint FormatHint
	// Platforms restricts the tool to this set when non-empty. When empty,
	// the tool is cross-platform except where platformExclusions forbids it.
	Platforms []Platform
	// Fields are the field names ToolResult.Fields is expected to carry
	// once all probes for this tool have run.
	Fields []string
}

func (t ToolSpec) allowedOn(p Platform) bool {
	if len(t.Platforms) > 0 {
		for _, candidate := range t.Platforms {
			if candidate == p {
				return true
			}
		}
		return false
	}
	return IsAvailableOn(t.Name, p)
}

// Category describes one node of the Taxonomy tree: its dotted path and a
// human description. The ToolSpecs under it are found with
// CommandsInCategory.
type Category struct {
	Path        string
	Description string
}

// CommandRegistry is the static, read-only-after-init set of all known
// tools and their categories. The zero value is not usable; use NewRegistry.
type CommandRegistry struct {
	tools      []ToolSpec
	categories []Category
}

// NewRegistry builds the registry from the built-in taxonomy data. The
// registry is immutable after construction: no component is permitted to
// mutate it, per the shared-resource policy in spec.md §5.
func NewRegistry() *CommandRegistry {
	return &CommandRegistry{
		tools:      append([]ToolSpec(nil), builtinToolSpecs...),
		categories: append([]Category(nil), builtinCategories...),
	}
}

// AllCategories returns every category in the taxonomy tree.
func (r *CommandRegistry) AllCategories() []Category {
	return append([]Category(nil), r.categories...)
}

// AllTools returns every ToolSpec in the registry, unfiltered by platform.
func (r *CommandRegistry) AllTools() []ToolSpec {
	return append([]ToolSpec(nil), r.tools...)
}

// CommandsFor returns the registry filtered to tools valid on platform p.
func (r *CommandRegistry) CommandsFor(p Platform) []ToolSpec {
	filtered := make([]ToolSpec, 0, len(r.tools))
	for _, spec := range r.tools {
		if spec.allowedOn(p) {
			filtered = append(filtered, spec)
		}
	}
	return filtered
}

// CommandsInCategory returns every ToolSpec whose category equals prefix or
// has it as a dotted ancestor (e.g. prefix "package_managers" matches
// "package_managers.language.python").
func (r *CommandRegistry) CommandsInCategory(prefix string) []ToolSpec {
	var matched []ToolSpec
	for _, spec := range r.tools {
		if spec.Category == prefix || strings.HasPrefix(spec.Category, prefix+".") {
			matched = append(matched, spec)
		}
	}
	return matched
}

// FieldsOf returns the declared field list for tool within category, or nil
// if no such tool is registered there.
func (r *CommandRegistry) FieldsOf(category, tool string) []string {
	for _, spec := range r.tools {
		if spec.Category == category && spec.Name == tool {
			return append([]string(nil), spec.Fields...)
		}
	}
	return nil
}

// Lookup finds the ToolSpec with the given name, searching all categories.
func (r *CommandRegistry) Lookup(name string) (ToolSpec, bool) {
	for _, spec := range r.tools {
		if spec.Name == name {
			return spec, true
		}
	}
	return ToolSpec{}, false
}
