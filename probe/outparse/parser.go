// Package outparse turns a probed tool's raw stdout into a structured
// map, using a format hint when the caller knows it and falling back to
// JSON/YAML/key-value sniffing when it doesn't.
package outparse

import (
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"
)

// Hint is the declared or guessed output format of a probed command.
type Hint string

const (
	JSON     Hint = "json"
	YAML     Hint = "yaml"
	KeyValue Hint = "key_value"
	Auto     Hint = "auto"
)

// HasYAML reports whether a YAML backend is available. It always returns
// true in this module (gopkg.in/yaml.v3 is vendored, not optional), but is
// kept as a first-class capability check mirroring the reference
// implementation's optional-dependency probe, so callers never need to
// special-case platforms where YAML support might be absent.
func HasYAML() bool { return true }

var keyColonPattern = regexp.MustCompile(`^([^:=]+)[:\s]+(.+)$`)
var keyEqualsPattern = regexp.MustCompile(`^([^=]+)=(.+)$`)
var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
var spaceDash = regexp.MustCompile(`[\s\-]+`)

// SnakeCase normalizes a key to snake_case: spaces/dashes become
// underscores, camelCase boundaries get an inserted underscore, and the
// result is lowercased.
func SnakeCase(s string) string {
	s = spaceDash.ReplaceAllString(s, "_")
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// CoerceValue converts a raw string value to bool, int64, float64, or
// leaves it as a string, matching the reference implementation's coercion
// rules exactly (including its word-list of boolean spellings).
func CoerceValue(raw string) any {
	lower := strings.ToLower(raw)
	switch lower {
	case "true", "yes", "on", "enabled":
		return true
	case "false", "no", "off", "disabled":
		return false
	}
	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	} else if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	return raw
}

// Result is what Parse returns: the structured fields it could make sense
// of, plus any lines it could not parse at all (key_value mode only).
type Result struct {
	Data     map[string]any
	Unparsed []string
}

// Parse interprets text according to hint, falling back to auto-detection
// (JSON, then YAML, then key-value) when hint is Auto or unrecognized.
func Parse(text string, hint Hint) Result {
	switch hint {
	case JSON:
		return parseJSON(text)
	case YAML:
		return parseYAML(text)
	case KeyValue:
		return parseKeyValue(text)
	default:
		return parseAuto(text)
	}
}

func parseJSON(text string) Result {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		var generic any
		if err2 := json.Unmarshal([]byte(text), &generic); err2 == nil && generic != nil {
			return Result{Data: map[string]any{"data": generic}}
		}
		return Result{Data: map[string]any{}}
	}
	if data == nil {
		data = map[string]any{}
	}
	return Result{Data: data}
}

func parseYAML(text string) Result {
	if !HasYAML() {
		return Result{Data: map[string]any{}}
	}
	var data map[string]any
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		var generic any
		if err2 := yaml.Unmarshal([]byte(text), &generic); err2 == nil && generic != nil {
			return Result{Data: map[string]any{"data": generic}}
		}
		return Result{Data: map[string]any{}}
	}
	if data == nil {
		data = map[string]any{}
	}
	return Result{Data: normalizeYAMLMap(data)}
}

// normalizeYAMLMap recursively descends nested maps/slices. yaml.v3 already
// decodes mapping nodes into map[string]any (unlike v2's map[interface{}]
// interface{}), so this only needs to walk, not convert key types.
func normalizeYAMLMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeYAMLValue(v)
	}
	return out
}

func normalizeYAMLValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeYAMLMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAMLValue(item)
		}
		return out
	default:
		return val
	}
}

// patternOrder picks which separator to try first for a line. keyColonPattern
// tolerates a bare run of whitespace as the separator (so "version 1.2.3-rc1"
// parses with no colon at all), but that same tolerance makes it greedily
// misparse "cpu_cores = 8": it backtracks onto the space before "=" and
// leaves the "=" stuck to the value. Trying keyEqualsPattern first whenever
// "=" appears before (or without) a ":" avoids that, while lines that are
// colon- or whitespace-separated with no "=" are unaffected.
func patternOrder(line string) []*regexp.Regexp {
	eq := strings.IndexByte(line, '=')
	colon := strings.IndexByte(line, ':')
	if eq >= 0 && (colon < 0 || eq < colon) {
		return []*regexp.Regexp{keyEqualsPattern, keyColonPattern}
	}
	return []*regexp.Regexp{keyColonPattern, keyEqualsPattern}
}

func parseKeyValue(text string) Result {
	data := map[string]any{}
	var unparsed []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched := false
		for _, pattern := range patternOrder(line) {
			if m := pattern.FindStringSubmatch(line); m != nil {
				key := SnakeCase(strings.TrimSpace(m[1]))
				data[key] = CoerceValue(strings.TrimSpace(m[2]))
				matched = true
				break
			}
		}
		if !matched {
			unparsed = append(unparsed, line)
		}
	}

	return Result{Data: data, Unparsed: unparsed}
}

func parseAuto(text string) Result {
	if res := parseJSON(text); len(res.Data) > 0 {
		return res
	}
	if res := parseYAML(text); len(res.Data) > 0 {
		return res
	}
	return parseKeyValue(text)
}

// WithUnparsed folds any unparsed lines into data under "additional_info",
// matching the reference implementation's add_unparsed_lines.
func WithUnparsed(data map[string]any, lines []string) map[string]any {
	if len(lines) == 0 {
		return data
	}
	if data == nil {
		data = map[string]any{}
	}
	data["additional_info"] = lines
	return data
}
