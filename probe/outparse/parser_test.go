package outparse

import (
	"reflect"
	"testing"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Server Version": "server_version",
		"buildDate":      "build_date",
		"GitCommit":      "git_commit",
		"already_snake":  "already_snake",
	}
	for in, want := range cases {
		if got := SnakeCase(in); got != want {
			t.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCoerceValue(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"yes", true},
		{"enabled", true},
		{"false", false},
		{"no", false},
		{"42", int64(42)},
		{"3.14", 3.14},
		{"v1.2.3", "v1.2.3"},
	}
	for _, c := range cases {
		got := CoerceValue(c.in)
		if got != c.want {
			t.Errorf("CoerceValue(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestParse_JSON(t *testing.T) {
	res := Parse(`{"version": "1.2.3", "ok": true}`, JSON)
	if res.Data["version"] != "1.2.3" {
		t.Errorf("expected version field, got %#v", res.Data)
	}
}

func TestParse_YAML(t *testing.T) {
	res := Parse("version: 1.2.3\nnested:\n  inner: true\n", YAML)
	if res.Data["version"] != "1.2.3" {
		t.Errorf("expected version field, got %#v", res.Data)
	}
	nested, ok := res.Data["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %#v", res.Data["nested"])
	}
	if nested["inner"] != true {
		t.Errorf("expected nested.inner = true, got %#v", nested["inner"])
	}
}

func TestParse_KeyValue(t *testing.T) {
	res := Parse("Git Version: 2.40.0\nuser.name=Jane Doe\nnot a kv line at all but has words", KeyValue)
	if res.Data["git_version"] != "2.40.0" {
		t.Errorf("expected git_version field, got %#v", res.Data)
	}
	if res.Data["user.name"] != "Jane Doe" {
		t.Errorf("expected user.name field, got %#v", res.Data)
	}
	if len(res.Unparsed) != 0 {
		t.Errorf("expected no unparsed lines, got %v", res.Unparsed)
	}
}

func TestParse_KeyValue_EqualsWithSpaces(t *testing.T) {
	res := Parse("version 1.2.3-rc1\nplatform: linux\ncpu_cores = 8\n", KeyValue)
	if res.Data["version"] != "1.2.3-rc1" {
		t.Errorf("expected version field, got %#v", res.Data)
	}
	if res.Data["platform"] != "linux" {
		t.Errorf("expected platform field, got %#v", res.Data)
	}
	if res.Data["cpu_cores"] != int64(8) {
		t.Errorf("expected cpu_cores = int64(8), got %#v (%T)", res.Data["cpu_cores"], res.Data["cpu_cores"])
	}
	if len(res.Unparsed) != 0 {
		t.Errorf("expected no unparsed lines, got %v", res.Unparsed)
	}
}

func TestParse_Auto(t *testing.T) {
	res := Parse(`{"a": 1}`, Auto)
	if res.Data["a"] != float64(1) {
		t.Errorf("expected JSON to win auto-detection, got %#v", res.Data)
	}

	res = Parse("key: value\n", Auto)
	if !reflect.DeepEqual(res.Data["key"], "value") {
		t.Errorf("expected auto-detection to parse key: value, got %#v", res.Data)
	}
}

func TestWithUnparsed(t *testing.T) {
	data := WithUnparsed(map[string]any{"a": 1}, []string{"stray line"})
	lines, ok := data["additional_info"].([]string)
	if !ok || len(lines) != 1 {
		t.Errorf("expected additional_info with 1 line, got %#v", data["additional_info"])
	}
}

func TestExtractVersion(t *testing.T) {
	cases := map[string]string{
		"git version 2.40.0":         "2.40.0",
		"Python 3.11.4":              "3.11.4",
		"v1.2.3-beta":                "1.2.3-beta",
		"no version information here": "",
	}
	for in, want := range cases {
		if got := ExtractVersion(in); got != want {
			t.Errorf("ExtractVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
