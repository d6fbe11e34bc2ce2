// Package classify identifies a project's framework/category by scoring
// filesystem and dependency evidence against a fixed rule table, then
// derives setup recommendations and package-manager migration advice from
// the result.
package classify

import (
	"sort"
	"strings"
	"time"
)

// Analysis is the full result of classifying a project.
type Analysis struct {
	Type                ProjectType     `json:"type"`
	Category            ProjectCategory `json:"category"`
	Confidence          float64         `json:"confidence"`
	DetectedTypes       []ProjectType   `json:"detected_types"`
	Markers             []string        `json:"markers"`
	PrimaryDependencies []string        `json:"primary_dependencies"`
	MLFrameworks        []string        `json:"ml_frameworks,omitempty"`
	CLIFrameworks       []string        `json:"cli_frameworks,omitempty"`
	HasNotebooks        bool            `json:"has_notebooks"`
	HasDocumentation    bool            `json:"has_documentation"`
	UsesPoetry          bool            `json:"uses_poetry"`
	UsesPipenv          bool            `json:"uses_pipenv"`
	UsesConda           bool            `json:"uses_conda"`
	MigrationSuggested  bool            `json:"migration_suggested"`
	MigrationPaths      []string        `json:"migration_paths"`
	IsPublishable       bool            `json:"is_publishable"`
	ProjectPath         string          `json:"project_path"`
	AnalyzedAt          time.Time       `json:"analyzed_at"`
}

var mlDependencyNames = []string{"tensorflow", "torch", "pytorch", "scikit-learn", "sklearn", "keras", "xgboost", "lightgbm"}
var cliDependencyNames = []string{"click", "typer", "fire", "argparse"}
var frameworkDependencyNames = []string{
	"django", "flask", "fastapi", "streamlit", "gradio", "uvicorn", "gunicorn", "celery",
}

// Classify analyzes the project rooted at path and returns its Analysis.
func Classify(path string) (*Analysis, error) {
	ev, err := Gather(path)
	if err != nil {
		return nil, err
	}

	best, detected := detectTypes(ev)
	hybrid := isHybrid(detected)
	if hybrid {
		best = Hybrid
	}

	conf := bestConfidence(best, ev)

	analysis := &Analysis{
		Type:                best,
		Category:            CategoryFor(best),
		Confidence:          conf,
		DetectedTypes:       detected,
		Markers:             extractMarkers(ev),
		PrimaryDependencies: matchAnyDependency(ev, frameworkDependencyNames),
		MLFrameworks:        matchAnyDependency(ev, mlDependencyNames),
		CLIFrameworks:       collectCLIFrameworks(ev),
		HasNotebooks:        ev.HasNotebooks,
		HasDocumentation:    detectFrontmatterDocs(path, ev.FilePaths),
		UsesPoetry:          ev.UsesPoetryLock,
		UsesPipenv:          ev.UsesPipenvLock,
		UsesConda:           ev.UsesCondaEnv,
		IsPublishable:       isPublishableLibrary(best, ev),
		ProjectPath:         path,
		AnalyzedAt:          time.Now(),
	}

	if ev.UsesPoetryLock {
		analysis.MigrationPaths = append(analysis.MigrationPaths, "poetry_to_uv")
	}
	if ev.UsesPipenvLock {
		analysis.MigrationPaths = append(analysis.MigrationPaths, "pipenv_to_uv")
	}
	if ev.UsesCondaEnv {
		analysis.MigrationPaths = append(analysis.MigrationPaths, "conda_to_uv")
	}
	analysis.MigrationSuggested = len(analysis.MigrationPaths) > 0

	return analysis, nil
}

// detectTypes scores every rule and returns the winning type plus every
// type that scored at least one point (the "detected_types" list used for
// hybrid-project detection).
func detectTypes(ev *Evidence) (ProjectType, []ProjectType) {
	type scored struct {
		Type   ProjectType
		Points int
	}
	var results []scored
	for _, r := range rules {
		points, _ := score(ev, r)
		if points > 0 {
			results = append(results, scored{r.Type, points})
		}
	}
	if len(results) == 0 {
		return Generic, []ProjectType{Generic}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Points > results[j].Points })

	best := results[0].Type
	// Django + djangorestframework is reported as DjangoREST, not a
	// separate hybrid detection.
	hasDjango, hasDRF := false, false
	detected := make([]ProjectType, 0, len(results))
	for _, r := range results {
		detected = append(detected, r.Type)
		if r.Type == Django {
			hasDjango = true
		}
		if r.Type == DjangoREST {
			hasDRF = true
		}
	}
	if hasDjango && hasDRF {
		best = DjangoREST
	}
	return best, detected
}

func isHybrid(detected []ProjectType) bool {
	hasDjango, hasFrontend := false, false
	for _, t := range detected {
		if t == Django || t == DjangoREST {
			hasDjango = true
		}
		if t == React || t == Vue {
			hasFrontend = true
		}
	}
	return hasDjango && hasFrontend
}

func bestConfidence(best ProjectType, ev *Evidence) float64 {
	if best == Hybrid {
		return hybridConfidence(ev)
	}
	for _, r := range rules {
		if r.Type == best {
			points, markers := score(ev, r)
			return confidence(best, points, markers)
		}
	}
	return confidence(best, 0, 0)
}

// hybridConfidence scores a Hybrid classification from the combined
// evidence of its constituent halves: the strongest-scoring Django-family
// rule plus the strongest-scoring frontend-framework rule. Hybrid has no
// rule entry of its own in rules, so looking it up directly (as
// bestConfidence does for every other ProjectType) always falls through
// to zero.
func hybridConfidence(ev *Evidence) float64 {
	var backendPoints, backendMarkers, frontendPoints, frontendMarkers int
	for _, r := range rules {
		switch r.Type {
		case Django, DjangoREST:
			points, markers := score(ev, r)
			if points > backendPoints {
				backendPoints, backendMarkers = points, markers
			}
		case React, Vue:
			points, markers := score(ev, r)
			if points > frontendPoints {
				frontendPoints, frontendMarkers = points, markers
			}
		}
	}
	return confidence(Hybrid, backendPoints+frontendPoints, backendMarkers+frontendMarkers)
}

func extractMarkers(ev *Evidence) []string {
	seen := map[string]bool{}
	var out []string
	for f := range ev.MarkerFiles {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func matchAnyDependency(ev *Evidence, names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range names {
		for dep := range ev.Dependencies {
			if strings.Contains(dep, name) && !seen[dep] {
				seen[dep] = true
				out = append(out, dep)
			}
		}
	}
	sort.Strings(out)
	return out
}

func collectCLIFrameworks(ev *Evidence) []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range cliDependencyNames {
		if ev.Dependencies[name] {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
		if ev.Imports[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func isPublishableLibrary(t ProjectType, ev *Evidence) bool {
	if t != Library {
		return false
	}
	return ev.HasPyproject || ev.HasSetupPy
}
