package classify

import "strings"

// ProjectType is the fine-grained framework/shape a project was detected
// as.
type ProjectType string

const (
	Generic         ProjectType = "generic"
	Django          ProjectType = "django"
	DjangoREST      ProjectType = "django_rest_framework"
	Flask           ProjectType = "flask"
	FastAPI         ProjectType = "fastapi"
	Streamlit       ProjectType = "streamlit"
	Gradio          ProjectType = "gradio"
	DataScience     ProjectType = "data_science"
	MachineLearning ProjectType = "machine_learning"
	Library         ProjectType = "library"
	CLI             ProjectType = "cli"
	React           ProjectType = "react"
	Vue             ProjectType = "vue"
	Hybrid          ProjectType = "hybrid"
)

// ProjectCategory is the coarse-grained bucket a ProjectType rolls up to.
type ProjectCategory string

const (
	Unknown         ProjectCategory = "unknown"
	WebFramework    ProjectCategory = "web_framework"
	WebAPI          ProjectCategory = "web_api"
	MLCategory      ProjectCategory = "machine_learning"
	DataAnalysis    ProjectCategory = "data_analysis"
	CommandLine     ProjectCategory = "command_line"
	Package         ProjectCategory = "package"
	FullStack       ProjectCategory = "full_stack"
)

// IsWebRelated reports whether c involves serving HTTP traffic.
func (c ProjectCategory) IsWebRelated() bool {
	return c == WebFramework || c == WebAPI || c == FullStack
}

// IsDataRelated reports whether c is an ML/analysis category.
func (c ProjectCategory) IsDataRelated() bool {
	return c == MLCategory || c == DataAnalysis
}

// RequiresDatabase reports whether c typically needs a relational store.
func (c ProjectCategory) RequiresDatabase() bool {
	return c == WebFramework || c == WebAPI || c == FullStack
}

// RequiresGPU reports whether c is likely to need GPU support.
func (c ProjectCategory) RequiresGPU() bool {
	return c == MLCategory
}

var categoryOf = map[ProjectType]ProjectCategory{
	Django:          WebFramework,
	DjangoREST:      WebAPI,
	Flask:           WebFramework,
	FastAPI:         WebAPI,
	Streamlit:       DataAnalysis,
	Gradio:          DataAnalysis,
	DataScience:     MLCategory,
	MachineLearning: MLCategory,
	CLI:             CommandLine,
	Library:         Package,
	Hybrid:          FullStack,
}

// CategoryFor maps a ProjectType to its ProjectCategory, defaulting to
// Unknown for types with no fixed category (Generic, React, Vue on their
// own).
func CategoryFor(t ProjectType) ProjectCategory {
	if c, ok := categoryOf[t]; ok {
		return c
	}
	return Unknown
}

// Scoring weights, taken verbatim from the classifier's weight table: a
// strong, unambiguous file marker counts far more than a generic one, a
// dependency/import match is worth more than a bare structural hint.
const (
	weightStrongMarker  = 15
	weightStructuralDir = 2
	weightConfigFile    = 2
	weightDependency    = 3
	weightGenericMarker = 2
)

// rule describes how one ProjectType is detected and scored.
type rule struct {
	Type           ProjectType
	StrongMarkers  []string // file names worth weightStrongMarker each
	GenericMarkers []string // file names worth weightGenericMarker each
	StructuralDirs []string // directory names worth weightStructuralDir each
	ConfigFiles    []string // file names worth weightConfigFile each
	Dependencies   []string // substrings matched against dependency names, weightDependency each
	Imports        []string // exact top-level module names, weightDependency each
}

var rules = []rule{
	{
		Type:           Django,
		StrongMarkers:  []string{"manage.py"},
		GenericMarkers: []string{"settings.py", "urls.py", "models.py", "wsgi.py", "asgi.py"},
		StructuralDirs: []string{"migrations", "templates", "static"},
		Dependencies:   []string{"django"},
		Imports:        []string{"django"},
	},
	{
		Type:         DjangoREST,
		Dependencies: []string{"djangorestframework"},
		Imports:      []string{"rest_framework"},
	},
	{
		Type:           Flask,
		GenericMarkers: []string{"app.py"},
		Dependencies:   []string{"flask"},
		Imports:        []string{"flask"},
	},
	{
		Type:           FastAPI,
		GenericMarkers: []string{"main.py"},
		StructuralDirs: []string{"routers", "models"},
		Dependencies:   []string{"fastapi", "uvicorn"},
		Imports:        []string{"fastapi"},
	},
	{
		Type:         Streamlit,
		Dependencies: []string{"streamlit"},
		Imports:      []string{"streamlit"},
	},
	{
		Type:         Gradio,
		Dependencies: []string{"gradio"},
		Imports:      []string{"gradio"},
	},
	{
		Type:           DataScience,
		StructuralDirs: []string{"data", "notebooks", "models"},
		Dependencies:   []string{"pandas", "numpy", "scipy", "matplotlib", "jupyter"},
	},
	{
		Type:         MachineLearning,
		Dependencies: []string{"tensorflow", "torch", "pytorch", "scikit-learn", "sklearn", "keras", "xgboost", "lightgbm"},
		Imports:      []string{"tensorflow", "torch", "sklearn", "keras", "xgboost", "lightgbm"},
	},
	{
		Type:           Library,
		StrongMarkers:  []string{"setup.py", "setup.cfg"},
		ConfigFiles:    []string{"pyproject.toml"},
	},
	{
		Type:         CLI,
		Dependencies: []string{"click", "typer", "fire", "argparse"},
		Imports:      []string{"click", "typer", "fire", "argparse"},
	},
	{
		Type:         React,
		Dependencies: []string{"react"},
	},
	{
		Type:         Vue,
		Dependencies: []string{"vue"},
	},
}

// score computes r's raw score against ev and how many distinct markers
// contributed to it (used for the confidence floor/ceiling adjustments).
func score(ev *Evidence, r rule) (points int, markers int) {
	for _, f := range r.StrongMarkers {
		if ev.MarkerFiles[f] {
			points += weightStrongMarker
			markers++
		}
	}
	for _, f := range r.GenericMarkers {
		if ev.MarkerFiles[f] || containsSuffixAny(ev.FilePaths, f) {
			points += weightGenericMarker
			markers++
		}
	}
	for _, d := range r.StructuralDirs {
		if ev.StructuralDirs[d] {
			points += weightStructuralDir
			markers++
		}
	}
	for _, c := range r.ConfigFiles {
		if ev.ConfigFiles[c] {
			points += weightConfigFile
			markers++
		}
	}
	for _, dep := range r.Dependencies {
		if dependencyPresent(ev, dep) {
			points += weightDependency
			markers++
		}
	}
	for _, imp := range r.Imports {
		if ev.Imports[imp] {
			points += weightDependency
			markers++
		}
	}
	return points, markers
}

func dependencyPresent(ev *Evidence, name string) bool {
	for dep := range ev.Dependencies {
		if strings.Contains(dep, name) {
			return true
		}
	}
	for dep := range ev.DevDependencies {
		if strings.Contains(dep, name) {
			return true
		}
	}
	return false
}

func containsSuffixAny(paths []string, name string) bool {
	for _, p := range paths {
		if strings.HasSuffix(p, name) {
			return true
		}
	}
	return false
}

// confidence converts a raw score and marker count into the [0,1] value
// reported on Analysis, applying the same floor/ceiling adjustments the
// reference implementation uses for well-known, high-marker frameworks.
func confidence(t ProjectType, points, markers int) float64 {
	base := float64(points) / 30.0
	if base > 1.0 {
		base = 1.0
	}
	switch {
	case markers >= 4 && (t == Django || t == FastAPI):
		if base < 0.9 {
			base = 0.9
		}
	case markers >= 3 && t == DataScience:
		if base < 0.85 {
			base = 0.85
		}
	}
	return base
}
