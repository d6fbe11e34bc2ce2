package classify

// Recommendation is one suggested piece of a project's supporting stack:
// a database, cache, task queue, or test framework.
type Recommendation struct {
	Suggested string   `json:"suggested"`
	Packages  []string `json:"packages"`
	DockerImage string `json:"docker_image,omitempty"`
	EnvVars   []string `json:"env_vars,omitempty"`
}

// Recommendations is the full set of setup advice derived from an
// Analysis: which of its fields are populated depends on the detected
// type and category, mirroring the reference implementation's
// per-category/per-type recommendation rules.
type Recommendations struct {
	Database   *Recommendation `json:"database,omitempty"`
	Cache      *Recommendation `json:"cache,omitempty"`
	TaskQueue  *Recommendation `json:"task_queue,omitempty"`
	Testing    Recommendation  `json:"testing"`
	MLTools    *MLToolsAdvice  `json:"ml_tools,omitempty"`
}

// MLToolsAdvice covers experiment tracking and data versioning, surfaced
// only for data/ML categories.
type MLToolsAdvice struct {
	ExperimentTracking string `json:"experiment_tracking"`
	DataVersioning     string `json:"data_versioning"`
	GPUSupport         bool   `json:"gpu_support"`
}

// BuildRecommendations derives setup recommendations from an Analysis
// already produced by Classify.
func BuildRecommendations(a *Analysis) Recommendations {
	var recs Recommendations

	if a.Category.RequiresDatabase() {
		recs.Database = &Recommendation{
			Suggested:   "postgresql",
			Packages:    []string{"psycopg2-binary"},
			DockerImage: "postgres:15-alpine",
			EnvVars:     []string{"DATABASE_URL", "POSTGRES_PASSWORD"},
		}
	}

	if a.Type == Django || a.Type == DjangoREST || a.Type == FastAPI {
		recs.Cache = &Recommendation{
			Suggested:   "redis",
			Packages:    []string{"redis", "hiredis"},
			DockerImage: "redis:7-alpine",
		}
	}

	if a.Type == Django || a.Type == DjangoREST {
		recs.TaskQueue = &Recommendation{
			Suggested: "celery",
			Packages:  []string{"celery", "django-celery-beat"},
		}
	}

	testPackages := []string{"pytest", "pytest-cov", "pytest-mock"}
	switch a.Type {
	case Django, DjangoREST:
		testPackages = append(testPackages, "pytest-django")
	case FastAPI:
		testPackages = append(testPackages, "pytest-asyncio", "httpx")
	}
	recs.Testing = Recommendation{Suggested: "pytest", Packages: testPackages}

	if a.Category.IsDataRelated() {
		recs.MLTools = &MLToolsAdvice{
			ExperimentTracking: "mlflow",
			DataVersioning:     "dvc",
			GPUSupport:         a.Category.RequiresGPU(),
		}
	}

	return recs
}
