package envkit

import (
	"time"

	json "github.com/goccy/go-json"
)

// AppConfig is envkit's full configuration surface: Guardian defaults,
// which categories/tools Diagnose probes by default, and the policy
// Reproduce uses when comparing versions.
type AppConfig struct {
	Guardian  *GuardianConfig  `json:"guardian,omitempty"`
	Probe     *ProbeConfig     `json:"probe,omitempty"`
	Reproduce *ReproduceConfig `json:"reproduce,omitempty"`
	Cache     *CacheConfig     `json:"cache,omitempty"`
}

// GuardianConfig mirrors guardian.Options, with every field a pointer so
// an absent key in a config file means "inherit from the next tier."
type GuardianConfig struct {
	Timeout        *Duration `json:"timeout,omitempty"`
	MemoryLimitMB  *int64    `json:"memoryLimitMB,omitempty"`
	MaxRetries     *int      `json:"maxRetries,omitempty"`
	MaxOutputBytes *int64    `json:"maxOutputBytes,omitempty"`
}

// ProbeConfig controls the ProbeEngine's default scope and budgets.
type ProbeConfig struct {
	Workers           *int      `json:"workers,omitempty"`
	WallClock         *Duration `json:"wallClock,omitempty"`
	DefaultCategories []string  `json:"defaultCategories,omitempty"`
	DefaultTools      []string  `json:"defaultTools,omitempty"`
}

// ReproduceConfig controls the default version comparison policy.
type ReproduceConfig struct {
	Strict *bool `json:"strict,omitempty"`
}

// CacheConfig controls the toolcache layer Diagnose consults before
// re-probing.
type CacheConfig struct {
	Enabled *bool     `json:"enabled,omitempty"`
	TTL     *Duration `json:"ttl,omitempty"`
}

// Duration wraps time.Duration so config files can write "30s" instead
// of a raw nanosecond integer.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// NewAppConfig returns an AppConfig with every section present but empty,
// so Merge never needs a nil check before assigning into it.
func NewAppConfig() *AppConfig {
	return &AppConfig{
		Guardian:  &GuardianConfig{},
		Probe:     &ProbeConfig{},
		Reproduce: &ReproduceConfig{},
		Cache:     &CacheConfig{},
	}
}

// Merge layers other over c, field by field, with other taking
// precedence wherever it sets a value. Used to combine the three config
// tiers (global, project, local) in ascending precedence order.
func (c *AppConfig) Merge(other *AppConfig) {
	if other == nil {
		return
	}
	if other.Guardian != nil {
		if c.Guardian == nil {
			c.Guardian = &GuardianConfig{}
		}
		mergeGuardian(c.Guardian, other.Guardian)
	}
	if other.Probe != nil {
		if c.Probe == nil {
			c.Probe = &ProbeConfig{}
		}
		mergeProbe(c.Probe, other.Probe)
	}
	if other.Reproduce != nil {
		if c.Reproduce == nil {
			c.Reproduce = &ReproduceConfig{}
		}
		if other.Reproduce.Strict != nil {
			c.Reproduce.Strict = other.Reproduce.Strict
		}
	}
	if other.Cache != nil {
		if c.Cache == nil {
			c.Cache = &CacheConfig{}
		}
		if other.Cache.Enabled != nil {
			c.Cache.Enabled = other.Cache.Enabled
		}
		if other.Cache.TTL != nil {
			c.Cache.TTL = other.Cache.TTL
		}
	}
}

func mergeGuardian(into, from *GuardianConfig) {
	if from.Timeout != nil {
		into.Timeout = from.Timeout
	}
	if from.MemoryLimitMB != nil {
		into.MemoryLimitMB = from.MemoryLimitMB
	}
	if from.MaxRetries != nil {
		into.MaxRetries = from.MaxRetries
	}
	if from.MaxOutputBytes != nil {
		into.MaxOutputBytes = from.MaxOutputBytes
	}
}

func mergeProbe(into, from *ProbeConfig) {
	if from.Workers != nil {
		into.Workers = from.Workers
	}
	if from.WallClock != nil {
		into.WallClock = from.WallClock
	}
	if len(from.DefaultCategories) > 0 {
		into.DefaultCategories = from.DefaultCategories
	}
	if len(from.DefaultTools) > 0 {
		into.DefaultTools = from.DefaultTools
	}
}
