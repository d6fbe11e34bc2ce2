package envkit

import (
	"testing"
	"time"
)

func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestAppConfig_Merge(t *testing.T) {
	base := &AppConfig{
		Guardian: &GuardianConfig{Timeout: &Duration{Duration: 10 * time.Second}},
	}
	other := &AppConfig{
		Guardian:  &GuardianConfig{MaxRetries: intPtr(2)},
		Probe:     &ProbeConfig{Workers: intPtr(20)},
		Reproduce: &ReproduceConfig{Strict: boolPtr(true)},
	}

	base.Merge(other)

	if base.Guardian.Timeout.Duration != 10*time.Second {
		t.Errorf("Guardian.Timeout = %v, want unchanged 10s", base.Guardian.Timeout)
	}
	if base.Guardian.MaxRetries == nil || *base.Guardian.MaxRetries != 2 {
		t.Errorf("Guardian.MaxRetries = %v, want 2", base.Guardian.MaxRetries)
	}
	if base.Probe.Workers == nil || *base.Probe.Workers != 20 {
		t.Errorf("Probe.Workers = %v, want 20", base.Probe.Workers)
	}
	if base.Reproduce.Strict == nil || !*base.Reproduce.Strict {
		t.Error("Reproduce.Strict = false, want true")
	}
}

func TestAppConfig_Merge_LaterWins(t *testing.T) {
	base := &AppConfig{Guardian: &GuardianConfig{MaxRetries: intPtr(1)}}
	other := &AppConfig{Guardian: &GuardianConfig{MaxRetries: intPtr(5)}}

	base.Merge(other)

	if *base.Guardian.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5 (other should win)", *base.Guardian.MaxRetries)
	}
}

func TestAppConfig_Merge_Nil(t *testing.T) {
	base := NewAppConfig()
	base.Guardian.MemoryLimitMB = int64Ptr(512)

	base.Merge(nil)

	if *base.Guardian.MemoryLimitMB != 512 {
		t.Error("merging nil should leave config unchanged")
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes", input: `"5m"`, want: 5 * time.Minute},
		{name: "seconds", input: `"30s"`, want: 30 * time.Second},
		{name: "complex", input: `"1h30m45s"`, want: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "invalid_format", input: `"invalid"`, wantErr: true},
		{name: "not_string", input: `123`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && d.Duration != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", d.Duration, tt.want)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration{Duration: 5 * time.Minute}
	got, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(got) != `"5m0s"` {
		t.Errorf("MarshalJSON() = %s, want \"5m0s\"", got)
	}
}
