package probe

import (
	"os"
	"runtime"
	"time"

	"github.com/envkit-dev/envkit/taxonomy"
)

// SystemInfo captures the parts of the diagnostic report that don't come
// from invoking an external tool: the things the Go runtime and the OS
// already know.
type SystemInfo struct {
	Platform     taxonomy.Platform `json:"platform"`
	Arch         string            `json:"arch"`
	Hostname     string            `json:"hostname"`
	NumCPU       int               `json:"num_cpu"`
	GoVersion    string            `json:"go_version"`
	CollectedAt  time.Time         `json:"collected_at"`
}

// CollectSystemInfo gathers SystemInfo without spawning any subprocess;
// the envkit command puts it under "system" in the diagnostic report
// unless --no-system-info is given. Engine.Run does not call it.
func CollectSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	return SystemInfo{
		Platform:    taxonomy.CurrentPlatform(),
		Arch:        runtime.GOARCH,
		Hostname:    hostname,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		CollectedAt: time.Now(),
	}
}
