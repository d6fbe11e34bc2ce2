package guardian

import (
	"os/exec"
	"sync"
)

// registry tracks every subprocess currently running under guardian.Run so
// that Cleanup (normally wired to SIGINT/SIGTERM by the caller) can
// terminate them all, rather than leaving orphans behind when the parent
// process itself is interrupted.
type registry struct {
	mu    sync.Mutex
	procs map[int]*exec.Cmd
}

var live = &registry{procs: make(map[int]*exec.Cmd)}

func (r *registry) register(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[cmd.Process.Pid] = cmd
}

func (r *registry) unregister(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.procs, cmd.Process.Pid)
}

func (r *registry) snapshot() []*exec.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*exec.Cmd, 0, len(r.procs))
	for _, cmd := range r.procs {
		out = append(out, cmd)
	}
	return out
}

// Cleanup terminates every subprocess currently tracked as running. It is
// safe to call from a signal handler; it does not wait for exit, only
// requests it (terminateProcessGroup does the escalate-to-kill dance on a
// timer of its own, fire-and-forget here).
func Cleanup() {
	for _, cmd := range live.snapshot() {
		terminateProcessGroup(cmd)
	}
}

// ActiveCount reports how many subprocesses guardian currently believes are
// running. Exposed for tests and for diagnostics reporting.
func ActiveCount() int {
	return len(live.snapshot())
}
