//go:build windows

package guardian

import "os/exec"

// applyMemoryLimit is a documented no-op on Windows: the job-object APIs
// that would enforce a working-set limit aren't in the standard library,
// and the reference implementation itself only attempts RLIMIT_AS and logs
// a warning when the platform doesn't support it. MemoryLimit is accepted
// here for API parity with the Unix build but never enforced.
func applyMemoryLimit(cmd *exec.Cmd, limitBytes int64) {}
