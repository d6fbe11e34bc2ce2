//go:build !windows

package guardian

import (
	"fmt"
	"os/exec"
)

// applyMemoryLimit rewrites cmd to run under a "sh -c 'ulimit -v ...; exec
// "$@"'" wrapper, the same best-effort RLIMIT_AS approach the reference
// implementation takes (there it's a preexec_fn calling resource.setrlimit;
// Go's os/exec has no preexec hook, so the shell does it instead). Argument
// values still travel through exec's "$@", not string interpolation, so
// this is not susceptible to shell injection from the probed command's
// arguments.
func applyMemoryLimit(cmd *exec.Cmd, limitBytes int64) {
	if limitBytes <= 0 {
		return
	}
	shPath, err := exec.LookPath("sh")
	if err != nil {
		return
	}
	kb := limitBytes / 1024
	if kb <= 0 {
		kb = 1
	}
	origPath := cmd.Path
	origArgs := append([]string(nil), cmd.Args...)

	cmd.Path = shPath
	cmd.Args = append([]string{"sh", "-c", fmt.Sprintf(`ulimit -v %d 2>/dev/null; exec "$@"`, kb), "sh", origPath}, origArgs[1:]...)
}
