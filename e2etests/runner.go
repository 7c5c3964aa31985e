// Package e2etests drives a built rotary binary against a throwaway data
// directory. The tests are skipped unless ROTARY_CMD names the binary.
package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Runner executes rotary commands against a sandbox directory.
type Runner struct {
	RotaryCmd string // path to rotary binary
}

// RunResult holds the output of a command execution.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes a rotary command with the given arguments.
// It sets ROTARY_PHONE_DIR to the sandbox path so the command reads and
// writes only there. Logging is left on; log lines go to Stderr.
func (r *Runner) Run(sandbox string, args ...string) RunResult {
	cmd := exec.Command(r.RotaryCmd, args...)
	cmd.Env = append(os.Environ(), "ROTARY_PHONE_DIR="+sandbox, "ROTARY_DELAY=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// RunJSON executes a rotary command with the --json flag appended.
func (r *Runner) RunJSON(sandbox string, args ...string) RunResult {
	fullArgs := append(args, "--json")
	return r.Run(sandbox, fullArgs...)
}

// mustRunJSON runs a command with --json and decodes its stdout into v,
// failing on a non-zero exit or undecodable output.
func mustRunJSON(r *Runner, sandbox string, v interface{}, args ...string) error {
	result := r.RunJSON(sandbox, args...)
	if result.ExitCode != 0 {
		return fmt.Errorf("command %v failed (exit %d): %s", args, result.ExitCode, result.Stderr)
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(result.Stdout), v); err != nil {
		return fmt.Errorf("command %v: invalid JSON %q: %v", args, result.Stdout, err)
	}
	return nil
}
