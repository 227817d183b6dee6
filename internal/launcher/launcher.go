// Package launcher hands off the current process to the external agent
// binary, resuming the picked-up session.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"
)

const agentBinary = "claude"

// Launch resumes sessionID against the default agent binary ("claude").
func Launch(sessionID string) error {
	return launch(agentBinary, sessionID)
}

// New returns a launch function bound to binary instead of the default
// agent binary, for deployments that configure a different agent.
func New(binary string) func(sessionID string) error {
	return func(sessionID string) error {
		return launch(binary, sessionID)
	}
}

// launch resumes sessionID via binary. On POSIX it replaces the current
// process image via exec so the parent shell's history entry remains this
// command, not the agent's; on non-POSIX it spawns the agent and waits,
// propagating its exit status via the returned error.
func launch(binary, sessionID string) error {
	path, err := exec.LookPath(binary)
	if err != nil {
		return fmt.Errorf("launcher: %s not found in PATH: %w", binary, err)
	}
	args := []string{binary, "--resume", sessionID}

	if runtime.GOOS != "windows" {
		err := syscall.Exec(path, args, os.Environ())
		// Exec only returns on failure.
		return fmt.Errorf("launcher: exec %s failed: %w", binary, err)
	}

	cmd := exec.Command(path, "--resume", sessionID)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("launcher: %s exited with error: %w", binary, err)
	}
	return nil
}
