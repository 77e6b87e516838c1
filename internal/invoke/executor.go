// Package invoke executes action plans sequentially with fail-fast discipline.
package invoke

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Executor abstracts how one external command is run. This allows swapping the
// shell executor with a fake in tests without changing invocation discipline.
//
// Contract: Run returns the command's exit status and a non-nil error for any
// non-zero status or spawn failure. extraEnv entries are visible only to the
// child process, never written to this process's environment.
type Executor interface {
	Run(ctx context.Context, command string, extraEnv map[string]string) (int, error)
}

// ShellExecutor invokes commands through `sh -c`, streaming output to the
// process's stdout/stderr. Diagnostics go to process output; the exit status
// is the sole machine-readable signal.
type ShellExecutor struct {
	// Dir is the working directory for spawned commands; empty means inherit.
	Dir string
}

func (s *ShellExecutor) Run(ctx context.Context, command string, extraEnv map[string]string) (int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = s.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	cmd.Env = os.Environ()
	for k, v := range extraEnv {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	slog.Debug("Spawning command", "command", command)

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		return code, fmt.Errorf("command exited with status %d: %s", code, command)
	}

	return 1, fmt.Errorf("failed to run command %q: %w", command, err)
}
