// Package exec runs the post-generation tooling (poetry, mkdocs, pre-commit)
// as blocking child processes with a stub-friendly interface.
package exec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner runs one external command to completion. Implementations
// must be safe for stubbing in tests.
type CommandRunner interface {
	// Run executes a command in dir, streaming its output to the terminal.
	// A non-zero exit or a start failure is returned as an error carrying
	// the tool's own message.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// RealRunner is the production CommandRunner backed by os/exec.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes the command, inheriting stdout/stderr so the tool's own
// output reaches the user unmodified.
func (r *RealRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
