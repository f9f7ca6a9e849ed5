package harness

import (
	"bytes"
	"context"
	"time"

	"github.com/artpar/celltree/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// Print runs the print command on the harness temp dir.
func (r *CLIRunner) Print(opts ...string) (*CLIResult, error) {
	args := []string{"print", r.harness.tmpDir}
	args = append(args, opts...)
	return r.Run(args...)
}

// PrintDepth prints the temp dir expanded to depth levels.
func (r *CLIRunner) PrintDepth(depth string, opts ...string) (*CLIResult, error) {
	return r.Print(append([]string{"--depth", depth}, opts...)...)
}
