package bower

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes the bower binary.
type Runner interface {
	// Run executes bin with args inside dir and returns its standard output.
	Run(ctx context.Context, dir, bin string, args ...string) ([]byte, error)
}

// ExecRunner runs bower as a child process.
type ExecRunner struct{}

// Run implements Runner. Standard error is folded into the returned error.
func (ExecRunner) Run(ctx context.Context, dir, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", bin, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", bin, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

var _ Runner = ExecRunner{}
