package oxlint

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner invokes the oxlint binary and decodes its JSON output.
type Runner struct {
	path string
	args []string
}

// NewRunner creates a Runner for the given binary path. An empty path
// falls back to "oxlint" on PATH. Extra args are passed through before
// the target paths.
func NewRunner(path string, args []string) *Runner {
	if path == "" {
		path = "oxlint"
	}
	return &Runner{path: path, args: args}
}

// Available reports whether the oxlint binary can be resolved.
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.path)
	return err == nil
}

// Run executes oxlint with --format=json against the given paths and
// returns the decoded report. oxlint exits non-zero when it finds
// issues, so the exit code is ignored as long as stdout holds a
// parseable document; an empty stdout means the invocation itself
// failed and is fatal.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	args := []string{"--format", "json"}
	args = append(args, r.args...)
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, r.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("oxlint produced no output: %s", bytes.TrimSpace(stderr.Bytes()))
		}
		if runErr != nil {
			return nil, fmt.Errorf("running oxlint: %w", runErr)
		}
		return nil, fmt.Errorf("oxlint produced no output")
	}

	return decodeReport(out)
}
