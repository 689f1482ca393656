package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// gitCommandTimeout bounds a single git invocation on top of the caller's context.
const gitCommandTimeout = 10 * time.Second

// gitOutput runs git in dir and returns stdout along with trimmed stderr.
// Cancellation of ctx kills the process and is reported as ctx's error.
func gitOutput(ctx context.Context, dir string, args ...string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("git %s: %w", subcommand(args), err)
	}

	callCtx, cancel := context.WithTimeout(ctx, gitCommandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(callCtx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	stderrText := strings.TrimSpace(stderr.String())
	if runErr == nil {
		return stdout.Bytes(), stderrText, nil
	}

	switch {
	case ctx.Err() != nil:
		return nil, stderrText, fmt.Errorf("git %s: %w", subcommand(args), ctx.Err())
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return nil, stderrText, fmt.Errorf("git %s timed out after %s: %w", subcommand(args), gitCommandTimeout, callCtx.Err())
	default:
		return nil, stderrText, runErr
	}
}

func subcommand(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// commandFailure prefers git's own stderr over the bare exit status.
func commandFailure(err error, stderr string) error {
	if err == nil {
		return nil
	}
	if stderr != "" && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("git command failed: %s", stderr)
	}
	return err
}
