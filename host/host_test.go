package host

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ConsoleWritesToConfiguredStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := Run(context.Background(), `
console.log("sum", 2 + 3);
console.info("info");
console.warn("careful");
console.error("broken", true);
`, Options{Stdout: &stdout, Stderr: &stderr})

	require.NoError(t, err)
	assert.Equal(t, "sum 5\ninfo\n", stdout.String())
	assert.Equal(t, "careful\nbroken true\n", stderr.String())
}

func TestRun_UncaughtExceptionBecomesExecError(t *testing.T) {
	err := Run(context.Background(), `throw new Error("Cannot find module 'left-pad' from 'entry.js'");`, Options{})

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr), "expected *ExecError, got %v", err)
	assert.Equal(t, "Error: Cannot find module 'left-pad' from 'entry.js'", execErr.Message)
	assert.Contains(t, execErr.Error(), "uncaught exception")
}

func TestRun_NilWritersDiscardOutput(t *testing.T) {
	require.NoError(t, Run(context.Background(), `console.log("ignored");`, Options{}))
}

func TestRun_ContextCancellationInterruptsExecution(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := Run(ctx, `for (;;) {}`, Options{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline exceeded, got %v", err)
}

func TestRun_AlreadyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, `console.log("never")`, Options{})

	assert.True(t, errors.Is(err, context.Canceled))
}
