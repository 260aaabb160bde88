package interpreter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"loxharness/pkg/logging"
)

// ErrInterpreterNotFound is returned when the interpreter binary does not
// resolve to an executable file.
var ErrInterpreterNotFound = errors.New("interpreter not found")

// waitDelay bounds how long Wait keeps reading output after the child has
// been killed, in case a grandchild still holds the pipes open.
const waitDelay = 500 * time.Millisecond

// Runner runs a source file through the interpreter.
type Runner interface {
	Run(ctx context.Context, sourcePath string) (ExecutionResult, error)
}

// Invoker runs the interpreter binary as a subprocess.
type Invoker struct {
	binary  string
	timeout time.Duration
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTimeout bounds every invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(i *Invoker) {
		i.timeout = timeout
	}
}

// NewInvoker creates an invoker for the given interpreter binary path.
func NewInvoker(binary string, opts ...Option) *Invoker {
	inv := &Invoker{binary: binary}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Binary returns the configured interpreter path.
func (i *Invoker) Binary() string {
	return i.binary
}

// Timeout returns the per-invocation bound, zero when unbounded.
func (i *Invoker) Timeout() time.Duration {
	return i.timeout
}

// Run executes `<binary> <sourcePath>` and waits for it to exit.
//
// A non-zero exit status or text on stderr is returned as part of the
// result. An error is returned only when the binary cannot be resolved, the
// process cannot be started, or ctx is cancelled by the caller.
func (i *Invoker) Run(ctx context.Context, sourcePath string) (ExecutionResult, error) {
	binary, err := exec.LookPath(i.binary)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("%w: %s: %v", ErrInterpreterNotFound, i.binary, err)
	}

	runCtx := ctx
	if i.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, binary, sourcePath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	logging.Debug("Invoker", "Running %s %s", binary, sourcePath)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return ExecutionResult{}, fmt.Errorf("failed to start interpreter %s: %w", binary, err)
	}
	waitErr := cmd.Wait()

	result := ExecutionResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	// The caller gave up; this is not an interpreter outcome.
	if ctx.Err() != nil {
		return result, fmt.Errorf("interpreter run of %s cancelled: %w", sourcePath, ctx.Err())
	}

	if runCtx.Err() != nil && !cmd.ProcessState.Exited() {
		result.TimedOut = true
		logging.Warn("Invoker", "Killed %s after %v timeout", sourcePath, i.timeout)
		return result, nil
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		return result, fmt.Errorf("failed waiting for interpreter %s: %w", binary, waitErr)
	}

	logging.Debug("Invoker", "%s exited with code %d in %v", sourcePath, result.ExitCode, result.Duration)
	return result, nil
}
