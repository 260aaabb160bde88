package interpreter

import (
	"strings"
	"time"
)

// SuccessCode is the only exit status treated as success, in both the
// expression and the batch pipelines.
const SuccessCode = 0

// ExecutionResult is the immutable record of one interpreter invocation.
type ExecutionResult struct {
	// ExitCode is the literal process exit status, -1 when the process was
	// terminated by a signal
	ExitCode int `json:"exit_code"`
	// Stdout is the captured standard output
	Stdout string `json:"stdout"`
	// Stderr is the captured standard error, kept separate from Stdout
	Stderr string `json:"stderr"`
	// Duration is the wall time between start and exit
	Duration time.Duration `json:"duration"`
	// TimedOut is set when the invoker killed the process at its deadline
	TimedOut bool `json:"timed_out,omitempty"`
}

// EffectiveOutput returns trimmed stdout when it is non-empty, otherwise
// trimmed stderr. This is the only value compared against expectations.
func (r ExecutionResult) EffectiveOutput() string {
	if out := strings.TrimSpace(r.Stdout); out != "" {
		return out
	}
	return strings.TrimSpace(r.Stderr)
}

// Succeeded reports whether the process exited with SuccessCode before any
// deadline.
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == SuccessCode && !r.TimedOut
}
