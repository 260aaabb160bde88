package interpreter

import (
	"context"
	"errors"
	"fmt"
)

// ErrEvaluationTimedOut is returned by Evaluate when the interpreter was
// killed at its deadline.
var ErrEvaluationTimedOut = errors.New("evaluation timed out")

// WrapExpression builds the program used to evaluate a bare expression.
func WrapExpression(expr string) string {
	return "print (" + expr + ");\n"
}

// Evaluator answers "what does the interpreter print for this source".
type Evaluator struct {
	runner     Runner
	stagingDir string
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithStagingDir places staged files in dir instead of os.TempDir.
func WithStagingDir(dir string) EvaluatorOption {
	return func(e *Evaluator) {
		e.stagingDir = dir
	}
}

// NewEvaluator creates an evaluator on top of runner.
func NewEvaluator(runner Runner, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{runner: runner}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute stages a complete program, runs it and removes the staged file.
func (e *Evaluator) Execute(ctx context.Context, source string) (ExecutionResult, error) {
	var result ExecutionResult
	err := WithStagedSource(e.stagingDir, source, func(path string) error {
		var runErr error
		result, runErr = e.runner.Run(ctx, path)
		return runErr
	})
	return result, err
}

// Evaluate runs `print (expr);` and returns the effective output.
func (e *Evaluator) Evaluate(ctx context.Context, expr string) (string, error) {
	result, err := e.Execute(ctx, WrapExpression(expr))
	if err != nil {
		return "", err
	}

	output := result.EffectiveOutput()
	if result.TimedOut {
		return output, fmt.Errorf("%w: %s", ErrEvaluationTimedOut, expr)
	}
	return output, nil
}
