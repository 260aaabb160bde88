package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"loxharness/internal/interpreter"
	"loxharness/pkg/logging"
)

// ScriptRunner runs every script in a directory as a whole program.
type ScriptRunner struct {
	runner      interpreter.Runner
	reporter    Reporter
	sortScripts bool
}

// NewScriptRunner creates a batch runner. With sortScripts unset, scripts
// run in the order the directory listing returns them.
func NewScriptRunner(runner interpreter.Runner, reporter Reporter, sortScripts bool) *ScriptRunner {
	return &ScriptRunner{
		runner:      runner,
		reporter:    reporter,
		sortScripts: sortScripts,
	}
}

// ListScripts returns the names of the files in dir. Subdirectories are
// skipped.
func (r *ScriptRunner) ListScripts(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open scripts directory: %w", err)
	}
	defer f.Close()

	// (*os.File).ReadDir keeps directory order, unlike os.ReadDir.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts directory %s: %w", dir, err)
	}

	scripts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		scripts = append(scripts, entry.Name())
	}

	if r.sortScripts {
		sort.Strings(scripts)
	}
	return scripts, nil
}

// Run executes every script in dir and returns the scoreboard. A script's
// outcome depends on its exit code alone. An environment failure aborts
// the run; the partial result is returned with the error.
func (r *ScriptRunner) Run(ctx context.Context, dir string) (*BatchResult, error) {
	scripts, err := r.ListScripts(dir)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		RunID:         uuid.NewString(),
		Directory:     dir,
		StartTime:     time.Now(),
		FailedScripts: []string{},
		Outcomes:      make([]ScriptOutcome, 0, len(scripts)),
	}

	r.reporter.ReportBatchStart(dir, len(scripts))
	logging.Debug("ScriptRunner", "Running %d scripts from %s", len(scripts), dir)

	for _, name := range scripts {
		r.reporter.ReportScriptStart(name)

		execResult, err := r.runner.Run(ctx, filepath.Join(dir, name))
		if err != nil {
			finishBatch(result)
			return result, fmt.Errorf("failed to run script %s: %w", name, err)
		}

		outcome := classifyScript(name, execResult)
		result.Total++
		if outcome.Passed {
			result.PassedCount++
		} else {
			result.FailedScripts = append(result.FailedScripts, name)
			if outcome.Result == ResultTimeout {
				result.TimedOutScripts = append(result.TimedOutScripts, name)
			}
		}
		result.Outcomes = append(result.Outcomes, outcome)

		r.reporter.ReportScriptResult(outcome)
	}

	finishBatch(result)
	r.reporter.ReportBatchResult(*result)
	return result, nil
}

func classifyScript(name string, execResult interpreter.ExecutionResult) ScriptOutcome {
	outcome := ScriptOutcome{
		ScriptName: name,
		ExitCode:   execResult.ExitCode,
		Passed:     execResult.Succeeded(),
		Result:     ResultFailed,
		Duration:   execResult.Duration,
		Stdout:     execResult.Stdout,
		Stderr:     execResult.Stderr,
	}
	switch {
	case execResult.TimedOut:
		outcome.Result = ResultTimeout
	case outcome.Passed:
		outcome.Result = ResultPassed
	}
	return outcome
}

func finishBatch(result *BatchResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
}
