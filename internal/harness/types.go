package harness

import (
	"context"
	"errors"
	"time"
)

// ErrRunFailed is returned by callers configured to fail on any failure.
var ErrRunFailed = errors.New("one or more checks failed")

// TestResult represents the classification of a single check or script
type TestResult string

const (
	// ResultPassed indicates the check or script passed
	ResultPassed TestResult = "PASSED"
	// ResultFailed indicates a mismatch or a non-zero exit
	ResultFailed TestResult = "FAILED"
	// ResultTimeout indicates the interpreter was killed at its deadline
	ResultTimeout TestResult = "TIMEOUT"
)

// ExpressionEvaluator returns the effective output of `print (expr);`.
type ExpressionEvaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Expectation pairs a Lox expression with the output it must print.
type Expectation struct {
	Expression string `yaml:"expression" json:"expression"`
	Expected   string `yaml:"expected" json:"expected"`
}

// CheckOutcome is the verdict of one assertion.
type CheckOutcome struct {
	// Check is the name of the registered check that made the assertion
	Check      string     `json:"check"`
	Expression string     `json:"expression"`
	Expected   string     `json:"expected"`
	Actual     string     `json:"actual"`
	Passed     bool       `json:"passed"`
	Result     TestResult `json:"result"`
	// Error is set when evaluation did not produce a normal outcome
	Error string `json:"error,omitempty"`
}

// SuiteResult represents the overall result of one TestSuite run
type SuiteResult struct {
	RunID       string         `json:"run_id"`
	Name        string         `json:"name"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Duration    time.Duration  `json:"duration"`
	Checks      int            `json:"checks"`
	Total       int            `json:"total"`
	PassedCount int            `json:"passed_count"`
	Failures    []string       `json:"failures"`
	Outcomes    []CheckOutcome `json:"outcomes"`
}

// AllPassed reports whether no assertion failed.
func (r SuiteResult) AllPassed() bool {
	return len(r.Failures) == 0
}

// ScriptOutcome is the classification of one whole-program script.
type ScriptOutcome struct {
	ScriptName string        `json:"script_name"`
	ExitCode   int           `json:"exit_code"`
	Passed     bool          `json:"passed"`
	Result     TestResult    `json:"result"`
	Duration   time.Duration `json:"duration"`
	// Stdout and Stderr are shown to the user but never affect classification
	Stdout string `json:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty"`
}

// BatchResult represents the scoreboard of one scripts directory run.
//
// PassedCount + len(FailedScripts) == Total. Timed out scripts are counted
// as failed and additionally listed in TimedOutScripts.
type BatchResult struct {
	RunID           string          `json:"run_id"`
	Directory       string          `json:"directory"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Duration        time.Duration   `json:"duration"`
	Total           int             `json:"total"`
	PassedCount     int             `json:"passed_count"`
	FailedScripts   []string        `json:"failed_scripts"`
	TimedOutScripts []string        `json:"timed_out_scripts,omitempty"`
	Outcomes        []ScriptOutcome `json:"outcomes"`
}

// AllPassed reports whether every script exited with the success code.
func (r BatchResult) AllPassed() bool {
	return len(r.FailedScripts) == 0
}

// Reporter receives progress and results from suites and script runs.
type Reporter interface {
	// ReportSuiteStart is called before the first check of a suite runs
	ReportSuiteStart(name string, checks int)
	// ReportCheck is called after every assertion
	ReportCheck(outcome CheckOutcome)
	// ReportSuiteResult is called when all checks completed
	ReportSuiteResult(result SuiteResult)
	// ReportBatchStart is called before the first script runs
	ReportBatchStart(dir string, scripts int)
	// ReportScriptStart is called before a script is run
	ReportScriptStart(name string)
	// ReportScriptResult is called when a script exited
	ReportScriptResult(outcome ScriptOutcome)
	// ReportBatchResult is called when all scripts ran
	ReportBatchResult(result BatchResult)
}
