package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loxharness/internal/interpreter"
	"loxharness/pkg/logging"
)

// CheckFunc is a registered check. It makes its assertions through c.
type CheckFunc func(c *Checker)

type registeredCheck struct {
	name string
	fn   CheckFunc
}

// TestSuite owns an ordered list of checks and the failure log of its most
// recent run.
type TestSuite struct {
	name      string
	evaluator ExpressionEvaluator
	reporter  Reporter
	checks    []registeredCheck
	failures  []string
}

// NewTestSuite creates an empty suite.
func NewTestSuite(name string, evaluator ExpressionEvaluator, reporter Reporter) *TestSuite {
	return &TestSuite{
		name:      name,
		evaluator: evaluator,
		reporter:  reporter,
	}
}

// Name returns the suite name.
func (s *TestSuite) Name() string {
	return s.name
}

// Len returns the number of registered checks.
func (s *TestSuite) Len() int {
	return len(s.checks)
}

// Register appends fn to the suite and returns it unchanged.
func (s *TestSuite) Register(name string, fn CheckFunc) CheckFunc {
	s.checks = append(s.checks, registeredCheck{name: name, fn: fn})
	return fn
}

// Expect registers a check asserting each expectation in order.
func (s *TestSuite) Expect(name string, expectations ...Expectation) CheckFunc {
	// Copy so later changes to the caller's slice do not leak in.
	pairs := append([]Expectation(nil), expectations...)
	return s.Register(name, func(c *Checker) {
		for _, e := range pairs {
			c.Assert(e.Expression, e.Expected)
		}
	})
}

// Failures returns the expressions that failed in the most recent run, in
// the order they failed.
func (s *TestSuite) Failures() []string {
	return append([]string(nil), s.failures...)
}

// Run executes every check in registration order. Assertion failures never
// stop the run. An environment failure, such as a missing interpreter,
// aborts it and is returned together with the partial result.
func (s *TestSuite) Run(ctx context.Context) (*SuiteResult, error) {
	s.failures = nil

	result := &SuiteResult{
		RunID:     uuid.NewString(),
		Name:      s.name,
		StartTime: time.Now(),
		Checks:    len(s.checks),
		Failures:  []string{},
		Outcomes:  make([]CheckOutcome, 0, len(s.checks)),
	}

	s.reporter.ReportSuiteStart(s.name, len(s.checks))
	logging.Debug("Suite", "Running suite %s with %d checks", s.name, len(s.checks))

	for _, check := range s.checks {
		c := &Checker{ctx: ctx, suite: s, check: check.name, result: result}
		check.fn(c)

		if c.err != nil {
			s.finish(result)
			logging.Error("Suite", c.err, "Aborting suite %s in check %s", s.name, check.name)
			return result, fmt.Errorf("check %s: %w", check.name, c.err)
		}
	}

	s.finish(result)
	s.reporter.ReportSuiteResult(*result)
	return result, nil
}

func (s *TestSuite) finish(result *SuiteResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.failures = append([]string(nil), result.Failures...)
}

// Checker is handed to each check while it runs.
type Checker struct {
	ctx    context.Context
	suite  *TestSuite
	check  string
	result *SuiteResult
	err    error
}

// Assert evaluates expr and compares its effective output with expected by
// exact string equality. The verdict is reported and recorded; callers may
// ignore the returned outcome.
//
// After an environment failure the remaining assertions of the check are
// skipped and the suite run is aborted.
func (c *Checker) Assert(expr, expected string) CheckOutcome {
	outcome := CheckOutcome{
		Check:      c.check,
		Expression: expr,
		Expected:   expected,
		Result:     ResultFailed,
	}
	if c.err != nil {
		outcome.Error = "skipped after environment failure"
		return outcome
	}

	actual, err := c.suite.evaluator.Evaluate(c.ctx, expr)
	switch {
	case err == nil:
		outcome.Actual = actual
		outcome.Passed = actual == expected
		if outcome.Passed {
			outcome.Result = ResultPassed
		}
	case errors.Is(err, interpreter.ErrEvaluationTimedOut):
		outcome.Actual = actual
		outcome.Result = ResultTimeout
		outcome.Error = err.Error()
	default:
		c.err = err
		return outcome
	}

	c.record(outcome)
	return outcome
}

// Evaluate exposes the raw effective output for checks that need more than
// equality. Environment failures abort the run like in Assert.
func (c *Checker) Evaluate(expr string) (string, bool) {
	if c.err != nil {
		return "", false
	}
	out, err := c.suite.evaluator.Evaluate(c.ctx, expr)
	if err != nil && !errors.Is(err, interpreter.ErrEvaluationTimedOut) {
		c.err = err
		return "", false
	}
	return out, err == nil
}

func (c *Checker) record(outcome CheckOutcome) {
	c.result.Total++
	if outcome.Passed {
		c.result.PassedCount++
	} else {
		c.result.Failures = append(c.result.Failures, outcome.Expression)
	}
	c.result.Outcomes = append(c.result.Outcomes, outcome)
	c.suite.reporter.ReportCheck(outcome)
}
