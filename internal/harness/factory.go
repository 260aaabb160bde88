package harness

import (
	"fmt"
	"io"

	"loxharness/internal/config"
	"loxharness/internal/interpreter"
)

// Harness holds all components needed for a run
type Harness struct {
	Config    config.HarnessConfig
	Invoker   *interpreter.Invoker
	Evaluator *interpreter.Evaluator
	Reporter  Reporter
}

// NewHarness creates a fully configured harness from cfg
func NewHarness(cfg config.HarnessConfig, out io.Writer, verbose bool) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	invoker := interpreter.NewInvoker(cfg.Interpreter.Path, interpreter.WithTimeout(cfg.Interpreter.Timeout))

	return &Harness{
		Config:    cfg,
		Invoker:   invoker,
		Evaluator: interpreter.NewEvaluator(invoker),
		Reporter:  NewReporter(cfg.Report.Format, out, verbose),
	}, nil
}

// NewReporter creates the reporter for format. Unknown formats fall back
// to the console reporter.
func NewReporter(format config.ReportFormat, out io.Writer, verbose bool) Reporter {
	switch format {
	case config.ReportFormatQuiet:
		return NewQuietReporter(out)
	case config.ReportFormatJSON:
		return NewJSONReporter(out)
	case config.ReportFormatTable:
		return NewTableReporter(out)
	default:
		return NewConsoleReporter(out, verbose)
	}
}

// LoadSuite builds the expression suite from the configured definition
// file, or from the built-in checks when none is configured.
func (h *Harness) LoadSuite() (*TestSuite, error) {
	def := DefaultSuiteDefinition()
	if path := h.Config.Suite.Expectations; path != "" {
		loaded, err := LoadSuiteDefinition(path)
		if err != nil {
			return nil, err
		}
		def = loaded
	}
	return BuildSuite(def, h.Evaluator, h.Reporter), nil
}

// ScriptRunner creates a batch runner honouring the configured ordering.
func (h *Harness) ScriptRunner() *ScriptRunner {
	return NewScriptRunner(h.Invoker, h.Reporter, h.Config.ShouldSortScripts())
}
