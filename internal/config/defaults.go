package config

import (
	"fmt"
)

const (
	DefaultInterpreterPath = "./bin/loxpp"
	DefaultScriptsDir      = "./scripts"
	DefaultLogLevel        = "warn"
)

// GetDefaultConfig returns the built-in configuration: the interpreter in
// ./bin, scripts in ./scripts, no timeout, reporting only.
func GetDefaultConfig() HarnessConfig {
	sortScripts := true
	failOnAnyFailure := false
	return HarnessConfig{
		Interpreter: InterpreterConfig{
			Path: DefaultInterpreterPath,
		},
		Scripts: ScriptsConfig{
			Dir:  DefaultScriptsDir,
			Sort: &sortScripts,
		},
		Report: ReportConfig{
			Format: ReportFormatText,
		},
		FailOnAnyFailure: &failOnAnyFailure,
		LogLevel:         DefaultLogLevel,
	}
}

// Validate checks values that would otherwise fail late, mid-run.
func (c HarnessConfig) Validate() error {
	if c.Interpreter.Path == "" {
		return fmt.Errorf("interpreter path must not be empty")
	}
	if c.Interpreter.Timeout < 0 {
		return fmt.Errorf("interpreter timeout must not be negative, got %v", c.Interpreter.Timeout)
	}
	switch c.Report.Format {
	case ReportFormatText, ReportFormatQuiet, ReportFormatJSON, ReportFormatTable:
	default:
		return fmt.Errorf("invalid report format '%s', must be one of: text, quiet, json, table", c.Report.Format)
	}
	return nil
}
