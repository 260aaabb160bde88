package config

import (
	"time"
)

// HarnessConfig is the top-level configuration structure for loxharness.
type HarnessConfig struct {
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Scripts     ScriptsConfig     `yaml:"scripts"`
	Suite       SuiteConfig       `yaml:"suite"`
	Report      ReportConfig      `yaml:"report"`
	// FailOnAnyFailure turns any failed check or script into a non-zero exit
	FailOnAnyFailure *bool  `yaml:"failOnAnyFailure,omitempty"`
	LogLevel         string `yaml:"logLevel,omitempty"` // debug, info, warn, error
}

// InterpreterConfig locates the interpreter under test.
type InterpreterConfig struct {
	Path    string        `yaml:"path,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"` // Zero waits forever
}

// ScriptsConfig controls the batch script runner.
type ScriptsConfig struct {
	Dir  string `yaml:"dir,omitempty"`
	Sort *bool  `yaml:"sort,omitempty"` // Lexicographic run order, default true
}

// SuiteConfig controls the expression check suite.
type SuiteConfig struct {
	Expectations string `yaml:"expectations,omitempty"` // YAML file of expression/expected pairs
}

// ReportFormat selects a reporter.
type ReportFormat string

const (
	ReportFormatText  ReportFormat = "text"
	ReportFormatQuiet ReportFormat = "quiet"
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatTable ReportFormat = "table"
)

// ReportConfig controls console and file reporting.
type ReportConfig struct {
	Format ReportFormat `yaml:"format,omitempty"`
	Dir    string       `yaml:"dir,omitempty"` // Directory for detailed JSON reports
}

// ShouldFailOnAnyFailure reports the effective fail-on-failure setting.
func (c HarnessConfig) ShouldFailOnAnyFailure() bool {
	return c.FailOnAnyFailure != nil && *c.FailOnAnyFailure
}

// ShouldSortScripts reports the effective script ordering setting.
func (c HarnessConfig) ShouldSortScripts() bool {
	return c.Scripts.Sort == nil || *c.Scripts.Sort
}
