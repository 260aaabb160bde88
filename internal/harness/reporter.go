package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"loxharness/internal/color"
)

const bannerRule = "========================"

// consoleReporter implements the Reporter interface for humans
type consoleReporter struct {
	out     io.Writer
	verbose bool
}

// NewConsoleReporter creates the default reporter writing to out
func NewConsoleReporter(out io.Writer, verbose bool) Reporter {
	return &consoleReporter{
		out:     out,
		verbose: verbose,
	}
}

func (r *consoleReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// ReportSuiteStart is called before the first check of a suite runs
func (r *consoleReporter) ReportSuiteStart(name string, checks int) {
	if r.verbose {
		r.printf("🧪 Running suite %s (%d checks)\n\n", name, checks)
	}
}

// ReportCheck prints the verdict of one assertion
func (r *consoleReporter) ReportCheck(outcome CheckOutcome) {
	if outcome.Passed {
		if r.verbose {
			r.printf("%s %s\n", color.PassedMarker(), color.Muted(outcome.Expression))
		} else {
			r.printf("%s\n", color.PassedMarker())
		}
		return
	}

	if r.verbose {
		r.printf("%s %s\n", color.FailedMarker(), outcome.Expression)
	} else {
		r.printf("%s\n", color.FailedMarker())
	}
	r.printf("\tExpected: %s\n", outcome.Expected)
	r.printf("\tFound: %s\n", outcome.Actual)
	if outcome.Result == ResultTimeout {
		r.printf("\t%s\n", color.Warn("Timed out"))
	}
}

// ReportSuiteResult prints the suite summary and the failure log
func (r *consoleReporter) ReportSuiteResult(result SuiteResult) {
	r.printf("\n🏁 Suite %s complete\n", result.Name)
	if r.verbose {
		r.printf("⏱️  Duration: %v\n", result.Duration.Round(time.Millisecond))
	}
	r.printf("📊 Results:\n")
	r.printf("   ✅ Passed: %d\n", result.PassedCount)
	if len(result.Failures) > 0 {
		r.printf("   ❌ Failed: %d\n", len(result.Failures))
	}
	r.printf("   📈 Total: %d\n", result.Total)

	if result.AllPassed() {
		r.printf("\n🎉 All checks passed!\n")
		return
	}

	r.printf("\n💔 Failed expressions:\n")
	for _, expr := range result.Failures {
		r.printf("   %s\n", color.Bad(expr))
	}
}

// ReportBatchStart is called before the first script runs
func (r *consoleReporter) ReportBatchStart(dir string, scripts int) {
	if r.verbose {
		r.printf("📂 Running %d scripts from %s\n\n", scripts, dir)
	}
}

// ReportScriptStart announces a script
func (r *consoleReporter) ReportScriptStart(name string) {
	r.printf("Running script: %s\n", name)
}

// ReportScriptResult prints the per-script banner
func (r *consoleReporter) ReportScriptResult(outcome ScriptOutcome) {
	var status string
	switch outcome.Result {
	case ResultPassed:
		status = color.Good("SUCCESS")
	case ResultTimeout:
		status = color.Warn("TIMEOUT")
	default:
		status = color.Bad("FAILURE")
	}

	r.printProgramOutput(outcome.Stdout)
	r.printProgramOutput(outcome.Stderr)

	r.printf("%s\n", bannerRule)
	if r.verbose {
		r.printf("\t%s %s\n", status, color.Muted(fmt.Sprintf("(exit %d, %v)", outcome.ExitCode, outcome.Duration.Round(time.Millisecond))))
	} else {
		r.printf("\t%s\n", status)
	}
	r.printf("%s\n\n\n", bannerRule)
}

// printProgramOutput echoes what a script wrote, untouched, so the banner
// always starts on its own line.
func (r *consoleReporter) printProgramOutput(output string) {
	if output == "" {
		return
	}
	io.WriteString(r.out, output)
	if !strings.HasSuffix(output, "\n") {
		io.WriteString(r.out, "\n")
	}
}

// ReportBatchResult prints the scoreboard
func (r *consoleReporter) ReportBatchResult(result BatchResult) {
	r.printf("Ran %d scripts.\n", result.Total)
	r.printf("%s: %d\n", color.Good("Passed"), result.PassedCount)
	r.printf("%s: %d\n", color.Bad("Failed"), len(result.FailedScripts))
	if len(result.TimedOutScripts) > 0 {
		r.printf("%s: %d\n", color.Warn("Timed out"), len(result.TimedOutScripts))
	}

	if len(result.FailedScripts) == 0 {
		return
	}

	exitCodes := make(map[string]ScriptOutcome, len(result.Outcomes))
	width := 0
	for _, outcome := range result.Outcomes {
		exitCodes[outcome.ScriptName] = outcome
	}
	for _, name := range result.FailedScripts {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}

	for _, name := range result.FailedScripts {
		if !r.verbose {
			r.printf("%s\n", color.Bad(name))
			continue
		}
		outcome := exitCodes[name]
		detail := fmt.Sprintf("exit %d", outcome.ExitCode)
		if outcome.Result == ResultTimeout {
			detail = "timeout"
		}
		r.printf("%s  %s\n", color.Bad(runewidth.FillRight(name, width)), color.Muted(detail))
	}
}

// NewQuietReporter creates a reporter that only outputs essential information
func NewQuietReporter(out io.Writer) Reporter {
	return &quietReporter{out: out}
}

// quietReporter implements minimal output for CI/CD integration
type quietReporter struct {
	out io.Writer
}

func (r *quietReporter) ReportSuiteStart(name string, checks int) {
	// Silent suite start
}

func (r *quietReporter) ReportCheck(outcome CheckOutcome) {
	// Only report failures
	if !outcome.Passed {
		fmt.Fprintf(r.out, "❌ %s: expected %q, found %q\n", outcome.Expression, outcome.Expected, outcome.Actual)
	}
}

func (r *quietReporter) ReportSuiteResult(result SuiteResult) {
	if result.AllPassed() {
		fmt.Fprintf(r.out, "✅ All %d checks passed\n", result.PassedCount)
	} else {
		fmt.Fprintf(r.out, "❌ %d/%d checks failed\n", len(result.Failures), result.Total)
	}
}

func (r *quietReporter) ReportBatchStart(dir string, scripts int) {
	// Silent batch start
}

func (r *quietReporter) ReportScriptStart(name string) {
	// Silent script start
}

func (r *quietReporter) ReportScriptResult(outcome ScriptOutcome) {
	switch outcome.Result {
	case ResultTimeout:
		fmt.Fprintf(r.out, "⏰ %s: timed out\n", outcome.ScriptName)
	case ResultFailed:
		fmt.Fprintf(r.out, "❌ %s: exit %d\n", outcome.ScriptName, outcome.ExitCode)
	}
}

func (r *quietReporter) ReportBatchResult(result BatchResult) {
	if result.AllPassed() {
		fmt.Fprintf(r.out, "✅ All %d scripts passed\n", result.Total)
	} else {
		fmt.Fprintf(r.out, "❌ %d/%d scripts failed\n", len(result.FailedScripts), result.Total)
	}
}

// NewJSONReporter creates a reporter that outputs JSON for CI/CD integration
func NewJSONReporter(out io.Writer) Reporter {
	return &jsonReporter{out: out}
}

// jsonReporter implements JSON output for machine consumption
type jsonReporter struct {
	out io.Writer
}

func (r *jsonReporter) ReportSuiteStart(name string, checks int) {}

func (r *jsonReporter) ReportCheck(outcome CheckOutcome) {}

func (r *jsonReporter) ReportSuiteResult(result SuiteResult) {
	r.write(result)
}

func (r *jsonReporter) ReportBatchStart(dir string, scripts int) {}

func (r *jsonReporter) ReportScriptStart(name string) {}

func (r *jsonReporter) ReportScriptResult(outcome ScriptOutcome) {}

func (r *jsonReporter) ReportBatchResult(result BatchResult) {
	r.write(result)
}

func (r *jsonReporter) write(v interface{}) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(r.out, `{"error": "Failed to marshal results: %v"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.out, string(jsonData))
}

// SaveDetailedReport writes v as indented JSON into dir and returns the
// path of the report file.
func SaveDetailedReport(dir, kind string, v interface{}) (string, error) {
	// Create report directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	fullPath := filepath.Join(dir, fmt.Sprintf("loxharness-%s-report-%s.json", kind, timestamp))

	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return fullPath, nil
}
