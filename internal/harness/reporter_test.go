package harness

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loxharness/internal/color"
)

func init() {
	color.Initialize(true)
}

func TestConsoleReporter_CheckMarkers(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		outcome  CheckOutcome
		expected string
	}{
		{
			name:     "passed",
			outcome:  CheckOutcome{Expression: "20 + 20", Expected: "40", Actual: "40", Passed: true, Result: ResultPassed},
			expected: "[ PASSED ]\n",
		},
		{
			name:     "passed verbose",
			verbose:  true,
			outcome:  CheckOutcome{Expression: "20 + 20", Expected: "40", Actual: "40", Passed: true, Result: ResultPassed},
			expected: "[ PASSED ] 20 + 20\n",
		},
		{
			name:     "failed",
			outcome:  CheckOutcome{Expression: "20 + 20", Expected: "40", Actual: "41", Result: ResultFailed},
			expected: "[ FAILED ]\n\tExpected: 40\n\tFound: 41\n",
		},
		{
			name:     "timed out",
			outcome:  CheckOutcome{Expression: "loop()", Expected: "1", Result: ResultTimeout},
			expected: "[ FAILED ]\n\tExpected: 1\n\tFound: \n\tTimed out\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewConsoleReporter(&buf, tt.verbose).ReportCheck(tt.outcome)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestConsoleReporter_ScriptBanner(t *testing.T) {
	tests := []struct {
		result TestResult
		status string
	}{
		{ResultPassed, "SUCCESS"},
		{ResultFailed, "FAILURE"},
		{ResultTimeout, "TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewConsoleReporter(&buf, false)
			r.ReportScriptStart("closures.lox")
			r.ReportScriptResult(ScriptOutcome{
				ScriptName: "closures.lox",
				Passed:     tt.result == ResultPassed,
				Result:     tt.result,
			})

			expected := "Running script: closures.lox\n" +
				"========================\n" +
				"\t" + tt.status + "\n" +
				"========================\n\n\n"
			assert.Equal(t, expected, buf.String())
		})
	}
}

func TestConsoleReporter_ScriptShowsProgramOutput(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		outcome  ScriptOutcome
		expected string
	}{
		{
			name:    "stdout before banner",
			outcome: ScriptOutcome{ScriptName: "hello.lox", Passed: true, Result: ResultPassed, Stdout: "hello\n\tworld\n"},
			expected: "Running script: hello.lox\n" +
				"hello\n\tworld\n" +
				"========================\n\tSUCCESS\n========================\n\n\n",
		},
		{
			name:    "missing trailing newline",
			outcome: ScriptOutcome{ScriptName: "hello.lox", Passed: true, Result: ResultPassed, Stdout: "hello"},
			expected: "Running script: hello.lox\n" +
				"hello\n" +
				"========================\n\tSUCCESS\n========================\n\n\n",
		},
		{
			name:    "stdout then stderr",
			outcome: ScriptOutcome{ScriptName: "bad.lox", ExitCode: 70, Result: ResultFailed, Stdout: "1\n", Stderr: "Undefined variable 'x'.\n[line 3]\n"},
			expected: "Running script: bad.lox\n" +
				"1\nUndefined variable 'x'.\n[line 3]\n" +
				"========================\n\tFAILURE\n========================\n\n\n",
		},
		{
			name:    "verbose keeps exit detail",
			verbose: true,
			outcome: ScriptOutcome{ScriptName: "bad.lox", ExitCode: 70, Result: ResultFailed, Duration: 12 * time.Millisecond, Stderr: "Undefined variable 'x'.\n"},
			expected: "Running script: bad.lox\n" +
				"Undefined variable 'x'.\n" +
				"========================\n\tFAILURE (exit 70, 12ms)\n========================\n\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewConsoleReporter(&buf, tt.verbose)
			r.ReportScriptStart(tt.outcome.ScriptName)
			r.ReportScriptResult(tt.outcome)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestConsoleReporter_BatchSummary(t *testing.T) {
	result := BatchResult{
		Total:         3,
		PassedCount:   1,
		FailedScripts: []string{"a.lox", "long_name.lox"},
		Outcomes: []ScriptOutcome{
			{ScriptName: "a.lox", ExitCode: 70, Result: ResultFailed},
			{ScriptName: "long_name.lox", ExitCode: -1, Result: ResultTimeout},
			{ScriptName: "ok.lox", Passed: true, Result: ResultPassed},
		},
		TimedOutScripts: []string{"long_name.lox"},
	}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsoleReporter(&buf, false).ReportBatchResult(result)
		assert.Equal(t, "Ran 3 scripts.\nPassed: 1\nFailed: 2\nTimed out: 1\na.lox\nlong_name.lox\n", buf.String())
	})

	t.Run("verbose aligns names", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsoleReporter(&buf, true).ReportBatchResult(result)
		out := buf.String()
		assert.Contains(t, out, "a.lox"+strings.Repeat(" ", 8)+"  exit 70\n")
		assert.Contains(t, out, "long_name.lox  timeout\n")
	})

	t.Run("all passed lists nothing", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsoleReporter(&buf, false).ReportBatchResult(BatchResult{Total: 2, PassedCount: 2, FailedScripts: []string{}})
		assert.Equal(t, "Ran 2 scripts.\nPassed: 2\nFailed: 0\n", buf.String())
	})
}

func TestConsoleReporter_SuiteSummary(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf, false).ReportSuiteResult(SuiteResult{
		Name:        "expressions",
		Total:       4,
		PassedCount: 3,
		Failures:    []string{`false ? "hello" : nil`},
	})

	out := buf.String()
	assert.Contains(t, out, "Suite expressions complete")
	assert.Contains(t, out, "Passed: 3")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Total: 4")
	assert.Contains(t, out, `   false ? "hello" : nil`)
	assert.NotContains(t, out, "All checks passed")
}

func TestConsoleReporter_FailedExpressionsKeepTabs(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf, false).ReportSuiteResult(SuiteResult{
		Name:        "expressions",
		Total:       2,
		PassedCount: 0,
		Failures:    []string{"1\t+\t1", "\"a\" +\n\"bc\""},
	})

	out := buf.String()
	assert.Contains(t, out, "   1\t+\t1\n")
	assert.Contains(t, out, "   \"a\" +\n\"bc\"\n")
}

func TestConsoleReporter_VerboseCheckKeepsTabs(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf, true).ReportCheck(CheckOutcome{Expression: "1\t+\t1", Expected: "2", Actual: "2", Passed: true, Result: ResultPassed})
	assert.Equal(t, "[ PASSED ] 1\t+\t1\n", buf.String())
}

func TestQuietReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewQuietReporter(&buf)

	r.ReportSuiteStart("expressions", 2)
	r.ReportCheck(CheckOutcome{Expression: "1", Expected: "1", Actual: "1", Passed: true, Result: ResultPassed})
	r.ReportCheck(CheckOutcome{Expression: "2", Expected: "2", Actual: "3", Result: ResultFailed})
	r.ReportSuiteResult(SuiteResult{Total: 2, PassedCount: 1, Failures: []string{"2"}})
	r.ReportScriptStart("a.lox")
	r.ReportScriptResult(ScriptOutcome{ScriptName: "a.lox", Passed: true, Result: ResultPassed})
	r.ReportScriptResult(ScriptOutcome{ScriptName: "b.lox", ExitCode: 65, Result: ResultFailed})

	assert.Equal(t,
		"❌ 2: expected \"2\", found \"3\"\n"+
			"❌ 1/2 checks failed\n"+
			"❌ b.lox: exit 65\n",
		buf.String())
}

func TestJSONReporter_WritesResultOnly(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.ReportBatchStart("scripts", 1)
	r.ReportScriptStart("a.lox")
	r.ReportScriptResult(ScriptOutcome{ScriptName: "a.lox", Passed: true, Result: ResultPassed})
	r.ReportBatchResult(BatchResult{
		RunID:         "run-1",
		Directory:     "scripts",
		Total:         1,
		PassedCount:   1,
		FailedScripts: []string{},
		Outcomes:      []ScriptOutcome{{ScriptName: "a.lox", Passed: true, Result: ResultPassed}},
	})

	var decoded BatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 1, decoded.Total)
	assert.Equal(t, ResultPassed, decoded.Outcomes[0].Result)
}

func TestSaveDetailedReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := SaveDetailedReport(dir, "scripts", BatchResult{RunID: "run-2", Total: 2, PassedCount: 1, FailedScripts: []string{"b.lox"}})
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "loxharness-scripts-report-"))
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded BatchResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-2", decoded.RunID)
	assert.Equal(t, []string{"b.lox"}, decoded.FailedScripts)
}

func TestTableReporter(t *testing.T) {
	t.Run("batch", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewTableReporter(&buf)
		r.ReportScriptStart("a.lox")
		r.ReportScriptResult(ScriptOutcome{ScriptName: "a.lox", Passed: true, Result: ResultPassed})
		assert.Empty(t, buf.String())

		r.ReportBatchResult(BatchResult{
			Directory:     "scripts",
			Total:         2,
			PassedCount:   1,
			FailedScripts: []string{"b.lox"},
			Outcomes: []ScriptOutcome{
				{ScriptName: "a.lox", Passed: true, Result: ResultPassed},
				{ScriptName: "b.lox", ExitCode: 70, Result: ResultFailed},
			},
		})

		out := buf.String()
		assert.Contains(t, out, "SCRIPT")
		assert.Contains(t, out, "a.lox")
		assert.Contains(t, out, "b.lox")
		assert.Contains(t, out, "70")
		assert.Contains(t, out, "FAILED")
		assert.Contains(t, out, "1/2")
	})

	t.Run("suite", func(t *testing.T) {
		var buf bytes.Buffer
		NewTableReporter(&buf).ReportSuiteResult(SuiteResult{
			Name:        "expressions",
			Total:       1,
			PassedCount: 1,
			Outcomes: []CheckOutcome{
				{Check: "arithmetic", Expression: "20 + 20", Expected: "40", Actual: "40", Passed: true, Result: ResultPassed},
			},
		})

		out := buf.String()
		assert.Contains(t, out, "EXPRESSION")
		assert.Contains(t, out, "20 + 20")
		assert.Contains(t, out, "PASSED")
		assert.Contains(t, out, "1/1")
	})
}
