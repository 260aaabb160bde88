package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loxharness/internal/harness"
	"loxharness/internal/interpreter"
	"loxharness/internal/testhelpers"
)

// executeCommand runs a fresh command tree isolated from user config files.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const failingChecks = `
name: failing
checks:
  - name: wrong
    expectations:
      - expression: "20 + 20"
        expected: "41"
      - expression: "true or false"
        expected: "true"
`

func TestCheckCommand_BuiltinChecks(t *testing.T) {
	bin := testhelpers.WriteFakeInterpreter(t, t.TempDir())

	stdout, _, err := executeCommand(t, "check", "--interpreter", bin, "--no-color")
	require.NoError(t, err)

	assert.Equal(t, 4, strings.Count(stdout, "[ PASSED ]"))
	assert.NotContains(t, stdout, "[ FAILED ]")
	assert.Contains(t, stdout, "Total: 4")
}

func TestCheckCommand_FailuresAndExitStatus(t *testing.T) {
	bin := testhelpers.WriteFakeInterpreter(t, t.TempDir())
	checks := writeFile(t, "checks.yaml", failingChecks)

	t.Run("reporting only by default", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "check", "--interpreter", bin, "--expectations", checks)
		require.NoError(t, err)
		assert.Contains(t, stdout, "[ FAILED ]\n\tExpected: 41\n\tFound: 40\n")
		assert.Contains(t, stdout, "[ PASSED ]")
	})

	t.Run("fail on failure", func(t *testing.T) {
		_, _, err := executeCommand(t, "check", "--interpreter", bin, "--expectations", checks, "--fail-on-failure")
		require.Error(t, err)
		assert.ErrorIs(t, err, harness.ErrRunFailed)
	})

	t.Run("fail on failure from config file", func(t *testing.T) {
		cfg := writeFile(t, "config.yaml", "failOnAnyFailure: true\n")
		_, _, err := executeCommand(t, "check", "--config", cfg, "--interpreter", bin, "--expectations", checks)
		assert.ErrorIs(t, err, harness.ErrRunFailed)
	})
}

func TestCheckCommand_MissingInterpreter(t *testing.T) {
	_, _, err := executeCommand(t, "check", "--interpreter", filepath.Join(t.TempDir(), "loxpp"))
	require.Error(t, err)
	assert.ErrorIs(t, err, interpreter.ErrInterpreterNotFound)
	assert.Contains(t, err.Error(), "check run aborted")
}

func TestCheckCommand_JSONOutputAndReport(t *testing.T) {
	bin := testhelpers.WriteFakeInterpreter(t, t.TempDir())
	reportDir := filepath.Join(t.TempDir(), "reports")

	stdout, stderr, err := executeCommand(t, "check", "--interpreter", bin, "--output", "json", "--report", reportDir)
	require.NoError(t, err)

	var result harness.SuiteResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 4, result.Total)
	assert.True(t, result.AllPassed())

	reports, err := filepath.Glob(filepath.Join(reportDir, "loxharness-check-report-*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Contains(t, stderr, "Detailed report saved to")
}

func TestCheckCommand_InvalidOutput(t *testing.T) {
	bin := testhelpers.WriteFakeInterpreter(t, t.TempDir())

	_, _, err := executeCommand(t, "check", "--interpreter", bin, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report format")
}

func TestScriptsCommand(t *testing.T) {
	bin := testhelpers.WriteFakeInterpreter(t, t.TempDir())
	dir := testhelpers.WriteScripts(t, map[string]string{
		"a_ok.lox":   "var a = 1;\n",
		"b_fail.lox": "fail();\n",
	})

	t.Run("scoreboard", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "scripts", dir, "--interpreter", bin)
		require.NoError(t, err)

		assert.Contains(t, stdout, "Running script: a_ok.lox\nvar a = 1;\n========================\n\tSUCCESS\n")
		assert.Contains(t, stdout, "Running script: b_fail.lox\nRuntime error in ")
		assert.Contains(t, stdout, "b_fail.lox\n========================\n\tFAILURE\n")
		assert.Contains(t, stdout, "Ran 2 scripts.\nPassed: 1\nFailed: 1\nb_fail.lox\n")
	})

	t.Run("program output is shown", func(t *testing.T) {
		outputDir := testhelpers.WriteScripts(t, map[string]string{
			"greet.lox": "var greeting = \"SCRIPT_OUTPUT_MARKER\";\n",
		})

		stdout, _, err := executeCommand(t, "scripts", outputDir, "--interpreter", bin)
		require.NoError(t, err)

		start := strings.Index(stdout, "Running script: greet.lox")
		marker := strings.Index(stdout, "SCRIPT_OUTPUT_MARKER")
		banner := strings.Index(stdout, "========================")
		require.NotEqual(t, -1, marker, "script output missing from:\n%s", stdout)
		assert.Less(t, start, marker)
		assert.Less(t, marker, banner)
		assert.Contains(t, stdout, "\tSUCCESS\n")
	})

	t.Run("directory order", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "scripts", dir, "--interpreter", bin, "--sort=false", "--output", "quiet")
		require.NoError(t, err)
		assert.Contains(t, stdout, "❌ b_fail.lox: exit 70")
		assert.Contains(t, stdout, "❌ 1/2 scripts failed")
	})

	t.Run("fail on failure", func(t *testing.T) {
		_, _, err := executeCommand(t, "scripts", dir, "--interpreter", bin, "--fail-on-failure")
		assert.ErrorIs(t, err, harness.ErrRunFailed)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, _, err := executeCommand(t, "scripts", filepath.Join(t.TempDir(), "none"), "--interpreter", bin)
		require.Error(t, err)
	})
}

func TestEvalCommand(t *testing.T) {
	bin := testhelpers.WriteFakeInterpreter(t, t.TempDir())

	t.Run("expression", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "eval", "--interpreter", bin, "20 + 20")
		require.NoError(t, err)
		assert.Equal(t, "40\n", stdout)
	})

	t.Run("expression split across args", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "eval", "--interpreter", bin, "true", "or", "false")
		require.NoError(t, err)
		assert.Equal(t, "true\n", stdout)
	})

	t.Run("requires input", func(t *testing.T) {
		_, _, err := executeCommand(t, "eval", "--interpreter", bin)
		require.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		script := writeFile(t, "ok.lox", "var ok = true;\n")
		stdout, _, err := executeCommand(t, "eval", "--interpreter", bin, "--file", script)
		require.NoError(t, err)
		assert.Equal(t, "var ok = true;\n", stdout)
	})

	t.Run("failing file", func(t *testing.T) {
		script := writeFile(t, "bad.lox", "fail();\n")
		_, _, err := executeCommand(t, "eval", "--interpreter", bin, "--file", script)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exited with code 70")
	})

	t.Run("timeout", func(t *testing.T) {
		_, _, err := executeCommand(t, "eval", "--interpreter", bin, "--timeout", "200ms", "hang()")
		require.Error(t, err)
		assert.ErrorIs(t, err, interpreter.ErrEvaluationTimedOut)
	})
}
