// Package testhelpers provides a stand-in Lox interpreter for tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeInterpreterScript answers the expression checks used across the test
// suites and classifies whole scripts by keyword:
//
//	hang  -> sleeps well past any test timeout
//	fail  -> prints to stderr, exits 70
//	print -> unknown expression, compile error on stderr, exits 65
//	other -> echoes the script, exits 0
const fakeInterpreterScript = `#!/bin/sh
if [ "$#" -ne 1 ]; then
  echo "Usage: loxpp [script]" >&2
  exit 64
fi
src=$(cat "$1") || exit 66
case "$src" in
  'print (20 + 20);') echo 40 ;;
  'print (true or false);') echo true ;;
  'print (true ? "hello" : nil);') echo hello ;;
  'print (false ? "hello" : nil);') echo nil ;;
  'print ("  padded  ");') echo "  padded  " ;;
  *hang*) exec sleep 5 ;;
  *fail*) echo "Runtime error in $1" >&2; exit 70 ;;
  print*) echo "[line 1] Error at end: Expect expression." >&2; exit 65 ;;
  *) echo "$src" ;;
esac
`

// WriteFakeInterpreter writes the stand-in interpreter into dir and returns
// its path. Tests are skipped on platforms without /bin/sh.
func WriteFakeInterpreter(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter requires a POSIX shell")
	}

	path := filepath.Join(dir, "loxpp")
	if err := os.WriteFile(path, []byte(fakeInterpreterScript), 0755); err != nil {
		t.Fatalf("failed to write fake interpreter: %v", err)
	}
	return path
}

// WriteScripts creates one file per entry in a fresh scripts directory.
func WriteScripts(t *testing.T, scripts map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "scripts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create scripts dir: %v", err)
	}
	for name, content := range scripts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write script %s: %v", name, err)
		}
	}
	return dir
}

// StagedFiles lists leftover staged sources in dir.
func StagedFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "loxharness-*.lox"))
	if err != nil {
		t.Fatalf("failed to glob staged files: %v", err)
	}
	return matches
}
