// Package color provides the verdict styling used by the harness reporters.
//
// Verdict markers (PASSED, FAILED, SUCCESS, FAILURE, TIMEOUT) are rendered
// with lipgloss so they are visually distinguishable on a terminal and
// degrade to plain text when colour is unavailable.
//
// # Colour Detection
//
// lipgloss detects the terminal profile from stdout. Colour is disabled
// explicitly when:
//   - Initialize is called with noColor set (the --no-color flag)
//   - the NO_COLOR environment variable is non-empty
//
// Output piped to a file or another process is plain text either way.
package color
