// Package harness runs conformance checks against the external Lox
// interpreter.
//
// ## Architecture Components
//
// ### Test Suite (suite.go)
// - Explicit TestSuite value owning its registered checks and failure log
// - Checks run in registration order with no isolation between them
// - Assertions compare the interpreter's effective output by exact equality
//
// ### Script Runner (script_runner.go)
// - Runs every file in a scripts directory as a whole program
// - Classifies each script by exit code alone (0 passes)
// - Aggregates a scoreboard: total, passed, failed names
//
// ### Reporters (reporter.go)
// - Console reporter with coloured PASSED/FAILED and SUCCESS/FAILURE markers
// - Quiet reporter for CI logs
// - JSON reporter for machine consumption
// - Table reporter rendering one go-pretty table per run
//
// ### Suite Definitions (expectations.go)
// - YAML files grouping expression/expected pairs into named checks
//
// ## Suite Definition Structure
//
//	name: "expressions"
//	checks:
//	  - name: "arithmetic"
//	    expectations:
//	      - expression: "20 + 20"
//	        expected: "40"
//
// ## Exit Status
//
// Runs report failures through the Reporter only. Callers that gate CI
// translate SuiteResult.AllPassed or BatchResult.AllPassed into ErrRunFailed.
package harness
