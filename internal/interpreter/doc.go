// Package interpreter drives the external Lox interpreter under test.
//
// The interpreter is treated as an opaque executable invoked as
//
//	<interpreter> <source-file>
//
// with no other arguments and no standard input. Success is signalled only
// by exit code 0 (SuccessCode).
//
// # Components
//
//   - Invoker runs the binary against a source file and captures stdout,
//     stderr and the exit code into an ExecutionResult. A non-zero exit is a
//     normal result, never an error. Errors are reserved for a broken
//     environment: the binary is missing or the process cannot be spawned.
//   - Stage and WithStagedSource write source text to a uniquely named
//     temporary .lox file and guarantee its removal.
//   - Evaluator combines both to answer "what does the interpreter print
//     for expression E" by running the wrapper program `print (E);`.
//
// # Timeouts
//
// An Invoker built WithTimeout kills the child once the deadline passes and
// marks the result TimedOut. Without a timeout the wait is unbounded.
package interpreter
