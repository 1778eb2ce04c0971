/*
File    : treewalk/internal/diag/diag.go
Author  : amaji
*/

// Package diag defines the diagnostic channel shared by the Lox and
// Monkey front ends. A Diagnostic carries enough information to print
// the exact wire formats both interpreters promise their drivers:
//
//	[line N] ParseError at '<lexeme>': <message>
//	[line N] ParseError at end of file: <message>
//	[line N] RuntimeError: <message>
//
// Lox additionally reports ResolveError, which renders the same as
// ParseError (both are static errors reported the same way and both
// cause evaluation to be skipped).
package diag

import "fmt"

// Kind classifies a Diagnostic by the pipeline stage that raised it.
type Kind int

const (
	// ParseError is raised by a parser during syntax analysis.
	ParseError Kind = iota
	// ResolveError is raised by the Lox resolver during static analysis.
	ResolveError
	// RuntimeError is raised by an evaluator while executing a program.
	RuntimeError
)

// String returns the Kind's name. Diagnostic.String prints ResolveError
// under the ParseError label.
func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case ResolveError:
		return "ResolveError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "Error"
	}
}

// Diagnostic is a single reported error, tagged with enough source
// position to point a user at the offending token.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Lexeme  string // offending token's lexeme; empty when AtEOF is true
	AtEOF   bool
	Message string
}

// Error implements the error interface so a Diagnostic can be
// returned and compared like any other Go error.
func (d Diagnostic) Error() string {
	return d.String()
}

// String renders the diagnostic in the interpreter's on-disk wire
// format, matching the driver contract exactly.
func (d Diagnostic) String() string {
	if d.Kind == RuntimeError {
		return fmt.Sprintf("[line %d] RuntimeError: %s", d.Line, d.Message)
	}
	where := fmt.Sprintf("'%s'", d.Lexeme)
	if d.AtEOF {
		where = "end of file"
	}
	kind := d.Kind
	if kind == ResolveError {
		kind = ParseError // resolve errors use the parse-error wire format
	}
	return fmt.Sprintf("[line %d] %s at %s: %s", d.Line, kind, where, d.Message)
}

// ExitClass is the coarse-grained outcome a driver maps to a process
// exit code: 0 success, 1 a static (parse/resolve) error occurred, 2 a
// runtime error aborted execution.
type ExitClass int

const (
	ExitOK ExitClass = iota
	ExitStaticError
	ExitRuntimeError
)

// Classify inspects a diagnostic list and picks the exit class a
// driver should report, preferring the more severe outcome: a runtime
// error always outranks a static one since it can only occur when
// none were found during parsing/resolving.
func Classify(diags []Diagnostic) ExitClass {
	static := false
	runtime := false
	for _, d := range diags {
		switch d.Kind {
		case RuntimeError:
			runtime = true
		default:
			static = true
		}
	}
	switch {
	case runtime:
		return ExitRuntimeError
	case static:
		return ExitStaticError
	default:
		return ExitOK
	}
}
