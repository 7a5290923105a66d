// errors.go: diagnostic sink and runtime fault type
//
// Two independent fault tracks flow through here. Lexical and syntax faults
// are reported immediately through the Reporter while scanning/parsing keeps
// going; runtime faults are *RuntimeError values that unwind one Interpret
// call and are handed to the Reporter by the driver. Neither path alters
// control flow beyond recording that a fault occurred — the driver decides
// exit codes from the flags.
package lox

import (
	"fmt"
	"io"
)

// RuntimeError is an evaluation-time fault. It carries the token at fault,
// which supplies the line for reporting. It terminates the current Interpret
// batch and carries no recoverable state.
type RuntimeError struct {
	Token Token
	Msg   string
}

func (e *RuntimeError) Error() string { return e.Msg }

// Reporter collects diagnostics for one driver session. Compile-time faults
// and runtime faults raise independent flags; an interactive driver clears
// the compile flag between inputs but never the runtime one mid-batch.
type Reporter struct {
	out             io.Writer
	hadError        bool
	hadRuntimeError bool
}

// NewReporter creates a reporter writing diagnostics to out (normally stderr).
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Error reports a compile-time fault with no location hint beyond the line.
func (r *Reporter) Error(line int, message string) {
	r.report(line, "", message)
}

// ErrorAt reports a compile-time fault at a token: "at end" for EOF,
// "at '<lexeme>'" otherwise.
func (r *Reporter) ErrorAt(tok Token, message string) {
	if tok.Type == EOF {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, " at '"+tok.Lexeme+"'", message)
	}
}

// Runtime reports an evaluation fault with its message and line.
func (r *Reporter) Runtime(err *RuntimeError) {
	fmt.Fprintf(r.out, "%s\n[line %d]\n", err.Msg, err.Token.Line)
	r.hadRuntimeError = true
}

func (r *Reporter) report(line int, where, message string) {
	fmt.Fprintf(r.out, "[line %d] Error%s: %s\n", line, where, message)
	r.hadError = true
}

// HadError reports whether any compile-time fault was recorded. A unit with
// any such fault must never be handed to the interpreter.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether any runtime fault was recorded.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// ResetError clears the compile-time flag so an interactive session can keep
// accepting input after a bad line.
func (r *Reporter) ResetError() { r.hadError = false }
