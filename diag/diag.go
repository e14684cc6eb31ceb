// Package diag implements the diagnostic model shared by every compilation
// phase: lexer, parser, compiler, and VM all emit [Diagnostic] values to a
// [Sink] through a [Context], which is the only type allowed to mint a
// [Witness] (spec.md §7: "the witness may not be constructed except by the
// diagnostic context").
//
// Grounded on experimental/report's Diagnostic/snippet shape and on
// reporter.Handler's error-accumulation bookkeeping.
package diag

import (
	"fmt"

	"github.com/triggerlang/core/source"
)

// Severity is how serious a diagnostic is.
type Severity int8

const (
	// Warning indicates something that does not stop compilation.
	Warning Severity = iota
	// Error indicates a phase-ending defect; its presence at a phase
	// boundary produces a [Witness] (spec.md §7).
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Label annotates a span within a diagnostic with explanatory text,
// spec.md §6's "(span, label_text) pairs".
type Label struct {
	Span source.Span
	Text string
}

// Diagnostic is the structured payload spec.md §6 describes: a severity, a
// title, a message, an ordered list of labelled spans, and optional notes.
type Diagnostic struct {
	Severity Severity
	Title    string
	Message  string
	Labels   []Label
	Notes    []string
}

// Sink is the abstract destination for diagnostics. The core never writes to
// a terminal or file itself; rendering is an external collaborator
// (spec.md §1).
type Sink interface {
	Report(Diagnostic)
}

// Witness is a zero-sized proof that at least one error-severity diagnostic
// has been reported to some [Context]; it carries that meaning when
// [Context.Witness] returns it with ok == true. The type itself does not
// prevent construction: any package can write Witness{} (session.go does,
// alongside a false flag), since the blank field only keeps it zero-sized.
type Witness struct {
	_ struct{}
}

// Context accumulates diagnostics for one compilation phase (or an entire
// session) and forwards each one to an underlying [Sink].
type Context struct {
	sink     Sink
	errCount int
	allCount int
}

// NewContext creates a diagnostic context reporting to sink. A nil sink
// discards every diagnostic (useful for tests that only care about the
// error count).
func NewContext(sink Sink) *Context {
	if sink == nil {
		sink = discard{}
	}
	return &Context{sink: sink}
}

// Report records d and forwards it to the underlying sink.
func (c *Context) Report(d Diagnostic) {
	c.allCount++
	if d.Severity == Error {
		c.errCount++
	}
	c.sink.Report(d)
}

// Errorf is a convenience for reporting an Error-severity diagnostic with a
// single primary label.
func (c *Context) Errorf(span source.Span, title, format string, args ...any) {
	c.Report(Diagnostic{
		Severity: Error,
		Title:    title,
		Message:  sprintf(format, args...),
		Labels:   []Label{{Span: span, Text: title}},
	})
}

// Warnf is a convenience for reporting a Warning-severity diagnostic with a
// single primary label.
func (c *Context) Warnf(span source.Span, title, format string, args ...any) {
	c.Report(Diagnostic{
		Severity: Warning,
		Title:    title,
		Message:  sprintf(format, args...),
		Labels:   []Label{{Span: span, Text: title}},
	})
}

// HasErrors reports whether any Error-severity diagnostic has been recorded.
func (c *Context) HasErrors() bool {
	return c.errCount > 0
}

// ErrorCount returns the number of Error-severity diagnostics recorded.
func (c *Context) ErrorCount() int {
	return c.errCount
}

// Witness returns a [Witness] and whether any error has been recorded; ok is
// true only when at least one Error-severity diagnostic was reported.
func (c *Context) Witness() (Witness, bool) {
	if c.errCount == 0 {
		return Witness{}, false
	}
	return Witness{}, true
}

type discard struct{}

func (discard) Report(Diagnostic) {}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
