package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/triggerlang/core/source"
)

// ANSISink renders diagnostics as coloured, source-annotated text, the way
// the teacher's experimental/report.Renderer does. It is a concrete [Sink]
// implementation provided for drivers; the core package never constructs one
// itself (spec.md §1: terminal colour rendering is an external collaborator).
type ANSISink struct {
	Writer   io.Writer
	Registry *source.Registry
	// Color disables ANSI escapes when false (e.g. when Writer is not a tty).
	Color bool
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Report implements [Sink].
func (s *ANSISink) Report(d Diagnostic) {
	var b strings.Builder

	sevColor := ansiRed
	if d.Severity == Warning {
		sevColor = ansiYellow
	}
	s.paint(&b, sevColor+ansiBold, d.Severity.String()+": "+d.Title)
	b.WriteByte('\n')

	if d.Message != "" {
		fmt.Fprintf(&b, "  %s\n", d.Message)
	}

	for _, label := range d.Labels {
		s.renderLabel(&b, label)
	}

	for _, note := range d.Notes {
		s.paint(&b, ansiCyan, "note: ")
		b.WriteString(note)
		b.WriteByte('\n')
	}

	io.WriteString(s.Writer, b.String())
}

// renderLabel prints the source line a label's span starts on, followed by
// a caret line under the span, using [uniseg] to measure the *display*
// width of the prefix up to the span rather than its byte length, so that
// multi-byte or combining-character identifiers still line the caret up
// under the right column.
func (s *ANSISink) renderLabel(b *strings.Builder, l Label) {
	if s.Registry == nil {
		fmt.Fprintf(b, "  --> %s: %s\n", l.Span, l.Text)
		return
	}

	text := s.Registry.Text(l.Span.ID)
	lineStart, lineEnd := lineBounds(text, l.Span.Start)
	line := text[lineStart:lineEnd]
	prefixWidth := displayWidth(text[lineStart:l.Span.Start])
	spanWidth := displayWidth(text[l.Span.Start:min(l.Span.End, lineEnd)])
	if spanWidth == 0 {
		spanWidth = 1
	}

	fmt.Fprintf(b, "  --> %s\n", l.Span)
	fmt.Fprintf(b, "    | %s\n", line)
	fmt.Fprintf(b, "    | %s", strings.Repeat(" ", prefixWidth))
	s.paint(b, ansiBold+ansiRed, strings.Repeat("^", spanWidth))
	if l.Text != "" {
		fmt.Fprintf(b, " %s", l.Text)
	}
	b.WriteByte('\n')
}

func (s *ANSISink) paint(b *strings.Builder, code, text string) {
	if !s.Color {
		b.WriteString(text)
		return
	}
	b.WriteString(code)
	b.WriteString(text)
	b.WriteString(ansiReset)
}

func lineBounds(text string, offset int) (start, end int) {
	start = strings.LastIndexByte(text[:offset], '\n') + 1
	if idx := strings.IndexByte(text[offset:], '\n'); idx >= 0 {
		end = offset + idx
	} else {
		end = len(text)
	}
	return start, end
}

func displayWidth(s string) int {
	width := 0
	state := -1
	for len(s) > 0 {
		var w int
		_, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		width += w
	}
	return width
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
