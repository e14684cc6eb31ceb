package token

import "github.com/triggerlang/core/source"

// Token is a tagged, payload-free lexical unit: its meaning beyond Kind is
// recovered from its span via the [Stream] that produced it
// (spec.md §3).
type Token struct {
	Kind Kind
	Span source.Span
}

// Stream is the flat token sequence [Lex] produces for one source. The
// parser walks it with a plain integer [Cursor], which is trivially
// clonable and seekable — exactly the "clonable cursor... required for
// one-token lookahead and backtracking" spec.md §4.1 asks for.
type Stream struct {
	SourceID source.ID
	Text     string
	tokens   []Token
}

// Cursor is a position within a [Stream]. Because it is a plain int, copying
// one checkpoints the stream position; no explicit clone method is needed.
type Cursor int

// Len returns the number of tokens in the stream, including the trailing
// EOF token.
func (s *Stream) Len() int { return len(s.tokens) }

// At returns the token at cursor c. Reading past the end of the stream
// returns the final EOF token, so callers never need a bounds check before
// peeking.
func (s *Stream) At(c Cursor) Token {
	i := int(c)
	if i < 0 {
		i = 0
	}
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Span returns the span of the token at c.
func (s *Stream) Span(c Cursor) source.Span { return s.At(c).Span }

// Slice returns the source text covered by the token at c.
func (s *Stream) Slice(c Cursor) string {
	sp := s.Span(c)
	return s.Text[sp.Start:sp.End]
}

// NextStrict returns the cursor advanced past the token at c, including
// Newline tokens (spec.md §4.1: "next_strict returns [newlines]... parser
// uses the strict variant at statement terminators").
func (s *Stream) NextStrict(c Cursor) Cursor {
	if int(c) < len(s.tokens)-1 {
		return c + 1
	}
	return c
}

// Next returns the cursor advanced past c, skipping any Newline tokens
// (spec.md §4.1: "next skips newline tokens").
func (s *Stream) Next(c Cursor) Cursor {
	c = s.NextStrict(c)
	for s.At(c).Kind == Newline {
		c = s.NextStrict(c)
	}
	return c
}
