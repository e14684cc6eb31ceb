package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
)

func kinds(s *token.Stream) []token.Kind {
	var out []token.Kind
	for c := token.Cursor(0); ; c++ {
		tok := s.At(c)
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestLexArithmeticExpression(t *testing.T) {
	reg := source.NewRegistry(nil)
	id := reg.Register("t", "dbg (1 + 2 * 3)")
	s := token.Lex(id, reg.Text(id))

	got := kinds(s)
	want := []token.Kind{
		token.KwDbg, token.LParen, token.Int, token.Plus, token.Int,
		token.Star, token.Int, token.RParen, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestTokenSliceMatchesSource(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "x = 10; y = x + 1"
	id := reg.Register("t", text)
	s := token.Lex(id, text)

	for c := token.Cursor(0); c < token.Cursor(s.Len()); c++ {
		tok := s.At(c)
		require.Equal(t, text[tok.Span.Start:tok.Span.End], s.Slice(c))
	}
}

func TestLexNumberBases(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "0x1F 0o17 0b101 10 1.5"
	id := reg.Register("t", text)
	s := token.Lex(id, text)

	got := kinds(s)
	want := []token.Kind{token.Int, token.Int, token.Int, token.Int, token.Float, token.EOF}
	assert.Equal(t, want, got)
}

func TestLexDomainID(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "12g ?c 7ch"
	id := reg.Register("t", text)
	s := token.Lex(id, text)

	got := kinds(s)
	want := []token.Kind{token.DomainID, token.DomainID, token.DomainID, token.EOF}
	assert.Equal(t, want, got)
}

func TestLexUnknownCharacterDoesNotSpin(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "x = `"
	id := reg.Register("t", text)
	s := token.Lex(id, text)
	got := kinds(s)
	want := []token.Kind{token.Ident, token.Assign, token.Unknown, token.EOF}
	assert.Equal(t, want, got)
}

func TestNextSkipsNewlineNextStrictDoesNot(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "x\ny"
	id := reg.Register("t", text)
	s := token.Lex(id, text)

	c := token.Cursor(0)
	assert.Equal(t, token.Ident, s.At(c).Kind)
	strict := s.NextStrict(c)
	assert.Equal(t, token.Newline, s.At(strict).Kind)
	skip := s.Next(c)
	assert.Equal(t, token.Ident, s.At(skip).Kind)
}

func TestMutAndLetAreBothKeywords(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "let mut"
	id := reg.Register("t", text)
	s := token.Lex(id, text)
	got := kinds(s)
	want := []token.Kind{token.KwLet, token.KwMut, token.EOF}
	assert.Equal(t, want, got)
}
