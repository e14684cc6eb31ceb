// Package parser implements the recursive-descent parser spec.md §4.2
// describes: tokens to AST, diagnostics on the session's [diag.Context],
// and an error witness whenever any diagnostic was emitted.
package parser

import (
	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
)

// Parser walks a flat [token.Stream] with a plain integer cursor, so
// speculative parses (pattern-vs-expression-statement, macro-literal-vs-
// grouped-expression) can snapshot and restore position for free
// (spec.md §4.1, §4.2).
type Parser struct {
	toks  *token.Stream
	cur   token.Cursor
	diags *diag.Context
}

// New creates a parser over toks, reporting to diags.
func New(toks *token.Stream, diags *diag.Context) *Parser {
	return &Parser{toks: toks, cur: 0, diags: diags}
}

// Parse consumes the full token stream and returns the program's top-level
// block, plus a witness if any diagnostic was emitted.
func Parse(toks *token.Stream, diags *diag.Context) (*ast.Block, diag.Witness, bool) {
	p := New(toks, diags)
	start := p.peek().Span
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.atEOF() {
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
	}
	block := ast.NewBlock(start.Join(p.lastSpan()), stmts)
	w, ok := diags.Witness()
	return block, w, ok
}

// --- cursor helpers -----------------------------------------------------

func (p *Parser) peek() token.Token    { return p.toks.At(p.cur) }
func (p *Parser) peekKind() token.Kind { return p.peek().Kind }
func (p *Parser) atEOF() bool          { return p.peekKind() == token.EOF }

// lastSpan returns the span of the token just before the cursor, used to
// close out a span that runs up to (but not including) the current token.
func (p *Parser) lastSpan() source.Span {
	if p.cur == 0 {
		return p.peek().Span
	}
	return p.toks.At(p.cur - 1).Span
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.cur = p.toks.Next(p.cur)
	}
	return t
}

// advanceStrict advances without skipping newlines, used where a newline is
// syntactically significant (statement terminators).
func (p *Parser) advanceStrict() token.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.cur = p.toks.NextStrict(p.cur)
	}
	return t
}

func (p *Parser) skipNewlines() {
	for p.toks.At(p.cur).Kind == token.Newline {
		p.advanceStrict()
	}
}

func (p *Parser) check(k token.Kind) bool { return p.peekKind() == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, what string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	tok := p.peek()
	p.diags.Errorf(tok.Span, "UnexpectedToken", "expected %s, found %q", what, p.toks.Slice(p.cur))
	return tok
}

// checkpoint/restore support the speculative parses spec.md §4.2 requires.
func (p *Parser) checkpoint() token.Cursor { return p.cur }
func (p *Parser) restore(c token.Cursor)   { p.cur = c }

// isStmtBoundary reports whether the current token ends a statement
// (spec.md §4.2: "Statements end at newline, ;, }, or EOF").
func (p *Parser) isStmtBoundary() bool {
	switch p.peekKind() {
	case token.Newline, token.Semi, token.RBrace, token.EOF:
		return true
	}
	return false
}

// consumeStmtEnd consumes a trailing `;` if present, and the statement's
// terminating newline, without consuming `}` or EOF.
func (p *Parser) consumeStmtEnd() {
	p.match(token.Semi)
	for p.toks.At(p.cur).Kind == token.Newline {
		p.advanceStrict()
	}
}

// recoverToStmtBoundary advances past tokens until a statement boundary is
// reached. Nothing calls it: after a statement fails to parse, parsing
// resumes at whatever token the failing production stopped on.
func (p *Parser) recoverToStmtBoundary() {
	for !p.isStmtBoundary() {
		p.advance()
	}
	p.consumeStmtEnd()
}
