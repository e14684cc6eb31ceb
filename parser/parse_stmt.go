package parser

import (
	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/token"
)

var compoundAssignOps = map[token.Kind]ast.CompoundOp{
	token.PlusEq: ast.CAdd, token.MinusEq: ast.CSub, token.StarEq: ast.CMul,
	token.SlashEq: ast.CDiv, token.PercentEq: ast.CMod, token.StarStarEq: ast.CPow,
}

// parseStatement parses one statement, handling the optional `->` arrow
// prefix (spec.md §4.3, §5) before dispatching on the leading keyword.
func (p *Parser) parseStatement() ast.Stmt {
	start := p.peek().Span

	if p.check(token.Arrow) {
		p.advance()
		inner := p.parseStatement()
		return ast.NewArrowStmt(start.Join(inner.Span()), inner)
	}

	switch p.peekKind() {
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		p.advance()
		s := ast.NewBreakStmt(start)
		p.consumeStmtEnd()
		return s
	case token.KwContinue:
		p.advance()
		s := ast.NewContinueStmt(start)
		p.consumeStmtEnd()
		return s
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.KwType:
		return p.parseTypeDefStmt()
	case token.KwUnsafe:
		return p.parseUnsafeBlockStmt()
	}

	if stmt := p.tryParseAssignStmt(); stmt != nil {
		return stmt
	}

	expr := p.parseExpr()
	s := ast.NewExprStmt(start.Join(expr.Span()), expr)
	p.consumeStmtEnd()
	return s
}

// tryParseAssignStmt speculatively parses a pattern and commits to an
// assignment or compound-assign statement only if it is immediately
// followed by `=` or a compound-assign operator. Diagnostics from a failed
// speculative parse are discarded (spec.md §4.2).
func (p *Parser) tryParseAssignStmt() ast.Stmt {
	switch p.peekKind() {
	case token.Underscore, token.Ident, token.KwMut, token.KwLet, token.Amp,
		token.LBracket, token.LBrace, token.TypeSigil, token.Question:
	default:
		return nil
	}

	save := p.checkpoint()
	savedDiags := p.diags
	scratch := diag.NewContext(nil)
	p.diags = scratch
	pat := p.parsePattern()
	p.diags = savedDiags

	if scratch.HasErrors() {
		p.restore(save)
		return nil
	}

	if cop, ok := compoundAssignOps[p.peekKind()]; ok {
		p.advance()
		rhs := p.parseExpr()
		p.checkSelfMutTarget(pat)
		stmt := ast.NewCompoundAssignStmt(pat.Span().Join(rhs.Span()), pat, cop, rhs)
		p.consumeStmtEnd()
		return stmt
	}
	if p.check(token.Assign) {
		p.advance()
		rhs := p.parseExpr()
		p.checkSelfMutTarget(pat)
		stmt := ast.NewAssignStmt(pat.Span().Join(rhs.Span()), pat, rhs)
		p.consumeStmtEnd()
		return stmt
	}

	p.restore(save)
	return nil
}

// checkSelfMutTarget reports, but does not abort on, `mut self = ...`: self
// is a fixed binding and cannot be redeclared.
func (p *Parser) checkSelfMutTarget(pat ast.Pattern) {
	mb, ok := pat.(*ast.MutBinderPattern)
	if !ok {
		return
	}
	pp, ok := mb.Inner.(*ast.PathPattern)
	if ok && pp.Name == "self" && len(pp.Segments) == 0 {
		p.diags.Errorf(pat.Span(), "InvalidSelfBinding", "'self' cannot be declared with 'mut'")
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(token.LBrace, "'{'").Span
	p.skipNewlines()
	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.atEOF() {
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
	}
	end := p.expect(token.RBrace, "'}'").Span
	return ast.NewBlock(start.Join(end), stmts)
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // if
	cond := p.parseExpr()
	body := p.parseBlock()
	branches := []ast.IfBranch{{Cond: cond, Body: body}}

	var els *ast.Block
	for p.check(token.KwElse) {
		p.advance()
		if p.match(token.KwIf) {
			c := p.parseExpr()
			b := p.parseBlock()
			branches = append(branches, ast.IfBranch{Cond: c, Body: b})
			continue
		}
		els = p.parseBlock()
		break
	}
	return ast.NewIfStmt(start.Join(p.lastSpan()), branches, els)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // while
	cond := p.parseExpr()
	body := p.parseBlock()
	return ast.NewWhileStmt(start.Join(body.Span()), cond, body)
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // for
	pat := p.parsePattern()
	p.expect(token.KwIn, "'in'")
	iter := p.parseExpr()
	body := p.parseBlock()
	return ast.NewForStmt(start.Join(body.Span()), pat, iter, body)
}

func (p *Parser) parseTryStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // try
	body := p.parseBlock()
	p.expect(token.KwCatch, "'catch'")
	var pat ast.Pattern
	if !p.check(token.LBrace) {
		pat = p.parsePattern()
	}
	catchBody := p.parseBlock()
	return ast.NewTryStmt(start.Join(catchBody.Span()), body, ast.CatchClause{Pat: pat, Body: catchBody})
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // return
	if p.isStmtBoundary() {
		s := ast.NewReturnStmt(start, nil)
		p.consumeStmtEnd()
		return s
	}
	value := p.parseExpr()
	s := ast.NewReturnStmt(start.Join(value.Span()), value)
	p.consumeStmtEnd()
	return s
}

func (p *Parser) parseThrowStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // throw
	value := p.parseExpr()
	s := ast.NewThrowStmt(start.Join(value.Span()), value)
	p.consumeStmtEnd()
	return s
}

func (p *Parser) parseTypeDefStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // type
	nameTok := p.expect(token.Ident, "type name")
	p.expect(token.LBrace, "'{'")
	p.skipNewlines()
	var fields []string
	for !p.check(token.RBrace) && !p.atEOF() {
		f := p.expect(token.Ident, "field name")
		fields = append(fields, p.textOf(f.Span))
		if !p.match(token.Comma) {
			p.skipNewlines()
		}
		p.skipNewlines()
	}
	end := p.expect(token.RBrace, "'}'").Span
	s := ast.NewTypeDefStmt(start.Join(end), p.textOf(nameTok.Span), fields)
	p.consumeStmtEnd()
	return s
}

func (p *Parser) parseUnsafeBlockStmt() ast.Stmt {
	start := p.peek().Span
	p.advance() // unsafe
	body := p.parseBlock()
	return ast.NewUnsafeBlockStmt(start.Join(body.Span()), body)
}
