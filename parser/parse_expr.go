package parser

import (
	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
)

// parseExpr parses a full expression at the lowest precedence, including
// the `e if c else e` ternary-else postfix form (spec.md §4.2).
func (p *Parser) parseExpr() ast.Expr {
	then := p.parseOr()
	if p.match(token.KwIf) {
		cond := p.parseOr()
		p.expect(token.KwElse, "'else'")
		els := p.parseExpr()
		return ast.NewTernaryExpr(then.Span().Join(els.Span()), then, cond, els)
	}
	return then
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.check(token.OrOr) {
		p.advance()
		right := p.parseAnd()
		left = ast.NewBinaryExpr(left.Span().Join(right.Span()), ast.OpOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseCompare()
	for p.check(token.AndAnd) {
		p.advance()
		right := p.parseCompare()
		left = ast.NewBinaryExpr(left.Span().Join(right.Span()), ast.OpAnd, left, right)
	}
	return left
}

var compareOps = map[token.Kind]ast.BinOp{
	token.EqEq: ast.OpEq, token.NotEq: ast.OpNe,
	token.Lt: ast.OpLt, token.LtEq: ast.OpLe,
	token.Gt: ast.OpGt, token.GtEq: ast.OpGe,
	token.KwIn: ast.OpIn,
}

func (p *Parser) parseCompare() ast.Expr {
	left := p.parseAdd()
	for {
		if op, ok := compareOps[p.peekKind()]; ok {
			p.advance()
			right := p.parseAdd()
			left = ast.NewBinaryExpr(left.Span().Join(right.Span()), op, left, right)
			continue
		}
		if p.check(token.KwIs) {
			p.advance()
			pat := p.parsePattern()
			left = ast.NewIsExpr(left.Span().Join(pat.Span()), left, pat)
			continue
		}
		break
	}
	return left
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseMul()
	for p.check(token.Plus) || p.check(token.Minus) {
		op := ast.OpAdd
		if p.peekKind() == token.Minus {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMul()
		left = ast.NewBinaryExpr(left.Span().Join(right.Span()), op, left, right)
	}
	return left
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parsePow()
	for {
		var op ast.BinOp
		switch p.peekKind() {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		case token.Percent:
			op = ast.OpMod
		default:
			return left
		}
		p.advance()
		right := p.parsePow()
		left = ast.NewBinaryExpr(left.Span().Join(right.Span()), op, left, right)
	}
}

// parsePow is right-associative: spec.md §4.2's precedence table marks `**`
// as right-assoc.
func (p *Parser) parsePow() ast.Expr {
	left := p.parseUnary()
	if p.check(token.StarStar) {
		p.advance()
		right := p.parsePow()
		return ast.NewBinaryExpr(left.Span().Join(right.Span()), ast.OpPow, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.peekKind() {
	case token.Bang:
		start := p.peek().Span
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(start.Join(operand.Span()), ast.OpNot, operand)
	case token.Minus:
		start := p.peek().Span
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(start.Join(operand.Span()), ast.OpNeg, operand)
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		// A `(` or `[` that starts a new line begins the next statement
		// rather than calling or indexing e.
		if (p.check(token.LParen) || p.check(token.LBracket)) && p.cur > 0 && p.toks.At(p.cur-1).Kind == token.Newline {
			return e
		}
		switch p.peekKind() {
		case token.LParen:
			e = p.finishCall(e)
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			end := p.expect(token.RBracket, "']'").Span
			e = ast.NewIndexExpr(e.Span().Join(end), e, idx)
		case token.Dot:
			p.advance()
			if p.check(token.TypeSigil) {
				end := p.peek().Span
				p.advance()
				e = ast.NewTypeMemberExpr(e.Span().Join(end), e)
				continue
			}
			nameTok := p.expect(token.Ident, "field name")
			e = ast.NewMemberExpr(e.Span().Join(nameTok.Span), e, p.textOf(nameTok.Span))
		case token.ColonColon:
			save := p.checkpoint()
			p.advance()
			if p.check(token.LBrace) {
				e = p.finishInstanceLit(e)
				continue
			}
			if !p.check(token.Ident) {
				p.restore(save)
				return e
			}
			nameTok := p.advance()
			e = ast.NewAssocExpr(e.Span().Join(nameTok.Span), e, p.textOf(nameTok.Span))
		case token.Question:
			end := p.peek().Span
			p.advance()
			e = ast.NewMaybeExpr(e.Span().Join(end), e)
		case token.Bang:
			end := p.peek().Span
			p.advance()
			e = ast.NewTriggerCallExpr(e.Span().Join(end), e)
		default:
			return e
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	p.advance() // (
	var args []ast.Expr
	for !p.check(token.RParen) && !p.atEOF() {
		args = append(args, p.parseExpr())
		if !p.match(token.Comma) {
			break
		}
	}
	end := p.expect(token.RParen, "')'").Span
	return ast.NewCallExpr(callee.Span().Join(end), callee, args)
}

func (p *Parser) finishInstanceLit(of ast.Expr) ast.Expr {
	p.advance() // {
	var fields []ast.FieldInit
	for !p.check(token.RBrace) && !p.atEOF() {
		nameTok := p.expect(token.Ident, "field name")
		p.expect(token.Colon, "':'")
		val := p.parseExpr()
		fields = append(fields, ast.FieldInit{Name: p.textOf(nameTok.Span), Value: val})
		if !p.match(token.Comma) {
			break
		}
	}
	end := p.expect(token.RBrace, "'}'").Span
	return ast.NewInstanceLit(of.Span().Join(end), of, fields)
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Int:
		p.advance()
		return ast.NewIntLit(tok.Span, p.textOf(tok.Span))
	case token.Float:
		p.advance()
		return ast.NewFloatLit(tok.Span, p.textOf(tok.Span))
	case token.True, token.False:
		p.advance()
		return ast.NewBoolLit(tok.Span, tok.Kind == token.True)
	case token.DomainID:
		p.advance()
		return ast.NewDomainIDLit(tok.Span, p.textOf(tok.Span))
	case token.Ident:
		p.advance()
		return ast.NewIdent(tok.Span, p.textOf(tok.Span))
	case token.KwSelf:
		p.advance()
		return ast.NewIdent(tok.Span, "self")
	case token.KwDbg:
		p.advance()
		operand := p.parseExpr()
		return ast.NewDbgExpr(tok.Span.Join(operand.Span()), operand)
	case token.LBracket:
		return p.parseArrayLit()
	case token.BangBrace:
		return p.parseTriggerLit()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.LParen:
		if p.looksLikeMacroLiteral() {
			return p.parseMacroLit()
		}
		return p.parseGrouped()
	default:
		p.diags.Errorf(tok.Span, "UnexpectedToken", "expected an expression, found %q", p.toks.Slice(p.cur))
		p.advance()
		return ast.NewEmptyExpr(tok.Span)
	}
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.peek().Span
	p.advance() // [
	var elems []ast.Expr
	for !p.check(token.RBracket) && !p.atEOF() {
		elems = append(elems, p.parseExpr())
		if !p.match(token.Comma) {
			break
		}
	}
	end := p.expect(token.RBracket, "']'").Span
	return ast.NewArrayLit(start.Join(end), elems)
}

func (p *Parser) parseGrouped() ast.Expr {
	p.advance() // (
	e := p.parseExpr()
	p.expect(token.RParen, "')'")
	return e
}

// looksLikeMacroLiteral implements spec.md §4.2's grouping/macro-literal
// disambiguation: scan to the matching close paren and peek the following
// token.
func (p *Parser) looksLikeMacroLiteral() bool {
	save := p.cur
	defer func() { p.cur = save }()

	p.advance() // (
	depth := 1
	for depth > 0 && !p.atEOF() {
		switch p.peekKind() {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		p.advance()
	}
	switch p.peekKind() {
	case token.Arrow, token.FatArrow, token.LBrace:
		return true
	default:
		return false
	}
}

func (p *Parser) parseMacroLit() ast.Expr {
	start := p.peek().Span
	p.advance() // (
	var params []ast.Pattern
	for !p.check(token.RParen) && !p.atEOF() {
		params = append(params, p.parsePattern())
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "')'")

	if p.match(token.Arrow) {
		retPat := p.parsePattern()
		p.expect(token.FatArrow, "'=>'")
		body := p.parseExpr()
		return ast.NewMacroLit(start.Join(body.Span()), params, retPat, nil, body)
	}
	if p.match(token.FatArrow) {
		body := p.parseExpr()
		return ast.NewMacroLit(start.Join(body.Span()), params, nil, nil, body)
	}
	if p.check(token.LBrace) {
		body := p.parseBlock()
		return ast.NewMacroLit(start.Join(body.Span()), params, nil, body, nil)
	}
	p.diags.Errorf(p.peek().Span, "MalformedMacroLiteral", "expected '=>' or '{' to start a macro body")
	return ast.NewMacroLit(start, params, nil, nil, nil)
}

func (p *Parser) parseTriggerLit() ast.Expr {
	start := p.peek().Span
	p.advance() // !{
	var stmts []ast.Stmt
	bodyStart := p.peek().Span
	p.skipNewlines()
	for !p.check(token.RBrace) && !p.atEOF() {
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
	}
	end := p.expect(token.RBrace, "'}'").Span
	body := ast.NewBlock(bodyStart.Join(end), stmts)
	return ast.NewTriggerLit(start.Join(end), body)
}

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.peek().Span
	p.advance() // match
	scrutinee := p.parseExpr()
	p.expect(token.LBrace, "'{'")
	p.skipNewlines()
	var arms []ast.MatchArm
	for !p.check(token.RBrace) && !p.atEOF() {
		pat := p.parsePattern()
		p.expect(token.FatArrow, "'=>'")
		body := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pat: pat, Body: body})
		if !p.match(token.Comma) {
			p.skipNewlines()
		}
		p.skipNewlines()
	}
	end := p.expect(token.RBrace, "'}'").Span
	return ast.NewMatchExpr(start.Join(end), scrutinee, arms)
}

// textOf returns the source text a span covers.
func (p *Parser) textOf(sp source.Span) string {
	return p.toks.Text[sp.Start:sp.End]
}
