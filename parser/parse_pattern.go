package parser

import (
	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/token"
)

// parsePattern parses a full pattern, spec.md §4.2's precedence table from
// loosest to tightest: trailing guard, `|`, `:`/`&`, postfix array-shape,
// primary.
func (p *Parser) parsePattern() ast.Pattern {
	pat := p.parsePatternEither()
	if p.match(token.KwIf) {
		guard := p.parseExpr()
		return ast.NewGuardPattern(pat.Span().Join(guard.Span()), pat, guard)
	}
	return pat
}

func (p *Parser) parsePatternEither() ast.Pattern {
	left := p.parsePatternBoth()
	for p.check(token.Pipe) {
		p.advance()
		right := p.parsePatternBoth()
		left = ast.NewEitherPattern(left.Span().Join(right.Span()), left, right)
	}
	return left
}

func (p *Parser) parsePatternBoth() ast.Pattern {
	left := p.parsePatternPostfix()
	for p.check(token.Amp) || p.check(token.Colon) {
		p.advance()
		right := p.parsePatternPostfix()
		left = ast.NewBothPattern(left.Span().Join(right.Span()), left, right)
	}
	return left
}

func (p *Parser) parsePatternPostfix() ast.Pattern {
	pat := p.parsePatternPrimary()
	for p.check(token.LBracket) {
		p.advance()
		elem := p.parsePattern()
		end := p.expect(token.RBracket, "']'").Span
		pat = ast.NewArrayShapePattern(pat.Span().Join(end), pat, elem)
	}
	return pat
}

var compareTokOps = map[token.Kind]ast.CompareOp{
	token.EqEq: ast.PEq, token.NotEq: ast.PNe,
	token.Lt: ast.PLt, token.LtEq: ast.PLe,
	token.Gt: ast.PGt, token.GtEq: ast.PGe,
	token.KwIn: ast.PIn,
}

func (p *Parser) parsePatternPrimary() ast.Pattern {
	tok := p.peek()

	if op, ok := compareTokOps[tok.Kind]; ok {
		p.advance()
		value := p.parseAdd()
		return ast.NewComparePattern(tok.Span.Join(value.Span()), op, value)
	}

	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return ast.NewWildcardPattern(tok.Span)
	case token.TypeSigil:
		p.advance()
		return ast.NewTypeTestPattern(tok.Span, p.textOf(tok.Span)[1:])
	case token.Amp:
		p.advance()
		inner := p.parsePatternPrimary()
		return ast.NewRefBinderPattern(tok.Span.Join(inner.Span()), inner)
	case token.KwMut:
		p.advance()
		inner := p.parsePatternPrimary()
		return ast.NewMutBinderPattern(tok.Span.Join(inner.Span()), inner)
	case token.Question:
		p.advance()
		inner := p.parsePatternPrimary()
		return ast.NewMaybeDestructurePattern(tok.Span.Join(inner.Span()), inner)
	case token.LBracket:
		return p.parseArrayDestructurePattern()
	case token.LBrace:
		return p.parseDictDestructurePattern()
	case token.LParen:
		return p.parseParenPattern()
	case token.Ident, token.KwSelf:
		return p.parsePathOrInstancePattern()
	default:
		p.diags.Errorf(tok.Span, "UnexpectedToken", "expected a pattern, found %q", p.toks.Slice(p.cur))
		p.advance()
		return ast.NewWildcardPattern(tok.Span)
	}
}

func (p *Parser) parseParenPattern() ast.Pattern {
	start := p.peek().Span
	p.advance() // (
	if p.check(token.RParen) {
		end := p.advance().Span
		return ast.NewEmptyPattern(start.Join(end))
	}
	inner := p.parsePattern()
	p.expect(token.RParen, "')'")
	return inner
}

func (p *Parser) parseArrayDestructurePattern() ast.Pattern {
	start := p.peek().Span
	p.advance() // [
	var elems []ast.Pattern
	var rest ast.Pattern
	for !p.check(token.RBracket) && !p.atEOF() {
		if p.check(token.Ellipsis) {
			p.advance()
			rest = p.parsePattern()
			break
		}
		elems = append(elems, p.parsePattern())
		if !p.match(token.Comma) {
			break
		}
	}
	end := p.expect(token.RBracket, "']'").Span
	return ast.NewArrayDestructurePattern(start.Join(end), elems, rest)
}

func (p *Parser) parseDictFields() []ast.DictFieldPattern {
	p.advance() // {
	var fields []ast.DictFieldPattern
	for !p.check(token.RBrace) && !p.atEOF() {
		nameTok := p.expect(token.Ident, "field name")
		p.expect(token.Colon, "':'")
		pat := p.parsePattern()
		fields = append(fields, ast.DictFieldPattern{Key: p.textOf(nameTok.Span), Pat: pat})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "'}'")
	return fields
}

func (p *Parser) parseDictDestructurePattern() ast.Pattern {
	start := p.peek().Span
	fields := p.parseDictFields()
	return ast.NewDictDestructurePattern(start.Join(p.lastSpan()), fields)
}

// parsePathOrInstancePattern handles a leading identifier: either a path
// pattern (`name.field[idx]::assoc`) or an instance destructure
// (`TypeName::{ field: pattern }`).
func (p *Parser) parsePathOrInstancePattern() ast.Pattern {
	nameTok := p.advance()
	name := p.textOf(nameTok.Span)

	if p.check(token.ColonColon) {
		save := p.checkpoint()
		p.advance()
		if p.check(token.LBrace) {
			fields := p.parseDictFields()
			return ast.NewInstanceDestructurePattern(nameTok.Span.Join(p.lastSpan()), name, fields)
		}
		p.restore(save)
	}

	var segs []ast.PathSegment
	for {
		switch p.peekKind() {
		case token.Dot:
			p.advance()
			field := p.expect(token.Ident, "field name")
			segs = append(segs, ast.PathSegment{Kind: ast.PathField, Name: p.textOf(field.Span)})
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket, "']'")
			segs = append(segs, ast.PathSegment{Kind: ast.PathIndex, Index: idx})
		case token.ColonColon:
			p.advance()
			assoc := p.expect(token.Ident, "associated name")
			segs = append(segs, ast.PathSegment{Kind: ast.PathAssoc, Name: p.textOf(assoc.Span)})
		default:
			return ast.NewPathPattern(nameTok.Span.Join(p.lastSpan()), name, segs)
		}
	}
}
