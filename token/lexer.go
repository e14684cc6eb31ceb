package token

import (
	"strings"

	"github.com/triggerlang/core/source"
)

// Lex scans text (registered under id) into a flat [Stream]. Scanning never
// fails: unrecognisable input becomes [Unknown] tokens, which the parser is
// responsible for turning into diagnostics (spec.md §4.1).
func Lex(id source.ID, text string) *Stream {
	l := &lexer{id: id, text: text}
	l.run()
	return &Stream{SourceID: id, Text: text, tokens: l.tokens}
}

type lexer struct {
	id     source.ID
	text   string
	cursor int
	tokens []Token
}

func (l *lexer) done() bool { return l.cursor >= len(l.text) }

func (l *lexer) peek() byte {
	if l.done() {
		return 0
	}
	return l.text[l.cursor]
}

func (l *lexer) peekAt(offset int) byte {
	i := l.cursor + offset
	if i >= len(l.text) {
		return 0
	}
	return l.text[i]
}

func (l *lexer) pop() byte {
	c := l.peek()
	if !l.done() {
		l.cursor++
	}
	return c
}

func (l *lexer) takeWhile(f func(byte) bool) string {
	start := l.cursor
	for !l.done() && f(l.peek()) {
		l.cursor++
	}
	return l.text[start:l.cursor]
}

func (l *lexer) push(kind Kind, start int) {
	l.tokens = append(l.tokens, Token{
		Kind: kind,
		Span: source.Span{ID: l.id, Start: start, End: l.cursor},
	})
}

func (l *lexer) run() {
	for {
		l.skipWhitespaceAndComments()
		if l.done() {
			l.push(EOF, l.cursor)
			return
		}

		start := l.cursor
		c := l.peek()

		switch {
		case c == '\n':
			l.cursor++
			l.push(Newline, start)
		case isDigit(c):
			l.lexNumberOrDomainID(start)
		case c == '?':
			l.lexQuestion(start)
		case isIdentStart(c):
			l.lexIdentOrDomainID(start)
		case c == '@':
			l.cursor++
			l.takeWhile(isIdentCont)
			l.push(TypeSigil, start)
		default:
			l.lexOperator(start)
		}
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.done() {
		switch l.peek() {
		case ' ', '\t', '\r', '\f':
			l.cursor++
		case '/':
			if l.peekAt(1) == '/' {
				for !l.done() && l.peek() != '\n' {
					l.cursor++
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

// lexNumberOrDomainID handles decimal/hex/octal/binary integers, floats, and
// domain id literals like "12g" (spec.md §4.1).
func (l *lexer) lexNumberOrDomainID(start int) {
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.cursor += 2
		l.takeWhile(isHexDigit)
		l.push(Int, start)
		return
	}
	if l.peek() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		l.cursor += 2
		l.takeWhile(isOctalDigit)
		l.push(Int, start)
		return
	}
	if l.peek() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.cursor += 2
		l.takeWhile(isBinaryDigit)
		l.push(Int, start)
		return
	}

	l.takeWhile(isDigit)

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.cursor++
		l.takeWhile(isDigit)
		l.push(Float, start)
		return
	}

	// Domain id: digits followed by one class letter, or "ch".
	if l.peek() == 'c' && l.peekAt(1) == 'h' && !isIdentCont(l.peekAt(2)) {
		l.cursor += 2
		l.push(DomainID, start)
		return
	}
	if domainClasses[l.peek()] && !isIdentCont(l.peekAt(1)) {
		l.cursor++
		l.push(DomainID, start)
		return
	}

	l.push(Int, start)
}

// lexQuestion handles plain "?" (ternary-else marker, maybe-pattern, etc.)
// versus "?" followed directly by a domain class letter, the
// arbitrary-class wildcard domain id spec.md §4.1 describes.
func (l *lexer) lexQuestion(start int) {
	l.cursor++ // consume '?'
	if l.peek() == 'c' && l.peekAt(1) == 'h' && !isIdentCont(l.peekAt(2)) {
		l.cursor += 2
		l.push(DomainID, start)
		return
	}
	if domainClasses[l.peek()] && !isIdentCont(l.peekAt(1)) {
		l.cursor++
		l.push(DomainID, start)
		return
	}
	l.push(Question, start)
}

func (l *lexer) lexIdentOrDomainID(start int) {
	text := l.takeWhile(isIdentCont)
	if text == "_" {
		l.push(Underscore, start)
		return
	}
	if kw, ok := keywords[text]; ok {
		l.push(kw, start)
		return
	}
	l.push(Ident, start)
}

// lexOperator handles punctuation and operators, preferring the longest
// match (spec.md §4.1's "standard two-character variants").
func (l *lexer) lexOperator(start int) {
	rest := l.text[l.cursor:]

	for _, op := range threeCharOps {
		if strings.HasPrefix(rest, op.text) {
			l.cursor += len(op.text)
			l.push(op.kind, start)
			return
		}
	}
	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op.text) {
			l.cursor += len(op.text)
			l.push(op.kind, start)
			return
		}
	}
	if kind, ok := oneCharOps[rest[0]]; ok {
		l.cursor++
		l.push(kind, start)
		return
	}

	// Unrecognisable byte: emit Unknown and make progress so the lexer
	// cannot spin forever (spec.md §4.1 Failure modes).
	l.cursor++
	l.push(Unknown, start)
}

type opEntry struct {
	text string
	kind Kind
}

var threeCharOps = []opEntry{
	{"**=", StarStarEq},
	{"...", Ellipsis},
}

var twoCharOps = []opEntry{
	{"==", EqEq}, {"!=", NotEq}, {"<=", LtEq}, {">=", GtEq},
	{"&&", AndAnd}, {"||", OrOr}, {"**", StarStar},
	{"+=", PlusEq}, {"-=", MinusEq}, {"*=", StarEq}, {"/=", SlashEq},
	{"%=", PercentEq}, {"->", Arrow}, {"=>", FatArrow},
	{"::", ColonColon}, {"..", DotDot}, {"!{", BangBrace},
}

var oneCharOps = map[byte]Kind{
	'(': LParen, ')': RParen, '{': LBrace, '}': RBrace,
	'[': LBracket, ']': RBracket, ',': Comma, '.': Dot, ':': Colon,
	';': Semi, '!': Bang,
	'+': Plus, '-': Minus, '*': Star, '/': Slash, '%': Percent,
	'=': Assign, '<': Lt, '>': Gt, '&': Amp, '|': Pipe,
}
