// Package token defines the lexical token kinds spec.md §3/§4.1 describes
// and the hand-written lexer that produces a flat stream of them.
package token

import "fmt"

// Kind identifies the lexical category of a [Token]. Tokens carry no
// payload (spec.md §3); the source text they cover is recovered from their
// span.
type Kind byte

const (
	// Unknown is returned for any unrecognisable character or unterminated
	// construct; the lexer does not itself emit a diagnostic for it
	// (spec.md §4.1 "Failure modes").
	Unknown Kind = iota
	EOF
	Newline

	Ident
	TypeSigil // @Name
	Int       // decimal, 0x, 0o, 0b
	Float
	DomainID // 12g, ?c, 7ch, ...
	True
	False

	// Keywords.
	KwIf
	KwElse
	KwWhile
	KwFor
	KwMatch
	KwLet
	KwMut
	KwReturn
	KwBreak
	KwContinue
	KwImport
	KwExtract
	KwType
	KwUnsafe
	KwTry
	KwCatch
	KwThrow
	KwDbg
	KwIn
	KwIs
	KwSelf
	Underscore // _

	// Punctuation/operators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Colon
	ColonColon // ::
	Semi
	Question    // ?
	QuestionLit // ? prefix before a domain-id class letter
	Bang        // !
	BangBrace   // !{
	Arrow       // ->
	FatArrow    // =>
	DotDot      // ..
	Ellipsis    // ...

	Plus
	Minus
	Star
	Slash
	Percent
	StarStar // **

	Assign
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	StarStarEq

	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Amp  // &
	Pipe // |
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token.Kind(%d)", int(k))
}

var kindNames = map[Kind]string{
	Unknown: "Unknown", EOF: "EOF", Newline: "Newline",
	Ident: "Ident", TypeSigil: "TypeSigil", Int: "Int", Float: "Float",
	DomainID: "DomainID", True: "True", False: "False",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwMatch: "match",
	KwLet: "let", KwMut: "mut", KwReturn: "return", KwBreak: "break",
	KwContinue: "continue", KwImport: "import", KwExtract: "extract",
	KwType: "type", KwUnsafe: "unsafe", KwTry: "try", KwCatch: "catch",
	KwThrow: "throw", KwDbg: "dbg", KwIn: "in", KwIs: "is", KwSelf: "self",
	Underscore: "_",
	LParen:     "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Dot: ".", Colon: ":",
	ColonColon: "::", Semi: ";", Question: "?", QuestionLit: "?",
	Bang: "!", BangBrace: "!{", Arrow: "->", FatArrow: "=>",
	DotDot: "..", Ellipsis: "...",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	Assign: "=", PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=",
	PercentEq: "%=", StarStarEq: "**=",
	EqEq: "==", NotEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	AndAnd: "&&", OrOr: "||", Amp: "&", Pipe: "|",
}

// keywords maps reserved identifier text to its keyword Kind. spec.md §4.1
// lists `let`/`mut` as "only one; a parser diagnostic selects" — both are
// lexed as keywords; the parser decides whether seeing `let` is itself an
// error.
var keywords = map[string]Kind{
	"true": True, "false": False,
	"if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor,
	"match": KwMatch, "let": KwLet, "mut": KwMut, "return": KwReturn,
	"break": KwBreak, "continue": KwContinue, "import": KwImport,
	"extract": KwExtract, "type": KwType, "unsafe": KwUnsafe,
	"try": KwTry, "catch": KwCatch, "throw": KwThrow, "dbg": KwDbg,
	"in": KwIn, "is": KwIs, "self": KwSelf,
}

// domainClasses is the set of single-letter trigger-object class markers
// spec.md §4.1 names; the two-letter "ch" class is matched separately by
// the lexer.
var domainClasses = map[byte]bool{
	'g': true, 'c': true, 'i': true, 'b': true, 't': true, 'e': true, 'm': true,
}
