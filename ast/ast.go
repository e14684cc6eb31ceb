// Package ast defines the three spanned node families spec.md §3 names:
// expressions, statements, and patterns. Each family is modelled as a Go
// interface with one concrete type per tagged-union variant, the way the
// teacher's parser packages model their syntax trees (many small node
// types implementing a common Node interface) rather than as a single
// struct with an everything-field kind tag.
package ast

import "github.com/triggerlang/core/source"

// Node is implemented by every expression, statement, and pattern node.
type Node interface {
	Span() source.Span
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is any pattern node. Patterns double as binding forms: a Pattern
// appearing on the left of an assignment or as a macro argument both tests
// and binds (spec.md §3).
type Pattern interface {
	Node
	patternNode()
}

// base carries the span every node has; embedded into each concrete node.
type base struct {
	Sp source.Span
}

func (b base) Span() source.Span { return b.Sp }

// ---- Expressions -----------------------------------------------------

type IntLit struct {
	base
	Text string // raw lexeme; base/sign resolved by the compiler
}

type FloatLit struct {
	base
	Text string
}

type BoolLit struct {
	base
	Value bool
}

// DomainIDLit is a trigger-object id literal like 12g or ?c (spec.md §4.1).
type DomainIDLit struct {
	base
	Text string
}

// Ident is a variable reference.
type Ident struct {
	base
	Name string
}

type ArrayLit struct {
	base
	Elems []Expr
}

// BinOp enumerates binary operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpIn
)

type BinaryExpr struct {
	base
	Op          BinOp
	Left, Right Expr
}

// UnOp enumerates unary operators.
type UnOp int

const (
	OpNeg UnOp = iota // unary -
	OpNot             // !
)

type UnaryExpr struct {
	base
	Op      UnOp
	Operand Expr
}

type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

// MacroLit is a first-class closure literal: `(args) { body }` or
// `(args) -> ret_pat => expr` (spec.md §3/§4.2).
type MacroLit struct {
	base
	Params  []Pattern
	RetPat  Pattern // nil if absent
	Body    *Block  // non-nil when the body is `{ ... }`
	ExprBdy Expr    // non-nil when the body is `=> expr`
}

// TriggerLit is a `!{ ... }` trigger-function literal: a macro literal whose
// body only executes under a distinct context group identity
// (spec.md GLOSSARY).
type TriggerLit struct {
	base
	Body *Block
}

type TernaryExpr struct {
	base
	Then, Cond, Else Expr
}

type TypeofExpr struct {
	base
	Operand Expr
}

type MemberExpr struct {
	base
	Target Expr
	Name   string
}

// TypeMemberExpr is `e.@type`.
type TypeMemberExpr struct {
	base
	Target Expr
}

type AssocExpr struct {
	base
	Target Expr
	Name   string
}

type IndexExpr struct {
	base
	Target, Index Expr
}

type DbgExpr struct {
	base
	Operand Expr
}

// MaybeExpr is postfix `e?`.
type MaybeExpr struct {
	base
	Operand Expr
}

// TriggerCallExpr is postfix `e!`: schedule a trigger function.
type TriggerCallExpr struct {
	base
	Operand Expr
}

// IsExpr is `e is pattern`.
type IsExpr struct {
	base
	Operand Expr
	Pat     Pattern
}

// InstanceLit is `Base::{ field: value, ... }`.
type InstanceLit struct {
	base
	Base   Expr
	Fields []FieldInit
}

type FieldInit struct {
	Name  string
	Value Expr
}

// EmptyExpr is the unit value.
type EmptyExpr struct{ base }

// MatchExpr is the match-expression primary form (spec.md §4.2).
type MatchExpr struct {
	base
	Scrutinee Expr
	Arms      []MatchArm
}

type MatchArm struct {
	Pat  Pattern
	Body Expr
}

func (*IntLit) exprNode()          {}
func (*FloatLit) exprNode()        {}
func (*BoolLit) exprNode()         {}
func (*DomainIDLit) exprNode()     {}
func (*Ident) exprNode()           {}
func (*ArrayLit) exprNode()        {}
func (*BinaryExpr) exprNode()      {}
func (*UnaryExpr) exprNode()       {}
func (*CallExpr) exprNode()        {}
func (*MacroLit) exprNode()        {}
func (*TriggerLit) exprNode()      {}
func (*TernaryExpr) exprNode()     {}
func (*TypeofExpr) exprNode()      {}
func (*MemberExpr) exprNode()      {}
func (*TypeMemberExpr) exprNode()  {}
func (*AssocExpr) exprNode()       {}
func (*IndexExpr) exprNode()       {}
func (*DbgExpr) exprNode()         {}
func (*MaybeExpr) exprNode()       {}
func (*TriggerCallExpr) exprNode() {}
func (*IsExpr) exprNode()          {}
func (*InstanceLit) exprNode()     {}
func (*EmptyExpr) exprNode()       {}
func (*MatchExpr) exprNode()       {}
