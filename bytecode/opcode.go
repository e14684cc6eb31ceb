// Package bytecode defines the linear, per-function opcode vector spec.md
// §3 describes, plus the constant pool, call-expression pool, and the
// Disassemble debug-listing routine spec.md §6.3 names.
package bytecode

import "fmt"

// Op is the fixed opcode enum spec.md §3 lists. Every variant's operand fits
// in the 4-byte Operand field of [Instr].
type Op uint8

const (
	Nop Op = iota

	Add
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Not
	Neg

	LoadConst // operand: constant pool index
	LoadVar   // operand: local slot
	SetVar    // operand: local slot
	ChangeVarKey // operand: local slot

	PopTop
	MakeArray // operand: element count

	Jump         // operand: resolved instruction position
	JumpIfFalse  // operand: resolved instruction position
	JumpIfTrue   // operand: resolved instruction position
	EnterArrowStatement // operand: resolved instruction position
	YeetContext

	MismatchThrowIfFalse

	MakeMacro // operand: function id
	Call      // operand: call-expression pool index
	Return

	Dbg
)

var opNames = map[Op]string{
	Nop: "Nop",
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Mod: "Mod", Pow: "Pow",
	Eq: "Eq", Ne: "Ne", Lt: "Lt", Le: "Le", Gt: "Gt", Ge: "Ge",
	And: "And", Or: "Or", Not: "Not", Neg: "Neg",
	LoadConst: "LoadConst", LoadVar: "LoadVar", SetVar: "SetVar",
	ChangeVarKey: "ChangeVarKey",
	PopTop:       "PopTop", MakeArray: "MakeArray",
	Jump: "Jump", JumpIfFalse: "JumpIfFalse", JumpIfTrue: "JumpIfTrue",
	EnterArrowStatement:   "EnterArrowStatement",
	YeetContext:           "YeetContext",
	MismatchThrowIfFalse:  "MismatchThrowIfFalse",
	MakeMacro:             "MakeMacro",
	Call:                  "Call",
	Return:                "Return",
	Dbg:                   "Dbg",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// HasOperand reports whether this opcode carries a meaningful Operand.
func (o Op) HasOperand() bool {
	switch o {
	case LoadConst, LoadVar, SetVar, ChangeVarKey, MakeArray,
		Jump, JumpIfFalse, JumpIfTrue, EnterArrowStatement,
		MakeMacro, Call:
		return true
	}
	return false
}

// IsJump reports whether this opcode's Operand is a resolved instruction
// position rather than some other kind of index.
func (o Op) IsJump() bool {
	switch o {
	case Jump, JumpIfFalse, JumpIfTrue, EnterArrowStatement:
		return true
	}
	return false
}
