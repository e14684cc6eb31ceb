package compiler

import (
	"strconv"
	"strings"

	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/protobc"
)

var binOps = map[ast.BinOp]bytecode.Op{
	ast.OpAdd: bytecode.Add, ast.OpSub: bytecode.Sub, ast.OpMul: bytecode.Mul,
	ast.OpDiv: bytecode.Div, ast.OpMod: bytecode.Mod, ast.OpPow: bytecode.Pow,
	ast.OpEq: bytecode.Eq, ast.OpNe: bytecode.Ne,
	ast.OpLt: bytecode.Lt, ast.OpLe: bytecode.Le, ast.OpGt: bytecode.Gt, ast.OpGe: bytecode.Ge,
	ast.OpAnd: bytecode.And, ast.OpOr: bytecode.Or,
}

var unOps = map[ast.UnOp]bytecode.Op{
	ast.OpNeg: bytecode.Neg,
	ast.OpNot: bytecode.Not,
}

// compileExpr lowers e so that exactly one value is left on top of the
// operand stack, per spec.md §4.3's per-kind lowering rules. Constructs the
// opcode set has no representation for (member/index/associated access,
// typeof, maybe-wrap, instance literals — none of spec.md §3's runtime
// value kinds model a dict/instance) are diagnosed and compiled to an empty
// sentinel rather than miscompiled; see DESIGN.md.
func (c *Compiler) compileExpr(e ast.Expr) {
	fs := c.cur()
	switch x := e.(type) {
	case *ast.IntLit:
		n, err := strconv.ParseInt(strings.ReplaceAll(x.Text, "_", ""), 0, 64)
		if err != nil {
			c.diags.Errorf(x.Span(), "MalformedIntLiteral", "%v", err)
		}
		fs.b.Emit(bytecode.LoadConst, int32(c.constInt(n)), x.Span())

	case *ast.FloatLit:
		f, err := strconv.ParseFloat(x.Text, 64)
		if err != nil {
			c.diags.Errorf(x.Span(), "MalformedFloatLiteral", "%v", err)
		}
		fs.b.Emit(bytecode.LoadConst, int32(c.constFloat(f)), x.Span())

	case *ast.BoolLit:
		fs.b.Emit(bytecode.LoadConst, int32(c.constBool(x.Value)), x.Span())

	case *ast.DomainIDLit:
		// The runtime value model (spec.md §3) has no distinct domain-id
		// kind; the numeric prefix is compiled as an integer constant and
		// the trailing class letter is compile-time only in this
		// revision (see DESIGN.md).
		fs.b.Emit(bytecode.LoadConst, int32(c.constInt(domainIDNumericPart(x.Text))), x.Span())

	case *ast.EmptyExpr:
		fs.b.Emit(bytecode.LoadConst, int32(c.constEmpty()), x.Span())

	case *ast.Ident:
		slot, ok := c.resolveSlot(x.Name)
		if !ok {
			c.diags.Errorf(x.Span(), "NonexistentVariable", "undefined variable %q", x.Name)
			fs.b.Emit(bytecode.LoadConst, int32(c.constEmpty()), x.Span())
			return
		}
		fs.b.Emit(bytecode.LoadVar, int32(slot), x.Span())

	case *ast.ArrayLit:
		for _, elem := range x.Elems {
			c.compileExpr(elem)
		}
		fs.b.Emit(bytecode.MakeArray, int32(len(x.Elems)), x.Span())

	case *ast.BinaryExpr:
		op, ok := binOps[x.Op]
		if !ok {
			c.unsupportedExpr(x, "binary operator is reserved for future extension")
			return
		}
		c.compileExpr(x.Left)
		c.compileExpr(x.Right)
		fs.b.Emit(op, 0, x.Span())

	case *ast.UnaryExpr:
		op, ok := unOps[x.Op]
		if !ok {
			c.unsupportedExpr(x, "unary operator is reserved for future extension")
			return
		}
		c.compileExpr(x.Operand)
		fs.b.Emit(op, 0, x.Span())

	case *ast.CallExpr:
		c.compileExpr(x.Callee)
		argMutable := make([]bool, len(x.Args))
		for i, arg := range x.Args {
			c.compileExpr(arg)
			argMutable[i] = c.isMutablePathArg(arg)
		}
		callID := c.module.AddCallExpr(bytecode.CallExpr{ArgMutable: argMutable})
		fs.b.Emit(bytecode.Call, int32(callID), x.Span())

	case *ast.MacroLit:
		c.compileMacroLit(x.Params, x.Body, x.ExprBdy, x.Span())

	case *ast.TriggerLit:
		// Modelled as a zero-argument macro value plus side effects
		// (GLOSSARY: "a macro plus side-effects in this core").
		c.compileMacroLit(nil, x.Body, nil, x.Span())

	case *ast.TernaryExpr:
		c.compileTernary(x)

	case *ast.IsExpr:
		c.compileExpr(x.Operand)
		c.compilePattern(x.Pat)

	case *ast.DbgExpr:
		c.compileExpr(x.Operand)
		fs.b.Emit(bytecode.Dbg, 0, x.Span())

	case *ast.MatchExpr:
		c.compileMatch(x)

	default:
		c.unsupportedExpr(e, "expression kind is reserved for future extension")
	}
}

// unsupportedExpr diagnoses a construct the opcode set does not yet model
// and compiles it to the empty sentinel, keeping the "exactly one value
// left on the stack" contract intact.
func (c *Compiler) unsupportedExpr(e ast.Expr, msg string) {
	c.diags.Errorf(e.Span(), unsupportedTitle("Expr"), "%s", msg)
	c.cur().b.Emit(bytecode.LoadConst, int32(c.constEmpty()), e.Span())
}

// compileTernary lowers `then if cond else els`, the expression-valued
// analogue of the If statement rule: an outer block holds the else path, an
// inner block holds the then path that jumps past it.
func (c *Compiler) compileTernary(x *ast.TernaryExpr) {
	fs := c.cur()
	outer := fs.b.OpenBlock()
	inner := fs.b.OpenBlock()
	c.compileExpr(x.Cond)
	fs.b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, x.Span())
	c.compileExpr(x.Then)
	fs.b.EmitJump(bytecode.Jump, outer, protobc.End, x.Span())
	fs.b.CloseBlock() // inner
	c.compileExpr(x.Else)
	fs.b.CloseBlock() // outer
}

// compileMatch lowers a match expression as a chain of pattern-guarded
// branches over a single evaluation of the scrutinee, stashed in a hidden
// local so every arm's pattern-check reloads the same value.
func (c *Compiler) compileMatch(x *ast.MatchExpr) {
	fs := c.cur()
	c.compileExpr(x.Scrutinee)
	hidden := fs.numLocals
	fs.numLocals++
	fs.b.Emit(bytecode.SetVar, int32(hidden), x.Span())

	outer := fs.b.OpenBlock()
	for _, arm := range x.Arms {
		inner := fs.b.OpenBlock()
		fs.b.Emit(bytecode.LoadVar, int32(hidden), arm.Pat.Span())
		c.compilePattern(arm.Pat)
		fs.b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, arm.Pat.Span())
		c.compileExpr(arm.Body)
		fs.b.EmitJump(bytecode.Jump, outer, protobc.End, arm.Body.Span())
		fs.b.CloseBlock()
	}
	// No arm matched: spec.md does not specify match exhaustiveness
	// checking, so this falls back to unit rather than aborting.
	c.diags.Warnf(x.Span(), "MatchMayNotBeExhaustive", "no arm is guaranteed to match at compile time")
	fs.b.Emit(bytecode.LoadConst, int32(c.constEmpty()), x.Span())
	fs.b.CloseBlock() // outer
}

// isMutablePathArg reports whether arg is a path (an identifier optionally
// followed by member, index or associated accesses) whose base identifier
// resolves to a mutable binding, spec.md §4.3's Call lowering rule for
// CallExpr.ArgMutable.
func (c *Compiler) isMutablePathArg(arg ast.Expr) bool {
	for {
		switch e := arg.(type) {
		case *ast.MemberExpr:
			arg = e.Target
		case *ast.IndexExpr:
			arg = e.Target
		case *ast.AssocExpr:
			arg = e.Target
		case *ast.Ident:
			b, ok := c.resolveBinding(e.Name)
			return ok && b.Mutable
		default:
			return false
		}
	}
}

// domainIDNumericPart extracts the leading decimal digits of a domain-id
// lexeme like "12g" or "?c" (no digits for a wildcard-class id).
func domainIDNumericPart(text string) int64 {
	digits := strings.TrimLeft(text, "?")
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.ParseInt(digits[:end], 10, 64)
	return n
}
