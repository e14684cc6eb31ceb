package compiler

import (
	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/protobc"
)

// compilePattern lowers a pattern-check against the value on top of the
// stack, per spec.md §4.3's "Pattern compilation": the emitted code consumes
// that value and leaves a boolean on top. The currently specified subset is
// wildcard and a bare path (optionally wrapped in `mut`); `&`/`|` combinators
// are a supplemented short-circuit extension (see DESIGN.md). Every other
// variant is rejected with a compiler diagnostic rather than compiled
// incorrectly, per the spec's explicit instruction.
func (c *Compiler) compilePattern(p ast.Pattern) {
	fs := c.cur()
	switch pt := p.(type) {
	case *ast.WildcardPattern:
		// Reference quirk, replicated exactly: the value is left in
		// place and `true` is pushed on top of it rather than the value
		// being consumed (spec.md §4.3).
		fs.b.Emit(bytecode.LoadConst, int32(c.constBool(true)), pt.Span())

	case *ast.PathPattern:
		if len(pt.Segments) > 0 {
			c.rejectPattern(pt)
			return
		}
		slot := c.bindOrReuseSlot(pt.Name, false, pt.Span())
		fs.b.Emit(bytecode.SetVar, int32(slot), pt.Span())
		fs.b.Emit(bytecode.LoadConst, int32(c.constBool(true)), pt.Span())

	case *ast.MutBinderPattern:
		pp, ok := pt.Inner.(*ast.PathPattern)
		if !ok || len(pp.Segments) > 0 {
			c.rejectPattern(pt)
			return
		}
		slot := c.bindOrReuseSlot(pp.Name, true, pt.Span())
		fs.b.Emit(bytecode.SetVar, int32(slot), pt.Span())
		fs.b.Emit(bytecode.LoadConst, int32(c.constBool(true)), pt.Span())

	case *ast.BothPattern:
		c.compileBothPattern(pt)

	case *ast.EitherPattern:
		c.compileEitherPattern(pt)

	default:
		c.rejectPattern(p)
	}
}

// rejectPattern diagnoses an unsupported pattern variant and, to preserve
// the "consumes a value, leaves a bool" contract without crashing, treats it
// as a guaranteed mismatch.
func (c *Compiler) rejectPattern(p ast.Pattern) {
	c.diags.Errorf(p.Span(), unsupportedTitle("Pattern"),
		"pattern variant is reserved for future extension and cannot be compiled yet")
	fs := c.cur()
	fs.b.Emit(bytecode.PopTop, 0, p.Span())
	fs.b.Emit(bytecode.LoadConst, int32(c.constBool(false)), p.Span())
}

// compileBothPattern lowers `P & Q` with left-to-right short-circuit
// evaluation: Q is only checked if P matched. Both sides test the same
// scrutinee, so it is stashed in a hidden local slot and reloaded for each
// side (shaped exactly like the If lowering rule: an outer block holds the
// "else" path, an inner block holds the "then" path that jumps past it).
func (c *Compiler) compileBothPattern(p *ast.BothPattern) {
	fs := c.cur()
	hidden := fs.numLocals
	fs.numLocals++
	fs.b.Emit(bytecode.SetVar, int32(hidden), p.Span())

	outer := fs.b.OpenBlock()
	inner := fs.b.OpenBlock()
	fs.b.Emit(bytecode.LoadVar, int32(hidden), p.Left.Span())
	c.compilePattern(p.Left)
	fs.b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, p.Span())
	fs.b.Emit(bytecode.LoadVar, int32(hidden), p.Right.Span())
	c.compilePattern(p.Right)
	fs.b.EmitJump(bytecode.Jump, outer, protobc.End, p.Span())
	fs.b.CloseBlock() // inner
	fs.b.Emit(bytecode.LoadConst, int32(c.constBool(false)), p.Span())
	fs.b.CloseBlock() // outer
}

// compileEitherPattern lowers `P | Q`: if P matches, the result is true and
// Q is never evaluated; otherwise the result is whatever Q evaluates to.
func (c *Compiler) compileEitherPattern(p *ast.EitherPattern) {
	fs := c.cur()
	hidden := fs.numLocals
	fs.numLocals++
	fs.b.Emit(bytecode.SetVar, int32(hidden), p.Span())

	outer := fs.b.OpenBlock()
	inner := fs.b.OpenBlock()
	fs.b.Emit(bytecode.LoadVar, int32(hidden), p.Left.Span())
	c.compilePattern(p.Left)
	fs.b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, p.Span())
	fs.b.Emit(bytecode.LoadConst, int32(c.constBool(true)), p.Span())
	fs.b.EmitJump(bytecode.Jump, outer, protobc.End, p.Span())
	fs.b.CloseBlock() // inner
	fs.b.Emit(bytecode.LoadVar, int32(hidden), p.Right.Span())
	c.compilePattern(p.Right)
	fs.b.CloseBlock() // outer
}
