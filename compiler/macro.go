package compiler

import (
	"fmt"

	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/protobc"
	"github.com/triggerlang/core/scope"
	"github.com/triggerlang/core/source"
)

// compileMacroLit lowers a macro (or trigger-function) literal: a fresh
// function is allocated and recursively compiled in a detached scope chain,
// and a MakeMacro opcode is emitted in the enclosing function
// (spec.md §4.3's "Macro literal" rule).
func (c *Compiler) compileMacroLit(params []ast.Pattern, body *ast.Block, exprBdy ast.Expr, sp source.Span) {
	captures := c.analyzeCaptures(params, body, exprBdy)

	funcID := len(c.module.Functions)
	c.module.Functions = append(c.module.Functions, bytecode.Function{})

	newScope := c.scopes.NewDetached(scope.TagMacroBody)
	fs := &funcState{b: protobc.NewBuilder(), curScope: newScope}
	c.funcs = append(c.funcs, fs)

	captureSlots := make([]int, len(captures))
	for i, cap := range captures {
		slot := fs.numLocals
		fs.numLocals++
		c.scopes.Declare(newScope, cap.sym, cap.mutable, sp, slot)
		captureSlots[i] = cap.enclosingSlot
	}

	for _, p := range params {
		c.compilePattern(p)
		fs.b.Emit(bytecode.MismatchThrowIfFalse, 0, p.Span())
	}

	switch {
	case body != nil:
		c.withChildScope(scope.TagBlock, func() {
			for _, stmt := range body.Stmts {
				c.compileStmt(stmt)
			}
		})
		c.emitReturnEmpty(body.Span())
	case exprBdy != nil:
		c.compileExpr(exprBdy)
		fs.b.Emit(bytecode.Return, 0, exprBdy.Span())
	default:
		c.emitReturnEmpty(sp)
	}

	fn := fs.b.Lower(fmt.Sprintf("macro@%d", funcID), len(params), fs.numLocals)
	fn.Captures = captureSlots
	c.module.Functions[funcID] = fn

	c.funcs = c.funcs[:len(c.funcs)-1]
	c.cur().b.Emit(bytecode.MakeMacro, int32(funcID), sp)
}
