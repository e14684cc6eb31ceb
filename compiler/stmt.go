package compiler

import (
	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/protobc"
	"github.com/triggerlang/core/scope"
)

var compoundOps = map[ast.CompoundOp]bytecode.Op{
	ast.CAdd: bytecode.Add, ast.CSub: bytecode.Sub, ast.CMul: bytecode.Mul,
	ast.CDiv: bytecode.Div, ast.CMod: bytecode.Mod, ast.CPow: bytecode.Pow,
}

// compileStmt lowers one statement per spec.md §4.3's lowering rules.
// Statements with no specified lowering rule (for, try/catch, throw) are
// diagnosed and compiled as a no-op rather than guessed at; see DESIGN.md.
func (c *Compiler) compileStmt(s ast.Stmt) {
	fs := c.cur()
	switch st := s.(type) {
	case *ast.ExprStmt:
		c.compileExpr(st.X)
		fs.b.Emit(bytecode.PopTop, 0, st.Span())

	case *ast.AssignStmt:
		c.compileExpr(st.RHS)
		c.compilePattern(st.LHS)
		fs.b.Emit(bytecode.MismatchThrowIfFalse, 0, st.Span())

	case *ast.CompoundAssignStmt:
		c.compileCompoundAssign(st)

	case *ast.IfStmt:
		c.compileIf(st)

	case *ast.WhileStmt:
		c.compileWhile(st)

	case *ast.ReturnStmt:
		if _, ok := c.scopes.EnclosingMacroBody(fs.curScope); !ok {
			c.diags.Errorf(st.Span(), "ReturnOutsideMacroBody", "'return' is only legal inside a macro body")
		}
		if st.Value != nil {
			c.compileExpr(st.Value)
		} else {
			fs.b.Emit(bytecode.LoadConst, int32(c.constEmpty()), st.Span())
		}
		fs.b.Emit(bytecode.Return, 0, st.Span())

	case *ast.BreakStmt:
		loop, ok := c.scopes.EnclosingLoop(fs.curScope)
		if !ok {
			c.diags.Errorf(st.Span(), "BreakOutsideLoop", "'break' used outside a loop")
			return
		}
		fs.b.EmitJump(bytecode.Jump, c.scopes.At(loop).LoopBlock, protobc.End, st.Span())

	case *ast.ContinueStmt:
		loop, ok := c.scopes.EnclosingLoop(fs.curScope)
		if !ok {
			c.diags.Errorf(st.Span(), "ContinueOutsideLoop", "'continue' used outside a loop")
			return
		}
		fs.b.EmitJump(bytecode.Jump, c.scopes.At(loop).LoopBlock, protobc.Start, st.Span())

	case *ast.ArrowStmt:
		c.compileArrow(st)

	case *ast.TypeDefStmt:
		// Type declarations are compile-time only in this revision: the
		// runtime value model (spec.md §3) has no instance kind, so a
		// type-def has nothing to lower to.

	case *ast.UnsafeBlockStmt:
		c.withChildScope(scope.TagBlock, func() {
			for _, inner := range st.Body.Stmts {
				c.compileStmt(inner)
			}
		})

	case *ast.ForStmt, *ast.TryStmt, *ast.ThrowStmt:
		c.diags.Errorf(st.Span(), unsupportedTitle("Stmt"),
			"statement kind is reserved for future extension and compiles to a no-op")

	default:
		c.diags.Errorf(st.Span(), unsupportedTitle("Stmt"), "unrecognised statement kind")
	}
}

func (c *Compiler) compileCompoundAssign(st *ast.CompoundAssignStmt) {
	fs := c.cur()
	pp, mutable := compoundAssignTargetPath(st.Target)
	if pp == nil || len(pp.Segments) > 0 {
		c.diags.Errorf(st.Span(), unsupportedTitle("Pattern"),
			"compound assignment target must be a bare identifier in this revision")
		c.compileExpr(st.RHS)
		fs.b.Emit(bytecode.PopTop, 0, st.Span())
		return
	}
	slot, ok := c.resolveSlot(pp.Name)
	if !ok {
		c.diags.Errorf(st.Span(), "NonexistentVariable", "undefined variable %q", pp.Name)
		slot = c.bindOrReuseSlot(pp.Name, mutable, st.Span())
	}

	op, ok := compoundOps[st.Op]
	if !ok {
		c.diags.Errorf(st.Span(), unsupportedTitle("Expr"), "compound-assign operator is reserved for future extension")
		return
	}

	fs.b.Emit(bytecode.LoadVar, int32(slot), st.Span())
	c.compileExpr(st.RHS)
	fs.b.Emit(op, 0, st.Span())
	fs.b.Emit(bytecode.SetVar, int32(slot), st.Span())
	fs.b.Emit(bytecode.PopTop, 0, st.Span())
}

func compoundAssignTargetPath(p ast.Pattern) (*ast.PathPattern, bool) {
	switch pt := p.(type) {
	case *ast.PathPattern:
		return pt, false
	case *ast.MutBinderPattern:
		if pp, ok := pt.Inner.(*ast.PathPattern); ok {
			return pp, true
		}
	}
	return nil, false
}

// compileIf lowers spec.md §4.3's If rule: an outer block, one inner block
// per branch (condition, JumpIfFalse(End(inner)), body, Jump(End(outer))),
// and the optional else-body compiled directly in the outer block.
func (c *Compiler) compileIf(st *ast.IfStmt) {
	fs := c.cur()
	outer := fs.b.OpenBlock()
	for _, br := range st.Branches {
		inner := fs.b.OpenBlock()
		c.compileExpr(br.Cond)
		fs.b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, br.Cond.Span())
		c.withChildScope(scope.TagBlock, func() {
			for _, inner := range br.Body.Stmts {
				c.compileStmt(inner)
			}
		})
		fs.b.EmitJump(bytecode.Jump, outer, protobc.End, br.Body.Span())
		fs.b.CloseBlock()
	}
	if st.Else != nil {
		c.withChildScope(scope.TagBlock, func() {
			for _, inner := range st.Else.Stmts {
				c.compileStmt(inner)
			}
		})
	}
	fs.b.CloseBlock()
}

// compileWhile lowers spec.md §4.3's While rule. The loop's own block
// handle is stashed on the loop scope so break/continue can target it.
func (c *Compiler) compileWhile(st *ast.WhileStmt) {
	fs := c.cur()
	self := fs.b.OpenBlock()

	saved := fs.curScope
	fs.curScope = c.scopes.NewChild(saved, scope.TagLoop)
	c.scopes.At(fs.curScope).LoopBlock = self

	c.compileExpr(st.Cond)
	fs.b.EmitJump(bytecode.JumpIfFalse, self, protobc.End, st.Cond.Span())
	for _, inner := range st.Body.Stmts {
		c.compileStmt(inner)
	}
	fs.b.EmitJump(bytecode.Jump, self, protobc.Start, st.Span())

	fs.curScope = saved
	fs.b.CloseBlock()
}

// compileArrow lowers spec.md §4.3's Arrow-statement rule: forking happens
// at runtime (§5); the compiler only has to bracket the inner statement
// with EnterArrowStatement/YeetContext and give it its own scope so
// bindings it introduces are unreachable afterwards.
func (c *Compiler) compileArrow(st *ast.ArrowStmt) {
	fs := c.cur()
	self := fs.b.OpenBlock()
	fs.b.EmitJump(bytecode.EnterArrowStatement, self, protobc.End, st.Span())

	saved := fs.curScope
	fs.curScope = c.scopes.NewChild(saved, scope.TagArrowStmt)
	c.scopes.At(fs.curScope).ArrowSpan = st.Span()
	c.compileStmt(st.Inner)
	fs.curScope = saved

	fs.b.Emit(bytecode.YeetContext, 0, st.Span())
	fs.b.CloseBlock()
}
