// Package compiler lowers an AST (package ast) to bytecode (package
// bytecode) in two stages per spec.md §4.3: the AST walk emits proto-bytecode
// (package protobc) against a scope arena (package scope) for lexical
// resolution, then each function's block tree is lowered to a flat
// instruction vector via protobc.Builder.Lower.
//
// Grounded on the teacher's linker package, which also resolves symbolic
// references against a scope structure in a single AST walk before handing
// off to a separate encoding stage; here the "encoding stage" is
// protobc.Builder.Lower instead of a protobuf descriptor.
package compiler

import (
	"fmt"

	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/internal/arena"
	"github.com/triggerlang/core/internal/intern"
	"github.com/triggerlang/core/protobc"
	"github.com/triggerlang/core/scope"
	"github.com/triggerlang/core/source"
)

// funcState tracks the in-progress compilation of one bytecode function:
// its proto-bytecode builder, its current scope (which moves as the walk
// enters and leaves blocks), and its local-slot counter.
type funcState struct {
	b         *protobc.Builder
	curScope  arena.Handle
	numLocals int
}

// Compiler walks one source's AST and accumulates its compiled Module.
// Undefined references and unsupported constructs are diagnosed and
// compiled to a sentinel rather than aborting, per spec.md §4.3's "the
// compiler does not abort on the first error, to surface as many as
// possible".
type Compiler struct {
	interner *intern.Table
	diags    *diag.Context
	scopes   scope.Arena
	module   *bytecode.Module
	funcs    []*funcState
}

// Compile lowers block — the parsed top-level program — into a bytecode
// Module. This is spec.md §6's `compile` façade operation's core; the
// session wrapper (see session.go) adds the source-registry lookup and the
// witness-token bookkeeping around this call.
func Compile(block *ast.Block, interner *intern.Table, diags *diag.Context, sourceID source.ID) *bytecode.Module {
	c := &Compiler{
		interner: interner,
		diags:    diags,
		module:   &bytecode.Module{SourceID: sourceID},
	}

	global := c.scopes.NewGlobal()
	fs := &funcState{b: protobc.NewBuilder(), curScope: global}
	c.funcs = append(c.funcs, fs)

	// Reserve index 0 for the top-level function: nested macro literals
	// encountered while walking the body append themselves at higher
	// indices before the top-level function itself is lowered, so its own
	// slot has to be reserved up front (spec.md §6: "function 0... the
	// top-level entry point").
	c.module.Functions = append(c.module.Functions, bytecode.Function{})

	for _, stmt := range block.Stmts {
		c.compileStmt(stmt)
	}
	// Boundary behaviour (spec.md §8): falling off the end of a function
	// body returns unit.
	c.emitReturnEmpty(block.Span())

	c.module.Functions[0] = fs.b.Lower("", 0, fs.numLocals)
	return c.module
}

func (c *Compiler) cur() *funcState { return c.funcs[len(c.funcs)-1] }

func (c *Compiler) emitReturnEmpty(sp source.Span) {
	fs := c.cur()
	fs.b.Emit(bytecode.LoadConst, int32(c.constEmpty()), sp)
	fs.b.Emit(bytecode.Return, 0, sp)
}

func (c *Compiler) constEmpty() int { return c.module.AddConst(bytecode.Const{Kind: bytecode.ConstEmpty}) }
func (c *Compiler) constBool(v bool) int {
	return c.module.AddConst(bytecode.Const{Kind: bytecode.ConstBool, Bool: v})
}
func (c *Compiler) constInt(n int64) int {
	return c.module.AddConst(bytecode.Const{Kind: bytecode.ConstInt, Int: n})
}
func (c *Compiler) constFloat(f float64) int {
	return c.module.AddConst(bytecode.Const{Kind: bytecode.ConstFloat, Float: f})
}

// bindOrReuseSlot resolves name to a local slot in the current function. A
// fresh binding (mutable, or no prior declaration in scope) allocates a new
// slot; re-assigning an already-declared immutable name reuses its slot
// (spec.md §3's PathPattern doc: "a bare identifier... is a fresh or
// existing binding").
func (c *Compiler) bindOrReuseSlot(name string, mutable bool, def source.Span) int {
	fs := c.cur()
	sym := c.interner.Intern(name)
	if !mutable {
		if b, ok := c.scopes.Lookup(fs.curScope, sym); ok {
			return b.Slot
		}
	}
	slot := fs.numLocals
	fs.numLocals++
	c.scopes.Declare(fs.curScope, sym, mutable, def, slot)
	return slot
}

// resolveSlot looks up an existing binding without declaring one, for
// variable reads and compound-assignment targets.
func (c *Compiler) resolveSlot(name string) (int, bool) {
	fs := c.cur()
	sym := c.interner.Intern(name)
	b, ok := c.scopes.Lookup(fs.curScope, sym)
	return b.Slot, ok
}

// resolveBinding is resolveSlot plus mutability, used to decide a call
// argument's CallExpr.ArgMutable flag.
func (c *Compiler) resolveBinding(name string) (scope.Binding, bool) {
	fs := c.cur()
	sym := c.interner.Intern(name)
	return c.scopes.Lookup(fs.curScope, sym)
}

// withChildScope runs body with the current function's scope temporarily
// set to a new child of tag, then restores it. Used by if/while/for/blocks
// (spec.md §4.3's scope rules).
func (c *Compiler) withChildScope(tag scope.Tag, body func()) {
	fs := c.cur()
	saved := fs.curScope
	fs.curScope = c.scopes.NewChild(saved, tag)
	body()
	fs.curScope = saved
}

func unsupportedTitle(kind string) string {
	return fmt.Sprintf("Unsupported%s", kind)
}
