// Package protobc implements the proto-bytecode scaffolding spec.md §3/§4.3
// and §9 describe: a tree of nested blocks with symbolic jump targets that
// resolve to concrete instruction positions only after block layout is
// finalised. This sidesteps mutable back-patch lists in favour of a
// two-pass walk over an arena-backed block tree (grounded on
// internal/arena's handle discipline, used here for a tree rather than a
// flat heap).
package protobc

import (
	"fmt"

	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/internal/arena"
	"github.com/triggerlang/core/source"
)

// Anchor selects which end of a block a symbolic jump resolves to.
type Anchor int

const (
	// Start resolves to the block's first instruction.
	Start Anchor = iota
	// End resolves to one past the block's last instruction
	// (spec.md §3: "a proto-bytecode jump target that resolves to End(b)
	// yields the position one past the last instruction emitted for
	// block b").
	End
)

func (a Anchor) String() string {
	if a == Start {
		return "Start"
	}
	return "End"
}

// kind discriminates a Block's Contents entries.
type kind int

const (
	kindOp kind = iota
	kindJump
	kindBlock
)

// content is one entry in a Block's ordered sequence: either a
// (symbolic-opcode, span) pair or a child-block handle (spec.md §3).
type content struct {
	kind kind

	op      bytecode.Op
	operand int32
	span    source.Span

	jumpTarget arena.Handle
	jumpAnchor Anchor

	child arena.Handle
}

// Block is one node of the proto-bytecode tree.
type Block struct {
	contents []content
}

// Builder accumulates the block tree for one function as the compiler
// walks the AST. Blocks are allocated from a shared arena so that opening a
// nested block never invalidates a handle to an enclosing one.
type Builder struct {
	blocks arena.Arena[Block]
	stack  []arena.Handle
}

// NewBuilder creates a builder with a single open root block.
func NewBuilder() *Builder {
	b := &Builder{}
	root := b.blocks.New(Block{})
	b.stack = []arena.Handle{root}
	return b
}

// Root returns the function's outermost block.
func (b *Builder) Root() arena.Handle {
	return b.stack[0]
}

// Current returns the innermost open block.
func (b *Builder) Current() arena.Handle {
	return b.stack[len(b.stack)-1]
}

// OpenBlock allocates a new block, links it into the current block's
// content sequence, and pushes it as the new current block. Returns the new
// block's handle.
func (b *Builder) OpenBlock() arena.Handle {
	h := b.blocks.New(Block{})
	cur := b.blocks.At(b.Current())
	cur.contents = append(cur.contents, content{kind: kindBlock, child: h})
	b.stack = append(b.stack, h)
	return h
}

// CloseBlock pops the current block, returning to its parent.
func (b *Builder) CloseBlock() {
	if len(b.stack) == 1 {
		panic("protobc: CloseBlock called with no open child block")
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Emit appends a non-jump opcode to the current block.
func (b *Builder) Emit(op bytecode.Op, operand int32, span source.Span) {
	if op.IsJump() {
		panic("protobc: use EmitJump for jump opcodes")
	}
	cur := b.blocks.At(b.Current())
	cur.contents = append(cur.contents, content{kind: kindOp, op: op, operand: operand, span: span})
}

// EmitJump appends a symbolic jump to the current block, targeting anchor
// of the block at target. target need not yet be closed, or even yet
// opened, as long as it is resolved by the time [Lower] runs — in practice
// every jump in this compiler targets a block that either encloses it or
// was already opened earlier in the same function.
func (b *Builder) EmitJump(op bytecode.Op, target arena.Handle, anchor Anchor, span source.Span) {
	if !op.IsJump() {
		panic("protobc: EmitJump used with a non-jump opcode")
	}
	cur := b.blocks.At(b.Current())
	cur.contents = append(cur.contents, content{
		kind: kindJump, op: op, span: span,
		jumpTarget: target, jumpAnchor: anchor,
	})
}

// position records a block's instruction-index span once layout is final.
type position struct{ start, end int }

// Lower runs the two-pass layout spec.md §4.3 describes over the built
// block tree and produces a flat, fully-resolved [bytecode.Function].
// numLocals and numParams are threaded through unchanged from the proto
// function (they are computed by the compiler's scope resolution, not by
// the block tree itself).
func (b *Builder) Lower(name string, numParams, numLocals int) bytecode.Function {
	positions := make(map[arena.Handle]position)

	counter := 0
	var assign func(h arena.Handle)
	assign = func(h arena.Handle) {
		blk := b.blocks.At(h)
		start := counter
		for _, c := range blk.contents {
			if c.kind == kindBlock {
				assign(c.child)
			} else {
				counter++
			}
		}
		positions[h] = position{start: start, end: counter}
	}
	assign(b.Root())

	var code []bytecode.Instr
	var emit func(h arena.Handle)
	emit = func(h arena.Handle) {
		blk := b.blocks.At(h)
		for _, c := range blk.contents {
			switch c.kind {
			case kindBlock:
				emit(c.child)
			case kindOp:
				code = append(code, bytecode.Instr{Op: c.op, Operand: c.operand, Span: c.span})
			case kindJump:
				pos, ok := positions[c.jumpTarget]
				if !ok {
					panic(fmt.Sprintf("protobc: jump targets unresolved block %d", c.jumpTarget))
				}
				target := pos.start
				if c.jumpAnchor == End {
					target = pos.end
				}
				code = append(code, bytecode.Instr{Op: c.op, Operand: int32(target), Span: c.span})
			}
		}
	}
	emit(b.Root())

	return bytecode.Function{Name: name, NumParams: numParams, NumLocals: numLocals, Code: code}
}
