package protobc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/protobc"
	"github.com/triggerlang/core/source"
)

// TestIfElseLowering mirrors spec.md §4.3's If lowering rule: outer block,
// one inner block per branch with JumpIfFalse(End(inner)) and
// Jump(End(outer)) tying the branches together.
func TestIfElseLowering(t *testing.T) {
	b := protobc.NewBuilder()
	sp := source.Span{}

	outer := b.OpenBlock()
	{
		inner := b.OpenBlock()
		b.Emit(bytecode.LoadConst, 0, sp) // condition
		b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, sp)
		b.Emit(bytecode.LoadConst, 1, sp) // then-body
		b.EmitJump(bytecode.Jump, outer, protobc.End, sp)
		b.CloseBlock()
	}
	b.Emit(bytecode.LoadConst, 2, sp) // else-body
	b.CloseBlock()

	fn := b.Lower("", 0, 0)

	require.Len(t, fn.Code, 5)
	assert.Equal(t, bytecode.LoadConst, fn.Code[0].Op)
	assert.Equal(t, bytecode.JumpIfFalse, fn.Code[1].Op)
	assert.EqualValues(t, 4, fn.Code[1].Operand, "JumpIfFalse(End(inner)) must land on the else-body")
	assert.Equal(t, bytecode.Jump, fn.Code[3].Op)
	assert.EqualValues(t, 5, fn.Code[3].Operand, "Jump(End(outer)) must land past the whole if")
}

// TestWhileLowering mirrors the While lowering rule: condition,
// JumpIfFalse(End(self)), body, Jump(Start(self)).
func TestWhileLowering(t *testing.T) {
	b := protobc.NewBuilder()
	sp := source.Span{}

	loop := b.OpenBlock()
	b.Emit(bytecode.LoadConst, 0, sp)
	b.EmitJump(bytecode.JumpIfFalse, loop, protobc.End, sp)
	b.Emit(bytecode.LoadConst, 1, sp)
	b.EmitJump(bytecode.Jump, loop, protobc.Start, sp)
	b.CloseBlock()

	fn := b.Lower("", 0, 0)
	require.Len(t, fn.Code, 4)
	assert.EqualValues(t, 4, fn.Code[1].Operand)
	assert.EqualValues(t, 0, fn.Code[3].Operand)
}

// TestEmptyArrowStatement matches the boundary behaviour spec.md §8 names:
// "Arrow statement with empty body emits EnterArrowStatement(p); YeetContext
// with p pointing at the YeetContext instruction."
func TestEmptyArrowStatementBoundary(t *testing.T) {
	b := protobc.NewBuilder()
	sp := source.Span{}

	blk := b.OpenBlock()
	b.EmitJump(bytecode.EnterArrowStatement, blk, protobc.End, sp)
	b.Emit(bytecode.YeetContext, 0, sp)
	b.CloseBlock()

	fn := b.Lower("", 0, 0)
	require.Len(t, fn.Code, 2)
	assert.Equal(t, bytecode.YeetContext, fn.Code[1].Op)
	assert.EqualValues(t, 1, fn.Code[0].Operand, "EnterArrowStatement's target must point at YeetContext")
}

func TestAllJumpsResolveInRange(t *testing.T) {
	b := protobc.NewBuilder()
	sp := source.Span{}

	outer := b.OpenBlock()
	inner := b.OpenBlock()
	b.Emit(bytecode.LoadConst, 0, sp)
	b.EmitJump(bytecode.JumpIfFalse, inner, protobc.End, sp)
	b.EmitJump(bytecode.Jump, outer, protobc.End, sp)
	b.CloseBlock()
	b.CloseBlock()

	fn := b.Lower("", 0, 0)
	for _, instr := range fn.Code {
		if instr.Op.IsJump() {
			assert.GreaterOrEqual(t, int(instr.Operand), 0)
			assert.LessOrEqual(t, int(instr.Operand), len(fn.Code))
		}
	}
}
