package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/compiler"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/internal/intern"
	"github.com/triggerlang/core/parser"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
)

func compileText(t *testing.T, text string) (*bytecode.Module, *diag.Context) {
	t.Helper()
	reg := source.NewRegistry(nil)
	id := reg.Register("t", text)
	toks := token.Lex(id, text)
	diags := diag.NewContext(nil)
	block, _, hasParseErr := parser.Parse(toks, diags)
	require.False(t, hasParseErr)

	var interner intern.Table
	mod := compiler.Compile(block, &interner, diags, id)
	return mod, diags
}

// S1: dbg (1 + 2 * 3) lowers to LoadConst x3, Mul, Add, Dbg, PopTop,
// LoadConst(empty), Return (spec.md §8 scenario S1).
func TestCompileArithmeticScenario(t *testing.T) {
	mod, diags := compileText(t, "dbg (1 + 2 * 3)")
	require.False(t, diags.HasErrors())
	require.Len(t, mod.Functions, 1)

	ops := opsOf(mod.Functions[0])
	assert.Equal(t, []bytecode.Op{
		bytecode.LoadConst, bytecode.LoadConst, bytecode.LoadConst,
		bytecode.Mul, bytecode.Add, bytecode.Dbg, bytecode.PopTop,
		bytecode.LoadConst, bytecode.Return,
	}, ops)
}

func TestCompileEmptyProgramReturnsUnit(t *testing.T) {
	mod, diags := compileText(t, "")
	require.False(t, diags.HasErrors())
	require.Len(t, mod.Functions, 1)
	assert.Equal(t, []bytecode.Op{bytecode.LoadConst, bytecode.Return}, opsOf(mod.Functions[0]))
}

func TestCompileAssignmentAllocatesDistinctSlots(t *testing.T) {
	mod, diags := compileText(t, "x = 10\ny = x + 1\ndbg y")
	require.False(t, diags.HasErrors())
	fn := mod.Functions[0]
	assert.GreaterOrEqual(t, fn.NumLocals, 2)
}

func TestCompileUndefinedVariableReportsCompileError(t *testing.T) {
	_, diags := compileText(t, "dbg q")
	assert.True(t, diags.HasErrors())
}

func TestCompileWhileJumpsBackToCondition(t *testing.T) {
	mod, diags := compileText(t, "i = 0\nwhile i < 3 { dbg i\ni = i + 1 }")
	require.False(t, diags.HasErrors())
	fn := mod.Functions[0]
	sawJumpIfFalse, sawBackwardJump := false, false
	for idx, instr := range fn.Code {
		if instr.Op == bytecode.JumpIfFalse {
			sawJumpIfFalse = true
		}
		if instr.Op == bytecode.Jump && int(instr.Operand) < idx {
			sawBackwardJump = true
		}
	}
	assert.True(t, sawJumpIfFalse)
	assert.True(t, sawBackwardJump)
}

// Boundary behaviour (spec.md §8): an arrow statement with an empty-bodied
// inner statement still emits EnterArrowStatement(p); YeetContext with p
// pointing at the YeetContext instruction.
func TestCompileArrowStatementShape(t *testing.T) {
	mod, diags := compileText(t, "-> dbg 1")
	require.False(t, diags.HasErrors())
	fn := mod.Functions[0]
	require.NotEmpty(t, fn.Code)
	enter := fn.Code[0]
	require.Equal(t, bytecode.EnterArrowStatement, enter.Op)
	target := int(enter.Operand)
	require.Less(t, target, len(fn.Code))
	assert.Equal(t, bytecode.YeetContext, fn.Code[target].Op)
}

func opsOf(fn bytecode.Function) []bytecode.Op {
	ops := make([]bytecode.Op, len(fn.Code))
	for i, instr := range fn.Code {
		ops[i] = instr.Op
	}
	return ops
}
