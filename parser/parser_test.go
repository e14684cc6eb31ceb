package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/parser"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
)

func parse(t *testing.T, text string) (*ast.Block, bool) {
	t.Helper()
	reg := source.NewRegistry(nil)
	id := reg.Register("t", text)
	toks := token.Lex(id, text)
	diags := diag.NewContext(nil)
	block, _, hasErr := parser.Parse(toks, diags)
	return block, hasErr
}

func TestParseArithmeticPrecedence(t *testing.T) {
	block, hasErr := parse(t, "1 + 2 * 3")
	require.False(t, hasErr)
	require.Len(t, block.Stmts, 1)

	es, ok := block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	bin, ok := es.X.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParsePowIsRightAssociative(t *testing.T) {
	block, hasErr := parse(t, "2 ** 3 ** 2")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	bin := es.X.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpPow, bin.Op)
	_, leftIsBinary := bin.Left.(*ast.BinaryExpr)
	assert.False(t, leftIsBinary, "** must nest on the right")
	_, rightIsBinary := bin.Right.(*ast.BinaryExpr)
	assert.True(t, rightIsBinary)
}

func TestParseAssignVsExprStatement(t *testing.T) {
	block, hasErr := parse(t, "mut x = 1\nx + 1")
	require.False(t, hasErr)
	require.Len(t, block.Stmts, 2)

	assign, ok := block.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	mb, ok := assign.LHS.(*ast.MutBinderPattern)
	require.True(t, ok)
	pp, ok := mb.Inner.(*ast.PathPattern)
	require.True(t, ok)
	assert.Equal(t, "x", pp.Name)

	_, ok = block.Stmts[1].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseCompoundAssign(t *testing.T) {
	block, hasErr := parse(t, "x += 1")
	require.False(t, hasErr)
	ca, ok := block.Stmts[0].(*ast.CompoundAssignStmt)
	require.True(t, ok)
	assert.Equal(t, ast.CAdd, ca.Op)
}

func TestParseIfElseChain(t *testing.T) {
	block, hasErr := parse(t, "if a { 1 } else if b { 2 } else { 3 }")
	require.False(t, hasErr)
	ifs, ok := block.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.Branches, 2)
	require.NotNil(t, ifs.Else)
}

func TestParseWhileLoop(t *testing.T) {
	block, hasErr := parse(t, "while x < 10 { x += 1 }")
	require.False(t, hasErr)
	_, ok := block.Stmts[0].(*ast.WhileStmt)
	assert.True(t, ok)
}

func TestParseArrowStatement(t *testing.T) {
	block, hasErr := parse(t, "-> dbg 1")
	require.False(t, hasErr)
	arrow, ok := block.Stmts[0].(*ast.ArrowStmt)
	require.True(t, ok)
	_, ok = arrow.Inner.(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseGroupedExprVsMacroLiteral(t *testing.T) {
	block, hasErr := parse(t, "(1 + 2)\n(x) => x + 1\n(x) { return x }")
	require.False(t, hasErr)
	require.Len(t, block.Stmts, 3)

	es0 := block.Stmts[0].(*ast.ExprStmt)
	_, isBinary := es0.X.(*ast.BinaryExpr)
	assert.True(t, isBinary, "parenthesized arithmetic must parse as a grouped expression")

	es1 := block.Stmts[1].(*ast.ExprStmt)
	lit1, ok := es1.X.(*ast.MacroLit)
	require.True(t, ok)
	assert.NotNil(t, lit1.ExprBdy)
	assert.Nil(t, lit1.Body)

	es2 := block.Stmts[2].(*ast.ExprStmt)
	lit2, ok := es2.X.(*ast.MacroLit)
	require.True(t, ok)
	assert.NotNil(t, lit2.Body)
}

func TestParseTriggerLiteral(t *testing.T) {
	block, hasErr := parse(t, "!{ dbg 1 }")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	_, ok := es.X.(*ast.TriggerLit)
	assert.True(t, ok)
}

func TestParseMatchExpr(t *testing.T) {
	block, hasErr := parse(t, "match x { _ => 1, @int => 2 }")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	m, ok := es.X.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)
	_, ok = m.Arms[0].Pat.(*ast.WildcardPattern)
	assert.True(t, ok)
	_, ok = m.Arms[1].Pat.(*ast.TypeTestPattern)
	assert.True(t, ok)
}

func TestParseIsExprWithPattern(t *testing.T) {
	block, hasErr := parse(t, "x is mut y")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	is, ok := es.X.(*ast.IsExpr)
	require.True(t, ok)
	_, ok = is.Pat.(*ast.MutBinderPattern)
	assert.True(t, ok)
}

func TestParseTernaryElse(t *testing.T) {
	block, hasErr := parse(t, "1 if cond else 2")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	_, ok := es.X.(*ast.TernaryExpr)
	assert.True(t, ok)
}

func TestParsePostfixChain(t *testing.T) {
	block, hasErr := parse(t, "a.b[0]::c?!")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	trig, ok := es.X.(*ast.TriggerCallExpr)
	require.True(t, ok)
	_, ok = trig.Operand.(*ast.MaybeExpr)
	assert.True(t, ok)
}

func TestParsePatternEitherAndGuard(t *testing.T) {
	block, hasErr := parse(t, "match x { a | b if a > 0 => 1 }")
	require.False(t, hasErr)
	es := block.Stmts[0].(*ast.ExprStmt)
	m := es.X.(*ast.MatchExpr)
	guard, ok := m.Arms[0].Pat.(*ast.GuardPattern)
	require.True(t, ok)
	_, ok = guard.Inner.(*ast.EitherPattern)
	assert.True(t, ok)
}

func TestParseArrayDestructureWithRest(t *testing.T) {
	block, hasErr := parse(t, "[a, mut b, ...rest] = xs")
	require.False(t, hasErr)
	assign, ok := block.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	ad, ok := assign.LHS.(*ast.ArrayDestructurePattern)
	require.True(t, ok)
	require.Len(t, ad.Elems, 2)
	require.NotNil(t, ad.Rest)
}

func TestParseMutSelfDiagnosesButContinues(t *testing.T) {
	reg := source.NewRegistry(nil)
	text := "mut self = x"
	id := reg.Register("t", text)
	toks := token.Lex(id, text)
	diags := diag.NewContext(nil)
	block, _, hasErr := parser.Parse(toks, diags)

	assert.True(t, hasErr, "assigning to 'mut self' must be diagnosed")
	require.Len(t, block.Stmts, 1)
	_, ok := block.Stmts[0].(*ast.AssignStmt)
	assert.True(t, ok, "parsing continues and still produces the assignment node")
}
