package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/internal/intern"
	"github.com/triggerlang/core/scope"
	"github.com/triggerlang/core/source"
)

func TestLookupWalksParentChain(t *testing.T) {
	var a scope.Arena
	var tab intern.Table

	global := a.NewGlobal()
	x := tab.Intern("x")
	a.Declare(global, x, false, source.Span{}, 0)

	child := a.NewChild(global, scope.TagBlock)
	b, ok := a.Lookup(child, x)
	require.True(t, ok)
	assert.Equal(t, 0, b.Slot)
}

func TestMacroBodyIsDetached(t *testing.T) {
	var a scope.Arena
	var tab intern.Table

	global := a.NewGlobal()
	x := tab.Intern("x")
	a.Declare(global, x, false, source.Span{}, 0)

	macro := a.NewDetached(scope.TagMacroBody)
	_, ok := a.Lookup(macro, x)
	assert.False(t, ok, "a macro body scope must not see the enclosing lexical scope")
}

func TestEnclosingLoopAndMacroBody(t *testing.T) {
	var a scope.Arena

	global := a.NewGlobal()
	macro := a.NewChild(global, scope.TagMacroBody)
	loop := a.NewChild(macro, scope.TagLoop)
	arrow := a.NewChild(loop, scope.TagArrowStmt)

	_, ok := a.EnclosingLoop(arrow)
	assert.True(t, ok)

	mb, ok := a.EnclosingMacroBody(arrow)
	require.True(t, ok)
	assert.Equal(t, macro, mb)

	_, ok = a.EnclosingLoop(global)
	assert.False(t, ok)
}
