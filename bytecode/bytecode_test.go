package bytecode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/source"
)

func TestConstPoolDeduplicates(t *testing.T) {
	var m bytecode.Module
	a := m.AddConst(bytecode.Const{Kind: bytecode.ConstInt, Int: 7})
	b := m.AddConst(bytecode.Const{Kind: bytecode.ConstInt, Int: 7})
	c := m.AddConst(bytecode.Const{Kind: bytecode.ConstInt, Int: 8})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, m.Consts, 2)
}

func TestDisassembleEmptyFunction(t *testing.T) {
	reg := source.NewRegistry(nil)
	id := reg.Register("t", "")

	fn := bytecode.Function{
		Code: []bytecode.Instr{
			{Op: bytecode.LoadConst, Operand: 0, Span: source.Span{ID: id}},
			{Op: bytecode.Return, Span: source.Span{ID: id}},
		},
	}

	var buf bytes.Buffer
	bytecode.Disassemble(&buf, "", &fn, reg, nil)
	out := buf.String()
	assert.Contains(t, out, "LoadConst")
	assert.Contains(t, out, "Return")
	assert.Contains(t, out, "<toplevel>")
}

// Disassembly output is meant to be stable across repeated calls on the same
// function, so a golden-output regression test can diff against it; verify
// that stability with a unified diff rather than a raw string comparison, so
// a future mismatch reads as a patch instead of two opaque blobs.
func TestDisassembleIsStableAcrossRuns(t *testing.T) {
	reg := source.NewRegistry(nil)
	id := reg.Register("t", "dbg 1")

	fn := bytecode.Function{
		Code: []bytecode.Instr{
			{Op: bytecode.LoadConst, Operand: 0, Span: source.Span{ID: id, Start: 4, End: 5}},
			{Op: bytecode.Dbg, Span: source.Span{ID: id, Start: 0, End: 5}},
			{Op: bytecode.Return, Span: source.Span{ID: id}},
		},
	}

	var first, second bytes.Buffer
	bytecode.Disassemble(&first, "", &fn, reg, nil)
	bytecode.Disassemble(&second, "", &fn, reg, nil)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(first.String()),
		B:        difflib.SplitLines(second.String()),
		FromFile: "first",
		ToFile:   "second",
		Context:  2,
	})
	require.NoError(t, err)
	if diff != "" {
		t.Errorf("disassembly is not stable across runs:\n%s", diff)
	}
	assert.True(t, strings.Contains(first.String(), "Dbg"))
}
