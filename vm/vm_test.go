package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/compiler"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/internal/intern"
	"github.com/triggerlang/core/parser"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
	"github.com/triggerlang/core/value"
	"github.com/triggerlang/core/vm"
)

func run(t *testing.T, text string) (string, []vm.Outcome) {
	t.Helper()
	reg := source.NewRegistry(nil)
	id := reg.Register("t", text)
	toks := token.Lex(id, text)
	diags := diag.NewContext(nil)
	block, _, hasParseErr := parser.Parse(toks, diags)
	require.False(t, hasParseErr)

	var interner intern.Table
	mod := compiler.Compile(block, &interner, diags, id)
	require.False(t, diags.HasErrors())

	var out bytes.Buffer
	machine := vm.New(mod, diags, 0, &out)
	return out.String(), machine.Run()
}

// S1. Arithmetic: dbg (1 + 2 * 3) prints 7 and returns unit.
func TestScenarioArithmetic(t *testing.T) {
	out, outcomes := run(t, "dbg (1 + 2 * 3)")
	assert.Contains(t, out, "7")
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].IsError)
	v := outcomes[0].Heap.Get(outcomes[0].Value).Value
	assert.Equal(t, value.KindEmpty, v.Kind)
}

// S2. Assignment and use: x = 10; y = x + 1; dbg y prints 11.
func TestScenarioAssignAndUse(t *testing.T) {
	out, outcomes := run(t, "x = 10\ny = x + 1\ndbg y")
	assert.Contains(t, out, "11")
	require.Len(t, outcomes, 1)
}

// S3. If with two branches: the taken branch's dbg fires, the other does not.
// Dbg lines read "ctx[<id>]: <value>", so the value is matched after ": ".
func TestScenarioIfBranches(t *testing.T) {
	out, _ := run(t, "if 1 < 2 { dbg 1 } else { dbg 2 }")
	assert.Contains(t, out, ": 1\n")
	assert.NotContains(t, out, ": 2\n")

	out, _ = run(t, "if 2 < 1 { dbg 1 } else { dbg 2 }")
	assert.Contains(t, out, ": 2\n")
	assert.NotContains(t, out, ": 1\n")
}

// S4. Arrow split: two contexts are produced, one prints 1 then yeets, the
// other prints 2 then returns; both lines appear regardless of order.
func TestScenarioArrowSplit(t *testing.T) {
	out, outcomes := run(t, "-> dbg 1\ndbg 2")
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2")
	require.Len(t, outcomes, 1, "the yeeted half contributes no outcome")
}

// S6. Nested loop: i = 0; while i < 3 { dbg i; i = i + 1 } prints 0, 1, 2
// and nothing more. Values are counted after the "ctx[<id>]: " prefix.
func TestScenarioNestedLoop(t *testing.T) {
	out, _ := run(t, "i = 0\nwhile i < 3 { dbg i\ni = i + 1 }")
	assert.Equal(t, 1, strings.Count(out, ": 0\n"))
	assert.Equal(t, 1, strings.Count(out, ": 1\n"))
	assert.Equal(t, 1, strings.Count(out, ": 2\n"))
	assert.Equal(t, 0, strings.Count(out, ": 3\n"))
}

func TestMacroCallAndCapture(t *testing.T) {
	out, outcomes := run(t, "n = 5\nadder = (x) { return x + n }\ndbg adder(1)")
	require.Len(t, outcomes, 1)
	assert.Contains(t, out, "6")
}

func TestArrayLiteralRoundTrips(t *testing.T) {
	out, outcomes := run(t, "dbg [1, 2, 3]")
	require.Len(t, outcomes, 1)
	assert.Contains(t, out, "[1, 2, 3]")
}
