package bytecode

import "github.com/triggerlang/core/source"

// Instr is one resolved instruction: an opcode, its 4-byte operand (meaning
// depends on Op), and the span it was compiled from.
type Instr struct {
	Op      Op
	Operand int32
	Span    source.Span
}

// Const is one constant-pool entry (spec.md §3: "integers, floats, booleans,
// unit").
type Const struct {
	Kind  ConstKind
	Int   int64
	Float float64
	Bool  bool
}

type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstEmpty
)

// CallExpr is one call-expression pool entry: for each positional argument,
// whether the argument expression is a path rooted at a mutable variable
// (spec.md §4.3's "Call" lowering rule).
type CallExpr struct {
	ArgMutable []bool
}

// Function holds one function's flat instruction vector and its local-slot
// count. Function 0 of a module is the implicit top-level entry point
// spec.md §6's `run` operation starts from.
type Function struct {
	Name      string // empty for the top-level function
	NumParams int
	NumLocals int
	Code      []Instr

	// Captures lists, for a macro-literal function, the enclosing
	// function's local slot to snapshot for each of this function's own
	// slots [0, len(Captures)) at MakeMacro time (spec.md §3's invariant
	// on the macro-literal opcode's captured-slot snapshot). Empty for the
	// top-level function, which captures nothing.
	Captures []int
}

// Module is the per-source compiled artifact: constant pool,
// call-expression pool, and function table (spec.md §3).
type Module struct {
	SourceID  source.ID
	Consts    []Const
	CallExprs []CallExpr
	Functions []Function
}

// AddConst interns a constant into the module's constant pool, returning its
// index. Constants are not deduplicated by the spec, but doing so is a
// harmless optimization that does not change observable behaviour, so
// identical integer/float/bool constants share a slot.
func (m *Module) AddConst(c Const) int {
	for i, existing := range m.Consts {
		if existing == c {
			return i
		}
	}
	m.Consts = append(m.Consts, c)
	return len(m.Consts) - 1
}

// AddCallExpr appends a call-expression pool entry and returns its index.
func (m *Module) AddCallExpr(c CallExpr) int {
	m.CallExprs = append(m.CallExprs, c)
	return len(m.CallExprs) - 1
}

// AddFunction appends a function to the module and returns its id.
func (m *Module) AddFunction(f Function) int {
	m.Functions = append(m.Functions, f)
	return len(m.Functions) - 1
}
