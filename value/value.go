// Package value implements the runtime value model spec.md §3 describes: a
// tagged Value union, a per-context heap arena keyed by opaque handles, and
// the deep-clone discipline forking contexts rely on (spec.md §4.4, §5).
package value

import (
	"fmt"

	"github.com/triggerlang/core/internal/arena"
	"github.com/triggerlang/core/source"
)

// Handle is a heap-local reference to a [Stored] value. Handles from one
// [Heap] must never be dereferenced against another; the VM enforces this
// by giving every execution context its own disjoint Heap (spec.md §4.4
// "Deep-clone discipline").
type Handle = arena.Handle

// Kind discriminates a Value's active field.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindInt
	KindFloat
	KindBool
	KindArray
	KindMacro
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindMacro:
		return "macro"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Macro is a first-class closure value: a function id plus a snapshot of
// the captured slots it closed over (spec.md §3, §3 invariants).
type Macro struct {
	FuncID    int
	Captured  map[int]Handle
}

// Value is the tagged runtime value union spec.md §3 lists: integer, float,
// boolean, array (sequence of heap handles), macro, empty.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Elems []Handle
	Macro Macro
}

func Empty() Value                { return Value{Kind: KindEmpty} }
func Int(n int64) Value           { return Value{Kind: KindInt, Int: n} }
func Float(f float64) Value       { return Value{Kind: KindFloat, Float: f} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func Array(elems []Handle) Value  { return Value{Kind: KindArray, Elems: elems} }

func Truthy(v Value) bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindEmpty:
		return false
	default:
		return true
	}
}

// Stored is a Value together with the span it was defined at, used only for
// diagnostics (spec.md §3: "A stored value adds a definition-span").
type Stored struct {
	Value   Value
	DefSpan source.Span
}

// Heap is the per-context value arena. Keys are never reused while a
// context is alive: the arena backing it never frees individual entries
// (spec.md §3's "keys are never reused while a value is live" is satisfied
// trivially by never recycling arena slots).
type Heap struct {
	arena arena.Arena[Stored]
}

// Alloc stores v and returns its handle.
func (h *Heap) Alloc(v Value, def source.Span) Handle {
	return h.arena.New(Stored{Value: v, DefSpan: def})
}

// Get returns the stored value at handle.
func (h *Heap) Get(handle Handle) *Stored {
	return h.arena.At(handle)
}

// Set overwrites the value at handle in place. SetVar uses it when the slot
// already holds a handle, so every slot aliasing that handle (see
// ChangeVarKey) sees the new value.
func (h *Heap) Set(handle Handle, v Value, def source.Span) {
	s := h.arena.At(handle)
	s.Value = v
	s.DefSpan = def
}

// Len returns the number of handles ever allocated in h.
func (h *Heap) Len() int { return h.arena.Len() }

// Clone returns a disjoint copy of h with every handle preserved 1:1 (handle
// 1 in the clone names a copy of whatever handle 1 names in h, and so on):
// because handles are allocated densely and never recycled, this lets a
// cloned context's frames keep referencing their existing handles unchanged.
// Used by the VM's EnterArrowStatement, which forks a context by
// "deep-copying its heap and stack frames" as a unit (spec.md §4.4) — a
// coarser operation than [DeepClone]'s single-value-graph copy between two
// heaps.
func (h *Heap) Clone() *Heap {
	clone := &Heap{}
	h.arena.All(func(_ arena.Handle, s *Stored) bool {
		v := s.Value
		if v.Elems != nil {
			v.Elems = append([]Handle(nil), v.Elems...)
		}
		if v.Macro.Captured != nil {
			captured := make(map[int]Handle, len(v.Macro.Captured))
			for k, hv := range v.Macro.Captured {
				captured[k] = hv
			}
			v.Macro.Captured = captured
		}
		clone.arena.New(Stored{Value: v, DefSpan: s.DefSpan})
		return true
	})
	return clone
}

// DeepClone copies the value graph rooted at handle (allocated in src) into
// dst, returning the new handle. Because the value set has no cycles
// (spec.md §4.4: "cyclic arrays are not representable"), this recursion
// always terminates.
func DeepClone(dst, src *Heap, handle Handle) Handle {
	stored := src.Get(handle)
	v := stored.Value
	if v.Kind == KindArray {
		cloned := make([]Handle, len(v.Elems))
		for i, elemHandle := range v.Elems {
			cloned[i] = DeepClone(dst, src, elemHandle)
		}
		v = Array(cloned)
	}
	return dst.Alloc(v, stored.DefSpan)
}

// Equal performs structural equality, used by tests verifying spec.md §8
// invariant 5 ("deep clone of a value v is structurally equal to v").
func Equal(a *Heap, ha Handle, b *Heap, hb Handle) bool {
	va, vb := a.Get(ha).Value, b.Get(hb).Value
	if va.Kind != vb.Kind {
		return false
	}
	switch va.Kind {
	case KindInt:
		return va.Int == vb.Int
	case KindFloat:
		return va.Float == vb.Float
	case KindBool:
		return va.Bool == vb.Bool
	case KindEmpty:
		return true
	case KindArray:
		if len(va.Elems) != len(vb.Elems) {
			return false
		}
		for i := range va.Elems {
			if !Equal(a, va.Elems[i], b, vb.Elems[i]) {
				return false
			}
		}
		return true
	case KindMacro:
		return va.Macro.FuncID == vb.Macro.FuncID
	}
	return false
}
