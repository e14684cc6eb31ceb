// Package scope implements the compile-time scope forest spec.md §3
// describes: a slab arena of scopes, each holding a symbol table and an
// optional parent handle, so inserting a child never invalidates a parent
// reference (grounded on internal/arena's handle discipline).
package scope

import (
	"github.com/triggerlang/core/internal/arena"
	"github.com/triggerlang/core/internal/intern"
	"github.com/triggerlang/core/source"
)

// Tag classifies what kind of construct opened a scope.
type Tag int

const (
	TagGlobal Tag = iota
	TagLoop
	TagMacroBody
	TagTriggerFunc
	TagArrowStmt
	TagBlock // if/while/for/block-expression child scopes with no other tag
)

// Binding records what a symbol resolves to within a [Scope].
type Binding struct {
	Symbol   intern.Symbol
	Mutable  bool
	DefSpan  source.Span
	Slot     int
}

// Scope is one node in the compile-time scope forest.
type Scope struct {
	Parent arena.Handle // arena.Nil at the root
	Tag    Tag

	// LoopBlock points at the block handle a TagLoop scope wraps: the block
	// whose End `break` and whose Start `continue` jump to.
	LoopBlock arena.Handle

	// ArrowSpan is the `->` token's span, for TagArrowStmt scopes.
	ArrowSpan source.Span

	// RetPat is the macro's declared return pattern, if any, for
	// TagMacroBody scopes.
	RetPat any

	bindings map[intern.Symbol]Binding
}

// Arena owns every Scope allocated during compilation of one source.
type Arena struct {
	scopes arena.Arena[Scope]
}

// NewGlobal allocates the root scope.
func (a *Arena) NewGlobal() arena.Handle {
	return a.scopes.New(Scope{Parent: arena.Nil, Tag: TagGlobal, bindings: map[intern.Symbol]Binding{}})
}

// NewChild allocates a scope whose parent is h.
func (a *Arena) NewChild(h arena.Handle, tag Tag) arena.Handle {
	return a.scopes.New(Scope{Parent: h, Tag: tag, bindings: map[intern.Symbol]Binding{}})
}

// NewDetached allocates a scope with no parent, for a macro body's fresh
// scope chain (spec.md §4.3: "Each macro body opens a fresh scope chain
// with no parent").
func (a *Arena) NewDetached(tag Tag) arena.Handle {
	return a.scopes.New(Scope{Parent: arena.Nil, Tag: tag, bindings: map[intern.Symbol]Binding{}})
}

// At returns the scope at h.
func (a *Arena) At(h arena.Handle) *Scope {
	return a.scopes.At(h)
}

// Declare introduces sym into the scope at h, bound to local slot slot. The
// slot is chosen by the caller (the compiler tracks per-function slot
// counters; spec.md ties "local_slot" to the enclosing function, not the
// scope).
func (a *Arena) Declare(h arena.Handle, sym intern.Symbol, mutable bool, def source.Span, slot int) {
	s := a.scopes.At(h)
	s.bindings[sym] = Binding{Symbol: sym, Mutable: mutable, DefSpan: def, Slot: slot}
}

// Lookup walks the parent chain from h looking for sym, per spec.md §3
// ("Symbol lookup walks the parent chain").
func (a *Arena) Lookup(h arena.Handle, sym intern.Symbol) (Binding, bool) {
	for cur := h; cur != arena.Nil; {
		s := a.scopes.At(cur)
		if b, ok := s.bindings[sym]; ok {
			return b, true
		}
		cur = s.Parent
	}
	return Binding{}, false
}

// EnclosingLoop walks up from h looking for the nearest TagLoop scope,
// returning its handle. Used to validate `break`/`continue`
// (spec.md §4.3/§7).
func (a *Arena) EnclosingLoop(h arena.Handle) (arena.Handle, bool) {
	for cur := h; cur != arena.Nil; {
		s := a.scopes.At(cur)
		if s.Tag == TagLoop {
			return cur, true
		}
		cur = s.Parent
	}
	return arena.Nil, false
}

// EnclosingMacroBody walks up from h looking for the nearest TagMacroBody
// scope. An ArrowStmt scope nested inside a macro body still resolves to
// that macro body (spec.md §4.3: "return is legal... under an arrow
// statement nested inside one").
func (a *Arena) EnclosingMacroBody(h arena.Handle) (arena.Handle, bool) {
	for cur := h; cur != arena.Nil; {
		s := a.scopes.At(cur)
		if s.Tag == TagMacroBody {
			return cur, true
		}
		cur = s.Parent
	}
	return arena.Nil, false
}
