// Package source owns source text and assigns stable identities to it, the
// way experimental/report's File/IndexedFile pair does in the teacher, minus
// the line-search machinery that belongs to diagnostic rendering rather than
// the core (spec.md §1 Out of scope: "diagnostic rendering to a writer").
package source

import "fmt"

// ID identifies a loaded source within a [Registry]. The zero ID is never
// assigned to a real source.
type ID int32

// Loader resolves a source identity (e.g. a file path or module name) to its
// text. It is an external collaborator: the core never does file I/O or path
// resolution itself (spec.md §1).
type Loader interface {
	Load(name string) (text string, err error)
}

// Span is a byte range [Start, End) within the source identified by ID;
// spec.md §3 defines it as the triple (start_byte, end_byte, source_id).
type Span struct {
	ID         ID
	Start, End int
}

// Join returns the smallest span containing both s and other.
//
// Joining spans from different sources is a programming error (spec.md §3:
// "cross-source extension is a programming error") and panics.
func (s Span) Join(other Span) Span {
	if s == (Span{}) {
		return other
	}
	if other == (Span{}) {
		return s
	}
	if s.ID != other.ID {
		panic(fmt.Sprintf("source: cannot join spans from different sources (%d vs %d)", s.ID, other.ID))
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{ID: s.ID, Start: start, End: end}
}

// IsValid reports whether Start <= End, the invariant spec.md §3 requires of
// every span.
func (s Span) IsValid() bool {
	return s.Start <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("#%d[%d:%d]", s.ID, s.Start, s.End)
}

// entry is one registered source.
type entry struct {
	name string
	text string
}

// Registry assigns source IDs and owns source text for the lifetime of a
// compilation session. It is populated through a [Loader]; it performs no
// I/O of its own.
type Registry struct {
	loader  Loader
	entries []entry
	byName  map[string]ID
}

// NewRegistry creates a registry that resolves names through loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{loader: loader, byName: make(map[string]ID)}
}

// Load resolves name via the registry's Loader, registers it if this is the
// first time it has been seen, and returns its stable ID.
//
// Re-loading a name already present returns the previously assigned ID
// without calling the Loader again — this is the "module import caching"
// spec.md §1 says stays in scope (as opposed to cross-source *linking*,
// which this package does not attempt).
func (r *Registry) Load(name string) (ID, error) {
	if id, ok := r.byName[name]; ok {
		return id, nil
	}
	text, err := r.loader.Load(name)
	if err != nil {
		return 0, err
	}
	return r.register(name, text), nil
}

// register directly registers source text under name without touching the
// Loader, for callers (tests, REPLs) that already have the text in hand.
func (r *Registry) register(name, text string) ID {
	r.entries = append(r.entries, entry{name: name, text: text})
	id := ID(len(r.entries))
	r.byName[name] = id
	return id
}

// Register behaves like Load but skips the Loader, taking text directly.
func (r *Registry) Register(name, text string) ID {
	if id, ok := r.byName[name]; ok {
		return id
	}
	return r.register(name, text)
}

// Text returns the full source text for id.
func (r *Registry) Text(id ID) string {
	return r.entries[int(id)-1].text
}

// Name returns the name id was registered under.
func (r *Registry) Name(id ID) string {
	return r.entries[int(id)-1].name
}

// Slice returns the text spanned by sp.
func (r *Registry) Slice(sp Span) string {
	return r.Text(sp.ID)[sp.Start:sp.End]
}
