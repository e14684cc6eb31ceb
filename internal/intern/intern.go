// Package intern provides a string-interning table used to turn identifier
// text into small comparable handles during lexing and compilation.
package intern

import (
	"fmt"
	"strings"
	"sync"
)

// Symbol is an interned string within a particular [Table].
//
// Symbols compare equal iff the strings they were interned from compare
// equal, and are cheap to copy, hash, and use as map keys. The zero Symbol
// corresponds to the empty string and requires no table lookup.
type Symbol int32

// String implements [fmt.Stringer]. It does not recover the original text;
// use [Table.Value] for that.
func (s Symbol) String() string {
	if s == 0 {
		return `intern.Symbol("")`
	}
	return fmt.Sprintf("intern.Symbol(%d)", int(s))
}

// Table interns strings into [Symbol]s for the lifetime of a compilation
// session. A zero Table is empty and ready to use.
//
// Table is safe for concurrent use, though nothing in this module currently
// interns from more than one goroutine; sources compile one at a time
// (spec.md Non-goals: concurrent compilation of multiple sources).
type Table struct {
	mu    sync.RWMutex
	index map[string]Symbol
	names []string
}

// Intern returns the Symbol for s, assigning it a fresh one on first sight.
func (t *Table) Intern(s string) Symbol {
	if s == "" {
		return 0
	}

	t.mu.RLock()
	id, ok := t.index[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	// Own the bytes: s may be a slice into a larger source buffer that the
	// caller could discard or mutate later.
	s = strings.Clone(s)

	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.index[s]; ok {
		return id
	}

	t.names = append(t.names, s)
	id = Symbol(len(t.names))
	if t.index == nil {
		t.index = make(map[string]Symbol)
	}
	t.index[s] = id
	return id
}

// Value recovers the string a Symbol was interned from.
//
// Passing a Symbol minted by a different Table is a programming error; the
// result is unspecified.
func (t *Table) Value(id Symbol) string {
	if id == 0 {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.names[int(id)-1]
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
