// Package arena implements a slab-indexed arena with stable, compressed
// handles. It backs the compiler's scope forest, the proto-bytecode block
// tree, and the VM's per-context value heap: all three need many small
// nodes that reference each other by a cheap, copyable handle rather than by
// pointer, and none of them ever free an individual element.
package arena

// Handle is an opaque reference into an [Arena]. The zero Handle is never
// returned by [Arena.New] and is reserved to mean "no handle" (it plays the
// role of a nil pointer).
type Handle uint32

// Nil is the zero Handle, meaning "absent".
const Nil Handle = 0

// Arena holds values of type T behind stable [Handle]s. Because the backing
// storage grows in geometrically-sized slabs rather than by reallocating a
// single slice, a pointer returned by [Arena.At] remains valid for the life
// of the arena even as more elements are appended.
//
// A zero Arena is empty and ready to use.
type Arena[T any] struct {
	slabs [][]T
}

const minSlabShift = 4
const minSlabLen = 1 << minSlabShift

// New allocates value on the arena and returns its handle.
func (a *Arena[T]) New(value T) Handle {
	if a.slabs == nil {
		a.slabs = [][]T{make([]T, 0, minSlabLen)}
	}

	last := len(a.slabs) - 1
	if len(a.slabs[last]) == cap(a.slabs[last]) {
		a.slabs = append(a.slabs, make([]T, 0, cap(a.slabs[last])*2))
		last++
	}

	a.slabs[last] = append(a.slabs[last], value)

	// Handles are 1-based so the zero Handle can mean "absent".
	return Handle(a.len()) // len after the append above
}

// At returns a pointer to the value referenced by h.
//
// h must have been allocated by this arena and must not be [Nil]; passing a
// handle from a different arena is a programming error and its result is
// unspecified.
func (a *Arena[T]) At(h Handle) *T {
	idx := int(h) - 1
	slab, offset := a.locate(idx)
	return &a.slabs[slab][offset]
}

// Len returns the number of elements allocated in this arena.
func (a *Arena[T]) Len() int {
	return a.len()
}

func (a *Arena[T]) len() int {
	n := 0
	for _, s := range a.slabs {
		n += len(s)
	}
	return n
}

// locate finds which slab holds logical index idx and the offset within it.
// Slab sizes double starting at minSlabLen, so the slab index is derived
// from the position of the highest set bit rather than a linear scan.
func (a *Arena[T]) locate(idx int) (slab, offset int) {
	pos := idx + minSlabLen
	hi := bitLen(uint(pos)) - 1
	slab = hi - minSlabShift
	offset = pos - (1 << hi)
	return slab, offset
}

func bitLen(x uint) int {
	n := 0
	for x != 0 {
		x >>= 1
		n++
	}
	return n
}

// All iterates every live handle/value pair in allocation order.
func (a *Arena[T]) All(yield func(Handle, *T) bool) {
	h := Handle(1)
	for _, slab := range a.slabs {
		for i := range slab {
			if !yield(h, &slab[i]) {
				return
			}
			h++
		}
	}
}
