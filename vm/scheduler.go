package vm

import "github.com/tidwall/btree"

// scheduler is the priority queue of active contexts keyed by instruction
// pointer (lowest IP first), tie-broken by a monotonically assigned context
// id (spec.md §4.4 "Context scheduler", §5 "Ordering guarantees"). Both
// fields pack into one uint64 key so a plain ordered map does the sorting,
// the way the teacher's interval package keys an ordered btree.Map on a
// single comparable field rather than a custom comparator.
type scheduler struct {
	tree btree.Map[uint64, *Context]
}

func schedKey(ip int, id uint64) uint64 {
	return uint64(uint32(ip))<<32 | (id & 0xffffffff)
}

func (s *scheduler) push(ctx *Context) {
	s.tree.Set(schedKey(ctx.ip(), ctx.id), ctx)
}

// pop removes and returns the context with the lowest (ip, id) key, or
// reports false if the scheduler is empty.
func (s *scheduler) pop() (*Context, bool) {
	it := s.tree.Iter()
	if !it.First() {
		return nil, false
	}
	key, ctx := it.Key(), it.Value()
	s.tree.Delete(key)
	return ctx, true
}

func (s *scheduler) len() int { return s.tree.Len() }
