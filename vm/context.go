package vm

import "github.com/triggerlang/core/value"

// frame is one call frame: the function it is executing, its instruction
// pointer, its local slots, and its operand stack. Slots start at
// arena.Nil ("uninitialised") until the first SetVar/ChangeVarKey or a Call
// argument/capture populates them.
type frame struct {
	funcID int
	ip     int
	locals []value.Handle
	stack  []value.Handle
}

func newFrame(funcID, numLocals int) *frame {
	return &frame{funcID: funcID, locals: make([]value.Handle, numLocals)}
}

func (f *frame) push(h value.Handle) { f.stack = append(f.stack, h) }

func (f *frame) pop() value.Handle {
	n := len(f.stack) - 1
	h := f.stack[n]
	f.stack = f.stack[:n]
	return h
}

func (f *frame) peek() value.Handle { return f.stack[len(f.stack)-1] }

// Context is one independent thread of execution: its own heap (spec.md
// §4.4's "Deep-clone discipline" — contexts never share a heap) and its own
// call-frame stack. id is assigned monotonically by the VM and used only to
// break ties deterministically when two contexts share an instruction
// pointer (spec.md §5's "Ordering guarantees").
type Context struct {
	id     uint64
	heap   *value.Heap
	frames []*frame
}

func (c *Context) cur() *frame { return c.frames[len(c.frames)-1] }

// ip reports the instruction pointer the scheduler should key this context
// on: the innermost frame's, since that is what is about to execute next.
func (c *Context) ip() int { return c.cur().ip }

// clone deep-copies c's entire heap and frame stack for EnterArrowStatement
// (spec.md §4.4: "clone the current context, deep-copying its heap and
// stack frames"). Because [value.Heap.Clone] preserves handle identity 1:1,
// every locals/stack slot in the cloned frames is copied by value (a plain
// Handle, i.e. an integer) and still names the right value in the new heap.
func (c *Context) clone(newID uint64) *Context {
	clonedHeap := c.heap.Clone()
	clonedFrames := make([]*frame, len(c.frames))
	for i, fr := range c.frames {
		nf := &frame{funcID: fr.funcID, ip: fr.ip}
		nf.locals = append([]value.Handle(nil), fr.locals...)
		nf.stack = append([]value.Handle(nil), fr.stack...)
		clonedFrames[i] = nf
	}
	return &Context{id: newID, heap: clonedHeap, frames: clonedFrames}
}
