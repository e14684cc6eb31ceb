// Package vm executes compiled bytecode (package bytecode) against
// spec.md §4.4's context-forking model: a single-threaded cooperative
// scheduler over a priority queue of execution contexts, each owning a
// disjoint value heap (package value).
//
// Grounded on the teacher's general shape of a recursive, single-pass
// walker producing diagnostics as it goes (as in its linker), generalized
// here to an iterative fetch-decode-execute loop, since the teacher itself
// has no runtime to model. The context-fork/scheduler design borrows
// breadchris-yaegi's frame-per-call-stack structuring and keys the
// scheduler off a tidwall/btree.Map, the same ordered-map primitive the
// teacher's interval package uses for its own sorted lookups.
package vm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/value"
)

// Outcome is one entry of the multiset [VM.Run] returns: spec.md §4.4's
// "(final_context, result) pairs", where a result is either a value handle
// (Witness's zero value) or an error witness.
type Outcome struct {
	ContextID uint64
	Heap      *value.Heap
	Value     value.Handle
	Witness   diag.Witness
	IsError   bool
}

// VM executes one compiled module. A VM is single-use: construct one per
// `run` façade call (spec.md §6).
type VM struct {
	module          *bytecode.Module
	diags           *diag.Context
	out             io.Writer
	maxLiveContexts int
	nextID          uint64
}

// New constructs a VM for module, reporting runtime diagnostics to diags.
// maxLiveContexts bounds the scheduler's queue depth (spec.md §5's "Budget
// bounds"); 0 means unbounded, matching the spec's own reference behaviour.
// A nil out defaults to os.Stdout, used by Dbg's "prints the top-of-stack
// value" (spec.md §4.4).
func New(module *bytecode.Module, diags *diag.Context, maxLiveContexts int, out io.Writer) *VM {
	if out == nil {
		out = os.Stdout
	}
	return &VM{module: module, diags: diags, out: out, maxLiveContexts: maxLiveContexts}
}

func (vm *VM) allocID() uint64 {
	vm.nextID++
	return vm.nextID
}

// Run creates one empty initial context at function 0 and drains the
// scheduler, implementing spec.md §6's `run` façade operation's core.
func (vm *VM) Run() []Outcome {
	sched := &scheduler{}

	fn := vm.module.Functions[0]
	initial := &Context{
		id:     vm.allocID(),
		heap:   &value.Heap{},
		frames: []*frame{newFrame(0, fn.NumLocals)},
	}
	sched.push(initial)

	var outcomes []Outcome
	for {
		ctx, ok := sched.pop()
		if !ok {
			break
		}
		// spec.md §5 "Cancellation": once an error has been recorded, drain
		// remaining contexts without running further opcodes.
		if vm.diags.HasErrors() {
			continue
		}

		status, result := vm.step(ctx, sched)
		switch status {
		case stepOngoing:
			sched.push(ctx)
		case stepDone:
			witness, isErr := vm.diags.Witness()
			outcomes = append(outcomes, Outcome{
				ContextID: ctx.id, Heap: ctx.heap, Value: result,
				Witness: witness, IsError: isErr,
			})
		case stepYeeted, stepAborted:
			// No outcome: YeetContext discards deliberately (spec.md
			// §4.4); an aborted context was discarded after a runtime
			// error (spec.md §7).
		}
	}
	return outcomes
}

type stepStatus int

const (
	stepOngoing stepStatus = iota
	stepDone
	stepYeeted
	stepAborted
)

// step executes exactly one instruction of ctx's innermost frame — the
// scheduler's only preemption points are between opcodes (spec.md §5).
func (vm *VM) step(ctx *Context, sched *scheduler) (stepStatus, value.Handle) {
	fr := ctx.cur()
	fn := &vm.module.Functions[fr.funcID]
	if fr.ip >= len(fn.Code) {
		// No function in this revision falls off its own end without an
		// explicit Return (the compiler always appends one), but treat it
		// as returning unit rather than panicking if one ever does.
		h := ctx.heap.Alloc(value.Empty(), source.Span{})
		return vm.doReturn(ctx, h)
	}

	instr := fn.Code[fr.ip]
	switch instr.Op {
	case bytecode.Nop:
		fr.ip++

	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Mod, bytecode.Pow,
		bytecode.Eq, bytecode.Ne, bytecode.Lt, bytecode.Le, bytecode.Gt, bytecode.Ge,
		bytecode.And, bytecode.Or:
		rhs := ctx.heap.Get(fr.pop()).Value
		lhs := ctx.heap.Get(fr.pop()).Value
		result, ok := numericBinOp(instr.Op, lhs, rhs)
		if !ok {
			vm.diags.Errorf(instr.Span, "TypeMismatch",
				"operator %s does not accept operands of kind %s and %s", instr.Op, lhs.Kind, rhs.Kind)
			return stepAborted, value.Handle(0)
		}
		fr.push(ctx.heap.Alloc(result, instr.Span))
		fr.ip++

	case bytecode.Not, bytecode.Neg:
		operand := ctx.heap.Get(fr.pop()).Value
		result, ok := unaryOp(instr.Op, operand)
		if !ok {
			vm.diags.Errorf(instr.Span, "TypeMismatch", "operator %s does not accept operand of kind %s", instr.Op, operand.Kind)
			return stepAborted, value.Handle(0)
		}
		fr.push(ctx.heap.Alloc(result, instr.Span))
		fr.ip++

	case bytecode.LoadConst:
		fr.push(ctx.heap.Alloc(constValue(vm.module.Consts[instr.Operand]), instr.Span))
		fr.ip++

	case bytecode.LoadVar:
		h := fr.locals[instr.Operand]
		if h == 0 {
			vm.diags.Errorf(instr.Span, "UninitialisedVariable", "local slot %d read before initialization", instr.Operand)
			return stepAborted, value.Handle(0)
		}
		fr.push(h)
		fr.ip++

	case bytecode.SetVar:
		top := fr.pop()
		stored := ctx.heap.Get(top)
		v := copyValue(stored.Value)
		if fr.locals[instr.Operand] == 0 {
			fr.locals[instr.Operand] = ctx.heap.Alloc(v, stored.DefSpan)
		} else {
			ctx.heap.Set(fr.locals[instr.Operand], v, stored.DefSpan)
		}
		fr.ip++

	case bytecode.ChangeVarKey:
		fr.locals[instr.Operand] = fr.pop()
		fr.ip++

	case bytecode.PopTop:
		fr.pop()
		fr.ip++

	case bytecode.MakeArray:
		n := int(instr.Operand)
		elems := make([]value.Handle, n)
		for i := n - 1; i >= 0; i-- {
			elems[i] = fr.pop()
		}
		fr.push(ctx.heap.Alloc(value.Array(elems), instr.Span))
		fr.ip++

	case bytecode.Jump:
		fr.ip = int(instr.Operand)

	case bytecode.JumpIfFalse:
		cond := ctx.heap.Get(fr.pop()).Value
		if value.Truthy(cond) {
			fr.ip++
		} else {
			fr.ip = int(instr.Operand)
		}

	case bytecode.JumpIfTrue:
		cond := ctx.heap.Get(fr.pop()).Value
		if value.Truthy(cond) {
			fr.ip = int(instr.Operand)
		} else {
			fr.ip++
		}

	case bytecode.EnterArrowStatement:
		if vm.maxLiveContexts == 0 || sched.len()+1 < vm.maxLiveContexts {
			clone := ctx.clone(vm.allocID())
			clone.cur().ip = int(instr.Operand)
			sched.push(clone)
		} else {
			vm.diags.Warnf(instr.Span, "ContextBudgetExceeded", "dropping an arrow-statement fork: live-context budget of %d reached", vm.maxLiveContexts)
		}
		fr.ip++

	case bytecode.YeetContext:
		return stepYeeted, value.Handle(0)

	case bytecode.MismatchThrowIfFalse:
		matched := value.Truthy(ctx.heap.Get(fr.pop()).Value)
		if !matched {
			// The context is not stopped here, but the recorded error
			// makes Run drain every remaining context, this one included,
			// without running further opcodes or recording an outcome.
			vm.diags.Errorf(instr.Span, "PatternMismatch", "value did not match the required pattern")
		}
		fr.ip++

	case bytecode.MakeMacro:
		funcID := int(instr.Operand)
		target := vm.module.Functions[funcID]
		captured := make(map[int]value.Handle, len(target.Captures))
		for slot, enclosingSlot := range target.Captures {
			captured[slot] = fr.locals[enclosingSlot]
		}
		fr.push(ctx.heap.Alloc(value.Value{Kind: value.KindMacro, Macro: value.Macro{FuncID: funcID, Captured: captured}}, instr.Span))
		fr.ip++

	case bytecode.Call:
		return vm.doCall(ctx, fr, instr)

	case bytecode.Return:
		return vm.doReturn(ctx, fr.pop())

	case bytecode.Dbg:
		top := ctx.heap.Get(fr.peek()).Value
		fmt.Fprintf(vm.out, "ctx[%d]: %s\n", ctx.id, formatValue(ctx.heap, top))
		fr.ip++

	default:
		vm.diags.Errorf(instr.Span, "UnsupportedOpcode", "opcode %s has no VM implementation", instr.Op)
		fr.ip++
	}

	return stepOngoing, value.Handle(0)
}

// doCall implements spec.md §4.4's Call(id) rule. Arguments are popped in
// reverse (stack order) and re-pushed onto the callee frame in the same
// reverse order, so the first parameter pattern check — which itself pops
// from the top — consumes argument 0 first, matching left-to-right
// parameter order. CallExpr.ArgMutable is compile-time metadata for a
// by-reference calling convention this revision does not implement at
// runtime; every argument is passed by the SetVar/pattern-bind path.
func (vm *VM) doCall(ctx *Context, caller *frame, instr bytecode.Instr) (stepStatus, value.Handle) {
	callExpr := vm.module.CallExprs[instr.Operand]
	numArgs := len(callExpr.ArgMutable)

	args := make([]value.Handle, numArgs)
	for i := numArgs - 1; i >= 0; i-- {
		args[i] = caller.pop()
	}
	callee := ctx.heap.Get(caller.pop()).Value
	if callee.Kind != value.KindMacro {
		vm.diags.Errorf(instr.Span, "NotCallable", "call target is not a macro value (kind %s)", callee.Kind)
		return stepAborted, value.Handle(0)
	}

	target := vm.module.Functions[callee.Macro.FuncID]
	if numArgs != target.NumParams {
		vm.diags.Errorf(instr.Span, "ArityMismatch", "call passes %d arguments, macro expects %d", numArgs, target.NumParams)
		return stepAborted, value.Handle(0)
	}

	newFr := newFrame(callee.Macro.FuncID, target.NumLocals)
	for slot, h := range callee.Macro.Captured {
		newFr.locals[slot] = h
	}
	for i := numArgs - 1; i >= 0; i-- {
		newFr.push(args[i])
	}
	ctx.frames = append(ctx.frames, newFr)
	return stepOngoing, value.Handle(0)
}

// doReturn implements spec.md §4.4's Return rule: pop the current frame,
// and either hand the value to the caller's operand stack (advancing its IP
// past the Call it issued) or, if there is no caller, finish the context.
func (vm *VM) doReturn(ctx *Context, result value.Handle) (stepStatus, value.Handle) {
	ctx.frames = ctx.frames[:len(ctx.frames)-1]
	if len(ctx.frames) == 0 {
		return stepDone, result
	}
	caller := ctx.cur()
	caller.ip++
	caller.push(result)
	return stepOngoing, value.Handle(0)
}

func constValue(c bytecode.Const) value.Value {
	switch c.Kind {
	case bytecode.ConstInt:
		return value.Int(c.Int)
	case bytecode.ConstFloat:
		return value.Float(c.Float)
	case bytecode.ConstBool:
		return value.Bool(c.Bool)
	default:
		return value.Empty()
	}
}

// copyValue gives SetVar a value independent of whatever handle it was read
// from (spec.md §4.4: "deep-copies the top of the stack into... the slot"),
// without reallocating nested handles: those stay valid since SetVar always
// operates within one heap.
func copyValue(v value.Value) value.Value {
	if v.Elems != nil {
		v.Elems = append([]value.Handle(nil), v.Elems...)
	}
	if v.Macro.Captured != nil {
		captured := make(map[int]value.Handle, len(v.Macro.Captured))
		for k, h := range v.Macro.Captured {
			captured[k] = h
		}
		v.Macro.Captured = captured
	}
	return v
}

func formatValue(h *value.Heap, v value.Value) string {
	switch v.Kind {
	case value.KindInt:
		return fmt.Sprintf("%d", v.Int)
	case value.KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case value.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case value.KindEmpty:
		return "()"
	case value.KindArray:
		parts := make([]string, len(v.Elems))
		for i, elem := range v.Elems {
			parts[i] = formatValue(h, h.Get(elem).Value)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.KindMacro:
		return fmt.Sprintf("<macro %d>", v.Macro.FuncID)
	default:
		return "<?>"
	}
}
