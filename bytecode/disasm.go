package bytecode

import (
	"fmt"
	"io"
	"strings"

	"github.com/triggerlang/core/source"
)

// Disassemble writes one row per instruction of fn to w: index, opcode name,
// its operand, span, and the source snippet the span covers
// (spec.md §6.3). labels optionally annotates a jump target's resolved
// position with the symbolic origin it was lowered from (spec.md
// SPEC_FULL.md §C: "annotated with the block-relative symbolic origin").
func Disassemble(w io.Writer, name string, fn *Function, reg *source.Registry, labels map[int]string) {
	title := name
	if title == "" {
		title = "<toplevel>"
	}
	fmt.Fprintf(w, "function %s (locals=%d)\n", title, fn.NumLocals)

	for i, instr := range fn.Code {
		operand := ""
		if instr.Op.HasOperand() {
			operand = fmt.Sprintf("%d", instr.Operand)
			if instr.Op.IsJump() {
				if label, ok := labels[i]; ok {
					operand = fmt.Sprintf("%d  ; -> %s", instr.Operand, label)
				}
			}
		}

		snippet := ""
		if reg != nil && instr.Span != (source.Span{}) {
			snippet = strings.ReplaceAll(reg.Slice(instr.Span), "\n", "\\n")
		}

		fmt.Fprintf(w, "%4d  %-22s %-20s %-12s %s\n", i, instr.Op, operand, instr.Span, snippet)
	}
}

// DisassembleModule disassembles every function in m.
func DisassembleModule(w io.Writer, m *Module, reg *source.Registry) {
	for i := range m.Functions {
		Disassemble(w, m.Functions[i].Name, &m.Functions[i], reg, nil)
		fmt.Fprintln(w)
	}
}
