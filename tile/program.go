package tile

import (
	"sort"
	"strings"
)

// Program is an ordered list of instructions plus a label name to
// instruction-index mapping. Programs are restartable and cyclic: a
// ComputeTile loops its PC back to 0 once it runs off the end.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int
}

// Len reports the number of instructions in the program.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Instructions)
}

// Text renders the program's canonical textual form. Re-assembling the
// result yields a Program with an equivalent Instructions slice: opcodes,
// operands and jump semantics are preserved even though synthetic label
// placement and disassembly formatting may differ from the original
// source.
func (p *Program) Text() string {
	if p == nil {
		return ""
	}
	labelsAt := make(map[int][]string, len(p.Labels))
	for name, idx := range p.Labels {
		labelsAt[idx] = append(labelsAt[idx], name)
	}
	for _, names := range labelsAt {
		sort.Strings(names)
	}

	var b strings.Builder
	for i, inst := range p.Instructions {
		for _, name := range labelsAt[i] {
			b.WriteString(name)
			b.WriteString(":\n")
		}
		b.WriteString(instructionText(inst))
		b.WriteByte('\n')
	}
	return b.String()
}

func instructionText(inst Instruction) string {
	switch inst.Op {
	case NOP, SAV, SWP, HCF:
		return inst.Op.String()
	case ADD, SUB:
		return inst.Op.String() + " " + inst.Src.String()
	case MOV:
		return "MOV " + inst.Src.String() + ", " + inst.Dst.String()
	case JMP, JEZ, JNZ, JGZ, JLZ, JRO:
		return inst.Op.String() + " " + inst.Jump.String()
	}
	return inst.Op.String()
}
