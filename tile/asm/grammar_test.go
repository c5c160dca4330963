package asm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nodegrid/tis100sim/tile"
	"github.com/nodegrid/tis100sim/tile/asm"
)

var _ = Describe("Parse", func() {
	Describe("nullary opcodes", func() {
		It("accepts NOP, SAV, SWP and HCF with no operand", func() {
			prog, err := asm.Parse("NOP\nSAV\nSWP\nHCF\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions).To(HaveLen(4))
			Expect(prog.Instructions[0].Op).To(Equal(tile.NOP))
			Expect(prog.Instructions[1].Op).To(Equal(tile.SAV))
			Expect(prog.Instructions[2].Op).To(Equal(tile.SWP))
			Expect(prog.Instructions[3].Op).To(Equal(tile.HCF))
		})
	})

	Describe("ADD and SUB", func() {
		It("accepts an immediate source", func() {
			prog, err := asm.Parse("ADD 7\n")
			Expect(err).NotTo(HaveOccurred())
			src := prog.Instructions[0].Src
			Expect(src.Immediate).To(BeTrue())
			Expect(src.Value).To(Equal(7))
		})

		It("accepts a negative immediate", func() {
			prog, err := asm.Parse("SUB -3\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions[0].Src.Value).To(Equal(-3))
		})

		It("accepts a target source", func() {
			prog, err := asm.Parse("ADD LEFT\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions[0].Src.Target).To(Equal(tile.LEFT))
		})
	})

	Describe("MOV", func() {
		It("accepts an immediate source and a port destination", func() {
			prog, err := asm.Parse("MOV 5, DOWN\n")
			Expect(err).NotTo(HaveOccurred())
			inst := prog.Instructions[0]
			Expect(inst.Op).To(Equal(tile.MOV))
			Expect(inst.Src.Value).To(Equal(5))
			Expect(inst.Dst).To(Equal(tile.DOWN))
		})

		It("accepts ANY and LAST as either operand", func() {
			prog, err := asm.Parse("MOV ANY, ACC\nMOV LAST, ANY\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions[0].Src.Target).To(Equal(tile.ANY))
			Expect(prog.Instructions[0].Dst).To(Equal(tile.ACC))
			Expect(prog.Instructions[1].Src.Target).To(Equal(tile.LAST))
			Expect(prog.Instructions[1].Dst).To(Equal(tile.ANY))
		})

		It("rejects an immediate destination", func() {
			_, err := asm.Parse("MOV ACC, 5\n")
			Expect(err).To(HaveOccurred())
			var pe *tile.ParseError
			Expect(err).To(BeAssignableToTypeOf(pe))
		})

		It("rejects a missing destination", func() {
			_, err := asm.Parse("MOV ACC\n")
			Expect(err).To(HaveOccurred())
			pe, ok := err.(*tile.ParseError)
			Expect(ok).To(BeTrue())
			Expect(pe.Line).To(Equal(1))
		})
	})

	Describe("jump opcodes", func() {
		It("accepts a label operand and resolves it in the label table", func() {
			prog, err := asm.Parse("loop:\n  NOP\n  JMP loop\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Labels).To(HaveKeyWithValue("loop", 0))
			Expect(prog.Instructions[1].Jump.Kind).To(Equal(tile.JumpLabel))
			Expect(prog.Instructions[1].Jump.Label).To(Equal("loop"))
		})

		It("accepts a signed offset operand", func() {
			prog, err := asm.Parse("JEZ -2\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions[0].Jump.Kind).To(Equal(tile.JumpOffset))
			Expect(prog.Instructions[0].Jump.Offset).To(Equal(-2))
		})

		It("allows JRO to take any target as an indirect port operand", func() {
			prog, err := asm.Parse("JRO ACC\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions[0].Jump.Kind).To(Equal(tile.JumpPort))
			Expect(prog.Instructions[0].Jump.Port).To(Equal(tile.ACC))
		})

		It("rejects a port operand on a non-JRO jump", func() {
			_, err := asm.Parse("JMP UP\n")
			Expect(err).To(HaveOccurred())
			pe, ok := err.(*tile.ParseError)
			Expect(ok).To(BeTrue())
			Expect(pe.Reason).To(ContainSubstring("only JRO"))
		})
	})

	Describe("labels", func() {
		It("accepts more than one label prefixing the same instruction", func() {
			prog, err := asm.Parse("a: b:\n  NOP\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Labels).To(HaveKeyWithValue("a", 0))
			Expect(prog.Labels).To(HaveKeyWithValue("b", 0))
		})

		It("accepts a hyphenated label name", func() {
			prog, err := asm.Parse("loop-1:\n  JMP loop-1\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Labels).To(HaveKeyWithValue("loop-1", 0))
		})
	})

	Describe("comments and blank lines", func() {
		It("ignores ';' and '#' line comments and blank lines", func() {
			prog, err := asm.Parse("; a comment\n\n  # another\nNOP\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Instructions).To(HaveLen(1))
		})
	})

	Describe("malformed source", func() {
		It("rejects an unrecognized mnemonic", func() {
			_, err := asm.Parse("FROB ACC\n")
			Expect(err).To(HaveOccurred())
		})

		It("rejects a stray operand with no opcode", func() {
			_, err := asm.Parse("ACC\n")
			Expect(err).To(HaveOccurred())
		})

		It("locates the error by line and column", func() {
			_, err := asm.Parse("NOP\nMOV ACC\n")
			pe, ok := err.(*tile.ParseError)
			Expect(ok).To(BeTrue())
			Expect(pe.Line).To(Equal(2))
			Expect(pe.Column).To(Equal(8))
		})
	})
})
