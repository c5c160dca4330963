package asm

import (
	"github.com/nodegrid/tis100sim/tile"
)

// Parse assembles source into a Program, or returns a *tile.ParseError
// locating the first syntax error. Parsing fails fast: it never
// attempts error recovery past the first offending line.
func Parse(source string) (*tile.Program, error) {
	p := &parser{toks: newLexer(source).tokens(), prog: &tile.Program{Labels: map[string]int{}}}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.prog, nil
}

type parser struct {
	toks []token
	pos  int
	prog *tile.Program
}

func (p *parser) peek() token  { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorAt(t token, reason string) error {
	return &tile.ParseError{Line: t.line, Column: t.column, Lexeme: t.text, Reason: reason}
}

func (p *parser) run() error {
	for {
		p.skipNewlines()
		if p.peek().kind == tokEOF {
			return nil
		}
		if err := p.line(); err != nil {
			return err
		}
	}
}

func (p *parser) skipNewlines() {
	for p.peek().kind == tokNewline {
		p.advance()
	}
}

func (p *parser) line() error {
	// One or more labels may prefix an instruction on the same line:
	// "start: loop: MOV 0, ACC".
	for p.peek().kind == tokWord {
		save := p.pos
		name := p.peek()
		p.advance()
		if p.peek().kind == tokColon {
			p.advance()
			p.prog.Labels[name.text] = len(p.prog.Instructions)
			continue
		}
		p.pos = save
		break
	}

	if p.peek().kind == tokNewline || p.peek().kind == tokEOF {
		return p.endOfLine()
	}

	inst, err := p.instruction()
	if err != nil {
		return err
	}
	p.prog.Instructions = append(p.prog.Instructions, inst)
	return p.endOfLine()
}

func (p *parser) endOfLine() error {
	t := p.peek()
	switch t.kind {
	case tokNewline, tokEOF:
		if t.kind == tokNewline {
			p.advance()
		}
		return nil
	default:
		return p.errorAt(t, "expected end of line")
	}
}

var nullaryOps = map[string]tile.Opcode{
	"NOP": tile.NOP,
	"SAV": tile.SAV,
	"SWP": tile.SWP,
	"HCF": tile.HCF,
}

var unaryOps = map[string]tile.Opcode{
	"ADD": tile.ADD,
	"SUB": tile.SUB,
}

var jumpOps = map[string]tile.Opcode{
	"JMP": tile.JMP,
	"JEZ": tile.JEZ,
	"JNZ": tile.JNZ,
	"JGZ": tile.JGZ,
	"JLZ": tile.JLZ,
	"JRO": tile.JRO,
}

var targetNames = map[string]tile.Target{
	"NIL":   tile.NIL,
	"ACC":   tile.ACC,
	"UP":    tile.UP,
	"DOWN":  tile.DOWN,
	"LEFT":  tile.LEFT,
	"RIGHT": tile.RIGHT,
	"ANY":   tile.ANY,
	"LAST":  tile.LAST,
}

func (p *parser) instruction() (tile.Instruction, error) {
	t := p.peek()
	if t.kind != tokWord {
		return tile.Instruction{}, p.errorAt(t, "expected an instruction")
	}
	mnemonic := t.text

	if op, ok := nullaryOps[mnemonic]; ok {
		p.advance()
		return tile.Instruction{Op: op}, nil
	}
	if op, ok := unaryOps[mnemonic]; ok {
		p.advance()
		src, err := p.operand()
		if err != nil {
			return tile.Instruction{}, err
		}
		return tile.Instruction{Op: op, Src: src}, nil
	}
	if mnemonic == "MOV" {
		p.advance()
		src, err := p.operand()
		if err != nil {
			return tile.Instruction{}, err
		}
		comma := p.peek()
		if comma.kind != tokComma {
			return tile.Instruction{}, p.errorAt(comma, "MOV requires a destination operand")
		}
		p.advance()
		dst, err := p.target()
		if err != nil {
			return tile.Instruction{}, err
		}
		return tile.Instruction{Op: tile.MOV, Src: src, Dst: dst}, nil
	}
	if op, ok := jumpOps[mnemonic]; ok {
		p.advance()
		jt, err := p.jumpTarget(op == tile.JRO)
		if err != nil {
			return tile.Instruction{}, err
		}
		return tile.Instruction{Op: op, Jump: jt}, nil
	}

	return tile.Instruction{}, p.errorAt(t, "unrecognized mnemonic")
}

// operand parses an ADD/SUB/MOV source: an immediate integer or a
// target name (Port targets, ACC, NIL, ANY, LAST).
func (p *parser) operand() (tile.Operand, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.advance()
		return tile.Operand{Immediate: true, Value: t.value}, nil
	case tokWord:
		tgt, ok := targetNames[t.text]
		if !ok {
			return tile.Operand{}, p.errorAt(t, "expected a source operand")
		}
		p.advance()
		return tile.Operand{Target: tgt}, nil
	default:
		return tile.Operand{}, p.errorAt(t, "expected a source operand")
	}
}

// target parses a MOV destination: any Target name, including NIL, ACC,
// ANY, LAST and the four ports.
func (p *parser) target() (tile.Target, error) {
	t := p.peek()
	if t.kind != tokWord {
		return tile.TargetNone, p.errorAt(t, "expected a destination operand")
	}
	tgt, ok := targetNames[t.text]
	if !ok {
		return tile.TargetNone, p.errorAt(t, "unrecognized destination operand")
	}
	p.advance()
	return tgt, nil
}

// jumpTarget parses a jump operand: a label, a signed offset, or — for
// JRO only — a port Target.
func (p *parser) jumpTarget(allowPort bool) (tile.JumpTarget, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.advance()
		return tile.JumpTarget{Kind: tile.JumpOffset, Offset: t.value}, nil
	case tokWord:
		if tgt, ok := targetNames[t.text]; ok {
			if !allowPort {
				return tile.JumpTarget{}, p.errorAt(t, "only JRO accepts a port operand")
			}
			p.advance()
			return tile.JumpTarget{Kind: tile.JumpPort, Port: tgt}, nil
		}
		p.advance()
		return tile.JumpTarget{Kind: tile.JumpLabel, Label: t.text}, nil
	default:
		return tile.JumpTarget{}, p.errorAt(t, "expected a jump target")
	}
}
