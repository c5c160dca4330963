package tile

// computeState enumerates a ComputeTile's execution state, per the
// Unprogrammed/Run/Read/ReadComplete/Write/WriteComplete machine.
type computeState int

const (
	csUnprogrammed computeState = iota
	csRun
	csRead
	csReadComplete
	csWrite
	csWriteComplete
)

// ComputeTile executes an assembled Program: it owns PC, ACC, BAK, TEMP
// and LAST, and decodes one instruction's effects across the Read,
// Compute, Write and Step phases of each cycle.
type ComputeTile struct {
	tileBase

	X, Y int

	program *Program
	state   computeState
	pc      int
	acc     int
	bak     int
	temp    int
	last    Target

	pendingReadAny  bool
	pendingWriteAny bool

	err error
}

// NewComputeTile returns a tile at grid position (x, y) running program.
// A nil or empty program leaves the tile Unprogrammed.
func NewComputeTile(x, y int, program *Program) *ComputeTile {
	return &ComputeTile{X: x, Y: y, program: program}
}

// Err returns the fatal error that halted this tile, if any (HCF, an
// illegal instruction, or an indeterminate jump).
func (t *ComputeTile) Err() error {
	return t.err
}

// PC returns the current program counter.
func (t *ComputeTile) PC() int { return t.pc }

// ACC returns the accumulator register.
func (t *ComputeTile) ACC() int { return t.acc }

// BAK returns the backup register.
func (t *ComputeTile) BAK() int { return t.bak }

func (t *ComputeTile) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

// Initialize resets all transient state. Channels persist; their pending
// flags are cleared here.
func (t *ComputeTile) Initialize() {
	t.pc = 0
	t.acc, t.bak, t.temp = 0, 0, 0
	t.last = TargetNone
	t.pendingReadAny = false
	t.pendingWriteAny = false
	t.err = nil
	if t.program != nil && len(t.program.Instructions) > 0 {
		t.state = csRun
	} else {
		t.state = csUnprogrammed
	}
	t.resetChannels(t)
}

func (t *ComputeTile) currentInstruction() Instruction {
	return t.program.Instructions[t.pc]
}

// Read decodes the current instruction's source operand, if any, possibly
// blocking on a neighbor channel.
func (t *ComputeTile) Read() {
	switch t.state {
	case csReadComplete:
		t.state = csRun
		return
	case csRun:
	default:
		return
	}

	inst := t.currentInstruction()
	switch inst.Op {
	case MOV, ADD, SUB:
		t.readOperand(inst.Src)
	case JRO:
		if inst.Jump.Kind == JumpPort {
			t.readOperand(Operand{Target: inst.Jump.Port})
		}
	case JMP, JEZ, JNZ, JGZ, JLZ:
		if inst.Jump.Kind == JumpPort {
			t.fail(&IllegalInstructionError{TileX: t.X, TileY: t.Y, Reason: "non-JRO jump with a port operand"})
		}
	}
}

func (t *ComputeTile) readOperand(src Operand) {
	if src.Immediate {
		t.temp = src.Value
		return
	}
	switch src.Target {
	case NIL:
		t.temp = 0
	case ACC:
		t.temp = t.acc
	case UP, DOWN, LEFT, RIGHT:
		t.pendingReadAny = false
		t.state = csRead
		// A missing neighbor (edge tile, or a bad node next door) leaves
		// the tile permanently blocked here rather than panicking.
		if ch := t.Neighbor(targetDirections[src.Target]); ch != nil {
			ch.Read(t)
		}
	case ANY:
		t.pendingReadAny = true
		t.state = csRead
		for _, d := range readAnyOrder {
			ch := t.Neighbor(d)
			if ch == nil {
				continue
			}
			ch.Read(t)
			if t.state == csReadComplete {
				break
			}
		}
	case LAST:
		if t.last == TargetNone {
			t.temp = 0
			return
		}
		t.pendingReadAny = false
		t.state = csRead
		if ch := t.Neighbor(targetDirections[t.last]); ch != nil {
			ch.Read(t)
		}
	default:
		t.fail(&IllegalInstructionError{TileX: t.X, TileY: t.Y, Reason: "invalid source operand"})
	}
}

func (t *ComputeTile) readComplete(dir Direction, value int) {
	t.temp = value
	if t.pendingReadAny {
		for _, d := range allDirections {
			if ch := t.Neighbor(d); ch != nil {
				ch.CancelRead(t)
			}
		}
		t.pendingReadAny = false
		t.last = directionTarget(dir)
	}
	t.state = csReadComplete
}

// Compute applies the current instruction's purely internal effect.
func (t *ComputeTile) Compute() {
	if t.state != csRun {
		return
	}
	inst := t.currentInstruction()
	switch inst.Op {
	case ADD:
		t.acc += t.temp
	case SUB:
		t.acc -= t.temp
	case SAV:
		t.bak = t.acc
	case SWP:
		t.acc, t.bak = t.bak, t.acc
	case HCF:
		t.fail(&HcfTrap{TileX: t.X, TileY: t.Y})
	}
}

// Write decodes the current instruction's destination operand, if any,
// possibly blocking on a neighbor channel. Only MOV has a destination.
func (t *ComputeTile) Write() {
	if t.state != csRun {
		return
	}
	inst := t.currentInstruction()
	if inst.Op != MOV {
		return
	}
	switch inst.Dst {
	case NIL, TargetNone:
		// discard
	case ACC:
		t.acc = t.temp
	case UP, DOWN, LEFT, RIGHT:
		t.pendingWriteAny = false
		t.state = csWrite
		// A missing neighbor leaves the tile permanently blocked here
		// rather than panicking.
		if ch := t.Neighbor(targetDirections[inst.Dst]); ch != nil {
			ch.Write(t, t.temp)
		}
	case ANY:
		t.pendingWriteAny = true
		t.state = csWrite
		for _, d := range writeAnyOrder {
			ch := t.Neighbor(d)
			if ch == nil {
				continue
			}
			ch.Write(t, t.temp)
			if t.state == csWriteComplete {
				break
			}
		}
	case LAST:
		if t.last == TargetNone {
			// discard
			return
		}
		t.pendingWriteAny = false
		t.state = csWrite
		if ch := t.Neighbor(targetDirections[t.last]); ch != nil {
			ch.Write(t, t.temp)
		}
	default:
		t.fail(&IllegalInstructionError{TileX: t.X, TileY: t.Y, Reason: "invalid destination operand"})
	}
}

func (t *ComputeTile) writeComplete(dir Direction) {
	if t.pendingWriteAny {
		for _, d := range allDirections {
			if ch := t.Neighbor(d); ch != nil {
				ch.CancelWrite(t)
			}
		}
		t.pendingWriteAny = false
		t.last = directionTarget(dir)
	}
	t.state = csWriteComplete
}

// Step advances PC according to the current instruction's jump predicate,
// or falls through to the next instruction.
func (t *ComputeTile) Step() {
	switch t.state {
	case csUnprogrammed, csRead, csReadComplete, csWrite:
		return
	case csWriteComplete:
		t.state = csRun
	case csRun:
	default:
		return
	}

	inst := t.currentInstruction()
	n := len(t.program.Instructions)
	taken := false
	switch inst.Op {
	case JMP, JRO:
		taken = true
	case JEZ:
		taken = t.acc == 0
	case JNZ:
		taken = t.acc != 0
	case JGZ:
		taken = t.acc > 0
	case JLZ:
		taken = t.acc < 0
	}

	if !taken {
		t.pc++
		if t.pc >= n {
			t.pc = 0
		}
		return
	}

	switch inst.Jump.Kind {
	case JumpLabel:
		idx, ok := t.program.Labels[inst.Jump.Label]
		if !ok {
			t.fail(&IllegalInstructionError{TileX: t.X, TileY: t.Y, Reason: "unresolved label " + inst.Jump.Label})
			return
		}
		t.pc = idx
	case JumpOffset:
		t.pc += inst.Jump.Offset
	case JumpPort:
		t.pc += t.temp
	default:
		t.fail(&IndeterminateJumpError{TileX: t.X, TileY: t.Y})
		return
	}

	if inst.Op == JRO {
		if t.pc >= n {
			t.pc = n - 1
		}
	} else if t.pc >= n {
		t.pc = 0
	}
	if t.pc < 0 {
		t.pc = 0
	}
}
