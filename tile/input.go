package tile

// ioState tracks an InputTile's single-port rendezvous across a cycle:
// Ready, Write (pending), WriteComplete (resolved, pending a Step).
type ioState int

const (
	ioReady ioState = iota
	ioWriting
	ioWriteComplete
)

// InputTile feeds a fixed sequence of values onto the grid, one per
// successful write, in order. It has exactly one external port.
type InputTile struct {
	port *Channel

	values []int
	pos    int

	state ioState
}

// NewInputTile returns an input tile that will emit values in order,
// once each, across successive cycles.
func NewInputTile(values []int) *InputTile {
	return &InputTile{values: values}
}

// SetNeighbor records the tile's single port. The direction is accepted
// for interface conformance but otherwise unused: an input tile has only
// one side.
func (t *InputTile) SetNeighbor(_ Direction, ch *Channel) {
	t.port = ch
}

// Remaining reports how many values have not yet been written.
func (t *InputTile) Remaining() int {
	return len(t.values) - t.pos
}

func (t *InputTile) isPermissive() bool { return false }

// Initialize rewinds the input to its first value.
func (t *InputTile) Initialize() {
	t.pos = 0
	t.state = ioReady
	if t.port != nil {
		t.port.clearPending(t)
	}
}

// Read is a no-op: an input tile has no inbound port.
func (t *InputTile) Read() {}

// Compute is a no-op: an input tile performs no arithmetic.
func (t *InputTile) Compute() {}

// Write offers the next unconsumed value on the port, if idle and any
// remain; once issued, the offer stands until a matching read arrives.
func (t *InputTile) Write() {
	if t.port == nil || t.pos >= len(t.values) || t.state != ioReady {
		return
	}
	t.state = ioWriting
	t.port.Write(t, t.values[t.pos])
}

// Step advances position and returns to Ready once a write has
// resolved; otherwise a no-op.
func (t *InputTile) Step() {
	if t.state == ioWriteComplete {
		t.pos++
		t.state = ioReady
	}
}

func (t *InputTile) readComplete(dir Direction, value int) {}

func (t *InputTile) writeComplete(dir Direction) {
	t.state = ioWriteComplete
}
