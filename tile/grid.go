package tile

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// IOSpec attaches an external input or output tile to an interior grid
// cell via the given side.
type IOSpec struct {
	ToNode    int
	Direction Direction
	Data      []int
}

// VisSpec attaches a visualization tile to an interior grid cell via the
// given side. Data holds the expected row-major width*height pixel grid
// checked for success.
type VisSpec struct {
	ToNode    int
	Direction Direction
	Data      []int
}

// Puzzle is the catalog-supplied description of one grid layout: which
// cells hold programs or stacks, which are inoperative, and which
// boundary tiles attach where.
type Puzzle struct {
	Width, Height int

	// Programs holds per-cell assembly source; empty for cells with no
	// compute program (bad nodes, stack nodes, or idle compute tiles).
	Programs []string

	BadNodes   map[int]bool
	StackNodes map[int]bool

	Inputs         []IOSpec
	Outputs        []IOSpec
	Visualizations []VisSpec

	VisualizationWidth, VisualizationHeight int
}

func (p *Puzzle) cellCount() int { return p.Width * p.Height }

func (p *Puzzle) index(x, y int) int { return y*p.Width + x }

// Grid wires up and drives one instance of a Puzzle: the interior
// compute/stack tiles, the boundary input/output/visualization tiles,
// and the channels joining them.
type Grid struct {
	puzzle *Puzzle

	cells  []Tile // len == Width*Height; nil at bad-node indices
	inputs []*InputTile
	outputs []*OutputTile
	visualizations []*VisualizationTile

	active []Tile
}

// NewGrid constructs and wires every tile named by p. It returns an
// error if an interior program fails to assemble.
func NewGrid(p *Puzzle, assemble func(source string) (*Program, error)) (*Grid, error) {
	g := &Grid{puzzle: p, cells: make([]Tile, p.cellCount())}

	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			idx := p.index(x, y)
			if p.BadNodes[idx] {
				continue
			}
			if p.StackNodes[idx] {
				g.cells[idx] = NewStackTile()
				continue
			}
			src := ""
			if idx < len(p.Programs) {
				src = p.Programs[idx]
			}
			var prog *Program
			if src != "" {
				var err error
				prog, err = assemble(src)
				if err != nil {
					return nil, errors.Wrapf(err, "assembling program for cell %d", idx)
				}
			}
			g.cells[idx] = NewComputeTile(x, y, prog)
		}
	}

	g.joinInterior()

	for _, spec := range p.Inputs {
		in := NewInputTile(spec.Data)
		g.inputs = append(g.inputs, in)
		if err := g.attachBoundary(in, spec.ToNode, spec.Direction); err != nil {
			return nil, err
		}
	}
	for _, spec := range p.Outputs {
		out := NewOutputTile()
		g.outputs = append(g.outputs, out)
		if err := g.attachBoundary(out, spec.ToNode, spec.Direction); err != nil {
			return nil, err
		}
	}
	for _, spec := range p.Visualizations {
		viz := NewVisualizationTile(p.VisualizationWidth, p.VisualizationHeight)
		g.visualizations = append(g.visualizations, viz)
		if err := g.attachBoundary(viz, spec.ToNode, spec.Direction); err != nil {
			return nil, err
		}
	}

	g.buildActiveList()
	return g, nil
}

// joinInterior creates one channel per interior adjacency, walking each
// cell's Right and Down neighbor only so every edge is created exactly
// once.
func (g *Grid) joinInterior() {
	p := g.puzzle
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			idx := p.index(x, y)
			a := g.cells[idx]
			if a == nil {
				continue
			}
			if x+1 < p.Width {
				ridx := p.index(x+1, y)
				if b := g.cells[ridx]; b != nil {
					ch := NewChannel(a, Right, b, Left)
					a.SetNeighbor(Right, ch)
					b.SetNeighbor(Left, ch)
				}
			}
			if y+1 < p.Height {
				didx := p.index(x, y+1)
				if b := g.cells[didx]; b != nil {
					ch := NewChannel(a, Down, b, Up)
					a.SetNeighbor(Down, ch)
					b.SetNeighbor(Up, ch)
				}
			}
		}
	}
}

func (g *Grid) attachBoundary(boundary Tile, toNode int, dir Direction) error {
	if toNode < 0 || toNode >= len(g.cells) || g.cells[toNode] == nil {
		return errors.Errorf("tile: boundary tile attached to empty or out-of-range cell %d", toNode)
	}
	interior := g.cells[toNode]
	ch := NewChannel(boundary, dir.Opposite(), interior, dir)
	boundary.SetNeighbor(dir.Opposite(), ch)
	interior.SetNeighbor(dir, ch)
	return nil
}

// buildActiveList orders the active tiles per spec: grid-scan-order
// compute tiles with >= 1 instruction, then all input tiles, then output
// tiles, then visualization tiles, then stack tiles in scan order.
func (g *Grid) buildActiveList() {
	g.active = g.active[:0]
	for _, c := range g.cells {
		if ct, ok := c.(*ComputeTile); ok && ct.program.Len() > 0 {
			g.active = append(g.active, ct)
		}
	}
	for _, in := range g.inputs {
		g.active = append(g.active, in)
	}
	for _, out := range g.outputs {
		g.active = append(g.active, out)
	}
	for _, viz := range g.visualizations {
		g.active = append(g.active, viz)
	}
	for _, c := range g.cells {
		if st, ok := c.(*StackTile); ok {
			g.active = append(g.active, st)
		}
	}
}

// Initialize resets every active tile's transient state.
func (g *Grid) Initialize() {
	for _, t := range g.active {
		t.Initialize()
	}
}

// RunResult reports the outcome of a single RunOnce call. RunID is a
// short opaque identifier stamped at the start of the run, so repeated
// runs against refreshed random input (the CLI's three-run mode) are
// distinguishable in logs without depending on wall-clock time.
type RunResult struct {
	RunID       string
	Success     bool
	Cycles      int
	MismatchAt  int // index of the first output tile with a mismatch, or -1
	Err         error
}

// RunOnce drives the grid through up to maxCycles cycles, checking for
// success or output mismatch after every cycle. A fatal runtime error
// (ChannelMisuseError, or a halted compute tile's recorded error) aborts
// the run and is returned as RunResult.Err.
func (g *Grid) RunOnce(maxCycles int) (RunResult, error) {
	g.Initialize()
	runID := xid.New().String()

	for cycle := 0; cycle < maxCycles; cycle++ {
		if err := g.runCycle(); err != nil {
			return RunResult{RunID: runID, Cycles: cycle + 1, MismatchAt: -1, Err: err}, err
		}
		if err := g.tileErrors(); err != nil {
			return RunResult{RunID: runID, Cycles: cycle + 1, MismatchAt: -1, Err: err}, err
		}

		if idx, mismatched := g.firstMismatch(); mismatched {
			return RunResult{RunID: runID, Success: false, Cycles: cycle + 1, MismatchAt: idx}, nil
		}
		if g.allMatched() {
			return RunResult{RunID: runID, Success: true, Cycles: cycle + 1, MismatchAt: -1}, nil
		}
	}

	idx, mismatched := g.firstMismatch()
	if !mismatched {
		idx = -1
	}
	return RunResult{RunID: runID, Success: false, Cycles: maxCycles, MismatchAt: idx}, nil
}

func (g *Grid) runCycle() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if cm, ok := r.(*ChannelMisuseError); ok {
				err = cm
				return
			}
			panic(r)
		}
	}()

	for _, t := range g.active {
		t.Read()
	}
	for _, t := range g.active {
		t.Compute()
	}
	for _, t := range g.active {
		t.Write()
	}
	for _, t := range g.active {
		t.Step()
	}
	return nil
}

func (g *Grid) tileErrors() error {
	for _, c := range g.cells {
		if ct, ok := c.(*ComputeTile); ok && ct.Err() != nil {
			return ct.Err()
		}
	}
	return nil
}

func (g *Grid) firstMismatch() (int, bool) {
	for i, out := range g.outputs {
		expected := g.puzzle.Outputs[i].Data
		if at := out.FirstMismatch(expected); at >= 0 {
			return i, true
		}
	}
	return -1, false
}

func (g *Grid) allMatched() bool {
	for i, out := range g.outputs {
		expected := g.puzzle.Outputs[i].Data
		if !out.Complete(expected) {
			return false
		}
	}
	for i, viz := range g.visualizations {
		expected := g.puzzle.Visualizations[i].Data
		if !viz.Matches(expected) {
			return false
		}
	}
	return true
}

// String summarizes the grid's dimensions and active tile count, for
// debugging.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, %d active tiles)", g.puzzle.Width, g.puzzle.Height, len(g.active))
}
