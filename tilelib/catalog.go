// Package tilelib is the puzzle catalog: a small set of worked puzzles
// used by the CLI and by the test suite, plus a seeded random input
// generator the CLI uses to refresh a puzzle's input data between runs.
package tilelib

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/nodegrid/tis100sim/tile"
)

// Catalog maps a puzzle number to its constructor. Numbers below 100 are
// reserved for the worked puzzles shipped with this package; a save-file
// driven CLI invocation supplies its own assembly text and only borrows
// a catalog entry's grid geometry and boundary wiring.
var Catalog = map[int]func() *tile.Puzzle{
	1: SignalAmplifier,
	2: NilAndLast,
	3: JroPort,
	4: StackShuffle,
	5: VisualizationDemo,
}

// Lookup returns the named puzzle, or an *tile.UnsupportedPuzzleError if
// number is not in the catalog.
func Lookup(number int) (*tile.Puzzle, error) {
	ctor, ok := Catalog[number]
	if !ok {
		return nil, &tile.UnsupportedPuzzleError{Name: fmt.Sprintf("puzzle %d", number)}
	}
	return ctor(), nil
}

// Numbers returns every registered puzzle number in ascending order.
func Numbers() []int {
	nums := maps.Keys(Catalog)
	// simple insertion sort: the catalog is small and this avoids
	// pulling in a sort-generic dependency for five elements.
	for i := 1; i < len(nums); i++ {
		for j := i; j > 0 && nums[j-1] > nums[j]; j-- {
			nums[j-1], nums[j] = nums[j], nums[j-1]
		}
	}
	return nums
}

// SignalAmplifier is the single-tile doubling puzzle: read a value from
// UP, double it, and send it DOWN.
func SignalAmplifier() *tile.Puzzle {
	const w, h = 1, 1
	idx := 0

	programs := make([]string, w*h)
	programs[idx] = "start:\n  MOV UP, ACC\n  ADD ACC\n  MOV ACC, DOWN\n  JMP start\n"

	return &tile.Puzzle{
		Width: w, Height: h,
		Programs:   programs,
		BadNodes:   map[int]bool{},
		StackNodes: map[int]bool{},
		Inputs: []tile.IOSpec{
			{ToNode: idx, Direction: tile.Up, Data: []int{5, 7, 1}},
		},
		Outputs: []tile.IOSpec{
			{ToNode: idx, Direction: tile.Down, Data: []int{10, 14, 2}},
		},
	}
}

// NilAndLast exercises the ANY and LAST operands: the left tile has
// only one neighbor (RIGHT), so its ANY write resolves there
// unambiguously; the right tile echoes the value straight back, the
// left tile reads it via LAST, and the right tile separately forwards
// its own copy to an output. The output is attached to the right tile,
// not the left one: attaching it to left would give left a second
// standing neighbor (the output's parked read), and ANY tries UP,
// DOWN, LEFT, RIGHT in order, so it would resolve to the output before
// ever reaching right.
func NilAndLast() *tile.Puzzle {
	const w, h = 2, 1
	left, right := 0, 1

	programs := make([]string, w*h)
	programs[left] = "MOV 3, ACC\n  MOV ACC, ANY\n  MOV LAST, ACC\n"
	programs[right] = "MOV LEFT, ACC\n  MOV ACC, LEFT\n  MOV ACC, DOWN\n"

	return &tile.Puzzle{
		Width: w, Height: h,
		Programs:   programs,
		BadNodes:   map[int]bool{},
		StackNodes: map[int]bool{},
		Outputs: []tile.IOSpec{
			{ToNode: right, Direction: tile.Down, Data: []int{3}},
		},
	}
}

// JroPort exercises a JRO jump whose offset is read from a port: the
// tile reads 2 from UP, then JRO UP from instruction 0 lands on
// instruction 2.
func JroPort() *tile.Puzzle {
	const w, h = 2, 1
	idx := 0

	programs := make([]string, w*h)
	programs[idx] = "JRO UP\n  HCF\n  MOV 99, ACC\n"

	return &tile.Puzzle{
		Width: w, Height: h,
		Programs:   programs,
		BadNodes:   map[int]bool{},
		StackNodes: map[int]bool{},
		Inputs: []tile.IOSpec{
			{ToNode: idx, Direction: tile.Up, Data: []int{2}},
		},
	}
}

// StackShuffle pushes [1,2,3,4] onto a middle stack tile from the left
// and reads them back on the right, verifying LIFO order. The right tile
// counts down before its first read so that all four values are on the
// stack before any is popped.
func StackShuffle() *tile.Puzzle {
	const w, h = 3, 1
	left, stack, right := 0, 1, 2

	programs := make([]string, w*h)
	programs[left] = "MOV UP, RIGHT\n"
	programs[right] = "MOV 20, ACC\nwait:\n  SUB 1\n  JGZ wait\nread:\n  MOV LEFT, UP\n  JMP read\n"

	return &tile.Puzzle{
		Width: w, Height: h,
		Programs:   programs,
		BadNodes:   map[int]bool{},
		StackNodes: map[int]bool{stack: true},
		Inputs: []tile.IOSpec{
			{ToNode: left, Direction: tile.Up, Data: []int{1, 2, 3, 4}},
		},
		Outputs: []tile.IOSpec{
			{ToNode: right, Direction: tile.Up, Data: []int{4, 3, 2, 1}},
		},
	}
}

// VisualizationDemo writes (0, 0, 3, 3, 3, -1) to a visualization tile
// attached below a single compute tile, lighting pixels (0,0)-(2,0).
func VisualizationDemo() *tile.Puzzle {
	const w, h = 1, 1
	idx := 0

	programs := make([]string, w*h)
	programs[idx] = strings.Join([]string{
		"MOV 0, DOWN",
		"MOV 0, DOWN",
		"MOV 3, DOWN",
		"MOV 3, DOWN",
		"MOV 3, DOWN",
		"MOV -1, DOWN",
	}, "\n") + "\n"

	return &tile.Puzzle{
		Width: w, Height: h,
		Programs:   programs,
		BadNodes:   map[int]bool{},
		StackNodes: map[int]bool{},
		Visualizations: []tile.VisSpec{
			{
				ToNode: idx, Direction: tile.Down,
				Data: vizExpected(3, 3),
			},
		},
		VisualizationWidth:  3,
		VisualizationHeight: 3,
	}
}

func vizExpected(width, height int) []int {
	grid := make([]int, width*height)
	grid[0], grid[1], grid[2] = 3, 3, 3
	return grid
}

