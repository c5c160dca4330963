package tile

import "testing"

func TestVisualizationTileWritesRowAndTerminates(t *testing.T) {
	viz := NewVisualizationTile(3, 3)
	sender := &stubTile{}
	ch := NewChannel(sender, Down, viz, Up)
	sender.SetNeighbor(Down, ch)
	viz.SetNeighbor(Up, ch)
	viz.Initialize()

	for _, v := range []int{0, 0, 3, 3, 3, -1} {
		viz.Read()
		ch.Write(sender, v)
	}

	expected := make([]int, 9)
	expected[0], expected[1], expected[2] = 3, 3, 3
	if !viz.Matches(expected) {
		t.Fatalf("grid mismatch: got %v, want %v", dumpGrid(viz), expected)
	}
}

func dumpGrid(v *VisualizationTile) []int {
	g := make([]int, v.width*v.height)
	copy(g, v.grid)
	return g
}

func TestVisualizationTileClampsColorOverflowToBlack(t *testing.T) {
	viz := NewVisualizationTile(1, 1)
	sender := &stubTile{}
	ch := NewChannel(sender, Down, viz, Up)
	sender.SetNeighbor(Down, ch)
	viz.SetNeighbor(Up, ch)
	viz.Initialize()

	for _, v := range []int{0, 0, 99} {
		viz.Read()
		ch.Write(sender, v)
	}

	if viz.At(0, 0) != 0 {
		t.Fatalf("expected an out-of-range color to clamp to black (0), got %d", viz.At(0, 0))
	}
}

func TestVisualizationTileOutOfBoundsPixelIsDiscarded(t *testing.T) {
	viz := NewVisualizationTile(2, 2)
	sender := &stubTile{}
	ch := NewChannel(sender, Down, viz, Up)
	sender.SetNeighbor(Down, ch)
	viz.SetNeighbor(Up, ch)
	viz.Initialize()

	for _, v := range []int{99, 99, 3} {
		viz.Read()
		ch.Write(sender, v)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if viz.At(x, y) != 0 {
				t.Fatalf("expected an out-of-bounds write to be silently discarded, found color at (%d,%d)", x, y)
			}
		}
	}
}
