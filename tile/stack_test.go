package tile

import "testing"

func TestStackTilePushThenPop(t *testing.T) {
	st := NewStackTile()
	left := &stubTile{}
	ch := NewChannel(st, Up, left, Down)
	st.SetNeighbor(Up, ch)
	left.SetNeighbor(Down, ch)
	st.Initialize()

	st.Read() // stack requests a value from every neighbor
	if left.writeCalls != 0 {
		t.Fatalf("expected the stack's read request to park, not resolve yet")
	}

	ch.Write(left, 11)
	if st.Depth() != 1 {
		t.Fatalf("expected the pushed value to land on the stack, depth=%d", st.Depth())
	}

	st.Step()
	st.Write() // stack offers its top to every neighbor
	ch.Read(left)

	if st.Depth() != 0 {
		t.Fatalf("expected the stack to have popped its only value, depth=%d", st.Depth())
	}
	if left.lastReadValue != 11 {
		t.Fatalf("expected the neighbor to read back 11, got %d", left.lastReadValue)
	}
}

func TestStackTileEmptyWriteIsNoop(t *testing.T) {
	st := NewStackTile()
	neighbor := &stubTile{}
	ch := NewChannel(st, Up, neighbor, Down)
	st.SetNeighbor(Up, ch)
	neighbor.SetNeighbor(Down, ch)
	st.Initialize()

	st.Write() // nothing to offer

	ch.Read(neighbor)
	if neighbor.readCalls != 0 {
		t.Fatal("expected no delivery from an empty stack")
	}
}

func TestStackTileIsPermissive(t *testing.T) {
	st := NewStackTile()
	if !st.isPermissive() {
		t.Fatal("expected a stack tile to be permissive")
	}
}

func TestStackTileReadStopsAfterFirstResolution(t *testing.T) {
	st := NewStackTile()
	up, down := &stubTile{}, &stubTile{}
	chUp := NewChannel(st, Up, up, Down)
	chDown := NewChannel(st, Down, down, Up)
	st.SetNeighbor(Up, chUp)
	st.SetNeighbor(Down, chDown)
	up.SetNeighbor(Down, chUp)
	down.SetNeighbor(Up, chDown)
	st.Initialize()

	// Both neighbors offer a value before the stack's Read phase runs.
	chUp.Write(up, 1)
	chDown.Write(down, 2)

	st.Read()

	if st.Depth() != 1 {
		t.Fatalf("expected exactly one value pushed this cycle, depth=%d", st.Depth())
	}
	// One of the two writes must still be pending, not silently dropped.
	if !chUp.b.writePend && !chDown.b.writePend {
		t.Fatal("expected the unresolved offer to remain pending for a later cycle")
	}
}
