package tile

// Tile is the capability set shared by every tile kind: the four cycle
// phases, lifecycle reset, and the two channel-completion callbacks. The
// grid dispatches phases by walking its active list; there is no open
// inheritance, only this closed set of concrete tile kinds (ComputeTile,
// StackTile, InputTile, OutputTile, VisualizationTile).
type Tile interface {
	Initialize()
	Read()
	Compute()
	Write()
	Step()

	SetNeighbor(d Direction, ch *Channel)

	readComplete(dir Direction, value int)
	writeComplete(dir Direction)
	isPermissive() bool
}

// tileBase gives a tile kind four neighbor slots, one per Direction. Input,
// Output and Visualization tiles have only a single external port and do
// not embed tileBase; they keep a lone *Channel field instead.
type tileBase struct {
	neighbors [4]*Channel
}

func (b *tileBase) SetNeighbor(d Direction, ch *Channel) {
	b.neighbors[d] = ch
}

func (b *tileBase) Neighbor(d Direction) *Channel {
	return b.neighbors[d]
}

func (b *tileBase) isPermissive() bool {
	return false
}

func (b *tileBase) resetChannels(t Tile) {
	for _, d := range allDirections {
		if ch := b.neighbors[d]; ch != nil {
			ch.clearPending(t)
		}
	}
}
