package tile

// endpoint is one side of a Channel: the tile bound to it, its pending
// flags, and the last value offered for a pending write.
type endpoint struct {
	tile       Tile
	dir        Direction // this tile's own-side direction label, for LAST bookkeeping
	permissive bool      // stack tiles may hold read+write pending at once
	readPend   bool
	writePend  bool
	sent       int
}

// Channel is the sole mechanism by which two tiles exchange a signed
// integer: a synchronous rendezvous between a reader and a writer. A
// Channel is joined to exactly two tiles for its entire life.
type Channel struct {
	a, b endpoint
}

// NewChannel joins ta and tb. dirA/dirB are each tile's own-side direction
// label for this channel (used only to populate LAST on ANY resolution;
// boundary tiles with a single port may pass any value).
func NewChannel(ta Tile, dirA Direction, tb Tile, dirB Direction) *Channel {
	return &Channel{
		a: endpoint{tile: ta, dir: dirA, permissive: ta.isPermissive()},
		b: endpoint{tile: tb, dir: dirB, permissive: tb.isPermissive()},
	}
}

func (c *Channel) sides(t Tile) (self, other *endpoint) {
	switch {
	case c.a.tile == t:
		return &c.a, &c.b
	case c.b.tile == t:
		return &c.b, &c.a
	}
	panic("tile: channel is not connected to the given tile")
}

// Write is called by the sender tile. If the opposite endpoint is already
// waiting to read, the value is delivered synchronously and both tiles'
// completion callbacks run before Write returns. Otherwise the write is
// parked as pending.
func (c *Channel) Write(sender Tile, value int) {
	self, other := c.sides(sender)
	if other.readPend {
		other.readPend = false
		other.tile.readComplete(other.dir, value)
		self.tile.writeComplete(self.dir)
		return
	}
	if self.writePend && !self.permissive {
		panic(&ChannelMisuseError{Reason: "write issued on an endpoint with a write already pending"})
	}
	self.writePend = true
	self.sent = value
}

// Read is called by the receiver tile. If the opposite endpoint already
// has a value waiting, it is delivered synchronously. Otherwise the read
// is parked as pending.
func (c *Channel) Read(receiver Tile) {
	self, other := c.sides(receiver)
	if other.writePend {
		value := other.sent
		other.writePend = false
		self.tile.readComplete(self.dir, value)
		other.tile.writeComplete(other.dir)
		return
	}
	if self.readPend && !self.permissive {
		panic(&ChannelMisuseError{Reason: "read issued on an endpoint with a read already pending"})
	}
	self.readPend = true
}

// CancelRead unconditionally clears tile's pending-read flag. Idempotent.
func (c *Channel) CancelRead(t Tile) {
	self, _ := c.sides(t)
	self.readPend = false
}

// CancelWrite unconditionally clears tile's pending-write flag. Idempotent.
func (c *Channel) CancelWrite(t Tile) {
	self, _ := c.sides(t)
	self.writePend = false
}

// clearPending resets both of t's flags on this channel. Called by a tile
// against each of its channels from within Initialize.
func (c *Channel) clearPending(t Tile) {
	self, _ := c.sides(t)
	self.readPend = false
	self.writePend = false
	self.sent = 0
}
