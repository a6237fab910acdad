package connection

// noCopy lets go vet's copylocks check flag copied guards.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Guard owns a connection and disconnects it on Close. Guards must not be
// copied; use Move to hand ownership over.
type Guard struct {
	_      noCopy
	handle Handle
}

func NewGuard(h Handle) Guard {
	return Guard{handle: h}
}

func (g *Guard) ID() ID {
	return g.handle.id
}

func (g *Guard) Handle() Handle {
	return g.handle
}

func (g *Guard) Connected() bool {
	return g.handle.Connected()
}

func (g *Guard) Disconnect() bool {
	return g.handle.Disconnect()
}

// Close disconnects the owned connection. It always returns nil and is meant
// for defer.
func (g *Guard) Close() error {
	g.handle.Disconnect()
	return nil
}

func (g *Guard) Dispose() {
	g.handle.Disconnect()
}

// Release gives up ownership without disconnecting.
func (g *Guard) Release() ID {
	id := g.handle.id
	g.handle = Handle{}
	return id
}

// Move transfers ownership to the returned guard and empties g.
func (g *Guard) Move() Guard {
	h := g.handle
	g.handle = Handle{}
	return Guard{handle: h}
}
