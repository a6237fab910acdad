package connection

import "weak"

// Handle is a non-owning reference to a connection. It is a plain comparable
// value and does not keep the registry alive: once the registry is closed or
// collected, Connected reports false and Disconnect does nothing.
type Handle struct {
	registry weak.Pointer[Registry]
	id       ID
}

func (h Handle) ID() ID {
	return h.id
}

func (h Handle) Valid() bool {
	return h.id.Valid()
}

func (h Handle) Connected() bool {
	r := h.registry.Value()
	return r != nil && r.Connected(h.id)
}

// Disconnect removes the connection, if any, and resets the handle.
func (h *Handle) Disconnect() bool {
	r := h.registry.Value()
	id := h.id
	*h = Handle{}
	if r == nil {
		return false
	}
	return r.Disconnect(id)
}

func (h *Handle) Dispose() {
	h.Disconnect()
}

// Guard takes ownership of the connection.
func (h Handle) Guard() Guard {
	return NewGuard(h)
}
