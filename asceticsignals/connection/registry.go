package connection

import (
	"slices"
	"sync"
	"sync/atomic"
	"weak"
)

// Slot is one registered value. A slot removed from the registry stays readable
// by snapshots taken earlier, but reports Alive() == false.
type Slot struct {
	id    ID
	value any
	alive atomic.Bool
}

func (s *Slot) ID() ID {
	return s.id
}

func (s *Slot) Value() any {
	return s.value
}

func (s *Slot) Alive() bool {
	return s.alive.Load()
}

// Registry is an ordered mapping from ID to value, safe for concurrent use.
// The lock is held only while the mapping is mutated or copied.
type Registry struct {
	mu     sync.Mutex
	nextID ID
	slots  []*Slot
	index  map[ID]*Slot
	closed bool
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[ID]*Slot)}
}

func (r *Registry) Add(value any) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Handle{}, ErrClosed
	}
	r.nextID++
	s := &Slot{id: r.nextID, value: value}
	s.alive.Store(true)
	r.slots = append(r.slots, s)
	r.index[s.id] = s
	return Handle{registry: weak.Make(r), id: s.id}, nil
}

func (r *Registry) Disconnect(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.index[id]
	if !ok {
		return false
	}
	s.alive.Store(false)
	delete(r.index, id)
	for i, candidate := range r.slots {
		if candidate == s {
			// Snapshots own their own copy of the slice, so shifting in place is safe.
			r.slots = slices.Delete(r.slots, i, i+1)
			break
		}
	}
	return true
}

func (r *Registry) Connected(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.index[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Snapshot returns the slots registered right now, in registration order.
func (r *Registry) Snapshot() []*Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]*Slot, len(r.slots))
	copy(snapshot, r.slots)
	return snapshot
}

// Clear disconnects every slot and returns how many there were.
func (r *Registry) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clear()
}

func (r *Registry) clear() int {
	n := len(r.slots)
	for _, s := range r.slots {
		s.alive.Store(false)
	}
	r.slots = nil
	clear(r.index)
	return n
}

// Close clears the registry and rejects further Add calls.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear()
	r.closed = true
}

func (r *Registry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
