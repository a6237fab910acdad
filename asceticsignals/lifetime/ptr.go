package lifetime

import (
	"reflect"
	"runtime"
	"sync"

	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/connection"
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// cell is what the observable's listener closes over. Ptr only owns a
// reference to it, so moving a Ptr never leaves a stale listener behind.
type cell[T Lifetimed] struct {
	mu     sync.Mutex
	target T
	valid  bool
	guard  connection.Guard
}

func (c *cell[T]) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.target = zero
	c.valid = false
}

func (c *cell[T]) get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target, c.valid
}

// Ptr is an observing pointer: it refers to a target without owning it and
// reads as empty once the target is destroyed. A Ptr must not be copied; use
// Move or Clone. It is not safe for concurrent use, although the target may be
// destroyed from any goroutine.
type Ptr[T Lifetimed] struct {
	_       noCopy
	cell    *cell[T]
	cleanup runtime.Cleanup
}

func NewPtr[T Lifetimed](target T) *Ptr[T] {
	p := &Ptr[T]{}
	p.Set(target)
	return p
}

// Set points p at target. A nil or already destroyed target leaves p empty.
func (p *Ptr[T]) Set(target T) {
	p.Reset()
	if isNil(target) {
		return
	}
	c := &cell[T]{target: target, valid: true}
	h, err := target.Lifetime().Observe(c.expire)
	if err != nil {
		return
	}
	c.guard = h.Guard()
	p.attach(c)
}

func (p *Ptr[T]) Get() T {
	if p.cell == nil {
		var zero T
		return zero
	}
	target, _ := p.cell.get()
	return target
}

func (p *Ptr[T]) Valid() bool {
	if p.cell == nil {
		return false
	}
	_, valid := p.cell.get()
	return valid
}

// Reset stops observing and empties p.
func (p *Ptr[T]) Reset() {
	c := p.detach()
	if c == nil {
		return
	}
	c.guard.Disconnect()
	c.expire()
}

// Move hands the observation over to a new Ptr and leaves p empty.
func (p *Ptr[T]) Move() *Ptr[T] {
	moved := &Ptr[T]{}
	if c := p.detach(); c != nil {
		moved.attach(c)
	}
	return moved
}

// Clone returns an independent Ptr to the same target.
func (p *Ptr[T]) Clone() *Ptr[T] {
	return NewPtr(p.Get())
}

func (p *Ptr[T]) attach(c *cell[T]) {
	p.cell = c
	// A Ptr dropped without Reset must not keep its listener registered
	// until the target dies.
	p.cleanup = runtime.AddCleanup(p, release, c.guard.Handle())
}

func (p *Ptr[T]) detach() *cell[T] {
	c := p.cell
	if c == nil {
		return nil
	}
	p.cleanup.Stop()
	p.cell = nil
	p.cleanup = runtime.Cleanup{}
	return c
}

func release(h connection.Handle) {
	h.Disconnect()
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
