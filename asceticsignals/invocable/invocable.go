package invocable

import "sync"

// Invocable holds at most one callable adapted to the signature F.
type Invocable[F any] struct {
	mu  sync.RWMutex
	fn  F
	set bool
}

func New[F any](fn any) (*Invocable[F], error) {
	i := &Invocable[F]{}
	if err := i.Set(fn); err != nil {
		return nil, err
	}
	return i, nil
}

// Set replaces the stored callable. On error the previous one is kept.
func (i *Invocable[F]) Set(fn any) error {
	f, err := Adapt[F](fn)
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.fn = f
	i.set = true
	return nil
}

func (i *Invocable[F]) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	var zero F
	i.fn = zero
	i.set = false
}

func (i *Invocable[F]) HasFunction() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.set
}

// Func returns the stored callable, or the zero F when empty.
func (i *Invocable[F]) Func() F {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.fn
}
