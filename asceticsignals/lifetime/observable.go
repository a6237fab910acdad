package lifetime

import (
	"sync"

	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/callback"
	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/connection"
)

// Observable announces the end of its owner's life exactly once. Embed it and
// call Destroy where the owner is torn down.
type Observable struct {
	mu        sync.Mutex
	destroyed bool
	sink      callback.Sink[func()]
}

func (o *Observable) Lifetime() *Observable {
	return o
}

// Observe registers fn to run on Destroy. Once the observable is destroyed
// nothing is registered and ErrDestroyed is returned.
func (o *Observable) Observe(fn func()) (connection.Handle, error) {
	if fn == nil {
		return connection.Handle{}, ErrNilObserver
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.destroyed {
		return connection.Handle{}, ErrDestroyed
	}
	return o.sink.Add(fn), nil
}

// Destroy runs every observer once, in registration order, and closes the
// observable. Later calls, including ones made by observers, do nothing.
func (o *Observable) Destroy() {
	o.mu.Lock()
	if o.destroyed {
		o.mu.Unlock()
		return
	}
	o.destroyed = true
	o.mu.Unlock()

	defer o.sink.Close()
	callback.Notify0(&o.sink)
}

func (o *Observable) Destroyed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.destroyed
}

func (o *Observable) Observers() int {
	return o.sink.Len()
}
