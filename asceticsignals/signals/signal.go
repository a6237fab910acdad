package signals

import (
	"reflect"
	"sync"

	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/callback"
	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/connection"
	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/disposable"
)

// SignalImp keys observers by an explicit ID or, without one, by the
// observer's function pointer. Attaching an ID twice keeps the first observer.
type SignalImp[E any] struct {
	mu          sync.Mutex
	sink        *callback.Sink[Observer[E]]
	connections map[any]connection.Handle
}

func NewSignal[E any](opts ...callback.Option) *SignalImp[E] {
	return &SignalImp[E]{
		sink:        callback.New[Observer[E]](opts...),
		connections: make(map[any]connection.Handle),
	}
}

func (s *SignalImp[E]) Attach(observer Observer[E], observerID ...any) disposable.Disposable {
	id := resolveID(observer, observerID)
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.connections[id]
	if !ok || !h.Connected() {
		h = s.sink.Add(observer)
		s.connections[id] = h
	}
	return disposable.NewDisposable(func() {
		s.detach(id, h)
	})
}

func (s *SignalImp[E]) Detach(observer Observer[E], observerID ...any) {
	id := resolveID(observer, observerID)
	s.mu.Lock()
	h, ok := s.connections[id]
	s.mu.Unlock()
	if ok {
		s.detach(id, h)
	}
}

func (s *SignalImp[E]) detach(id any, h connection.Handle) {
	s.mu.Lock()
	if current, ok := s.connections[id]; ok && current == h {
		delete(s.connections, id)
	}
	s.mu.Unlock()
	h.Disconnect()
}

// Notify delivers event to the observers in attach order and stops at the
// first error.
func (s *SignalImp[E]) Notify(event E) error {
	return s.sink.Emit(func(observer Observer[E]) error {
		return observer(event)
	})
}

func (s *SignalImp[E]) Len() int {
	return s.sink.Len()
}

func resolveID[E any](observer Observer[E], observerID []any) any {
	if len(observerID) > 0 {
		return observerID[0]
	}
	return makeID(observer)
}

func makeID[E any](observer Observer[E]) uintptr {
	return reflect.ValueOf(observer).Pointer()
}
