package hub

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/callback"
	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/connection"
)

var ErrHandlerNotRegistered = errors.New("hub: handler not registered")

// Hub keeps one sink per event type and one request handler per request
// type. Pass it to whatever needs it instead of keeping a package-level
// instance.
type Hub struct {
	mu       sync.Mutex
	opts     []callback.Option
	sinks    map[reflect.Type]any
	handlers map[reflect.Type]any
	closed   bool
}

func New(opts ...callback.Option) *Hub {
	return &Hub{
		opts:     opts,
		sinks:    make(map[reflect.Type]any),
		handlers: make(map[reflect.Type]any),
	}
}

// Close closes every sink. Handles issued earlier report not connected and
// later subscriptions are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	sinks := make([]interface{ Close() }, 0, len(h.sinks)+len(h.handlers))
	for _, s := range h.sinks {
		sinks = append(sinks, s.(interface{ Close() }))
	}
	for _, s := range h.handlers {
		sinks = append(sinks, s.(interface{ Close() }))
	}
	clear(h.sinks)
	clear(h.handlers)
	h.mu.Unlock()

	for _, s := range sinks {
		s.Close()
	}
}

func lookup[F any](h *Hub, table map[reflect.Type]any, key reflect.Type, create bool) *callback.Sink[F] {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := table[key]; ok {
		return s.(*callback.Sink[F])
	}
	if !create || h.closed {
		return nil
	}
	opts := append([]callback.Option{}, h.opts...)
	opts = append(opts, callback.WithName(key.String()))
	s := callback.New[F](opts...)
	table[key] = s
	return s
}

func eventSink[E any](h *Hub, create bool) *callback.Sink[func(E) error] {
	return lookup[func(E) error](h, h.sinks, reflect.TypeFor[E](), create)
}

func handlerSink[Req, Res any](h *Hub, create bool) *callback.Sink[func(Req) (Res, error)] {
	return lookup[func(Req) (Res, error)](h, h.handlers, reflect.TypeFor[func(Req) (Res, error)](), create)
}

// --- Typed free functions ---

// Subscribe registers handler for events of type E.
func Subscribe[E any](h *Hub, handler func(E) error) connection.Handle {
	s := eventSink[E](h, true)
	if s == nil {
		return connection.Handle{}
	}
	return s.Add(handler)
}

// SubscribeCompatible registers any callable that takes E or nothing.
func SubscribeCompatible[E any](h *Hub, handler any) (connection.Handle, error) {
	s := eventSink[E](h, true)
	if s == nil {
		return connection.Handle{}, connection.ErrClosed
	}
	return s.AddCompatible(handler)
}

// Publish delivers event to the subscribers of E in subscription order and
// stops at the first error.
func Publish[E any](h *Hub, event E) error {
	s := eventSink[E](h, false)
	if s == nil {
		return nil
	}
	return callback.TryNotify1(s, event)
}

// PublishAll delivers event to every subscriber of E and returns all errors.
func PublishAll[E any](h *Hub, event E) error {
	s := eventSink[E](h, false)
	if s == nil {
		return nil
	}
	return s.EmitAll(func(handler func(E) error) error {
		return handler(event)
	})
}

func Listeners[E any](h *Hub) int {
	s := eventSink[E](h, false)
	if s == nil {
		return 0
	}
	return s.Len()
}

// Register makes handler the only handler for requests of type Req,
// replacing any previous one.
func Register[Req, Res any](h *Hub, handler func(Req) (Res, error)) connection.Handle {
	s := handlerSink[Req, Res](h, true)
	if s == nil {
		return connection.Handle{}
	}
	return s.Set(handler)
}

// Send passes request to the registered handler.
func Send[Req, Res any](h *Hub, request Req) (Res, error) {
	var result Res
	var handled bool
	s := handlerSink[Req, Res](h, false)
	if s == nil {
		return result, errors.Wrapf(ErrHandlerNotRegistered, "request %v", reflect.TypeFor[Req]())
	}
	err := s.Emit(func(handler func(Req) (Res, error)) error {
		var err error
		result, err = handler(request)
		handled = true
		return err
	})
	if err != nil {
		return result, err
	}
	if !handled {
		return result, errors.Wrapf(ErrHandlerNotRegistered, "request %v", reflect.TypeFor[Req]())
	}
	return result, nil
}
