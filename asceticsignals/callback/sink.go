// Package callback implements sinks: ordered sets of listeners notified
// synchronously, in registration order, from a snapshot taken when the
// notification starts.
package callback

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/connection"
	"github.com/krew-solutions/ascetic-signals-go/asceticsignals/invocable"
)

// Sink holds an ordered set of listeners of type F, normally a func type.
// The zero value is ready to use.
type Sink[F any] struct {
	once     sync.Once
	registry *connection.Registry
	opts     options
	depth    atomic.Int32
}

func New[F any](opts ...Option) *Sink[F] {
	s := &Sink[F]{}
	s.init(opts...)
	return s
}

func (s *Sink[F]) init(opts ...Option) {
	s.once.Do(func() {
		s.registry = connection.NewRegistry()
		s.opts = newOptions(opts...)
	})
}

func (s *Sink[F]) reg() *connection.Registry {
	s.init()
	return s.registry
}

// Add registers fn and returns a handle to the new connection. A nil fn or a
// closed sink yields an invalid handle.
func (s *Sink[F]) Add(fn F) connection.Handle {
	if isNil(fn) {
		return connection.Handle{}
	}
	h, err := s.reg().Add(fn)
	if err != nil {
		s.opts.logger.Debug("listener rejected", slog.String("reason", err.Error()))
		return connection.Handle{}
	}
	s.opts.logger.Debug("listener connected", slog.Uint64("id", uint64(h.ID())))
	return h
}

func (s *Sink[F]) AddGuarded(fn F) connection.Guard {
	return connection.NewGuard(s.Add(fn))
}

// AddCompatible registers a callable that takes a prefix of F's arguments.
// Nothing is registered when fn does not fit F.
func (s *Sink[F]) AddCompatible(fn any) (connection.Handle, error) {
	f, err := invocable.Adapt[F](fn)
	if err != nil {
		return connection.Handle{}, err
	}
	return s.Add(f), nil
}

// Set replaces every listener with fn.
func (s *Sink[F]) Set(fn F) connection.Handle {
	s.Clear()
	return s.Add(fn)
}

func (s *Sink[F]) Disconnect(id connection.ID) bool {
	ok := s.reg().Disconnect(id)
	if ok {
		s.opts.logger.Debug("listener disconnected", slog.Uint64("id", uint64(id)))
	}
	return ok
}

func (s *Sink[F]) Connected(id connection.ID) bool {
	return s.reg().Connected(id)
}

func (s *Sink[F]) Len() int {
	return s.reg().Len()
}

func (s *Sink[F]) Clear() int {
	return s.reg().Clear()
}

// Emitting reports whether a notification pass is in progress.
func (s *Sink[F]) Emitting() bool {
	return s.depth.Load() > 0
}

// Close disconnects every listener. Handles issued earlier report not
// connected, Add yields invalid handles and Emit does nothing.
func (s *Sink[F]) Close() {
	r := s.reg()
	if r.Closed() {
		return
	}
	r.Close()
	s.opts.logger.Debug("sink closed")
}

func (s *Sink[F]) Closed() bool {
	return s.reg().Closed()
}

// Emit calls call once per listener registered when Emit started, in
// registration order. Listeners disconnected during the pass are skipped if
// they have not run yet; listeners added during the pass wait for the next
// one. The first error stops the pass and is returned. Panics propagate.
func (s *Sink[F]) Emit(call func(F) error) error {
	s.depth.Add(1)
	defer s.depth.Add(-1)
	for _, slot := range s.reg().Snapshot() {
		if !slot.Alive() {
			continue
		}
		if err := call(slot.Value().(F)); err != nil {
			return err
		}
	}
	return nil
}

// EmitAll is Emit without the early stop: every listener runs and all errors
// are returned together.
func (s *Sink[F]) EmitAll(call func(F) error) error {
	var result *multierror.Error
	s.depth.Add(1)
	defer s.depth.Add(-1)
	for _, slot := range s.reg().Snapshot() {
		if !slot.Alive() {
			continue
		}
		if err := call(slot.Value().(F)); err != nil {
			s.opts.logger.LogAttrs(context.Background(), slog.LevelWarn, "listener failed",
				slog.Uint64("id", uint64(slot.ID())),
				slog.String("error", err.Error()),
			)
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func isNil[F any](fn F) bool {
	v := reflect.ValueOf(any(fn))
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}
