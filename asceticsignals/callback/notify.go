package callback

// Typed notification helpers. These are free functions because Go methods
// cannot introduce type parameters of their own.

func Notify0(s *Sink[func()]) {
	_ = s.Emit(func(f func()) error {
		f()
		return nil
	})
}

func Notify1[A any](s *Sink[func(A)], a A) {
	_ = s.Emit(func(f func(A)) error {
		f(a)
		return nil
	})
}

func Notify2[A, B any](s *Sink[func(A, B)], a A, b B) {
	_ = s.Emit(func(f func(A, B)) error {
		f(a, b)
		return nil
	})
}

func Notify3[A, B, C any](s *Sink[func(A, B, C)], a A, b B, c C) {
	_ = s.Emit(func(f func(A, B, C)) error {
		f(a, b, c)
		return nil
	})
}

func TryNotify0(s *Sink[func() error]) error {
	return s.Emit(func(f func() error) error {
		return f()
	})
}

func TryNotify1[A any](s *Sink[func(A) error], a A) error {
	return s.Emit(func(f func(A) error) error {
		return f(a)
	})
}

func TryNotify2[A, B any](s *Sink[func(A, B) error], a A, b B) error {
	return s.Emit(func(f func(A, B) error) error {
		return f(a, b)
	})
}

func TryNotify3[A, B, C any](s *Sink[func(A, B, C) error], a A, b B, c C) error {
	return s.Emit(func(f func(A, B, C) error) error {
		return f(a, b, c)
	})
}
