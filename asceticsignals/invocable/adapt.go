package invocable

import (
	"reflect"
)

// Check reports whether fn can be adapted to the signature F: fn may take a
// prefix of F's arguments, each of which must convert to fn's parameter type.
func Check[F any](fn any) error {
	_, err := plan(reflect.TypeFor[F](), fn)
	return err
}

// Adapt returns fn as an F. Functions whose type already matches F are
// returned as is; anything else is wrapped in a thunk that drops trailing
// arguments and converts the rest.
func Adapt[F any](fn any) (F, error) {
	var zero F
	target := reflect.TypeFor[F]()
	v, err := plan(target, fn)
	if err != nil {
		return zero, err
	}
	if f, ok := fn.(F); ok {
		return f, nil
	}
	if v.Type().ConvertibleTo(target) {
		return v.Convert(target).Interface().(F), nil
	}
	return reflect.MakeFunc(target, thunk(target, v)).Interface().(F), nil
}

func MustAdapt[F any](fn any) F {
	f, err := Adapt[F](fn)
	if err != nil {
		panic(err)
	}
	return f
}

func plan(target reflect.Type, fn any) (reflect.Value, error) {
	v := reflect.ValueOf(fn)
	var source reflect.Type
	if v.IsValid() {
		source = v.Type()
	}
	mismatch := func(index int, reason error) error {
		return &MismatchError{Signature: target, Callable: source, Index: index, Reason: reason}
	}
	if target.Kind() != reflect.Func {
		return v, mismatch(-1, ErrNotFunc)
	}
	if source == nil {
		return v, mismatch(-1, ErrNilFunction)
	}
	if source.Kind() != reflect.Func {
		return v, mismatch(-1, ErrNotFunc)
	}
	if v.IsNil() {
		return v, mismatch(-1, ErrNilFunction)
	}
	if target.IsVariadic() || source.IsVariadic() {
		return v, mismatch(-1, ErrVariadic)
	}
	if source.NumIn() > target.NumIn() {
		return v, mismatch(source.NumIn()-1, ErrArity)
	}
	for i := 0; i < source.NumIn(); i++ {
		if !compatible(target.In(i), source.In(i)) {
			return v, mismatch(i, ErrArgType)
		}
	}
	for i := 0; i < target.NumOut() && i < source.NumOut(); i++ {
		if !compatible(source.Out(i), target.Out(i)) {
			return v, mismatch(i, ErrResultType)
		}
	}
	return v, nil
}

func compatible(from, to reflect.Type) bool {
	if from.AssignableTo(to) {
		return true
	}
	if numeric(from) && numeric(to) {
		return true
	}
	return from.Kind() == to.Kind() && from.ConvertibleTo(to)
}

func numeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func thunk(target reflect.Type, fn reflect.Value) func([]reflect.Value) []reflect.Value {
	source := fn.Type()
	return func(args []reflect.Value) []reflect.Value {
		in := make([]reflect.Value, source.NumIn())
		for i := range in {
			in[i] = convert(args[i], source.In(i))
		}
		out := fn.Call(in)
		results := make([]reflect.Value, target.NumOut())
		for i := range results {
			if i < len(out) {
				results[i] = convert(out[i], target.Out(i))
			} else {
				results[i] = reflect.Zero(target.Out(i))
			}
		}
		return results
	}
}

func convert(v reflect.Value, to reflect.Type) reflect.Value {
	if v.Type() == to {
		return v
	}
	if to.Kind() == reflect.Interface && nilable(v) && v.IsNil() {
		// A typed nil must not turn into a non-nil interface.
		return reflect.Zero(to)
	}
	if v.Type().AssignableTo(to) {
		// Interface results must carry the exact type MakeFunc was declared with.
		converted := reflect.New(to).Elem()
		converted.Set(v)
		return converted
	}
	return v.Convert(to)
}

func nilable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return true
	}
	return false
}
