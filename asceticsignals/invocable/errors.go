package invocable

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	ErrNotFunc     = errors.New("invocable: not a function")
	ErrVariadic    = errors.New("invocable: variadic functions are not supported")
	ErrArity       = errors.New("invocable: function takes more arguments than the signature provides")
	ErrArgType     = errors.New("invocable: argument type is not compatible")
	ErrResultType  = errors.New("invocable: result type is not compatible")
	ErrNilFunction = errors.New("invocable: nil function")
)

// MismatchError describes why a callable cannot stand in for a signature.
// Index is the offending parameter or result position, -1 when not applicable.
type MismatchError struct {
	Signature reflect.Type
	Callable  reflect.Type
	Index     int
	Reason    error
}

func (e *MismatchError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %v cannot be used as %v (position %d)", e.Reason, e.Callable, e.Signature, e.Index)
	}
	return fmt.Sprintf("%v: %v cannot be used as %v", e.Reason, e.Callable, e.Signature)
}

func (e *MismatchError) Unwrap() error {
	return e.Reason
}
