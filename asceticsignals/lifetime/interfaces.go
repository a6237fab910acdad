// Package lifetime provides destruction notification and observing pointers
// that empty themselves when their target is destroyed.
package lifetime

import "github.com/pkg/errors"

var (
	ErrDestroyed   = errors.New("lifetime: object is destroyed")
	ErrNilObserver = errors.New("lifetime: nil observer")
)

// Lifetimed is implemented by anything that embeds an Observable.
type Lifetimed interface {
	Lifetime() *Observable
}
