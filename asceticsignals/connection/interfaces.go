package connection

import "github.com/pkg/errors"

var ErrClosed = errors.New("connection: registry is closed")

// ID identifies one connection within one registry. IDs are never reused.
type ID uint64

const InvalidID ID = 0

func (id ID) Valid() bool {
	return id != InvalidID
}
