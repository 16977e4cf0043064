package errors

import (
	"errors"
	"fmt"
)

// sentinel errors for the storage layer.
//
// Typed errors below unwrap to these, so callers can branch with
// errors.Is without knowing the concrete type.
var (
	ErrMissing  = errors.New("missing")
	ErrConflict = errors.New("conflict")
)

// requested record is not in the store.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s with id %s is not found", m.Table, m.Identity)
}

func (m Missing) Unwrap() error {
	return ErrMissing
}

// a record violating a uniqueness constraint was about to be saved.
//
// The storage layer has already rolled back when this is returned.
type Conflict struct {
	Table  string
	Detail string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return c.Detail
}

func (c Conflict) Unwrap() error {
	return ErrConflict
}
