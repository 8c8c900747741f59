package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies a store failure so callers can decide per-item handling
// without inspecting driver errors.
type Kind string

const (
	KindConflict    Kind = "CONFLICT"
	KindNotFound    Kind = "NOT_FOUND"
	KindInvalid     Kind = "INVALID_INPUT"
	KindUnavailable Kind = "STORE_UNAVAILABLE"
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap converts a gorm error into a classified store error.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindUnavailable
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		kind = KindConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = KindNotFound
	case errors.Is(err, gorm.ErrInvalidData), errors.Is(err, gorm.ErrInvalidValue):
		kind = KindInvalid
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the classification from err, defaulting to
// STORE_UNAVAILABLE for errors that did not come from this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnavailable
}
