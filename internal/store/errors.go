package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrNotPermutation is returned by reorders whose ids are not exactly the
	// current set of siblings.
	ErrNotPermutation = errors.New("new order is not a permutation of the current order")
	// ErrReservedList is returned when deleting the inbox.
	ErrReservedList = errors.New("the inbox list cannot be deleted")
	// ErrEmptyName is returned when a list or problem would get a blank name.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrInvalidValue is returned for an unknown status, priority, layout or
	// view.
	ErrInvalidValue = errors.New("invalid value")
	// ErrDuplicateID is returned by the id check when two nodes share an id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrNoSnapshot is returned by a Backend that has nothing stored yet.
	ErrNoSnapshot = errors.New("no snapshot stored")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func listNotFound(id string) error {
	return &NotFoundError{Kind: "list", ID: id}
}

func problemNotFound(id string) error {
	return &NotFoundError{Kind: "problem", ID: id}
}
