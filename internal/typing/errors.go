package typing

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveWord is returned when input arrives before StartWord.
	ErrNoActiveWord = errors.New("no active word")
	// ErrEmptyTarget is returned for a zero-length target word.
	ErrEmptyTarget = errors.New("target word is empty")
)

// StateError reports a caller contract violation. It indicates a bug in the
// driving loop rather than a runtime condition to recover from.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("typing: %s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

func stateErr(op string, err error) error {
	return &StateError{Op: op, Err: err}
}
