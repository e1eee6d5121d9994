package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel every rejected status change
// unwraps to.  Rejected transitions are never retried.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrAmbiguousTransition is returned when a caller asks for "the next"
// state of a confirmed reservation, which has two possible successors.
var ErrAmbiguousTransition = errors.New("ambiguous transition: choose arrived or cancelled")

// TransitionError describes the rejected move.
type TransitionError struct {
	Entity Entity
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition %s -> %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// CheckTransition returns a *TransitionError when from → to is illegal.
func CheckTransition(entity Entity, from, to string) error {
	if IsValidTransition(entity, from, to) {
		return nil
	}
	return &TransitionError{Entity: entity, From: from, To: to}
}
