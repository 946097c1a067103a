package calcx

import (
	"errors"
	"fmt"
)

// UnreachableMessage is displayed after an invariant violation.
const UnreachableMessage = "Err: Unreachable"

// ErrUnreachable marks a transition out of a field combination that the
// engine itself can never produce.
var ErrUnreachable = errors.New("unreachable calculator state")

// InvariantError describes an invariant violation: the fields present when
// the operator was pressed.
type InvariantError struct {
	Snapshot Snapshot
	Operator Operator
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s on %s", ErrUnreachable, e.Snapshot, e.Operator)
}

func (e *InvariantError) Unwrap() error {
	return ErrUnreachable
}
