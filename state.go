package calcx

import "fmt"

// Phase names the sanctioned combinations of answer, pending value and last
// operator. A State only carries the payload its phase needs.
type Phase int

const (
	// PhaseEmpty has no operands and no operator.
	PhaseEmpty Phase = iota
	// PhaseFirstOperand is typing the first operand.
	PhaseFirstOperand
	// PhaseOperatorPending holds an answer and a binary operator awaiting its right operand.
	PhaseOperatorPending
	// PhaseSecondOperand is typing the right operand of a recorded operator.
	PhaseSecondOperand
	// PhaseEvaluated holds the answer produced by "=".
	PhaseEvaluated
	// PhaseInconsistent carries a restored field set that no transition can produce.
	PhaseInconsistent
	// PhaseError is entered when an operator is pressed in PhaseInconsistent.
	// Only Clear leaves it.
	PhaseError
)

var phaseNames = [...]string{
	PhaseEmpty:           "empty",
	PhaseFirstOperand:    "first_operand",
	PhaseOperatorPending: "operator_pending",
	PhaseSecondOperand:   "second_operand",
	PhaseEvaluated:       "evaluated",
	PhaseInconsistent:    "inconsistent",
	PhaseError:           "error",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Phases lists every phase in declaration order.
func Phases() []Phase {
	return []Phase{
		PhaseEmpty,
		PhaseFirstOperand,
		PhaseOperatorPending,
		PhaseSecondOperand,
		PhaseEvaluated,
		PhaseInconsistent,
		PhaseError,
	}
}

// State is the calculator state. The zero value is the initial, all-absent
// state. States are values: Apply returns a new State and never mutates its
// argument.
type State struct {
	phase Phase

	pending float64  // PhaseFirstOperand, PhaseSecondOperand
	answer  float64  // PhaseOperatorPending, PhaseSecondOperand, PhaseEvaluated
	op      Operator // PhaseOperatorPending, PhaseSecondOperand

	// Repeated "=" in PhaseEvaluated reapplies repeatOp with repeatOperand.
	repeatOp      Operator
	repeatOperand float64

	raw Snapshot // PhaseInconsistent, PhaseError
	err string   // PhaseError
}

// Phase returns the state's phase.
func (s State) Phase() Phase {
	return s.phase
}

// Pending returns the value being typed.
func (s State) Pending() (float64, bool) {
	switch s.phase {
	case PhaseFirstOperand, PhaseSecondOperand:
		return s.pending, true
	case PhaseInconsistent, PhaseError:
		return deref(s.raw.Value)
	}
	return 0, false
}

// Answer returns the accumulated result.
func (s State) Answer() (float64, bool) {
	switch s.phase {
	case PhaseOperatorPending, PhaseSecondOperand, PhaseEvaluated:
		return s.answer, true
	case PhaseInconsistent, PhaseError:
		return deref(s.raw.Answer)
	}
	return 0, false
}

// LastOperator returns the most recently accepted operator.
func (s State) LastOperator() (Operator, bool) {
	switch s.phase {
	case PhaseOperatorPending, PhaseSecondOperand:
		return s.op, true
	case PhaseEvaluated:
		return Equal, true
	case PhaseInconsistent, PhaseError:
		return deref(s.raw.LastOperation)
	}
	return 0, false
}

// ErrorMessage returns the message shown instead of a number.
func (s State) ErrorMessage() (string, bool) {
	if s.phase == PhaseError {
		return s.err, true
	}
	return "", false
}

func (s State) String() string {
	snap := s.Snapshot()
	return fmt.Sprintf("%s %s", s.phase, snap.String())
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func ptr[T any](v T) *T {
	return &v
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
