package calcx

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Snapshot is the persisted form of a State: the four optional fields of the
// calculator plus the operands needed to repeat "=". Missing fields decode as
// absent, so snapshots written by older versions always load.
type Snapshot struct {
	Value         *float64  `json:"value,omitempty" yaml:"value,omitempty"`
	Answer        *float64  `json:"answer,omitempty" yaml:"answer,omitempty"`
	LastOperation *Operator `json:"last_operation,omitempty" yaml:"last_operation,omitempty"`
	ErrorMessage  *string   `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	RepeatOperation *Operator `json:"repeat_operation,omitempty" yaml:"repeat_operation,omitempty"`
	RepeatOperand   *float64  `json:"repeat_operand,omitempty" yaml:"repeat_operand,omitempty"`
}

func (s Snapshot) String() string {
	var b strings.Builder
	b.WriteString("answer=")
	writeOptional(&b, s.Answer, FormatNumber)
	b.WriteString(" value=")
	writeOptional(&b, s.Value, FormatNumber)
	b.WriteString(" last_operation=")
	writeOptional(&b, s.LastOperation, Operator.String)
	if s.ErrorMessage != nil {
		fmt.Fprintf(&b, " error_message=%q", *s.ErrorMessage)
	}
	return b.String()
}

// number is the JSON form of an operand. Division can leave inf, -inf or NaN
// in a state, and JSON has no literal for them, so they are written as the
// strings the display shows. Finite values stay plain numbers.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.AppendQuote(nil, FormatNumber(v)), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (n *number) UnmarshalJSON(data []byte) error {
	text := string(data)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("number %s: %w", data, err)
	}
	*n = number(v)
	return nil
}

type snapshotJSON struct {
	Value           *number   `json:"value,omitempty"`
	Answer          *number   `json:"answer,omitempty"`
	LastOperation   *Operator `json:"last_operation,omitempty"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
	RepeatOperation *Operator `json:"repeat_operation,omitempty"`
	RepeatOperand   *number   `json:"repeat_operand,omitempty"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Value:           (*number)(s.Value),
		Answer:          (*number)(s.Answer),
		LastOperation:   s.LastOperation,
		ErrorMessage:    s.ErrorMessage,
		RepeatOperation: s.RepeatOperation,
		RepeatOperand:   (*number)(s.RepeatOperand),
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Snapshot{
		Value:           (*float64)(w.Value),
		Answer:          (*float64)(w.Answer),
		LastOperation:   w.LastOperation,
		ErrorMessage:    w.ErrorMessage,
		RepeatOperation: w.RepeatOperation,
		RepeatOperand:   (*float64)(w.RepeatOperand),
	}
	return nil
}

func writeOptional[T any](b *strings.Builder, p *T, format func(T) string) {
	if p == nil {
		b.WriteString("none")
		return
	}
	b.WriteString(format(*p))
}

// Snapshot projects the state onto its persisted fields.
func (s State) Snapshot() Snapshot {
	switch s.phase {
	case PhaseFirstOperand:
		return Snapshot{Value: ptr(s.pending)}
	case PhaseOperatorPending:
		return Snapshot{Answer: ptr(s.answer), LastOperation: ptr(s.op)}
	case PhaseSecondOperand:
		return Snapshot{Value: ptr(s.pending), Answer: ptr(s.answer), LastOperation: ptr(s.op)}
	case PhaseEvaluated:
		snap := Snapshot{Answer: ptr(s.answer), LastOperation: ptr(Equal)}
		if s.repeatOp.Binary() {
			snap.RepeatOperation = ptr(s.repeatOp)
			snap.RepeatOperand = ptr(s.repeatOperand)
		}
		return snap
	case PhaseInconsistent:
		return s.raw.clone()
	case PhaseError:
		snap := s.raw.clone()
		snap.ErrorMessage = ptr(s.err)
		return snap
	}
	return Snapshot{}
}

// FromSnapshot rebuilds a State from persisted fields. It never fails: a
// field set no transition could produce becomes PhaseInconsistent and is
// reported as an error by the next operator press.
func FromSnapshot(snap Snapshot) State {
	snap = snap.clone()
	if snap.ErrorMessage != nil {
		err := *snap.ErrorMessage
		snap.ErrorMessage = nil
		return State{phase: PhaseError, raw: snap, err: err}
	}
	if snap.LastOperation != nil && !snap.LastOperation.Valid() {
		return State{phase: PhaseInconsistent, raw: snap}
	}

	switch {
	case snap.Answer == nil && snap.Value == nil:
		// An operator recorded without operands is dropped, matching the
		// no-op taken when an operator is pressed in PhaseEmpty.
		return State{}
	case snap.Answer == nil && snap.LastOperation == nil:
		return State{phase: PhaseFirstOperand, pending: *snap.Value}
	case snap.Answer != nil && snap.LastOperation != nil && snap.Value == nil:
		if *snap.LastOperation == Equal {
			s := State{phase: PhaseEvaluated, answer: *snap.Answer}
			if snap.RepeatOperation != nil && snap.RepeatOperation.Binary() && snap.RepeatOperand != nil {
				s.repeatOp = *snap.RepeatOperation
				s.repeatOperand = *snap.RepeatOperand
			}
			return s
		}
		return State{phase: PhaseOperatorPending, answer: *snap.Answer, op: *snap.LastOperation}
	case snap.Answer != nil && snap.LastOperation != nil && snap.Value != nil:
		return State{phase: PhaseSecondOperand, answer: *snap.Answer, op: *snap.LastOperation, pending: *snap.Value}
	}
	return State{phase: PhaseInconsistent, raw: snap}
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Value:           clonePtr(s.Value),
		Answer:          clonePtr(s.Answer),
		LastOperation:   clonePtr(s.LastOperation),
		ErrorMessage:    clonePtr(s.ErrorMessage),
		RepeatOperation: clonePtr(s.RepeatOperation),
		RepeatOperand:   clonePtr(s.RepeatOperand),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
