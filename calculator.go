// Package calcx implements the button state machine of a four-function
// calculator.
//
// The engine is pure: Apply maps a State and one button Event to the next
// State, and Render projects a State onto the two display lines. Callers own
// the State and pass it back in on every press.
//
//	var s calcx.State
//	for _, e := range []calcx.Event{calcx.Digit(5), calcx.Press(calcx.Add), calcx.Digit(6), calcx.Press(calcx.Equal)} {
//		s, _ = calcx.Apply(s, e)
//	}
//	primary, _ := calcx.Render(s) // "11"
package calcx

// transitionFunc computes the next state. A non-nil error other than an
// *InvariantError is never returned by the chart.
type transitionFunc func(s State, evt Event) (State, error)

type transition struct {
	On      EventKind
	Targets []Phase // every phase apply may return
	apply   transitionFunc
}

// Edge is one arc of the transition chart.
type Edge struct {
	From  Phase     `json:"from"`
	To    Phase     `json:"to"`
	Event EventKind `json:"event"`
}

var chart = map[Phase][]transition{
	PhaseEmpty: {
		{On: DigitEvent, Targets: []Phase{PhaseFirstOperand}, apply: startFirstOperand},
		{On: OperatorEvent, Targets: []Phase{PhaseEmpty}, apply: ignore},
	},
	PhaseFirstOperand: {
		{On: DigitEvent, Targets: []Phase{PhaseFirstOperand}, apply: appendDigit},
		{On: OperatorEvent, Targets: []Phase{PhaseOperatorPending, PhaseEvaluated}, apply: commitFirstOperand},
	},
	PhaseOperatorPending: {
		{On: DigitEvent, Targets: []Phase{PhaseSecondOperand}, apply: startSecondOperand},
		{On: OperatorEvent, Targets: []Phase{PhaseOperatorPending, PhaseEvaluated}, apply: replaceOperator},
	},
	PhaseSecondOperand: {
		{On: DigitEvent, Targets: []Phase{PhaseSecondOperand}, apply: appendDigit},
		{On: OperatorEvent, Targets: []Phase{PhaseOperatorPending, PhaseEvaluated}, apply: evaluate},
	},
	PhaseEvaluated: {
		{On: DigitEvent, Targets: []Phase{PhaseFirstOperand}, apply: startFirstOperand},
		{On: OperatorEvent, Targets: []Phase{PhaseOperatorPending, PhaseEvaluated}, apply: continueFromAnswer},
	},
	PhaseInconsistent: {
		{On: DigitEvent, Targets: []Phase{PhaseInconsistent}, apply: appendRawDigit},
		{On: OperatorEvent, Targets: []Phase{PhaseError}, apply: unreachable},
	},
	// Digits still reach the raw value; the message holds the display
	// until Clear.
	PhaseError: {
		{On: DigitEvent, Targets: []Phase{PhaseError}, apply: appendRawDigit},
		{On: OperatorEvent, Targets: []Phase{PhaseError}, apply: ignore},
	},
}

func init() {
	for _, p := range Phases() {
		chart[p] = append(chart[p], transition{On: ClearEvent, Targets: []Phase{PhaseEmpty}, apply: reset})
	}
}

// Apply returns the state that follows pressing evt in state s.
//
// Apply is total: every valid event yields a state. Invalid events return s
// unchanged with an error wrapping ErrInvalidEvent. Pressing an operator in
// PhaseInconsistent returns the PhaseError state together with an
// *InvariantError describing the fields at the time of the press.
func Apply(s State, evt Event) (State, error) {
	if err := evt.Validate(); err != nil {
		return s, err
	}
	t := pickTransition(s.phase, evt)
	if t == nil {
		return s, nil
	}
	return t.apply(s, evt)
}

// Chart returns the edges of the transition chart, grouped by source phase.
func Chart() []Edge {
	var edges []Edge
	for _, p := range Phases() {
		for _, t := range chart[p] {
			for _, to := range t.Targets {
				edges = append(edges, Edge{From: p, To: to, Event: t.On})
			}
		}
	}
	return edges
}

// pickTransition returns the first transition of phase p that handles evt.
func pickTransition(p Phase, evt Event) *transition {
	ts := chart[p]
	for i := range ts {
		if ts[i].On == evt.Kind {
			return &ts[i]
		}
	}
	return nil
}

func reset(State, Event) (State, error) {
	return State{}, nil
}

func ignore(s State, _ Event) (State, error) {
	return s, nil
}

func startFirstOperand(_ State, evt Event) (State, error) {
	return State{phase: PhaseFirstOperand, pending: float64(evt.Digit)}, nil
}

func startSecondOperand(s State, evt Event) (State, error) {
	s.phase = PhaseSecondOperand
	s.pending = float64(evt.Digit)
	return s, nil
}

// appendDigit shifts the pending value one decimal place left.
func appendDigit(s State, evt Event) (State, error) {
	s.pending = s.pending*10 + float64(evt.Digit)
	return s, nil
}

func appendRawDigit(s State, evt Event) (State, error) {
	s.raw = s.raw.clone()
	if s.raw.Value == nil {
		s.raw.Value = ptr(float64(evt.Digit))
	} else {
		s.raw.Value = ptr(*s.raw.Value*10 + float64(evt.Digit))
	}
	return s, nil
}

func commitFirstOperand(s State, evt Event) (State, error) {
	return withOperator(s.pending, evt.Operator), nil
}

func replaceOperator(s State, evt Event) (State, error) {
	return withOperator(s.answer, evt.Operator), nil
}

func evaluate(s State, evt Event) (State, error) {
	result := s.op.Evaluate(s.answer, s.pending)
	next := withOperator(result, evt.Operator)
	if next.phase == PhaseEvaluated && s.op.Binary() {
		next.repeatOp = s.op
		next.repeatOperand = s.pending
	}
	return next, nil
}

// continueFromAnswer either starts a new operation on the answer or, for a
// repeated "=", reapplies the last operation with the same right operand.
func continueFromAnswer(s State, evt Event) (State, error) {
	if evt.Operator != Equal {
		return withOperator(s.answer, evt.Operator), nil
	}
	if s.repeatOp.Binary() {
		s.answer = s.repeatOp.Evaluate(s.answer, s.repeatOperand)
	}
	return s, nil
}

func unreachable(s State, evt Event) (State, error) {
	err := &InvariantError{Snapshot: s.Snapshot(), Operator: evt.Operator}
	return State{phase: PhaseError, raw: s.raw.clone(), err: UnreachableMessage}, err
}

func withOperator(answer float64, op Operator) State {
	if op == Equal {
		return State{phase: PhaseEvaluated, answer: answer}
	}
	return State{phase: PhaseOperatorPending, answer: answer, op: op}
}
