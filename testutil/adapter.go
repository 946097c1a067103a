// Package testutil runs the same calculator scenarios against the pure
// transition function and against a core.Machine.
package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/core"
)

// Adapter provides a common interface over the calculator runtimes.
type Adapter interface {
	Send(event calcx.Event) error
	Display() (primary, secondary string)
	Phase() calcx.Phase
}

// PureAdapter threads a calcx.State through calcx.Apply.
type PureAdapter struct {
	state calcx.State
}

func NewPureAdapter() *PureAdapter {
	return &PureAdapter{}
}

// Send keeps the resulting state even when Apply reports an invariant
// violation, matching what a Machine does.
func (a *PureAdapter) Send(event calcx.Event) error {
	next, err := calcx.Apply(a.state, event)
	if errors.Is(err, calcx.ErrInvalidEvent) {
		return err
	}
	a.state = next
	return nil
}

func (a *PureAdapter) Display() (string, string) {
	return calcx.Render(a.state)
}

func (a *PureAdapter) Phase() calcx.Phase {
	return a.state.Phase()
}

// MachineAdapter wraps a core.Machine.
type MachineAdapter struct {
	m *core.Machine
}

func NewMachineAdapter(opts ...core.Option) *MachineAdapter {
	return &MachineAdapter{m: core.NewMachine("adapter", opts...)}
}

func (a *MachineAdapter) Send(event calcx.Event) error {
	return a.m.Send(context.Background(), event)
}

func (a *MachineAdapter) Display() (string, string) {
	return a.m.Render()
}

func (a *MachineAdapter) Phase() calcx.Phase {
	return a.m.Phase()
}

// Scenario is a key sequence and the display it must produce.
type Scenario struct {
	Name      string
	Keys      string
	Primary   string
	Secondary string
	Phase     calcx.Phase
}

// CommonScenarios covers every reachable phase and the repeated-equals rule.
var CommonScenarios = []Scenario{
	{Name: "initial", Keys: "", Primary: "0", Secondary: " ", Phase: calcx.PhaseEmpty},
	{Name: "leading operator ignored", Keys: "+", Primary: "0", Secondary: " ", Phase: calcx.PhaseEmpty},
	{Name: "first operand", Keys: "12", Primary: "12", Secondary: " ", Phase: calcx.PhaseFirstOperand},
	{Name: "operator pending", Keys: "12+", Primary: "12", Secondary: "12 +", Phase: calcx.PhaseOperatorPending},
	{Name: "operator replaced", Keys: "12+-", Primary: "12", Secondary: "12 −", Phase: calcx.PhaseOperatorPending},
	{Name: "second operand", Keys: "12+3", Primary: "3", Secondary: "12 +", Phase: calcx.PhaseSecondOperand},
	{Name: "equals", Keys: "12+3=", Primary: "15", Secondary: "", Phase: calcx.PhaseEvaluated},
	{Name: "chained", Keys: "2*3+4=", Primary: "10", Secondary: "", Phase: calcx.PhaseEvaluated},
	{Name: "repeated equals", Keys: "5+6==", Primary: "17", Secondary: "", Phase: calcx.PhaseEvaluated},
	{Name: "continue from answer", Keys: "5+6=*2=", Primary: "22", Secondary: "", Phase: calcx.PhaseEvaluated},
	{Name: "digit after equals starts over", Keys: "5+6=7", Primary: "7", Secondary: " ", Phase: calcx.PhaseFirstOperand},
	{Name: "division", Keys: "7/2=", Primary: "3.5", Secondary: "", Phase: calcx.PhaseEvaluated},
	{Name: "divide by zero", Keys: "1/0=", Primary: "inf", Secondary: "", Phase: calcx.PhaseEvaluated},
	{Name: "clear", Keys: "12+3c", Primary: "0", Secondary: " ", Phase: calcx.PhaseEmpty},
}

// RunCommonTests plays every scenario on a fresh adapter from newAdapter.
func RunCommonTests(t *testing.T, newAdapter func() Adapter) {
	t.Helper()

	for _, sc := range CommonScenarios {
		t.Run(sc.Name, func(t *testing.T) {
			adapter := newAdapter()
			events, err := calcx.ParseKeys(sc.Keys)
			if err != nil {
				t.Fatalf("ParseKeys(%q): %v", sc.Keys, err)
			}
			for _, event := range events {
				if err := adapter.Send(event); err != nil {
					t.Fatalf("Send(%s): %v", event, err)
				}
			}

			primary, secondary := adapter.Display()
			if primary != sc.Primary {
				t.Errorf("primary = %q, want %q", primary, sc.Primary)
			}
			if secondary != sc.Secondary {
				t.Errorf("secondary = %q, want %q", secondary, sc.Secondary)
			}
			if got := adapter.Phase(); got != sc.Phase {
				t.Errorf("phase = %s, want %s", got, sc.Phase)
			}
		})
	}
}
