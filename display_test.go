package calcx

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{11, "11"},
		{-7, "-7"},
		{0.25, "0.25"},
		{1.0 / 3.0, "0.3333333333333333"},
		{1e21, "1000000000000000000000"},
		{123456789, "123456789"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRender_ErrorWins(t *testing.T) {
	s := State{phase: PhaseError, err: UnreachableMessage, raw: Snapshot{Answer: ptr(3.0), Value: ptr(4.0)}}
	p, sec := Render(s)
	if p != UnreachableMessage {
		t.Errorf("primary = %q, want %q", p, UnreachableMessage)
	}
	if sec != "3 " {
		t.Errorf("secondary = %q, want %q", sec, "3 ")
	}
}

func TestRender_PendingBeforeAnswer(t *testing.T) {
	s := State{phase: PhaseSecondOperand, answer: 8, op: Divide, pending: 2}
	p, sec := Render(s)
	if p != "2" || sec != "8 ÷" {
		t.Errorf("Render = (%q, %q), want (%q, %q)", p, sec, "2", "8 ÷")
	}
}

func TestRender_Pure(t *testing.T) {
	states := []State{
		{},
		{phase: PhaseFirstOperand, pending: 42},
		{phase: PhaseOperatorPending, answer: 1, op: Subtract},
		{phase: PhaseEvaluated, answer: 9, repeatOp: Add, repeatOperand: 3},
		{phase: PhaseInconsistent, raw: Snapshot{Answer: ptr(1.0)}},
	}
	for _, s := range states {
		before := s.Snapshot()
		p1, s1 := Render(s)
		p2, s2 := Render(s)
		if p1 != p2 || s1 != s2 {
			t.Errorf("%s: Render not stable: (%q, %q) then (%q, %q)", s, p1, s1, p2, s2)
		}
		if after := s.Snapshot(); after.String() != before.String() {
			t.Errorf("Render changed state: %s -> %s", before, after)
		}
	}
}

func TestOperator_Symbols(t *testing.T) {
	want := map[Operator]string{Add: "+", Subtract: "−", Multiply: "×", Divide: "÷", Equal: "="}
	for op, sym := range want {
		if got := op.Symbol(); got != sym {
			t.Errorf("%s.Symbol() = %q, want %q", op, got, sym)
		}
	}
}
