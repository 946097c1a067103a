package calcx

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  rune
		want Event
	}{
		{'0', Digit(0)},
		{'9', Digit(9)},
		{'+', Press(Add)},
		{'-', Press(Subtract)},
		{'−', Press(Subtract)},
		{'*', Press(Multiply)},
		{'x', Press(Multiply)},
		{'×', Press(Multiply)},
		{'/', Press(Divide)},
		{'÷', Press(Divide)},
		{'=', Press(Equal)},
		{'c', Clear()},
		{'C', Clear()},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.key)
		if err != nil {
			t.Errorf("ParseKey(%q) error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestParseKey_Unknown(t *testing.T) {
	for _, r := range []rune{'.', '(', '%', 'q'} {
		if _, err := ParseKey(r); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("ParseKey(%q) err = %v, want ErrUnknownKey", r, err)
		}
	}
}

func TestParseKeys_SkipsWhitespace(t *testing.T) {
	events, err := ParseKeys(" 1 +\t2\n= ")
	if err != nil {
		t.Fatal(err)
	}
	want := []Event{Digit(1), Press(Add), Digit(2), Press(Equal)}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, events[i], want[i])
		}
	}
}

func TestOperator_TextRoundTrip(t *testing.T) {
	for _, op := range []Operator{Add, Subtract, Multiply, Divide, Equal} {
		text, err := op.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Operator
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != op {
			t.Errorf("round trip %s = %s", op, back)
		}
	}
	if _, err := Operator(0).MarshalText(); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("MarshalText(0) err = %v, want ErrUnknownOperator", err)
	}
}
