package calcx

import (
	"errors"
	"fmt"
	"unicode"
)

// EventKind identifies the kind of button that was pressed.
type EventKind int

const (
	DigitEvent EventKind = iota + 1
	OperatorEvent
	ClearEvent
)

func (k EventKind) String() string {
	switch k {
	case DigitEvent:
		return "digit"
	case OperatorEvent:
		return "operator"
	case ClearEvent:
		return "clear"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

var (
	// ErrInvalidEvent is returned by Apply for events that no button can produce.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrUnknownKey is returned by ParseKey for keys with no button.
	ErrUnknownKey = errors.New("unknown key")
)

// Event is a single button press. Events are values; construct them with
// Digit, Press or Clear.
type Event struct {
	Kind     EventKind
	Digit    uint8    // DigitEvent only
	Operator Operator // OperatorEvent only
}

// Digit returns the event for pressing digit d (0-9).
func Digit(d uint8) Event {
	return Event{Kind: DigitEvent, Digit: d}
}

// Press returns the event for pressing an operator key.
func Press(op Operator) Event {
	return Event{Kind: OperatorEvent, Operator: op}
}

// Clear returns the event for the clear key.
func Clear() Event {
	return Event{Kind: ClearEvent}
}

// Validate reports whether the event could have come from a real button.
func (e Event) Validate() error {
	switch e.Kind {
	case DigitEvent:
		if e.Digit > 9 {
			return fmt.Errorf("digit %d: %w", e.Digit, ErrInvalidEvent)
		}
	case OperatorEvent:
		if !e.Operator.Valid() {
			return fmt.Errorf("operator %d: %w", int(e.Operator), ErrInvalidEvent)
		}
	case ClearEvent:
	default:
		return fmt.Errorf("kind %d: %w", int(e.Kind), ErrInvalidEvent)
	}
	return nil
}

func (e Event) String() string {
	switch e.Kind {
	case DigitEvent:
		return fmt.Sprintf("digit(%d)", e.Digit)
	case OperatorEvent:
		return fmt.Sprintf("operator(%s)", e.Operator)
	case ClearEvent:
		return "clear"
	default:
		return e.Kind.String()
	}
}

// ParseKey maps a keyboard key to a button event.
// ASCII and the display symbols are both accepted for operators.
func ParseKey(r rune) (Event, error) {
	switch {
	case r >= '0' && r <= '9':
		return Digit(uint8(r - '0')), nil
	case r == '+':
		return Press(Add), nil
	case r == '-' || r == '−':
		return Press(Subtract), nil
	case r == '*' || r == 'x' || r == 'X' || r == '×':
		return Press(Multiply), nil
	case r == '/' || r == '÷':
		return Press(Divide), nil
	case r == '=':
		return Press(Equal), nil
	case r == 'c' || r == 'C':
		return Clear(), nil
	}
	return Event{}, fmt.Errorf("key %q: %w", r, ErrUnknownKey)
}

// ParseKeys maps every non-space rune of s to an event.
func ParseKeys(s string) ([]Event, error) {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		e, err := ParseKey(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
