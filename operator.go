package calcx

import (
	"errors"
	"fmt"
)

// Operator is a calculator operator key.
type Operator int

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
	Equal
)

// ErrUnknownOperator is returned when decoding an operator name that does not exist.
var ErrUnknownOperator = errors.New("unknown operator")

var operatorNames = map[Operator]string{
	Add:      "Add",
	Subtract: "Subtract",
	Multiply: "Multiply",
	Divide:   "Divide",
	Equal:    "Equal",
}

var operatorSymbols = map[Operator]string{
	Add:      "+",
	Subtract: "−",
	Multiply: "×",
	Divide:   "÷",
	Equal:    "=",
}

// Valid reports whether op is one of the declared operators.
func (op Operator) Valid() bool {
	_, ok := operatorNames[op]
	return ok
}

// Binary reports whether op has an evaluation rule of its own.
func (op Operator) Binary() bool {
	return op.Valid() && op != Equal
}

// Evaluate applies the operator to a and b.
// Division is unguarded: x/0 yields ±Inf or NaN.
// Equal has no rule and returns b unchanged.
func (op Operator) Evaluate(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		return a / b
	default:
		return b
	}
}

// Symbol returns the display symbol for op.
func (op Operator) Symbol() string {
	return operatorSymbols[op]
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// MarshalText encodes the operator by name. Both encoding/json and yaml.v3 use it.
func (op Operator) MarshalText() ([]byte, error) {
	name, ok := operatorNames[op]
	if !ok {
		return nil, fmt.Errorf("marshal operator %d: %w", int(op), ErrUnknownOperator)
	}
	return []byte(name), nil
}

// UnmarshalText decodes an operator name written by MarshalText.
func (op *Operator) UnmarshalText(text []byte) error {
	for k, name := range operatorNames {
		if name == string(text) {
			*op = k
			return nil
		}
	}
	return fmt.Errorf("unmarshal operator %q: %w", string(text), ErrUnknownOperator)
}
