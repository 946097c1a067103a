package calcx

import (
	"math"
	"strconv"
)

// Render returns the two display lines for s. The primary line shows the
// error message, the pending value, the answer or 0, in that order of
// preference. The secondary line shows "{answer} {operator}" while an
// operation is in progress and is empty after "=".
//
// Render never modifies s.
func Render(s State) (primary, secondary string) {
	return renderPrimary(s), renderSecondary(s)
}

func renderPrimary(s State) string {
	if msg, ok := s.ErrorMessage(); ok {
		return msg
	}
	if v, ok := s.Pending(); ok {
		return FormatNumber(v)
	}
	if v, ok := s.Answer(); ok {
		return FormatNumber(v)
	}
	return FormatNumber(0)
}

func renderSecondary(s State) string {
	op, hasOp := s.LastOperator()
	if hasOp && op == Equal {
		return ""
	}
	answer := ""
	if v, ok := s.Answer(); ok {
		answer = FormatNumber(v)
	}
	symbol := ""
	if hasOp {
		symbol = op.Symbol()
	}
	return answer + " " + symbol
}

// FormatNumber formats v in the shortest decimal form that round-trips,
// without exponent or digit grouping. Infinities print as "inf" and "-inf".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
