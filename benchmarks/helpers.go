// Package benchmarks provides shared helpers for calculator runtime benchmarks.
package benchmarks

import (
	"strings"

	"github.com/comalice/calcx"
)

// GenKeys returns n chained operations ending in "=", e.g. "1+2×3−4÷5=".
func GenKeys(n int) string {
	if n < 1 {
		n = 1
	}
	ops := []string{"+", "×", "−", "÷"}
	var b strings.Builder
	b.WriteString("1")
	for i := 0; i < n; i++ {
		b.WriteString(ops[i%len(ops)])
		b.WriteByte(byte('1' + i%9))
	}
	b.WriteString("=")
	return b.String()
}

// GenEvents is GenKeys parsed into events.
func GenEvents(n int) []calcx.Event {
	events, err := calcx.ParseKeys(GenKeys(n))
	if err != nil {
		panic(err)
	}
	return events
}
