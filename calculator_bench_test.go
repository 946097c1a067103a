package calcx

import "testing"

// BenchmarkApply measures one full "12+34=" sequence.
func BenchmarkApply(b *testing.B) {
	events, err := ParseKeys("12+34=")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var s State
		for _, e := range events {
			s, _ = Apply(s, e)
		}
	}
}

// BenchmarkRender measures formatting both display lines mid-operation.
func BenchmarkRender(b *testing.B) {
	s := State{phase: PhaseSecondOperand, answer: 1234.5, op: Multiply, pending: 67}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render(s)
	}
}
