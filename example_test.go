package calcx_test

import (
	"fmt"

	"github.com/comalice/calcx"
)

func ExampleApply() {
	var s calcx.State
	for _, e := range []calcx.Event{
		calcx.Digit(5),
		calcx.Press(calcx.Add),
		calcx.Digit(6),
		calcx.Press(calcx.Equal),
		calcx.Press(calcx.Equal),
	} {
		s, _ = calcx.Apply(s, e)
		primary, secondary := calcx.Render(s)
		fmt.Printf("%s: %q %q\n", e, secondary, primary)
	}
	// Output:
	// digit(5): " " "5"
	// operator(Add): "5 +" "5"
	// digit(6): "5 +" "6"
	// operator(Equal): "" "11"
	// operator(Equal): "" "17"
}

func ExampleParseKeys() {
	events, err := calcx.ParseKeys("12 × 3")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(events)
	// Output: [digit(1) digit(2) operator(Multiply) digit(3)]
}

func ExampleFromSnapshot() {
	answer, op := 8.0, calcx.Divide
	s := calcx.FromSnapshot(calcx.Snapshot{Answer: &answer, LastOperation: &op})
	s, _ = calcx.Apply(s, calcx.Digit(2))
	s, _ = calcx.Apply(s, calcx.Press(calcx.Equal))
	primary, _ := calcx.Render(s)
	fmt.Println(s.Phase(), primary)
	// Output: evaluated 4
}
