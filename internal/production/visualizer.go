package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/comalice/calcx"
)

// DefaultVisualizer renders the calculator transition chart.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the chart, highlighting current.
func (v *DefaultVisualizer) ExportDOT(edges []calcx.Edge, current calcx.Phase) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Calculator {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, phase := range calcx.Phases() {
		renderPhase(&buf, phase, phase == current)
	}

	for _, edge := range mergeEdges(edges) {
		buf.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", edge.From, edge.To, edge.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the chart edges to JSON.
func (v *DefaultVisualizer) ExportJSON(edges []calcx.Edge) ([]byte, error) {
	return json.MarshalIndent(edges, "", "  ")
}

// Edge represents a rendered transition arc; parallel arcs share one label.
type Edge struct {
	From  string
	To    string
	Label string
}

// mergeEdges collapses arcs with the same endpoints into one labelled edge.
func mergeEdges(edges []calcx.Edge) []Edge {
	type key struct{ from, to calcx.Phase }
	labels := map[key][]string{}
	var order []key
	for _, e := range edges {
		k := key{e.From, e.To}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
		}
		labels[k] = append(labels[k], e.Event.String())
	}

	out := make([]Edge, 0, len(order))
	for _, k := range order {
		ls := labels[k]
		sort.Strings(ls)
		ls = slices.Compact(ls)
		out = append(out, Edge{From: k.from.String(), To: k.to.String(), Label: strings.Join(ls, ",")})
	}
	return out
}

func renderPhase(buf *bytes.Buffer, phase calcx.Phase, active bool) {
	style := ""
	switch {
	case active:
		style = ` style=filled fillcolor=lightgreen`
	case phase == calcx.PhaseError || phase == calcx.PhaseInconsistent:
		style = ` color=red`
	}
	buf.WriteString(fmt.Sprintf("  %q [label=%q%s];\n", phase.String(), phase.String(), style))
}
