package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/stg-tools/stg/diff"
	"github.com/stg-tools/stg/graph"
)

// describeNode renders a short human label for a node, preferring its
// name where the variant has one; falls back to the variant's Go type
// name for anonymous nodes. One line per entry, the same way
// core/planfmt/formatter/tree.go's getTreeCommandString labels a plan
// step.
func describeNode(g *graph.Graph, id graph.Id) string {
	if id == graph.None || !g.Is(id) {
		return "<none>"
	}
	switch n := g.Get(id).(type) {
	case graph.Typedef:
		return fmt.Sprintf("typedef %s", n.Name)
	case graph.Primitive:
		return fmt.Sprintf("primitive %s", n.Name)
	case graph.StructUnion:
		if n.Name != "" {
			return fmt.Sprintf("%s %s", kindWord(n.Kind), n.Name)
		}
		return fmt.Sprintf("anonymous %s", kindWord(n.Kind))
	case graph.Enumeration:
		if n.Name != "" {
			return fmt.Sprintf("enum %s", n.Name)
		}
		return "anonymous enum"
	case graph.Member:
		return fmt.Sprintf("member %s", n.Name)
	case graph.Method:
		return fmt.Sprintf("method %s", n.Name)
	case graph.ElfSymbol:
		return fmt.Sprintf("symbol %s", n.SymbolName)
	case graph.Function:
		return "function"
	case graph.Array:
		return "array"
	case graph.PointerReference:
		return "pointer"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func kindWord(k graph.StructUnionKind) string {
	if k == graph.Union {
		return "union"
	}
	return "struct"
}

// printReport renders a Compare's Outcomes as a flat, sorted list: one
// section per changed Comparison, its local details indented beneath it.
// Sections are ordered by (Left, Right) so output is reproducible run to
// run despite Outcomes being a Go map.
func printReport(w io.Writer, left, right *graph.Graph, outcomes map[diff.Comparison]diff.Diff, useColor bool) int {
	comparisons := make([]diff.Comparison, 0, len(outcomes))
	for c := range outcomes {
		comparisons = append(comparisons, c)
	}
	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Left != comparisons[j].Left {
			return comparisons[i].Left < comparisons[j].Left
		}
		return comparisons[i].Right < comparisons[j].Right
	})

	reported := 0
	for _, c := range comparisons {
		d := outcomes[c]
		switch {
		case c.Left == graph.None:
			fmt.Fprintf(w, "%s %s\n", colorize("+", colorGreen, useColor), describeNode(right, c.Right))
			reported++
		case c.Right == graph.None:
			fmt.Fprintf(w, "%s %s\n", colorize("-", colorRed, useColor), describeNode(left, c.Left))
			reported++
		case len(d.Details) > 0:
			fmt.Fprintf(w, "%s %s %s\n", colorize("~", colorYellow, useColor),
				describeNode(left, c.Left), colorize(fmt.Sprintf("(%s vs %s):", c.Left, c.Right), colorCyan, useColor))
			for i, detail := range d.Details {
				prefix := "├─ "
				if i == len(d.Details)-1 {
					prefix = "└─ "
				}
				fmt.Fprintf(w, "  %s%s\n", prefix, detail.Text)
			}
			reported++
		}
	}
	return reported
}
