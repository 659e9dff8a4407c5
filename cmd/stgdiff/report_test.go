package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stg-tools/stg/diff"
	"github.com/stg-tools/stg/graph"
)

func TestDescribeNodeUsesNameWhenPresent(t *testing.T) {
	g := graph.New()
	point := graph.Add(g, graph.StructUnion{Kind: graph.Struct, Name: "Point"})
	member := graph.Add(g, graph.Member{Name: "x", Type: point})
	anon := graph.Add(g, graph.StructUnion{Kind: graph.Union})

	assert.Equal(t, "struct Point", describeNode(g, point))
	assert.Equal(t, "member x", describeNode(g, member))
	assert.Equal(t, "anonymous union", describeNode(g, anon))
	assert.Equal(t, "<none>", describeNode(g, graph.None))
}

func TestPrintReportListsAdditionsRemovalsAndChangesDeterministically(t *testing.T) {
	left := graph.New()
	right := graph.New()

	removedID := graph.Add(left, graph.Primitive{Name: "old", Bytesize: 4})
	addedID := graph.Add(right, graph.Primitive{Name: "new", Bytesize: 4})

	outcomes := map[diff.Comparison]diff.Diff{
		{Left: removedID, Right: graph.None}: {},
		{Left: graph.None, Right: addedID}:   {},
		{Left: graph.Id(5), Right: graph.Id(5)}: {
			HasChanges: true,
			Details:    []diff.DiffDetail{{Text: "bytesize changed from 4 to 8"}},
		},
	}
	// graph.Id(5) isn't allocated in either graph; describeNode must
	// degrade gracefully rather than panic on an out-of-range id.
	graph.Add(left, graph.Primitive{Name: "mid", Bytesize: 4})

	var buf bytes.Buffer
	n := printReport(&buf, left, right, outcomes, false)

	assert.Equal(t, 3, n)
	out := buf.String()
	assert.Contains(t, out, "- primitive old")
	assert.Contains(t, out, "+ primitive new")
	assert.Contains(t, out, "bytesize changed from 4 to 8")
}
