package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/metrics"
	"github.com/stg-tools/stg/wire"
)

func writeGraphFile(t *testing.T, dir, name string, build func(g *graph.Graph) graph.Id) string {
	t.Helper()
	g := graph.New()
	root := build(g)
	g.SetRoot(root)

	encoded, err := wire.Encode(g, root)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encoded, 0o644))
	return path
}

func buildPointInterface(name string, memberBitsize uint64) func(g *graph.Graph) graph.Id {
	return func(g *graph.Graph) graph.Id {
		intType := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
		member := graph.Add(g, graph.Member{Name: "x", Type: intType, Bitsize: memberBitsize})
		point := graph.Add(g, graph.StructUnion{
			Kind: graph.Struct,
			Name: name,
			Definition: &graph.StructUnionDefinition{
				Bytesize: 4,
				Members:  []graph.Id{member},
			},
		})
		symbol := graph.Add(g, graph.ElfSymbol{SymbolName: "global", IsDefined: true, Type: point})
		symbols := graph.NewOrderedMap()
		symbols.Set("global", symbol)
		types := graph.NewOrderedMap()
		types.Set(name, point)
		return graph.Add(g, graph.Interface{Symbols: symbols, Types: types})
	}
}

func TestLoadGraphResolvesAndDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeGraphFile(t, dir, "a.stg", buildPointInterface("Point", 4))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	g, root, err := loadGraph(path, logger, metrics.New())
	require.NoError(t, err)
	assert.True(t, g.Is(root))
}

func TestLoadGraphReportsDecodeErrorForGarbageInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.stg")
	require.NoError(t, os.WriteFile(path, []byte("not cbor"), 0o644))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	_, _, err := loadGraph(path, logger, metrics.New())
	assert.Error(t, err)
}
