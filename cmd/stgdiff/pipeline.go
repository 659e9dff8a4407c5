package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/stg-tools/stg/dedup"
	"github.com/stg-tools/stg/fingerprint"
	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/metrics"
	"github.com/stg-tools/stg/resolve"
	"github.com/stg-tools/stg/wire"
)

// loadGraph runs one input file through the full front-of-differ
// pipeline: wire-decode, resolve (merge repeated declarations of the same
// named type), then deduplicate (merge structurally-identical
// subgraphs). Conflicts found by the resolver are logged as warnings, not
// treated as fatal: the conflicting declarations are left unresolved and
// the rest of the graph is still usable.
func loadGraph(path string, logger *slog.Logger, m *metrics.Metrics) (*graph.Graph, graph.Id, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, graph.None, fmt.Errorf("reading %s: %w", path, err)
	}

	g, root, err := wire.Decode(data)
	if err != nil {
		return nil, graph.None, fmt.Errorf("decoding %s: %w", path, err)
	}

	resolved, conflicts, err := resolve.Resolve(g, root, logger)
	if err != nil {
		return nil, graph.None, fmt.Errorf("resolving %s: %w", path, err)
	}
	if conflicts.Len() > 0 {
		logger.Warn("conflicting definitions left unresolved", "file", path, "count", conflicts.Len())
		for _, c := range conflicts.Items {
			logger.Warn(c.Error(), "file", path)
		}
	}

	hashes, err := fingerprint.Fingerprint(g, resolved)
	if err != nil {
		return nil, graph.None, fmt.Errorf("fingerprinting %s: %w", path, err)
	}

	deduped, err := dedup.Deduplicate(g, resolved, hashes, m)
	if err != nil {
		return nil, graph.None, fmt.Errorf("deduplicating %s: %w", path, err)
	}

	return g, deduped, nil
}
