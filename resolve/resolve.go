// Package resolve implements forward-declaration resolution: the
// collect → pairwise-unify-definitions → unify-declarations →
// substitute-and-remove pipeline that turns a front-end-built graph
// (possibly containing many forward declarations and duplicate
// definitions of the same named type) into one where every named type
// has at most one representative node.
package resolve

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/stg-tools/stg/equality"
	"github.com/stg-tools/stg/fingerprint"
	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/subst"
	"github.com/stg-tools/stg/unify"
)

// namedKey identifies one (kind, name) partition the resolver unifies
// within. kind is "struct", "union", or "enum".
type namedKey struct {
	kind string
	name string
}

// group accumulates every definition and declaration Id seen for one
// namedKey, in discovery order.
type group struct {
	definitions  []graph.Id
	declarations []graph.Id
}

func kindLabel(k graph.StructUnionKind) string {
	if k == graph.Struct {
		return "struct"
	}
	return "union"
}

// Resolve runs the full pipeline over g, rooted at root, and returns the
// (possibly changed) root Id, the conflicts found along the way, and an
// error only for structural input problems (e.g. an anonymous forward
// declaration) that prevent resolution from proceeding at all.
//
// logger defaults to slog.Default() when nil, so callers that don't care
// about logging configuration can pass nil instead of wiring one up.
func Resolve(g *graph.Graph, root graph.Id, logger *slog.Logger) (graph.Id, *Conflicts, error) {
	if logger == nil {
		logger = slog.Default()
	}

	groups, namesByKind, err := collect(g)
	if err != nil {
		return root, nil, err
	}

	hashes, err := fingerprint.Fingerprint(g, root)
	if err != nil {
		return root, nil, err
	}
	eq := equality.NewComparator(g, g, equality.NewHashEqualityCache(hashes, hashes))
	uf := unify.New()
	conflicts := &Conflicts{}

	keys := make([]namedKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].name < keys[j].name
	})

	for _, key := range keys {
		if err := resolveGroup(g, eq, uf, conflicts, logger, key, groups[key], namesByKind[key.kind]); err != nil {
			return root, conflicts, err
		}
	}

	newRoot, err := substituteAndRemove(g, uf, root)
	if err != nil {
		return root, conflicts, err
	}
	return newRoot, conflicts, nil
}

// collect traverses every SET id in ascending (deterministic) order,
// grouping named StructUnion/Enumeration nodes by (kind, name) and
// reporting anonymous forward declarations as input errors. namesByKind
// collects every distinct name seen per kind, for did-you-mean suggestions.
func collect(g *graph.Graph) (map[namedKey]*group, map[string][]string, error) {
	groups := map[namedKey]*group{}
	seenNames := map[string]map[string]bool{}
	var inputErrs []error

	err := g.ForEach(func(id graph.Id) error {
		switch v := g.Get(id).(type) {
		case graph.StructUnion:
			if v.Name == "" {
				if v.Definition == nil {
					inputErrs = append(inputErrs, &graph.InputError{
						Kind: "anonymous-forward-declaration", Id: id,
						Message: "anonymous struct/union forward declaration has no containing definition to resolve it",
					})
				}
				return nil
			}
			k := kindLabel(v.Kind)
			addToGroup(groups, seenNames, namedKey{k, v.Name}, k, v.Name, id, v.Definition != nil)

		case graph.Enumeration:
			if v.Name == "" {
				if v.Definition == nil {
					inputErrs = append(inputErrs, &graph.InputError{
						Kind: "anonymous-forward-declaration", Id: id,
						Message: "anonymous enum forward declaration has no containing definition to resolve it",
					})
				}
				return nil
			}
			addToGroup(groups, seenNames, namedKey{"enum", v.Name}, "enum", v.Name, id, v.Definition != nil)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if len(inputErrs) > 0 {
		return nil, nil, errors.Join(inputErrs...)
	}

	namesByKind := make(map[string][]string, len(seenNames))
	for k, names := range seenNames {
		list := make([]string, 0, len(names))
		for n := range names {
			list = append(list, n)
		}
		sort.Strings(list)
		namesByKind[k] = list
	}
	return groups, namesByKind, nil
}

func addToGroup(groups map[namedKey]*group, seenNames map[string]map[string]bool, key namedKey, kind, name string, id graph.Id, defined bool) {
	g, ok := groups[key]
	if !ok {
		g = &group{}
		groups[key] = g
	}
	if defined {
		g.definitions = append(g.definitions, id)
	} else {
		g.declarations = append(g.declarations, id)
	}
	if seenNames[kind] == nil {
		seenNames[kind] = map[string]bool{}
	}
	seenNames[kind][name] = true
}

// resolveGroup implements pipeline steps 2 and 3 for one named type.
func resolveGroup(g *graph.Graph, eq *equality.Comparator, uf *unify.UnionFind, conflicts *Conflicts, logger *slog.Logger, key namedKey, grp *group, otherNames []string) error {
	if len(grp.definitions) == 0 {
		// No definition exists anywhere: per invariant 7, every
		// declaration of the same (kind, name) denotes the same type.
		return unifyAllOnto(g, eq, uf, grp.declarations)
	}

	candidate := grp.definitions[0]
	var conflicting []graph.Id
	for _, other := range grp.definitions[1:] {
		mapping, ok, err := unify.Unify(g, eq, candidate, other)
		if err != nil {
			return err
		}
		if !ok {
			conflicting = append(conflicting, other)
			continue
		}
		uf.Commit(mapping)
	}

	if len(conflicting) > 0 {
		suggestion := suggestNearMiss(key.name, otherNames)
		c := Conflict{Kind: key.kind, Name: key.name, Candidate: candidate, Conflicting: conflicting, Suggestion: suggestion}
		conflicts.add(c)
		logger.Warn("resolve: conflicting definitions",
			slog.String("kind", key.kind),
			slog.String("name", key.name),
			slog.Any("candidate", candidate),
			slog.Any("conflicting", conflicting))
		return nil
	}

	for _, decl := range grp.declarations {
		mapping, ok, err := unify.Unify(g, eq, candidate, decl)
		if err != nil {
			return err
		}
		if ok {
			uf.Commit(mapping)
		}
	}
	return nil
}

// unifyAllOnto merges every id in ids onto ids[0]. Used when a named type
// has only forward declarations: any two same-(kind,name) declarations
// unify trivially (unify.Unify's neither-defined branch always succeeds).
func unifyAllOnto(g *graph.Graph, eq *equality.Comparator, uf *unify.UnionFind, ids []graph.Id) error {
	if len(ids) <= 1 {
		return nil
	}
	candidate := ids[0]
	for _, id := range ids[1:] {
		mapping, ok, err := unify.Unify(g, eq, candidate, id)
		if err != nil {
			return err
		}
		if ok {
			uf.Commit(mapping)
		}
	}
	return nil
}

// substituteAndRemove is pipeline step 4: rewrite every remaining
// (representative) node's outgoing references to their union-find
// representatives, then remove every node that is no longer a
// representative, and return the (possibly rewritten) root.
func substituteAndRemove(g *graph.Graph, uf *unify.UnionFind, root graph.Id) (graph.Id, error) {
	var ids []graph.Id
	if err := g.ForEach(func(id graph.Id) error {
		ids = append(ids, id)
		return nil
	}); err != nil {
		return root, err
	}

	remap := uf.Find
	for _, id := range ids {
		if remap(id) != id {
			continue
		}
		if err := subst.Walk(g, id, remap); err != nil {
			return root, err
		}
	}
	for _, id := range ids {
		if remap(id) != id {
			if err := g.Remove(id); err != nil {
				return root, err
			}
		}
	}

	newRoot := remap(root)
	g.SetRoot(newRoot)
	return newRoot, nil
}
