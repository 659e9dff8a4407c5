package graph

// Graph owns a set of nodes addressed by Id and dispatches operations by
// node variant. It is the single choke point every traversal in this
// engine flows through.
//
// A Graph is not safe for concurrent use: every pass owns its graph
// reference exclusively for the duration of a single-threaded run.
type Graph struct {
	states []state
	nodes  []Node
	root   Id
}

// New returns an empty Graph.
func New() *Graph {
	g := &Graph{
		states: []state{stateAbsent}, // index 0 reserved for None
		nodes:  []Node{nil},
	}
	return g
}

// Allocate reserves a fresh Id in the ABSENT state.
func (g *Graph) Allocate() Id {
	id := Id(len(g.states))
	g.states = append(g.states, stateAllocated)
	g.nodes = append(g.nodes, nil)
	return id
}

func (g *Graph) stateOf(id Id) state {
	if int(id) >= len(g.states) {
		return stateAbsent
	}
	return g.states[id]
}

// Is reports whether id is currently SET.
func (g *Graph) Is(id Id) bool {
	return g.stateOf(id) == stateSet
}

// Allocated reports whether id is ALLOCATED or SET (i.e. a valid
// reference target that is not itself absent).
func (g *Graph) Allocated(id Id) bool {
	s := g.stateOf(id)
	return s == stateAllocated || s == stateSet
}

// Set populates a previously allocated (or fresh) id with a node value.
// It fails if id is already SET.
func Set[V Node](g *Graph, id Id, v V) error {
	if g.stateOf(id) == stateSet {
		violate("Set", id, "id is already set")
	}
	for int(id) >= len(g.states) {
		g.states = append(g.states, stateAbsent)
		g.nodes = append(g.nodes, nil)
	}
	g.states[id] = stateSet
	g.nodes[id] = v
	return nil
}

// Add allocates a fresh id and sets it to v in one step.
func Add[V Node](g *Graph, v V) Id {
	id := g.Allocate()
	g.states[id] = stateSet
	g.nodes[id] = v
	return id
}

// Unset clears a SET id back to ABSENT, forgetting its node value. It
// fails if id is not SET (an allocated but never set id is ABSENT).
func (g *Graph) Unset(id Id) error {
	if g.stateOf(id) != stateSet {
		violate("Unset", id, "id is already absent")
	}
	g.states[id] = stateAbsent
	g.nodes[id] = nil
	return nil
}

// Remove is an alias for Unset, named for the "remove a node the
// deduplicator/resolver no longer needs" use case.
func (g *Graph) Remove(id Id) error {
	return g.Unset(id)
}

// Get returns the raw Node for id. It fails if id is not SET.
func (g *Graph) Get(id Id) Node {
	if g.stateOf(id) != stateSet {
		violate("Get", id, "id is not set")
	}
	return g.nodes[id]
}

// SetRoot records id as the graph's root (by convention an Interface).
func (g *Graph) SetRoot(id Id) {
	g.root = id
}

// Root returns the recorded root id, or None if none was set.
func (g *Graph) Root() Id {
	return g.root
}

// ForEach iterates every SET id in ascending order, which is the
// deterministic traversal order every pass in this engine relies on.
func (g *Graph) ForEach(f func(Id) error) error {
	for id := Id(1); int(id) < len(g.states); id++ {
		if g.states[id] == stateSet {
			if err := f(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// MaxId returns the largest id ever allocated, suitable for sizing a
// DenseIdSet/DenseIdMapping scratch structure.
func (g *Graph) MaxId() int {
	return len(g.states) - 1
}
