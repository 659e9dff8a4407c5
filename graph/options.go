package graph

// Option configures a new Graph. There is currently one knob: an initial
// capacity hint for large front-end-built graphs, avoiding repeated
// slice growth during bulk Allocate/Set calls.
type Option func(*Graph)

// WithCapacityHint pre-sizes the Graph's internal storage for n ids.
func WithCapacityHint(n int) Option {
	return func(g *Graph) {
		if n <= 0 {
			return
		}
		states := make([]state, 1, n+1)
		states[0] = stateAbsent
		nodes := make([]Node, 1, n+1)
		g.states = states
		g.nodes = nodes
	}
}

// NewWithOptions returns an empty Graph configured by opts.
func NewWithOptions(opts ...Option) *Graph {
	g := New()
	for _, opt := range opts {
		opt(g)
	}
	return g
}
