package resolve

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/stg-tools/stg/graph"
)

// Conflict records a named type for which step 2 of the resolver pipeline
// found two or more structurally incompatible definitions. Candidate is
// the first definition seen (the one declarations would have been merged
// onto, had resolution succeeded); Conflicting holds every definition that
// failed to unify against it. All declarations of this (kind, name) are
// left unresolved when a Conflict is recorded.
type Conflict struct {
	Kind        string
	Name        string
	Candidate   graph.Id
	Conflicting []graph.Id
	// Suggestion is a near-miss name from elsewhere in the same kind
	// partition (e.g. "stat64" when Name is "stat"), populated via
	// fuzzy matching when one exists. Empty if no close name was found.
	Suggestion string
}

// Error renders a Rust-style multi-line diagnostic: a summary line
// followed by one indented line for the candidate and one per conflicting
// definition.
func (c *Conflict) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Error: Conflicting definitions for %s '%s'\n", c.Kind, c.Name)
	fmt.Fprintf(&b, "  --> %d incompatible definition(s) found\n", len(c.Conflicting)+1)
	fmt.Fprintf(&b, "   |\n")
	fmt.Fprintf(&b, "   | Candidate:    %s\n", c.Candidate)
	for _, id := range c.Conflicting {
		fmt.Fprintf(&b, "   | Conflicting:  %s\n", id)
	}
	fmt.Fprintf(&b, "   |\n")
	if c.Suggestion != "" {
		fmt.Fprintf(&b, "   = Note: a similarly named %s '%s' exists nearby — check for a typo\n", c.Kind, c.Suggestion)
	}
	fmt.Fprintf(&b, "   = Declarations of '%s' are left unresolved until this is fixed\n", c.Name)

	return b.String()
}

// Conflicts collects every Conflict found during one Resolve run.
type Conflicts struct {
	Items []Conflict
}

func (c *Conflicts) add(item Conflict) {
	c.Items = append(c.Items, item)
}

// Len reports how many conflicts were recorded.
func (c *Conflicts) Len() int {
	return len(c.Items)
}

// suggestNearMiss returns the closest name to target among candidates
// (excluding target itself), or "" if candidates is empty. Grounded on
// planner.findClosestMatch's use of fuzzy.RankFindFold.
func suggestNearMiss(target string, candidates []string) string {
	var filtered []string
	for _, c := range candidates {
		if c != target {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, filtered)
	if len(ranks) == 0 {
		return ""
	}
	return ranks[0].Target
}
