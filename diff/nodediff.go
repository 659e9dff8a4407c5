package diff

import "fmt"

// maybeAddNodeDiff records a scalar attribute change when before != after,
// mirroring the reference's templated Result::MaybeAddNodeDiff.
func maybeAddNodeDiff[T comparable](r *result, text string, before, after T) {
	if before != after {
		r.addNodeDiff(fmt.Sprintf("%s changed from %v to %v", text, before, after))
	}
}

// maybeAddNodeDiffOptional handles the optional-attribute case: present on
// both sides compares values; present on only one side reports
// removed/added.
func maybeAddNodeDiffOptional[T comparable](r *result, text string, before, after *T) {
	switch {
	case before != nil && after != nil:
		maybeAddNodeDiff(r, text, *before, *after)
	case before != nil:
		r.addNodeDiff(fmt.Sprintf("%s %v was removed", text, *before))
	case after != nil:
		r.addNodeDiff(fmt.Sprintf("%s %v was added", text, *after))
	}
}
