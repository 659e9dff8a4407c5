// Package graph implements the Symbol-Type Graph: a tagged-variant node
// store addressed by opaque, dense identifiers.
package graph

import "fmt"

// Id is an opaque handle into a Graph. Ids are only meaningful within the
// Graph that issued them. The zero Id is reserved and never allocated by
// Allocate; it is used by node fields to mean "no reference" where the
// field is optional (see e.g. Method.VtableOffset, which uses a pointer
// instead, versus optional Id edges which use None).
type Id uint32

// None is the reserved "no id" sentinel. It is never returned by Allocate.
const None Id = 0

func (id Id) String() string {
	if id == None {
		return "<none>"
	}
	return fmt.Sprintf("#%d", uint32(id))
}

// state tracks the lifecycle of a single Id slot.
type state uint8

const (
	stateAbsent state = iota
	stateAllocated
	stateSet
)

// InvariantViolation reports a structural invariant violation: a
// programmer error in how the graph is being used (set-on-set,
// unset-on-absent, dispatch-on-absent, or a variant-pair the dispatcher
// does not recognise). These are never returned as errors; they panic.
type InvariantViolation struct {
	Op      string
	Id      Id
	Id2     Id
	Message string
}

func (e *InvariantViolation) Error() string {
	if e.Id2 != None {
		return fmt.Sprintf("graph: invariant violation in %s(%s, %s): %s", e.Op, e.Id, e.Id2, e.Message)
	}
	return fmt.Sprintf("graph: invariant violation in %s(%s): %s", e.Op, e.Id, e.Message)
}

func violate(op string, id Id, message string) {
	panic(&InvariantViolation{Op: op, Id: id, Message: message})
}

func violate2(op string, id1, id2 Id, message string) {
	panic(&InvariantViolation{Op: op, Id: id1, Id2: id2, Message: message})
}

// InputError reports a problem with the input graph itself (dangling
// reference, anonymous forward declaration, duplicate symbol): fatal at
// the end of the pass that discovers it, but not a programmer error.
type InputError struct {
	Kind    string
	Id      Id
	Name    string
	Message string
}

func (e *InputError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("graph: input error (%s) at %s %q: %s", e.Kind, e.Id, e.Name, e.Message)
	}
	return fmt.Sprintf("graph: input error (%s) at %s: %s", e.Kind, e.Id, e.Message)
}
