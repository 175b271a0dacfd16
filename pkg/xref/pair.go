package xref

// EntityPair is a two-sided record holding an entity from each of the two
// netlists, plus the status and message the comparer attached to it.
// CrossReference stores each pair exactly as the compare event gave it: it
// does not check that at least one of First/Second is non-nil, so an event
// with both sides nil is appended as a both-nil pair.
type EntityPair[T comparable] struct {
	First   T
	Second  T
	Status  Status
	Message string
}

// isZero reports whether v is the zero value of its (comparable) type —
// for the pointer-backed interfaces in pkg/netlist this means "absent".
func isZero[T comparable](v T) bool {
	var zero T
	return v == zero
}

// RefPair holds a pair of net-side back-references (terminal, pin or
// sub-circuit-pin refs) as produced by the per-net correlator.
type RefPair[T comparable] struct {
	First  T
	Second T
}
