package xref

import "slices"

// sortByExpandedNamePreferred stable-sorts a flat slice of entities for the
// single-netlist indexed-model backend, using the empty-name-last,
// id-tiebreak ordering of byExpandedNamePreferred.
func sortByExpandedNamePreferred[T interface {
	expandedNamed
	identified
}](items []T) {
	slices.SortStableFunc(items, byExpandedNamePreferred[T])
}

// sortRefPairsInPlace stable-sorts a flat slice of refs (not wrapped in
// RefPair), used by the single-netlist backend where every ref belongs to
// one side only.
func sortRefPairsInPlace[T any](refs []T, valueCmp func(a, b T) int) {
	slices.SortStableFunc(refs, valueCmp)
}

// sortEntityPairs stable-sorts a slice of EntityPair by the null-first pair
// lifter built from valueCmp. All of CrossReference's end-of-circuit and
// end-of-netlist sorting goes through this.
func sortEntityPairs[T comparable](pairs []EntityPair[T], valueCmp func(a, b T) int) {
	slices.SortStableFunc(pairs, func(a, b EntityPair[T]) int {
		return comparePairs(a.First, a.Second, b.First, b.Second, valueCmp)
	})
}

// sortRefPairs stable-sorts a slice of RefPair the same way; used by the
// per-net correlator to order terminal/pin/sub-circuit-pin pairings.
func sortRefPairs[T comparable](pairs []RefPair[T], valueCmp func(a, b T) int) {
	slices.SortStableFunc(pairs, func(a, b RefPair[T]) int {
		return comparePairs(a.First, a.Second, b.First, b.Second, valueCmp)
	})
}
