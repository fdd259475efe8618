package xl

import (
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// enumerate visits m's entries in ascending key order, so parts keyed by
// map (sheet relationships, comments, drawings, tables — all keyed by
// part path) flush deterministically instead of following Go's
// randomized map iteration.
func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V)) {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		callback(k, m[k])
	}
}
