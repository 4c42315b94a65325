package blockindex

import (
	"sort"

	"github.com/ehdc-llpg/linkage/internal/record"
)

// AllPairs is the trivial "compare every distinct pair" index, used when
// blocking would be harmful (small inputs) or for exhaustive validation
//. It is implemented as a single-bucket Index under
// the hood: every record shares one key, so Index.Compare's O(n^2)
// self-pair enumeration does the rest. Grounded on
// allpairs.py.
func AllPairs(name string) *Index {
	return NewIndex(name, func(record.Record) []string { return []string{"*"} })
}

// AllPairsCompare compares every distinct pair of records directly,
// without building an Index at all — the shape
// indexer.py's RecordComparator.allpairs exposes
// for exhaustive validation runs.
func AllPairsCompare(records []record.Record, compare CompareFunc, cache *PairMap) *PairMap {
	if cache == nil {
		cache = NewPairMap()
	}
	sorted := append([]record.Record(nil), records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	for j := 0; j < len(sorted); j++ {
		for i := 0; i < j; i++ {
			a, b := sorted[i], sorted[j]
			if a.Same(b) {
				continue
			}
			pair := record.Pair{A: a, B: b}
			if cache.Has(pair) {
				continue
			}
			cache.Set(pair, compare(pair.A, pair.B))
		}
	}
	return cache
}
