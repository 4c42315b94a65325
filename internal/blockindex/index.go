package blockindex

import (
	"sort"

	"github.com/ehdc-llpg/linkage/internal/linkerr"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
)

// KeyFunc derives zero or more blocking keys from a record. Multi-keyed indexing is required so phonetic codes such
// as double-metaphone, which can emit two codes, work uniformly.
type KeyFunc func(record.Record) []string

// CompareFunc computes the similarity vector for a candidate pair. It is
// the bound form of recordsim.RecordSimilarity.Compare, kept as a plain
// function type so Index doesn't need to import recordsim's concrete
// type beyond the Vector it produces.
type CompareFunc func(r1, r2 record.Record) recordsim.Vector

// Index is an inverted index mapping blocking keys to the ordered list of
// records inserted under that key, matching
// indexer.py's Index class closely: insert applies
// the key function and rejects empty/null keys with an error.
type Index struct {
	Name string
	KeyFunc KeyFunc
	buckets map[string][]record.Record
}

// NewIndex constructs an empty Index named name, keyed by keyFunc.
func NewIndex(name string, keyFunc KeyFunc) *Index {
	return &Index{Name: name, KeyFunc: keyFunc, buckets: make(map[string][]record.Record)}
}

// Insert applies the key function to record and appends it to every
// resulting bucket. An empty key is a configuration error.
func (idx *Index) Insert(r record.Record) error {
	keys := idx.KeyFunc(r)
	for _, key := range keys {
		if key == "" {
			return linkerr.Configuration("blockindex: index %q produced an empty key for record %v", idx.Name, r.Values)
		}
		idx.buckets[key] = append(idx.buckets[key], r)
	}
	return nil
}

// CountComparisons returns an upper bound on the pairs this index will
// yield. With other == nil it counts self-mode pairs (Sum n(n-1)/2 over
// buckets with n>=2); with other supplied it counts cross-mode pairs
// (Sum n_a * n_b over keys shared between the two indexes).
func (idx *Index) CountComparisons(other *Index) int {
	if other == nil || other == idx {
		total := 0
		for _, recs := range idx.buckets {
			n := len(recs)
			if n > 1 {
				total += n * (n - 1) / 2
			}
		}
		return total
	}
	total := 0
	for key, recs := range idx.buckets {
		if oRecs, ok := other.buckets[key]; ok {
			total += len(recs) * len(oRecs)
		}
	}
	return total
}

// LogCounts emits block-size statistics for operator visibility
//.
func (idx *Index) LogCounts(log *obslog.Logger, other *Index) {
	nrecords, biggest := 0, 0
	for _, recs := range idx.buckets {
		nrecords += len(recs)
		if len(recs) > biggest {
			biggest = len(recs)
		}
	}
	nkeys := len(idx.buckets)
	avg := 0.0
	if nkeys > 0 {
		avg = float64(nrecords) / float64(nkeys)
	}
	log.Infof("index=%s records=%d blocks=%d largest_block=%d avg_block=%.2f comparisons=%d",
		idx.Name, nrecords, nkeys, biggest, avg, idx.CountComparisons(other))
}

// Compare runs self-mode comparisons on this index, consulting and
// populating cache. Records within a bucket are sorted first so pair
// ordering is deterministic. If cache is nil a
// fresh one is created.
func (idx *Index) Compare(compare CompareFunc, cache *PairMap) *PairMap {
	if cache == nil {
		cache = NewPairMap()
	}
	for _, records := range idx.buckets {
		sorted := append([]record.Record(nil), records...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
		for j := 0; j < len(sorted); j++ {
			for i := 0; i < j; i++ {
				a, b := sorted[i], sorted[j]
				if a.Same(b) {
					// same record indexed under multiple keys
					continue
				}
				pair := record.MakePair(a, b)
				if cache.Has(pair) {
					continue
				}
				cache.Set(pair, compare(pair.A, pair.B))
			}
		}
	}
	return cache
}

// CompareAgainst runs cross-mode comparisons between this index (left /
// input side) and other (right / master side), for every key present in
// both buckets, consulting and populating cache.
func (idx *Index) CompareAgainst(other *Index, compare CompareFunc, cache *PairMap) *PairMap {
	if cache == nil {
		cache = NewPairMap()
	}
	for key, leftRecs := range idx.buckets {
		rightRecs, ok := other.buckets[key]
		if !ok {
			continue
		}
		for _, left := range leftRecs {
			for _, right := range rightRecs {
				pair := record.Pair{A: left, B: right}
				if cache.Has(pair) {
					continue
				}
				cache.Set(pair, compare(pair.A, pair.B))
			}
		}
	}
	return cache
}

// KeysFor returns the blocking keys record would be inserted under,
// without mutating the index — used by debug/comparison reports to show
// which index key matched between a compared pair.
func (idx *Index) KeysFor(r record.Record) []string { return idx.KeyFunc(r) }

// Records returns every record held in bucket key, or nil if no such
// bucket exists.
func (idx *Index) Records(key string) []record.Record { return idx.buckets[key] }

// Keys returns the set of populated bucket keys, for CSV dump of index
// contents.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.buckets))
	for k := range idx.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
