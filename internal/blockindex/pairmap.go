// Package blockindex implements the inverted blocking index and
// AllPairs fallback, plus the PairMap comparison cache shared across
// constituent indexes.
package blockindex

import (
	"sort"

	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
)

// PairMap maps compared record pairs to their similarity vector. Records
// aren't comparable as Go map keys (they carry a []string), so PairMap
// keys internally by record.Pair.Key() and retains the original Pair for
// iteration — used both as the compare() result and as the
// cross-index dedup cache.
type PairMap struct {
	entries map[string]pairEntry
}

type pairEntry struct {
	pair record.Pair
	vector recordsim.Vector
}

// NewPairMap constructs an empty cache.
func NewPairMap() *PairMap {
	return &PairMap{entries: make(map[string]pairEntry)}
}

// Has reports whether pair has already been compared.
func (m *PairMap) Has(pair record.Pair) bool {
	_, ok := m.entries[pair.Key()]
	return ok
}

// Get returns the cached vector for pair, if present.
func (m *PairMap) Get(pair record.Pair) (recordsim.Vector, bool) {
	e, ok := m.entries[pair.Key()]
	return e.vector, ok
}

// Set records the similarity vector for pair, overwriting any previous
// entry (callers should consult Has first if they want strict "compare
// once" semantics, which is what Index/Indices.compare does).
func (m *PairMap) Set(pair record.Pair, vec recordsim.Vector) {
	m.entries[pair.Key()] = pairEntry{pair: pair, vector: vec}
}

// Len returns the number of distinct pairs cached.
func (m *PairMap) Len() int { return len(m.entries) }

// Range calls fn for every (pair, vector) entry. Iteration order is not
// guaranteed; callers needing deterministic output should sort by
// pair.A/pair.B natural order themselves.
func (m *PairMap) Range(fn func(pair record.Pair, vec recordsim.Vector)) {
	for _, e := range m.entries {
		fn(e.pair, e.vector)
	}
}

// Pairs returns the cached pairs (without their vectors), sorted
// by the pair's natural (A, then B) order, for deterministic report
// output.
func (m *PairMap) Pairs() []record.Pair {
	pairs := make([]record.Pair, 0, len(m.entries))
	for _, e := range m.entries {
		pairs = append(pairs, e.pair)
	}
	sortPairs(pairs)
	return pairs
}

func sortPairs(pairs []record.Pair) {
	sort.Slice(pairs, func(i, j int) bool { return pairLess(pairs[i], pairs[j]) })
}

func pairLess(a, b record.Pair) bool {
	if a.A.Key() != b.A.Key() {
		return a.A.Less(b.A)
	}
	return a.B.Less(b.B)
}
