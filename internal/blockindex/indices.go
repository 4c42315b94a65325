package blockindex

import (
	"github.com/ehdc-llpg/linkage/internal/linkerr"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
)

// Indices is an ordered, named collection of Index instances sharing the
// same underlying record set, so a record can be blocked by several
// strategies at once (e.g. phonetic-name AND phone-prefix). Grounded on
// indexer.py's Indeces (an OrderedDict of Index).
type Indices struct {
	names []string
	indexes []*Index
}

// NewIndices builds an Indices from named Index instances, in the order
// given.
func NewIndices(indexes...*Index) *Indices {
	ix := &Indices{}
	for _, idx := range indexes {
		ix.names = append(ix.names, idx.Name)
		ix.indexes = append(ix.indexes, idx)
	}
	return ix
}

// Insert forwards record to every constituent Index. Atomic per record:
// the keys of every constituent index are checked first, and if any index
// would reject the record (empty key, a configuration error in a key
// function) Insert returns that error before any index is updated.
func (ix *Indices) Insert(r record.Record) error {
	for _, idx := range ix.indexes {
		for _, key := range idx.KeyFunc(r) {
			if key == "" {
				return linkerr.Configuration("blockindex: index %q produced an empty key for record %v", idx.Name, r.Values)
			}
		}
	}
	for _, idx := range ix.indexes {
		if err := idx.Insert(r); err != nil {
			return err
		}
	}
	return nil
}

// InsertMany inserts every record in records.
func (ix *Indices) InsertMany(records []record.Record) error {
	for _, r := range records {
		if err := ix.Insert(r); err != nil {
			return err
		}
	}
	return nil
}

// Compare runs every constituent Index's self-mode comparison in order,
// sharing one PairMap cache so a pair found candidate under several
// indexes is compared exactly once.
func (ix *Indices) Compare(compare CompareFunc) *PairMap {
	cache := NewPairMap()
	for _, idx := range ix.indexes {
		idx.Compare(compare, cache)
	}
	return cache
}

// CompareAgainst runs cross-mode comparison against another Indices,
// pairing constituent indexes positionally. The two Indices must have the
// same length and each pair of indexes must share a key-space that makes
// sense together (e.g. both phonetic-on-name); a length mismatch is a
// configuration error.
func (ix *Indices) CompareAgainst(other *Indices, compare CompareFunc) (*PairMap, error) {
	if len(ix.indexes) != len(other.indexes) {
		return nil, linkerr.Configuration("blockindex: cross-mode Indices.compare requires matching index counts, got %d and %d",
			len(ix.indexes), len(other.indexes))
	}
	cache := NewPairMap()
	for i, idx := range ix.indexes {
		idx.CompareAgainst(other.indexes[i], compare, cache)
	}
	return cache, nil
}

// LogCounts emits per-index counts and block-size statistics for operator
// visibility. other may be nil for a self-mode run.
func (ix *Indices) LogCounts(log *obslog.Logger, other *Indices) {
	for i, idx := range ix.indexes {
		var otherIdx *Index
		if other != nil && i < len(other.indexes) {
			otherIdx = other.indexes[i]
		}
		idx.LogCounts(log, otherIdx)
	}
}

// Names returns the constituent index names in registration order.
func (ix *Indices) Names() []string { return append([]string(nil), ix.names...) }

// Index returns the i'th constituent Index.
func (ix *Indices) Index(i int) *Index { return ix.indexes[i] }

// Len returns the number of constituent indexes.
func (ix *Indices) Len() int { return len(ix.indexes) }
