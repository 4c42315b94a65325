// Package record defines the immutable, schema-addressable record type
// shared by every stage of the linkage pipeline.
package record

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/ehdc-llpg/linkage/internal/linkerr"
)

// Schema maps field names to their positional index. A Schema is built
// once when a record source (e.g. a CSV header) is read, and shared by
// every Record drawn from that source.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema builds a Schema from an ordered list of field names. An empty
// field name is a configuration error, matching the CSV reader's "field
// names must be valid identifiers" contract.
func NewSchema(names []string) (*Schema, error) {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, linkerr.Configuration("record: empty field name at position %d", i)
		}
		if _, dup := idx[n]; dup {
			return nil, linkerr.Configuration("record: duplicate field name %q", n)
		}
		idx[n] = i
	}
	return &Schema{names: append([]string(nil), names...), index: idx}, nil
}

// Names returns the ordered field names.
func (s *Schema) Names() []string { return append([]string(nil), s.names...) }

// Len returns the number of fields in the schema.
func (s *Schema) Len() int { return len(s.names) }

// IndexOf returns the position of a field name, and whether it was found.
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Record is an ordered tuple of field values, addressable by position or
// by name via its Schema. Records are immutable once constructed: no
// method mutates Values. Equality and ordering (Equal, Key, Less) are
// over the value tuple, matching the "hashable and totally ordered"
// requirement, so Records can be used as PairMap keys without pointer
// identity. id is a separate, never-value-derived identity stamped once
// at construction: the engine does not carry its own notion of record
// identity beyond this, and two distinct records that happen to carry
// identical Values are not the same record — only Same reports them as
// such.
type Record struct {
	Schema *Schema
	Values []string
	id uint64
}

var nextRecordID uint64

// New constructs a Record from a schema and a slice of values, stamping
// it with a fresh identity distinct from every other Record ever
// constructed by New, even one carrying identical Values. The slice is
// copied so the caller's backing array may be reused.
func New(schema *Schema, values []string) Record {
	return Record{
		Schema: schema,
		Values: append([]string(nil), values...),
		id: atomic.AddUint64(&nextRecordID, 1),
	}
}

// Same reports whether r and other are the same record — the identity
// stamped by New, not value equality. Two rows read from a CSV with
// identical field values are never Same, even though they are Equal.
func (r Record) Same(other Record) bool { return r.id == other.id }

// At returns the value at a positional index.
func (r Record) At(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Field returns the value of a named field, or "" if the schema has no
// such field.
func (r Record) Field(name string) string {
	i, ok := r.Schema.IndexOf(name)
	if !ok {
		return ""
	}
	return r.At(i)
}

// Key returns a stable string identity for the record, used to order
// pairs deterministically and as a map key where pointer identity isn't
// available. It joins the values with a separator unlikely to
// appear in tabular data.
func (r Record) Key() string {
	return strings.Join(r.Values, "\x1f")
}

// Less implements the total order used for self-mode pair canonicalisation.
func (r Record) Less(other Record) bool {
	return r.Key() < other.Key()
}

// Equal reports whether two records carry the same values (value
// equality, not pointer identity — the core never assumes records are
// deduplicated by address).
func (r Record) Equal(other Record) bool {
	if len(r.Values) != len(other.Values) {
		return false
	}
	for i := range r.Values {
		if r.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}

// SortRecords sorts a slice of records by their natural order, used
// whenever the spec requires deterministic pair enumeration.
func SortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].Less(recs[j]) })
}

// Pair is an ordered pair of records compared by the linkage engine. For
// self-mode comparisons A.Less(B) always holds; for cross-mode
// comparisons A is drawn from the left (input) side and B from the right
// (master) side regardless of natural order.
type Pair struct {
	A, B Record
}

// Key returns a string uniquely identifying the pair, suitable for use as
// a map key in the shared comparison cache.
func (p Pair) Key() string {
	return p.A.Key() + "\x1e" + p.B.Key()
}

// MakePair canonicalises a self-mode pair so the smaller record is first.
func MakePair(a, b Record) Pair {
	if b.Less(a) {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}
