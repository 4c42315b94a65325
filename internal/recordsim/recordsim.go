// Package recordsim combines named ValueSimilarity comparators into a
// fixed-width similarity vector per pair of records.
package recordsim

import (
	"github.com/ehdc-llpg/linkage/internal/linkerr"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/valuesim"
)

// Component names one registered ValueSimilarity.
type Component struct {
	Name string
	Sim valuesim.ValueSimilarity
}

// Vector is a named similarity vector: components in registration order,
// any of which may be valuesim.Missing. No aggregation into a scalar
// happens here — that is the classifier's job.
type Vector struct {
	names []string
	vals []valuesim.Missing
}

// Len returns the fixed dimensionality of the vector.
func (v Vector) Len() int { return len(v.vals) }

// Names returns the component names in registration order.
func (v Vector) Names() []string { return append([]string(nil), v.names...) }

// At returns the i'th component.
func (v Vector) At(i int) valuesim.Missing { return v.vals[i] }

// Get returns the component registered under name, or (nil, false) if no
// such component exists.
func (v Vector) Get(name string) (valuesim.Missing, bool) {
	for i, n := range v.names {
		if n == name {
			return v.vals[i], true
		}
	}
	return nil, false
}

// Floats returns the raw values (0 for missing) and a parallel "present"
// mask, the shape distance functions in internal/classify consume.
func (v Vector) Floats() (values []float64, present []bool) {
	values = make([]float64, len(v.vals))
	present = make([]bool, len(v.vals))
	for i, m := range v.vals {
		if m != nil {
			values[i] = *m
			present[i] = true
		}
	}
	return values, present
}

// RecordSimilarity is an ordered, named collection of ValueSimilarity
// comparators applied together to a pair of records, grounded on
// indexer.py's RecordComparator (an ordered dict
// of comparators producing a Weights namedtuple). Component order and
// names are invariant once constructed.
type RecordSimilarity struct {
	components []Component
}

// New constructs a RecordSimilarity from an ordered list of named
// comparators. Duplicate names are a configuration error, since CSV debug
// output and classifier rules address components by name.
func New(components...Component) (*RecordSimilarity, error) {
	seen := make(map[string]bool, len(components))
	for _, c := range components {
		if seen[c.Name] {
			return nil, linkerr.Configuration("recordsim: duplicate component name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return &RecordSimilarity{components: append([]Component(nil), components...)}, nil
}

// Names returns the component names in registration order.
func (rs *RecordSimilarity) Names() []string {
	names := make([]string, len(rs.components))
	for i, c := range rs.components {
		names[i] = c.Name
	}
	return names
}

// Len returns the fixed dimensionality every Vector produced by this
// RecordSimilarity will have.
func (rs *RecordSimilarity) Len() int { return len(rs.components) }

// Compare produces the similarity vector for a pair of records, with
// components in registration order.
func (rs *RecordSimilarity) Compare(r1, r2 record.Record) Vector {
	names := make([]string, len(rs.components))
	vals := make([]valuesim.Missing, len(rs.components))
	for i, c := range rs.components {
		names[i] = c.Name
		vals[i] = c.Sim(r1, r2)
	}
	return Vector{names: names, vals: vals}
}
