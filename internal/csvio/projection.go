package csvio

import "github.com/ehdc-llpg/linkage/internal/record"

// Projection maps records from two differently-shaped schemas onto one
// union schema: the first schema's field order is preserved, and any
// field names only present on the second schema are appended, grounded on
// csv.py's Projection.unionfields.
type Projection struct {
	schema *record.Schema
}

// UnionFields builds the union schema of a and b, preserving a's field
// order and appending b's fields not already present in a.
func UnionFields(a, b *record.Schema) (*Projection, error) {
	names := append([]string(nil), a.Names()...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range b.Names() {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	schema, err := record.NewSchema(names)
	if err != nil {
		return nil, err
	}
	return &Projection{schema: schema}, nil
}

// Schema returns the projection's union schema.
func (p *Projection) Schema() *record.Schema { return p.schema }

// Project converts r into a Record under the union schema, dropping
// fields r's schema doesn't have in the union and defaulting fields the
// union has but r doesn't to "".
func (p *Projection) Project(r record.Record) record.Record {
	values := make([]string, p.schema.Len())
	for i, name := range p.schema.Names() {
		if idx, ok := r.Schema.IndexOf(name); ok {
			values[i] = r.At(idx)
		}
	}
	return record.New(p.schema, values)
}
