package record

import (
	"github.com/ehdc-llpg/linkage/internal/linkerr"
)

// FieldSpec names how to reach into a Record for a value: by field name,
// by positional index, or by an arbitrary function of the whole record.
// It is a sum type resolved once into a concrete Getter at construction
// time rather than dispatched by runtime type-checking on every call
// (the getfield/getany pattern in get.py, translated to a closure
// instead of isinstance checks).
type FieldSpec struct {
	name string
	idx int
	fn func(Record) string
	kind fieldSpecKind
}

type fieldSpecKind int

const (
	kindName fieldSpecKind = iota
	kindIndex
	kindFunc
)

// Name builds a FieldSpec addressing a record by field name.
func Name(name string) FieldSpec { return FieldSpec{name: name, kind: kindName} }

// Index builds a FieldSpec addressing a record by positional index.
func Index(i int) FieldSpec { return FieldSpec{idx: i, kind: kindIndex} }

// Func builds a FieldSpec computing a value from the whole record.
func Func(fn func(Record) string) FieldSpec { return FieldSpec{fn: fn, kind: kindFunc} }

// Getter is a resolved, reusable record -> value closure.
type Getter func(Record) string

// NewGetter resolves a FieldSpec into a Getter. Any FieldSpec kind other
// than name/index/func is a configuration error;
// since FieldSpec is a closed sum type constructed only via Name/Index/Func,
// that error path only matters for a zero-value FieldSpec passed by
// mistake (kind is initialised correctly by each constructor above, so
// the common failure mode is an uninitialised FieldSpec{}).
func NewGetter(spec FieldSpec) (Getter, error) {
	switch spec.kind {
	case kindName:
		name := spec.name
		return func(r Record) string { return r.Field(name) }, nil
	case kindIndex:
		idx := spec.idx
		return func(r Record) string { return r.At(idx) }, nil
	case kindFunc:
		if spec.fn == nil {
			return nil, linkerr.Configuration("record: FieldSpec function getter is nil")
		}
		return spec.fn, nil
	default:
		return nil, linkerr.Configuration("record: invalid FieldSpec kind %v", spec.kind)
	}
}

// MustGetter is NewGetter but panics on a configuration error, for use in
// package-level wiring code where the FieldSpec is a literal known to be
// valid (mirrors preference for failing fast at startup
// rather than threading an error through every constructor).
func MustGetter(spec FieldSpec) Getter {
	g, err := NewGetter(spec)
	if err != nil {
		panic(err)
	}
	return g
}
