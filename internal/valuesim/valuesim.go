// Package valuesim computes the similarity of two records on a single
// field.
package valuesim

import (
	"github.com/ehdc-llpg/linkage/internal/record"
)

// Missing is the first-class sentinel for "could not compare this
// field".
// It is a typed zero value rather than NaN so callers branch on presence
// explicitly instead of relying on float comparison quirks ("do not pun
// with NaN").
type Missing = *float64

// Value returns a non-missing similarity score.
func Value(v float64) Missing { return &v }

// IsMissing reports whether a score is the missing sentinel.
func IsMissing(v Missing) bool { return v == nil }

// Compare is the scalar comparator applied to two encoded values. It
// returns Missing when the values can't meaningfully be compared (for
// instance, a comparer receiving two blank strings should usually return
// Missing rather than a spurious 1.0 or 0.0).
type Compare func(a, b string) Missing

// ValueSimilarity compares a specific field (or set of fields) of two
// records, applying getters and encoders first. It implements the three
// shapes the design requires: Field, Average, and Maximum.
type ValueSimilarity func(r1, r2 record.Record) Missing

// Encode is a pure string -> string normalisation function, applied to a
// field's raw value before comparison.
// Encoders receiving an empty input must return "" ("missing"); Field
// treats an encoded "" as missing.
type Encode func(string) string

func identity(s string) string { return s }

// Field returns the ValueSimilarity described in the design:
// compare(encode1(get1(r1)), encode2(get2(r2))), or Missing if either
// getter yields an empty string after encoding. get2/encode2 default to
// get1/encode1 when nil, mirroring the Python source's
// ValueComparator(field2=None, encode2=None) defaults
//.
func Field(compare Compare, get1 record.Getter, encode1 Encode, get2 record.Getter, encode2 Encode) ValueSimilarity {
	if get2 == nil {
		get2 = get1
	}
	if encode1 == nil {
		encode1 = identity
	}
	if encode2 == nil {
		encode2 = encode1
	}
	return func(r1, r2 record.Record) Missing {
		v1 := encode1(get1(r1))
		v2 := encode2(get2(r2))
		if v1 == "" || v2 == "" {
			return nil
		}
		return compare(v1, v2)
	}
}

// FieldSame is Field with get2/encode2 defaulted to get1/encode1, the
// common case of comparing the same logical field on both records.
func FieldSame(compare Compare, get record.Getter, encode Encode) ValueSimilarity {
	return Field(compare, get, encode, nil, nil)
}
