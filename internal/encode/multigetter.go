package encode

import "github.com/ehdc-llpg/linkage/internal/record"

// MultiGetterOf turns a single-field Getter plus a MultiEncode (such as
// DoubleMetaphone) into a record.MultiGetter yielding that field's
// encoded code set, so it can drive valuesim.Average/valuesim.Maximum —
// the "list<string>"-returning encoder shape the design
// describes for phonetic coding.
func MultiGetterOf(get record.Getter, codec MultiEncode) record.MultiGetter {
	return func(r record.Record) []string {
		return codec(get(r))
	}
}
