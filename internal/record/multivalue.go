package record

import "strings"

// Fallback builds a Getter that tries each spec's Getter in order and
// returns the first value passing test, or def if none pass. test
// defaults to "non-empty" when nil, matching the Python source's
// `test=bool` default.
func Fallback(specs []FieldSpec, test func(string) bool, def string) (Getter, error) {
	if test == nil {
		test = func(s string) bool { return s != "" }
	}
	getters := make([]Getter, len(specs))
	for i, spec := range specs {
		g, err := NewGetter(spec)
		if err != nil {
			return nil, err
		}
		getters[i] = g
	}
	return func(r Record) string {
		for _, g := range getters {
			if v := g(r); test(v) {
				return v
			}
		}
		return def
	}, nil
}

// MultiGetter extracts a list of values from a record, used by fields
// that may be multi-valued (e.g. a semicolon-separated list of aliases,
// or several columns combined into one logical set).
type MultiGetter func(Record) []string

// MultiValue builds a MultiGetter that concatenates the values of each
// spec's Getter, optionally splitting each by sep, and returns the
// trimmed, non-empty results.
func MultiValue(sep string, specs...FieldSpec) (MultiGetter, error) {
	getters := make([]Getter, len(specs))
	for i, spec := range specs {
		g, err := NewGetter(spec)
		if err != nil {
			return nil, err
		}
		getters[i] = g
	}
	return func(r Record) []string {
		var result []string
		for _, g := range getters {
			value := g(r)
			var parts []string
			if sep == "" {
				parts = []string{value}
			} else {
				parts = strings.Split(value, sep)
			}
			for _, p := range parts {
				if trimmed := strings.TrimSpace(p); trimmed != "" {
					result = append(result, trimmed)
				}
			}
		}
		return result
	}, nil
}

// Combine is MultiValue with no separator — each spec contributes exactly
// one value to the result.
func Combine(specs...FieldSpec) (MultiGetter, error) {
	return MultiValue("", specs...)
}
