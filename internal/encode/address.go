//go:build gopostal

// Package encode's gopostal-backed component extractor. Built only when
// the gopostal build tag is set, since github.com/openvenues/gopostal
// cgo-binds against libpostal, a system library most environments don't
// carry, so it stays opt-in while every other encoder in this package
// remains pure Go.
package encode

import (
	postal "github.com/openvenues/gopostal/parser"

	"github.com/ehdc-llpg/linkage/internal/record"
)

// AddressComponents parses a free-text address with libpostal and
// extracts the named components
// cmd/gopostal-real/main.go extractComponents looked for, as a
// record.FieldSpec function value. component selects
// which libpostal label to return ("house_number", "road", "city",
// "postcode", "unit",...); unrecognised or absent labels yield "".
func AddressComponents(get record.Getter, component string) func(record.Record) string {
	return func(r record.Record) string {
		raw := get(r)
		if raw == "" {
			return ""
		}
		for _, c := range postal.ParseAddress(raw) {
			if c.Label == component {
				return c.Value
			}
		}
		return ""
	}
}
