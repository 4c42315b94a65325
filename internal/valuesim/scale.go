package valuesim

import "github.com/ehdc-llpg/linkage/internal/linkerr"

// Scale wraps a raw two-value comparer so its output can be clipped and
// rescaled into a chosen sub-range of [0, rmax], letting a caller tighten
// or loosen a reusable primitive comparer, or downweight a field in a
// vector by choosing rmax < 1. test, if supplied,
// gates the inner call: if either argument fails it, Scale returns
// missing without invoking inner. Grounded on
// _geodistance.py's scaled-distance
// wrapper.
func Scale(inner func(a, b string) float64, low, high, rmax float64, missing Missing, test func(a, b string) bool) (func(a, b string) Missing, error) {
	if !(low < high) {
		return nil, linkerr.Configuration("valuesim: Scale requires 0 <= low < high, got low=%v high=%v", low, high)
	}
	if low < 0 {
		return nil, linkerr.Configuration("valuesim: Scale requires low >= 0, got %v", low)
	}
	span := high - low
	return func(a, b string) Missing {
		if test != nil && !test(a, b) {
			return missing
		}
		raw := inner(a, b)
		switch {
		case raw <= low:
			return Value(0)
		case raw >= high:
			return Value(rmax)
		default:
			return Value((raw - low) / span * rmax)
		}
	}, nil
}

// MustScale is Scale but panics on a configuration error, for package
// level wiring of literal, known-valid bounds.
func MustScale(inner func(a, b string) float64, low, high, rmax float64, missing Missing, test func(a, b string) bool) func(a, b string) Missing {
	f, err := Scale(inner, low, high, rmax, missing, test)
	if err != nil {
		panic(err)
	}
	return f
}
