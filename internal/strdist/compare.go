package strdist

import "github.com/ehdc-llpg/linkage/internal/valuesim"

// LevenshteinSimilarity builds a valuesim.Compare from Levenshtein,
// scaled to [0, 1]: the number of edits is divided by
// min(len(a), len(b)) * threshold, so threshold < 1 is stricter than
// the default (zero similarity tolerates fewer edits) and threshold > 1
// is more lenient. Mirrors _levenshtein.py's
// Levenshtein class. Either string empty yields Missing, same as Field's
// general empty-string handling.
func LevenshteinSimilarity(threshold float64) valuesim.Compare {
	return scaledCompare(Levenshtein, threshold)
}

// DamerauLevenshteinSimilarity is LevenshteinSimilarity using
// DamerauLevenshtein's edit count instead, mirroring
// dameraulevenshtein.py's compare().
func DamerauLevenshteinSimilarity(threshold float64) valuesim.Compare {
	return scaledCompare(DamerauLevenshtein, threshold)
}

func scaledCompare(distance func(a, b string) int, threshold float64) valuesim.Compare {
	return func(a, b string) valuesim.Missing {
		if a == "" || b == "" {
			return nil
		}
		na, nb := len([]rune(a)), len([]rune(b))
		shorter := na
		if nb < shorter {
			shorter = nb
		}
		maxdiffs := float64(shorter) * threshold
		if maxdiffs <= 0 {
			return valuesim.Value(0)
		}
		ndiffs := float64(distance(a, b))
		if ndiffs >= maxdiffs {
			return valuesim.Value(0)
		}
		return valuesim.Value(1 - ndiffs/maxdiffs)
	}
}
