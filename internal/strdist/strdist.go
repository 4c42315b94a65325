// Package strdist provides edit-distance string comparers usable as
// valuesim.Compare functions: plain Levenshtein and Damerau-Levenshtein
// (which additionally treats adjacent transpositions as a single edit).
// Grounded on _levenshtein.py and
// dameraulevenshtein.py, replacing the
// dropped fake-embeddings similarity feature with the corpus's own
// string-distance primitives.
package strdist

import "github.com/ehdc-llpg/linkage/internal/valuesim"

// Levenshtein computes the classic single-character edit distance
// between a and b: insertions, deletions, and substitutions only.
// Runs in O(len(a)*len(b)) time and O(min(len(a),len(b))) space, the
// same rolling-two-row approach as the Python source.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	n, m := len(ra), len(rb)

	current := make([]int, n+1)
	for i := range current {
		current[i] = i
	}

	for i := 1; i <= m; i++ {
		previous := current
		current = make([]int, n+1)
		current[0] = i
		for j := 1; j <= n; j++ {
			add := previous[j] + 1
			del := current[j-1] + 1
			change := previous[j-1]
			if ra[j-1] != rb[i-1] {
				change++
			}
			current[j] = min3(add, del, change)
		}
	}
	return current[n]
}

// DamerauLevenshtein computes the optimal-string-alignment edit distance
// allowing an additional operation: transposing two adjacent characters
// counts as one edit rather than two substitutions. Uses a full
// (n+1)x(m+1) matrix rather than the Python source's rolling-row
// negative-index trick, which does not translate cleanly into Go.
func DamerauLevenshtein(a, b string) int {
	sa, sb := []rune(a), []rune(b)
	n, m := len(sa), len(sb)

	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := 0
			if sa[i-1] != sb[j-1] {
				sub = 1
			}
			d[i][j] = min3(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+sub)
			if i > 1 && j > 1 && sa[i-1] == sb[j-2] && sa[i-2] == sb[j-1] {
				if t := d[i-2][j-2] + 1; t < d[i][j] {
					d[i][j] = t
				}
			}
		}
	}
	return d[n][m]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
