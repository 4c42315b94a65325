// Package classify partitions similarity vectors into matches and
// non-matches: two-centroid k-means, nearest
// labeled-example, and rule-based classifiers, plus chaining between
// them.
package classify

import "math"

// Distance computes the distance between two similarity vectors, given
// parallel "present" masks marking which components are non-missing on
// each side. Implementations must drop any dimension where either side
// is missing.
type Distance func(a, b []float64, aPresent, bPresent []bool) float64

// L2 is Euclidean distance over components present on both sides.
// Grounded on _distance.py.
func L2(a, b []float64, aPresent, bPresent []bool) float64 {
	var sum float64
	for i := range a {
		if !aPresent[i] || !bPresent[i] {
			continue
		}
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// NormalizedL2 builds a Distance dividing each squared term by the
// corresponding component's standard deviation before summing (a diagonal
// Mahalanobis distance). len(stdevs) must equal the vector length; the
// returned Distance panics when either vector's length differs, so a
// mismatch is never ignored silently. Components with a zero stdev are
// skipped.
func NewNormalizedL2(stdevs []float64) Distance {
	return func(a, b []float64, aPresent, bPresent []bool) float64 {
		if len(a) != len(stdevs) || len(b) != len(stdevs) {
			panic("classify: normalized L2 vector length does not match len(stdevs)")
		}
		var sum float64
		for i := range a {
			if !aPresent[i] || !bPresent[i] {
				continue
			}
			if stdevs[i] == 0 {
				continue
			}
			d := a[i] - b[i]
			sum += d * d / stdevs[i]
		}
		return math.Sqrt(sum)
	}
}

// presentAll returns an all-true mask of length n, for comparing against
// vectors that are known to have no missing components. (K-means
// centroids are not such vectors: a coordinate with no contributing
// values is marked not present.)
func presentAll(n int) []bool {
	p := make([]bool, n)
	for i := range p {
		p[i] = true
	}
	return p
}
