package classify

import "github.com/ehdc-llpg/linkage/internal/blockindex"

// Classifier partitions a PairMap of computed similarity vectors into
// matches and non-matches with scores. All three
// built-in implementations (KMeans, NearestNeighbour, RuleBased) and
// Chain share this signature so the driver can treat them
// interchangeably.
type Classifier interface {
	Classify(pairs *blockindex.PairMap) (matches, nonmatches *Scores)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(pairs *blockindex.PairMap) (matches, nonmatches *Scores)

// Classify calls f.
func (f ClassifierFunc) Classify(pairs *blockindex.PairMap) (matches, nonmatches *Scores) {
	return f(pairs)
}
