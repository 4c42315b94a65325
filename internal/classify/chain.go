package classify

import (
	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
)

// Chain runs a rule-based pre-pass, then hands every pair the rule
// judged Uncertain to a fallback Classifier, and merges the two sets of
// results. This is the "driver may pipe uncertain pairs into another
// classifier" behaviour the design names but leaves to the
// caller; supplying it as a reusable Classifier keeps the driver itself
// free of classifier-specific branching.
type Chain struct {
	First RuleBased
	Fallback Classifier
	Log *obslog.Logger
}

// Classify implements Classifier.
func (c Chain) Classify(pairs *blockindex.PairMap) (matches, nonmatches *Scores) {
	matches, nonmatches = c.First.Classify(pairs)

	uncertain := c.First.UncertainPairs(pairs)
	if uncertain.Len() == 0 {
		return matches, nonmatches
	}

	if c.Log != nil {
		c.Log.Debugf("chain: %d pairs fell through to fallback classifier", uncertain.Len())
	}

	fallbackMatches, fallbackNonmatches := c.Fallback.Classify(uncertain)
	return mergeScores(matches, fallbackMatches), mergeScores(nonmatches, fallbackNonmatches)
}

func mergeScores(a, b *Scores) *Scores {
	out := NewScores()
	a.Range(func(pair record.Pair, score float64) { out.Set(pair, score) })
	b.Range(func(pair record.Pair, score float64) { out.Set(pair, score) })
	return out
}
