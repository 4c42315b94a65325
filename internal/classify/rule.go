package classify

import (
	"fmt"

	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
)

// RuleBased classifies every pair by a single tri-state Rule, grounded on
// rulebased.py. Match scores 1.0,
// NonMatch scores 0.0, and Uncertain pairs are excluded from both
// outputs entirely — Uncertain is a first-class third category, not an
// error, so a driver can pipe it into a second classifier.
type RuleBased struct {
	Rule Rule
	Log *obslog.Logger
}

// Classify implements Classifier.
func (r RuleBased) Classify(pairs *blockindex.PairMap) (matches, nonmatches *Scores) {
	matches, nonmatches = NewScores(), NewScores()
	if r.Rule == nil {
		panic("classify: RuleBased requires a non-nil Rule")
	}

	uncertain := 0
	pairs.Range(func(pair record.Pair, vec recordsim.Vector) {
			switch j := r.Rule(pair.A, pair.B, vec); j {
			case Match:
				matches.Set(pair, 1.0)
			case NonMatch:
				nonmatches.Set(pair, 0.0)
			case Uncertain:
				uncertain++
			default:
				panic(fmt.Sprintf("classify: rule returned invalid judgement %d", j))
			}
	})

	if r.Log != nil {
		r.Log.Infof("rulebased: pairs=%d matches=%d nonmatches=%d uncertain=%d", pairs.Len(), matches.Len(), nonmatches.Len(), uncertain)
	}

	return matches, nonmatches
}

// UncertainPairs returns the pairs from pairs on which Rule judged Uncertain,
// as a fresh *blockindex.PairMap a driver can hand to a fallback
// Classifier (the "pipe uncertain pairs into another classifier"
// behaviour the design calls out).
func (r RuleBased) UncertainPairs(pairs *blockindex.PairMap) *blockindex.PairMap {
	out := blockindex.NewPairMap()
	pairs.Range(func(pair record.Pair, vec recordsim.Vector) {
			if r.Rule(pair.A, pair.B, vec) == Uncertain {
				out.Set(pair, vec)
			}
	})
	return out
}
