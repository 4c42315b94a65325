package classify

import (
	"fmt"
	"math"

	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/linkerr"
	"github.com/ehdc-llpg/linkage/internal/obslog"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
)

// Judgement is the tri-state result of a classification Rule: Match/NonMatch force an assignment, Uncertain
// defers to whatever the surrounding classifier does in that case.
type Judgement int

const (
	Uncertain Judgement = iota
	Match
	NonMatch
)

// Rule judges a compared pair directly, independent of any distance
// function. Used both as NearestNeighbour's override and as the whole
// of RuleBased.
type Rule func(r1, r2 record.Record, vector recordsim.Vector) Judgement

// Example is one labeled vector fed to NearestNeighbour: a previously
// compared pair known (by some external authority, e.g. clerical
// review) to be a match or non-match.
type Example struct {
	Pair record.Pair
	Vector recordsim.Vector
}

// NearestNeighbour classifies each input vector by the label of its
// nearest labeled example, grounded on
// nearest.py.
type NearestNeighbour struct {
	MatchExamples []Example
	NonMatchExamples []Example
	Distance Distance // defaults to L2 if nil
	Rule Rule // optional override, evaluated before the distance comparison
	Log *obslog.Logger
}

// NewNearestNeighbour builds a NearestNeighbour classifier, rejecting a
// configuration where both example sets are empty: with nothing to
// measure distance against, the classifier in nearest.py
// raises from min() over an empty sequence rather than producing a
// score, and this constructor is the equivalent fail-fast check for
// callers that don't build NearestNeighbour{} as a literal.
func NewNearestNeighbour(matchExamples, nonMatchExamples []Example, distance Distance, rule Rule, log *obslog.Logger) (NearestNeighbour, error) {
	if len(matchExamples) == 0 && len(nonMatchExamples) == 0 {
		return NearestNeighbour{}, linkerr.Configuration("classify: nearest-neighbour classifier requires at least one match or non-match example")
	}
	return NearestNeighbour{
		MatchExamples: matchExamples,
		NonMatchExamples: nonMatchExamples,
		Distance: distance,
		Rule: rule,
		Log: log,
	}, nil
}

// Classify implements Classifier. If Rule is set and returns Match or
// NonMatch for a pair, that pair is assigned a hard score (1.0 or 0.0)
// without consulting the example sets; Uncertain falls back to nearest-
// example classification. A Rule returning any other Judgement value is
// a configuration error, surfaced as a panic since Classifier's
// signature has no error return — callers wiring an invalid Rule will
// see it on the first pair.
func (n NearestNeighbour) Classify(pairs *blockindex.PairMap) (matches, nonmatches *Scores) {
	if len(n.MatchExamples) == 0 && len(n.NonMatchExamples) == 0 {
		panic("classify: nearest-neighbour classifier requires at least one match or non-match example; build it with NewNearestNeighbour to catch this before Classify runs")
	}

	matches, nonmatches = NewScores(), NewScores()
	if pairs.Len() == 0 {
		return matches, nonmatches
	}

	distance := n.Distance
	if distance == nil {
		distance = L2
	}

	if n.Log != nil {
		n.Log.Debugf("nearest: match-examples=%d nonmatch-examples=%d pairs=%d", len(n.MatchExamples), len(n.NonMatchExamples), pairs.Len())
	}

	pairs.Range(func(pair record.Pair, vec recordsim.Vector) {
			if n.Rule != nil {
				switch j := n.Rule(pair.A, pair.B, vec); j {
				case Match:
					matches.Set(pair, 1.0)
					return
				case NonMatch:
					nonmatches.Set(pair, 0.0)
					return
				case Uncertain:
					// fall through to nearest-example classification
				default:
					panic(fmt.Sprintf("classify: rule override returned invalid judgement %d", j))
				}
			}

			values, present := vec.Floats()
			dMatch, okMatch := nearestDistance(distance, values, present, n.MatchExamples)
			dNonMatch, okNonMatch := nearestDistance(distance, values, present, n.NonMatchExamples)

			switch {
			case okMatch && (!okNonMatch || dMatch <= dNonMatch):
				matches.Set(pair, math.Log10((dNonMatch+0.1)/(dMatch+0.1)))
			case okNonMatch:
				nonmatches.Set(pair, math.Log10((dNonMatch+0.1)/(dMatch+0.1)))
			default:
				// no examples at all: nothing to compare against
				nonmatches.Set(pair, 0.0)
			}
	})

	if n.Log != nil {
		n.Log.Infof("nearest: pairs=%d matches=%d nonmatches=%d", pairs.Len(), matches.Len(), nonmatches.Len())
	}

	return matches, nonmatches
}

func nearestDistance(distance Distance, values []float64, present []bool, examples []Example) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, ex := range examples {
		exValues, exPresent := ex.Vector.Floats()
		d := distance(values, exValues, present, exPresent)
		if !found || d < best {
			best = d
			found = true
		}
	}
	return best, found
}
