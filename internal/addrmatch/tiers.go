package addrmatch

import "github.com/ehdc-llpg/linkage/internal/record"

// DecisionTiers names the confidence thresholds a ranked candidate list
// is tested against, kept from MatchTiers
// (internal/match/types.go) and ADDRESS_MATCHING_ALGORITHM.md — the
// decision policy the pairwise Classifier doesn't model, since it
// classifies one pair at a time rather than ranking several candidates
// against one query record.
type DecisionTiers struct {
	AutoAcceptHigh float64 // >= 0.92
	AutoAcceptMedium float64 // >= 0.88, with a locality-overlap condition
	ReviewThreshold float64 // >= 0.80
	MinThreshold float64 // >= 0.70
	WinnerMargin float64 // gap required over the runner-up
}

// DefaultTiers is recommended threshold set.
func DefaultTiers() DecisionTiers {
	return DecisionTiers{
		AutoAcceptHigh: 0.92,
		AutoAcceptMedium: 0.88,
		ReviewThreshold: 0.80,
		MinThreshold: 0.70,
		WinnerMargin: 0.03,
	}
}

// Decision is three-way match outcome for one query record
// against its ranked candidates.
type Decision string

const (
	Reject Decision = "reject"
	Review Decision = "review"
	AutoAccept Decision = "auto_accept"
)

// Candidate is one ranked match candidate: the matched record, its
// classifier score, and (for the medium-confidence tier condition) its
// locality-overlap component value.
type Candidate struct {
	Record record.Record
	Score float64
	LocalityOverlap float64
	SameHouseNumber bool
}

// Decide applies tiered acceptance policy
// (internal/match/scorer.go's MakeDecision) to ranked, highest-score-first
// candidates: reject below MinThreshold, auto-accept a clear high-margin
// winner, auto-accept a medium-confidence winner with a house-number
// match and decent locality overlap, else fall to manual review.
func Decide(tiers DecisionTiers, candidates []Candidate) (Decision, *record.Record) {
	if len(candidates) == 0 {
		return Reject, nil
	}
	top := candidates[0]
	if top.Score < tiers.MinThreshold {
		return Reject, nil
	}

	margin := 1.0
	if len(candidates) > 1 {
		margin = top.Score - candidates[1].Score
	}

	if top.Score >= tiers.AutoAcceptHigh && margin >= tiers.WinnerMargin {
		return AutoAccept, &top.Record
	}
	if top.Score >= tiers.AutoAcceptMedium && margin >= tiers.WinnerMargin+0.02 {
		if top.SameHouseNumber && top.LocalityOverlap >= 0.5 {
			return AutoAccept, &top.Record
		}
	}
	if top.Score >= tiers.ReviewThreshold {
		return Review, nil
	}
	return Reject, nil
}
