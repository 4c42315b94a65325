package classify

import "github.com/ehdc-llpg/linkage/internal/record"

// Scores maps record pairs to a classifier score, the {match, nonmatch}
// output shape every Classifier in the design returns.
type Scores struct {
	entries map[string]scoreEntry
}

type scoreEntry struct {
	pair record.Pair
	score float64
}

// NewScores builds an empty Scores map.
func NewScores() *Scores {
	return &Scores{entries: make(map[string]scoreEntry)}
}

// Set records pair's score.
func (s *Scores) Set(pair record.Pair, score float64) {
	s.entries[pair.Key()] = scoreEntry{pair: pair, score: score}
}

// Get returns the score for pair, if present.
func (s *Scores) Get(pair record.Pair) (float64, bool) {
	e, ok := s.entries[pair.Key()]
	return e.score, ok
}

// Len returns the number of scored pairs.
func (s *Scores) Len() int { return len(s.entries) }

// Range calls fn for every (pair, score) entry.
func (s *Scores) Range(fn func(pair record.Pair, score float64)) {
	for _, e := range s.entries {
		fn(e.pair, e.score)
	}
}

// Has reports whether pair has a recorded score.
func (s *Scores) Has(pair record.Pair) bool {
	_, ok := s.entries[pair.Key()]
	return ok
}
