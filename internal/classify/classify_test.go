package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehdc-llpg/linkage/internal/blockindex"
	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
	"github.com/ehdc-llpg/linkage/internal/valuesim"
)

// idSchema builds single-field "id" records so pairs can be identified
// by their ids while the actual similarity values are injected through
// a lookup table keyed by the pair of ids, since these test scenarios
// hand us vectors directly rather than records to compare.
func idSchema(t *testing.T) *record.Schema {
	t.Helper()
	s, err := record.NewSchema([]string{"id"})
	require.NoError(t, err)
	return s
}

func idRecord(s *record.Schema, id string) record.Record {
	return record.New(s, []string{id})
}

// lookupComponent builds a ValueSimilarity component whose score is
// read out of values by the (r1.id, r2.id) pair, missing if absent.
func lookupComponent(name string, values map[[2]string]float64) recordsim.Component {
	get := record.MustGetter(record.Name("id"))
	compare := func(a, b string) valuesim.Missing {
		if v, ok := values[[2]string{a, b}]; ok {
			return valuesim.Value(v)
		}
		return nil
	}
	return recordsim.Component{Name: name, Sim: valuesim.FieldSame(compare, get, nil)}
}

func buildPairMap(t *testing.T, s *record.Schema, sim *recordsim.RecordSimilarity, pairIDs [][2]string) *blockindex.PairMap {
	t.Helper()
	pm := blockindex.NewPairMap()
	for _, ids := range pairIDs {
		r1 := idRecord(s, ids[0])
		r2 := idRecord(s, ids[1])
		pm.Set(record.MakePair(r1, r2), sim.Compare(r1, r2))
	}
	return pm
}

func hasPair(scores *Scores, s *record.Schema, id1, id2 string) bool {
	return scores.Has(record.MakePair(idRecord(s, id1), idRecord(s, id2)))
}

// Scenario 3: k-means classification of 1-D vectors.
func TestKMeansOneDimensional(t *testing.T) {
	s := idSchema(t)
	values := map[[2]string]float64{
		{"1", "2"}: 0.5,
		{"2", "3"}: 0.8,
		{"3", "4"}: 0.9,
		{"4", "5"}: 0.0,
	}
	sim, err := recordsim.New(lookupComponent("c1", values))
	require.NoError(t, err)

	pm := buildPairMap(t, s, sim, [][2]string{{"1", "2"}, {"2", "3"}, {"3", "4"}, {"4", "5"}})

	matches, nonmatches := KMeans{}.Classify(pm)

	assert.True(t, hasPair(matches, s, "1", "2"))
	assert.True(t, hasPair(matches, s, "2", "3"))
	assert.True(t, hasPair(matches, s, "3", "4"))
	assert.True(t, hasPair(nonmatches, s, "4", "5"))
	assert.Equal(t, 3, matches.Len())
	assert.Equal(t, 1, nonmatches.Len())
}

// Scenario 4: k-means with missing components — the missing component
// on pair (1,2) must not contaminate the low-centroid mean.
func TestKMeansWithMissingComponent(t *testing.T) {
	s := idSchema(t)
	c1 := map[[2]string]float64{
		{"1", "2"}: 0.5,
		{"2", "3"}: 0.8,
		{"3", "4"}: 0.9,
		{"4", "5"}: 0.0,
	}
	c2 := map[[2]string]float64{
		// (1,2) deliberately absent: missing second component.
		{"2", "3"}: 0.7,
		{"3", "4"}: 0.5,
		{"4", "5"}: 0.5,
	}
	sim, err := recordsim.New(lookupComponent("c1", c1), lookupComponent("c2", c2))
	require.NoError(t, err)

	pm := buildPairMap(t, s, sim, [][2]string{{"1", "2"}, {"2", "3"}, {"3", "4"}, {"4", "5"}})

	matches, nonmatches := KMeans{}.Classify(pm)

	assert.True(t, hasPair(matches, s, "1", "2"))
	assert.True(t, hasPair(matches, s, "2", "3"))
	assert.True(t, hasPair(matches, s, "3", "4"))
	assert.True(t, hasPair(nonmatches, s, "4", "5"))
	assert.Equal(t, 3, matches.Len())
	assert.Equal(t, 1, nonmatches.Len())
}

func TestKMeansEmptyInput(t *testing.T) {
	matches, nonmatches := KMeans{}.Classify(blockindex.NewPairMap())
	assert.Equal(t, 0, matches.Len())
	assert.Equal(t, 0, nonmatches.Len())
}

// Scenario 5: nearest-neighbour with a rule override forcing (4,5) into
// the match set despite its low raw similarity, and (1,2) falling to
// the non-match example as the nearer neighbour.
func TestNearestNeighbourWithRuleOverride(t *testing.T) {
	s := idSchema(t)
	values := map[[2]string]float64{
		{"1", "2"}: 0.5,
		{"2", "3"}: 0.8,
		{"3", "4"}: 0.9,
		{"4", "5"}: 0.0,
	}
	sim, err := recordsim.New(lookupComponent("c1", values))
	require.NoError(t, err)
	pm := buildPairMap(t, s, sim, [][2]string{{"1", "2"}, {"2", "3"}, {"3", "4"}, {"4", "5"}})

	matchExample, err := recordsim.New(lookupComponent("c1", map[[2]string]float64{{"m", "m"}: 1.0}))
	require.NoError(t, err)
	nonMatchExample, err := recordsim.New(lookupComponent("c1", map[[2]string]float64{{"n", "n"}: 0.4}))
	require.NoError(t, err)

	classifier := NearestNeighbour{
		MatchExamples: []Example{{Vector: matchExample.Compare(idRecord(s, "m"), idRecord(s, "m"))}},
		NonMatchExamples: []Example{{Vector: nonMatchExample.Compare(idRecord(s, "n"), idRecord(s, "n"))}},
		Rule: func(r1, r2 record.Record, vector recordsim.Vector) Judgement {
			if (r1.Field("id") == "4" && r2.Field("id") == "5") || (r1.Field("id") == "5" && r2.Field("id") == "4") {
				return Match
			}
			return Uncertain
		},
	}

	matches, nonmatches := classifier.Classify(pm)

	assert.True(t, hasPair(matches, s, "4", "5"), "rule override must force (4,5) into matches")
	assert.True(t, hasPair(nonmatches, s, "1", "2"), "(1,2) should land closer to the non-match example")
}

func TestNearestNeighbourEmptyExamplesIsConfigurationError(t *testing.T) {
	_, err := NewNearestNeighbour(nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestNearestNeighbourLiteralWithEmptyExamplesPanics(t *testing.T) {
	s := idSchema(t)
	sim, err := recordsim.New(lookupComponent("c1", map[[2]string]float64{{"1", "2"}: 0.5}))
	require.NoError(t, err)
	pm := buildPairMap(t, s, sim, [][2]string{{"1", "2"}})

	assert.Panics(t, func() {
		NearestNeighbour{}.Classify(pm)
	})
}

func TestRuleBasedSeparatesUncertain(t *testing.T) {
	s := idSchema(t)
	values := map[[2]string]float64{
		{"1", "2"}: 1.0,
		{"2", "3"}: 0.0,
	}
	sim, err := recordsim.New(lookupComponent("c1", values))
	require.NoError(t, err)
	pm := buildPairMap(t, s, sim, [][2]string{{"1", "2"}, {"2", "3"}, {"3", "4"}})

	rb := RuleBased{Rule: func(r1, r2 record.Record, vector recordsim.Vector) Judgement {
			v, ok := vector.Get("c1")
			if !ok || valuesim.IsMissing(v) {
				return Uncertain
			}
			if *v >= 0.5 {
				return Match
			}
			return NonMatch
	}}

	matches, nonmatches := rb.Classify(pm)
	assert.True(t, hasPair(matches, s, "1", "2"))
	assert.True(t, hasPair(nonmatches, s, "2", "3"))
	assert.Equal(t, 1, matches.Len())
	assert.Equal(t, 1, nonmatches.Len())

	uncertain := rb.UncertainPairs(pm)
	assert.Equal(t, 1, uncertain.Len())
	assert.True(t, uncertain.Has(record.MakePair(idRecord(s, "3"), idRecord(s, "4"))))
}

func TestChainFallsThroughToFallback(t *testing.T) {
	s := idSchema(t)
	values := map[[2]string]float64{
		{"1", "2"}: 1.0,
		{"2", "3"}: 0.0,
		{"3", "4"}: 0.6,
	}
	sim, err := recordsim.New(lookupComponent("c1", values))
	require.NoError(t, err)
	pm := buildPairMap(t, s, sim, [][2]string{{"1", "2"}, {"2", "3"}, {"3", "4"}})

	rb := RuleBased{Rule: func(r1, r2 record.Record, vector recordsim.Vector) Judgement {
			v, ok := vector.Get("c1")
			if !ok || valuesim.IsMissing(v) {
				return Uncertain
			}
			switch *v {
			case 1.0:
				return Match
			case 0.0:
				return NonMatch
			default:
				return Uncertain
			}
	}}

	chain := Chain{First: rb, Fallback: KMeans{}}
	matches, nonmatches := chain.Classify(pm)

	assert.True(t, hasPair(matches, s, "1", "2"))
	assert.True(t, hasPair(nonmatches, s, "2", "3"))
	_, inMatches := matches.Get(record.MakePair(idRecord(s, "3"), idRecord(s, "4")))
	_, inNonmatches := nonmatches.Get(record.MakePair(idRecord(s, "3"), idRecord(s, "4")))
	assert.True(t, inMatches || inNonmatches, "the uncertain pair must be resolved by the fallback classifier")
}
