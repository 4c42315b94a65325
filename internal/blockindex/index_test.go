package blockindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehdc-llpg/linkage/internal/record"
	"github.com/ehdc-llpg/linkage/internal/recordsim"
	"github.com/ehdc-llpg/linkage/internal/valuesim"
)

func schema(t *testing.T) *record.Schema {
	t.Helper()
	s, err := record.NewSchema([]string{"id", "name"})
	require.NoError(t, err)
	return s
}

func floorKey(r record.Record) []string {
	// bucket key = first character of the "name" field (the integer part
	// for the single-digit values used in these tests)
	return []string{r.Field("name")[:1]}
}

func numericCompare() CompareFunc {
	sim, _ := recordsim.New(recordsim.Component{
			Name: "eq",
			Sim: valuesim.FieldSame(func(a, b string) valuesim.Missing {
					if a == b {
						return valuesim.Value(1.0)
					}
					return valuesim.Value(0.0)
				}, record.MustGetter(record.Name("name")), nil),
	})
	return sim.Compare
}

func TestSelfModeOrderingAndNoSelfPairs(t *testing.T) {
	s := schema(t)
	idx := NewIndex("firstletter", floorKey)

	a := record.New(s, []string{"1", "5.5"})
	b := record.New(s, []string{"2", "5.25"})
	c := record.New(s, []string{"3", "3.5"})

	require.NoError(t, idx.Insert(a))
	require.NoError(t, idx.Insert(b))
	require.NoError(t, idx.Insert(c))

	cache := idx.Compare(numericCompare(), nil)
	for _, pair := range cache.Pairs() {
		assert.True(t, pair.A.Less(pair.B), "self-mode pairs must satisfy A < B")
		assert.False(t, pair.A.Equal(pair.B))
	}
}

func TestDistinctRecordsWithIdenticalValuesAreStillCompared(t *testing.T) {
	s := schema(t)
	idx := NewIndex("firstletter", floorKey)

	a := record.New(s, []string{"1", "5.5"})
	b := record.New(s, []string{"1", "5.5"}) // identical Values to a, distinct row

	require.NoError(t, idx.Insert(a))
	require.NoError(t, idx.Insert(b))

	cache := idx.Compare(numericCompare(), nil)
	assert.Equal(t, 1, cache.Len(), "two distinct records with identical Values must still be compared as a pair")

	recs := []record.Record{a, b}
	allPairsCache := AllPairsCompare(recs, numericCompare(), nil)
	assert.Equal(t, 1, allPairsCache.Len(), "AllPairsCompare must not skip distinct records carrying identical Values")
}

func TestEmptyKeyIsConfigurationError(t *testing.T) {
	s := schema(t)
	idx := NewIndex("broken", func(record.Record) []string { return []string{""} })
	r := record.New(s, []string{"1", "x"})
	err := idx.Insert(r)
	assert.Error(t, err)
}

func TestCountComparisonsIsUpperBound(t *testing.T) {
	s := schema(t)
	idx := NewIndex("bucket", func(record.Record) []string { return []string{"k"} })
	for i := 0; i < 4; i++ {
		require.NoError(t, idx.Insert(record.New(s, []string{string(rune('a' + i)), "v"})))
	}
	cache := idx.Compare(numericCompare(), nil)
	assert.LessOrEqual(t, cache.Len(), idx.CountComparisons(nil))
	assert.Equal(t, 6, idx.CountComparisons(nil)) // 4*3/2
}

func TestCrossModeLeftRightOrdering(t *testing.T) {
	s := schema(t)
	left := NewIndex("k", func(record.Record) []string { return []string{"k"} })
	right := NewIndex("k", func(record.Record) []string { return []string{"k"} })

	l1 := record.New(s, []string{"1", "a"})
	r1 := record.New(s, []string{"2", "b"})
	require.NoError(t, left.Insert(l1))
	require.NoError(t, right.Insert(r1))

	cache := left.CompareAgainst(right, numericCompare(), nil)
	for _, pair := range cache.Pairs() {
		assert.Equal(t, l1.Key(), pair.A.Key())
		assert.Equal(t, r1.Key(), pair.B.Key())
	}
}

func TestIndicesDedupesAcrossConstituentIndexes(t *testing.T) {
	s := schema(t)
	callCount := 0
	countingCompare := func(r1, r2 record.Record) recordsim.Vector {
		callCount++
		return numericCompare()(r1, r2)
	}

	// Two indexes that both bucket every record into the same single key,
	// so the same pair is a blocking candidate under both.
	idx1 := NewIndex("a", func(record.Record) []string { return []string{"*"} })
	idx2 := NewIndex("b", func(record.Record) []string { return []string{"*"} })
	indices := NewIndices(idx1, idx2)

	r1 := record.New(s, []string{"1", "x"})
	r2 := record.New(s, []string{"2", "y"})
	require.NoError(t, indices.Insert(r1))
	require.NoError(t, indices.Insert(r2))

	cache := indices.Compare(countingCompare)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1, callCount, "compare must run at most once per unordered pair")
}

func TestAllPairsCoversEveryDistinctPair(t *testing.T) {
	s := schema(t)
	recs := []record.Record{
		record.New(s, []string{"1", "a"}),
		record.New(s, []string{"2", "b"}),
		record.New(s, []string{"3", "c"}),
	}
	cache := AllPairsCompare(recs, numericCompare(), nil)
	assert.Equal(t, 3, cache.Len()) // 3 choose 2
}
