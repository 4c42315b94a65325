package strdist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ehdc-llpg/linkage/internal/valuesim"
)

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("kitten", "kitten"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 6, Levenshtein("", "kitten"))
	assert.Equal(t, 2, Levenshtein("ab", "ba"))
}

func TestDamerauLevenshteinTranspositionIsOneEdit(t *testing.T) {
	assert.Equal(t, 1, DamerauLevenshtein("ab", "ba"))
	assert.Equal(t, 2, Levenshtein("ab", "ba"), "plain Levenshtein pays two substitutions for a transposition")
	assert.Equal(t, 0, DamerauLevenshtein("smith", "smith"))
	assert.Equal(t, 3, DamerauLevenshtein("kitten", "sitting"))
}

func TestLevenshteinSimilarityScaling(t *testing.T) {
	cmp := LevenshteinSimilarity(1.0)
	v := cmp("smith", "smyth")
	assert := assert.New(t)
	assert.False(valuesim.IsMissing(v))
	assert.InDelta(0.8, *v, 1e-9) // 1 diff / min(5,5)*1.0

	assert.True(valuesim.IsMissing(cmp("", "smith")))
}

func TestDamerauLevenshteinSimilarityRewardsTransposition(t *testing.T) {
	cmp := DamerauLevenshteinSimilarity(1.0)
	v := cmp("smith", "msith")
	assert.False(t, valuesim.IsMissing(v))
	assert.InDelta(t, 0.8, *v, 1e-9) // 1 transposition / min(5,5)*1.0
}

func TestSimilarityZeroBelowFloor(t *testing.T) {
	cmp := LevenshteinSimilarity(0.1)
	v := cmp("kitten", "sitting")
	assert.False(t, valuesim.IsMissing(v))
	assert.Equal(t, 0.0, *v)
}
