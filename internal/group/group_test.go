package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehdc-llpg/linkage/internal/record"
)

func letterSchema(t *testing.T) *record.Schema {
	t.Helper()
	s, err := record.NewSchema([]string{"id"})
	require.NoError(t, err)
	return s
}

func letters(t *testing.T, s *record.Schema, ids...string) []record.Record {
	t.Helper()
	recs := make([]record.Record, len(ids))
	for i, id := range ids {
		recs[i] = record.New(s, []string{id})
	}
	return recs
}

// Scenario 6: grouping transitive closure.
func TestSinglesAndGroupsTransitiveClosure(t *testing.T) {
	s := letterSchema(t)
	all := letters(t, s, "a", "b", "c", "d", "e", "f", "g")
	a, b, c, d, e, f, _ := all[0], all[1], all[2], all[3], all[4], all[5], all[6]

	matches := []record.Pair{
		{A: a, B: b},
		{A: b, B: c},
		{A: d, B: e},
		{A: e, B: f},
	}

	singles, groups := SinglesAndGroups(matches, all)

	require.Len(t, groups, 2)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, idsOf(groups[0]))
	assert.ElementsMatch(t, []string{"d", "e", "f"}, idsOf(groups[1]))
	require.Len(t, singles, 1)
	assert.Equal(t, "g", singles[0].Field("id"))
}

func idsOf(recs []record.Record) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Field("id")
	}
	return ids
}

// Universal property: every record in a group is reachable from every
// other via an edge path in the match set; singles are exactly the
// records with no incident edge.
func TestGroupsAreConnectedAndSinglesHaveNoEdges(t *testing.T) {
	s := letterSchema(t)
	all := letters(t, s, "a", "b", "c", "d", "e")
	a, b, c, d, _ := all[0], all[1], all[2], all[3], all[4]

	matches := []record.Pair{
		{A: a, B: b},
		{A: b, B: c},
		{A: c, B: a}, // cycle back to a, must not infinite-loop or duplicate a
		{A: d, B: d}, // self-pair, degenerate but must not crash
	}

	singles, groups := SinglesAndGroups(matches, all)

	adjacent := make(map[string]bool)
	for _, pair := range matches {
		adjacent[pair.A.Key()] = true
		adjacent[pair.B.Key()] = true
	}

	for _, grp := range groups {
		for _, r := range grp {
			assert.True(t, adjacent[r.Key()])
		}
	}
	for _, single := range singles {
		assert.False(t, adjacent[single.Key()])
	}

	var totalGrouped int
	for _, grp := range groups {
		totalGrouped += len(grp)
	}
	assert.Equal(t, len(all), totalGrouped+len(singles))
}

func TestEmptyMatchesEveryRecordIsSingle(t *testing.T) {
	s := letterSchema(t)
	all := letters(t, s, "x", "y", "z")
	singles, groups := SinglesAndGroups(nil, all)
	assert.Len(t, groups, 0)
	assert.Len(t, singles, 3)
}
