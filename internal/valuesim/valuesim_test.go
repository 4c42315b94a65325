package valuesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehdc-llpg/linkage/internal/record"
)

func exactMatch(a, b string) Missing {
	if a == b {
		return Value(1.0)
	}
	return Value(0.0)
}

func schemaAB(t *testing.T) *record.Schema {
	t.Helper()
	s, err := record.NewSchema([]string{"A", "B"})
	require.NoError(t, err)
	return s
}

func TestFieldMissingOnEmpty(t *testing.T) {
	s := schemaAB(t)
	get := record.MustGetter(record.Name("A"))
	sim := FieldSame(exactMatch, get, nil)

	r1 := record.New(s, []string{"", "x"})
	r2 := record.New(s, []string{"foo", "y"})

	got := sim(r1, r2)
	assert.True(t, IsMissing(got), "empty field should yield missing similarity")
}

func TestFieldReflexivity(t *testing.T) {
	s := schemaAB(t)
	get := record.MustGetter(record.Name("A"))
	sim := FieldSame(exactMatch, get, nil)

	r := record.New(s, []string{"foo", "bar"})
	got := sim(r, r)
	require.False(t, IsMissing(got))
	assert.Equal(t, 1.0, *got)
}

func TestScaleClipsAndInterpolates(t *testing.T) {
	raw := func(a, b string) float64 { return 0.6 }
	f, err := Scale(raw, 0.2, 0.8, 1.0, nil, nil)
	require.NoError(t, err)
	got := f("x", "y")
	require.False(t, IsMissing(got))
	assert.InDelta(t, (0.6-0.2)/(0.8-0.2), *got, 1e-9)

	below, err := Scale(func(a, b string) float64 { return 0.1 }, 0.2, 0.8, 1.0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *below("x", "y"))

	above, err := Scale(func(a, b string) float64 { return 0.9 }, 0.2, 0.8, 1.0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *above("x", "y"))
}

func TestScaleRejectsInvertedBounds(t *testing.T) {
	_, err := Scale(func(a, b string) float64 { return 0 }, 0.8, 0.2, 1.0, nil, nil)
	assert.Error(t, err)
}

func TestAverageUsesSmallerSetDenominator(t *testing.T) {
	get1 := func(r record.Record) []string { return []string{"a", "b"} }
	get2 := func(r record.Record) []string { return []string{"a", "x", "y"} }
	sim := Average(exactMatch, get1, nil, get2, nil)

	s := schemaAB(t)
	r := record.New(s, []string{"", ""})
	got := sim(r, r)
	require.False(t, IsMissing(got))
	// "a" matches exactly (1.0), "b" matches nothing (0.0); average over
	// the smaller set (len 2) is 0.5.
	assert.InDelta(t, 0.5, *got, 1e-9)
}

func TestMaximumTakesBestPair(t *testing.T) {
	get1 := func(r record.Record) []string { return []string{"a", "b"} }
	get2 := func(r record.Record) []string { return []string{"zzz", "b"} }
	sim := Maximum(exactMatch, get1, nil, get2, nil)

	s := schemaAB(t)
	r := record.New(s, []string{"", ""})
	got := sim(r, r)
	require.False(t, IsMissing(got))
	assert.Equal(t, 1.0, *got)
}
