package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameIsIdentityNotValueEquality(t *testing.T) {
	s, err := NewSchema([]string{"address"})
	require.NoError(t, err)

	a := New(s, []string{"14 High Street"})
	b := New(s, []string{"14 High Street"})

	assert.True(t, a.Equal(b), "two records built from identical values must be Equal")
	assert.False(t, a.Same(b), "two separately constructed records must never be Same, even with identical Values")
	assert.True(t, a.Same(a), "a record is always Same as itself")
}
