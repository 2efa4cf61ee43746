package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoIDsStrictlyIncrease(t *testing.T) {
	s := New()
	var ids []ID
	for i := 0; i < 5; i++ {
		id, err := s.ResolveID("*")
		require.NoError(t, err)
		s.Add(id, []Field{{Name: "a", Value: "1"}})
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		assert.True(t, ids[i-1].Less(ids[i]))
	}
}

func TestRejectZeroZero(t *testing.T) {
	s := New()
	_, err := s.ResolveID("0-0")
	assert.Error(t, err)
}

func TestRejectIDNotGreaterThanTop(t *testing.T) {
	s := New()
	id, err := s.ResolveID("5-0")
	require.NoError(t, err)
	s.Add(id, nil)

	_, err = s.ResolveID("5-0")
	assert.Error(t, err)
	_, err = s.ResolveID("4-9")
	assert.Error(t, err)

	ok, err := s.ResolveID("5-1")
	require.NoError(t, err)
	s.Add(ok, nil)
	assert.Equal(t, ID{Ms: 5, Seq: 1}, s.TopID())
}

func TestFirstEntryExceptionAcceptsZeroOne(t *testing.T) {
	s := New()
	id, err := s.ResolveID("0-1")
	require.NoError(t, err)
	assert.Equal(t, ID{Ms: 0, Seq: 1}, id)
}

func TestRangeOrderedTraversal(t *testing.T) {
	s := New()
	for _, spec := range []string{"1-0", "2-0", "3-5", "10-0"} {
		id, err := s.ResolveID(spec)
		require.NoError(t, err)
		s.Add(id, nil)
	}
	lo, _ := ParseRangeStart("-")
	hi, _ := ParseRangeEnd("+")
	entries := s.Range(lo, hi, false)
	require.Len(t, entries, 4)
	// Must be numerically ordered (1,2,3,10), not lexicographically
	// ("10" before "2") — the defect the binary radix key avoids.
	want := []ID{{Ms: 1}, {Ms: 2}, {Ms: 3, Seq: 5}, {Ms: 10}}
	for i, e := range entries {
		assert.Equal(t, want[i], e.ID)
	}
}

func TestRangeExclusiveStartForXRead(t *testing.T) {
	s := New()
	for _, spec := range []string{"1-0", "1-1", "2-0"} {
		id, err := s.ResolveID(spec)
		require.NoError(t, err)
		s.Add(id, nil)
	}
	entries := s.Range(ID{Ms: 1, Seq: 0}, maxID, true)
	require.Len(t, entries, 2)
	assert.Equal(t, ID{Ms: 1, Seq: 1}, entries[0].ID)
	assert.Equal(t, ID{Ms: 2, Seq: 0}, entries[1].ID)
}
