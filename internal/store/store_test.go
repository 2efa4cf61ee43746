package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	s.SetString("foo", "bar", true)
	it, ok := s.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", it.Str)
}

func TestExpirationMonotonicity(t *testing.T) {
	s := New()
	s.SetString("k", "v", true)
	s.SetExpireAt("k", time.Now().Add(20*time.Millisecond))

	_, ok := s.Get("k")
	assert.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.False(t, s.Exists("k"))
}

func TestWrongTypePreventsMutation(t *testing.T) {
	s := New()
	s.SetString("k", "v", true)

	_, err := s.GetOrCreate("k", TypeList)
	require.Error(t, err)

	it, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, TypeString, it.Type)
	assert.Equal(t, "v", it.Str)
}

func TestDeleteAndExists(t *testing.T) {
	s := New()
	s.SetString("a", "1", true)
	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.False(t, s.Exists("a"))
}

func TestKeysSkipsExpired(t *testing.T) {
	s := New()
	s.SetString("live", "1", true)
	s.SetString("dead", "1", true)
	s.SetExpireAt("dead", time.Now().Add(-time.Second))

	keys := s.Keys()
	assert.Equal(t, []string{"live"}, keys)
}
