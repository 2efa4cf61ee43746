package persistence

import (
	"bufio"
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji/literedis/internal/store"
)

func TestLengthEncodingRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 63, 64, 16383, 16384, 1 << 20} {
		var buf bytes.Buffer
		w := bufio.NewWriter(&buf)
		require.NoError(t, writeLength(w, n))
		require.NoError(t, w.Flush())

		got, err := readLength(bufio.NewReader(&buf))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestStringEncodingRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", string(make([]byte, 500))} {
		var buf bytes.Buffer
		w := bufio.NewWriter(&buf)
		require.NoError(t, writeString(w, s))
		require.NoError(t, w.Flush())

		got, err := readString(bufio.NewReader(&buf))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestRDBSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.rdb")

	s1 := store.New()
	s1.SetString("foo", "bar", true)
	s1.SetString("baz", "qux", true)
	s1.SetExpireAt("baz", time.Now().Add(time.Hour))

	rdb1 := NewRDB(path, s1)
	require.NoError(t, rdb1.Save())

	s2 := store.New()
	rdb2 := NewRDB(path, s2)
	require.NoError(t, rdb2.Load())

	it, ok := s2.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", it.Str)

	it2, ok := s2.Get("baz")
	require.True(t, ok)
	assert.Equal(t, "qux", it2.Str)

	_, hasExp, exists := s2.TTL("baz")
	require.True(t, exists)
	assert.True(t, hasExp)
}

func TestRDBLoadMissingFileIsNotError(t *testing.T) {
	s := store.New()
	rdb := NewRDB(filepath.Join(t.TempDir(), "missing.rdb"), s)
	assert.NoError(t, rdb.Load())
}
