package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji/literedis/internal/config"
	"github.com/akashmaji/literedis/internal/dispatch"
	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/stats"
	"github.com/akashmaji/literedis/internal/store"
)

func newTestContext() *dispatch.Context {
	return &dispatch.Context{
		Store:    store.New(),
		Counters: stats.New(),
		Config:   config.Default(),
	}
}

func TestAOFAppendAndReplayEquivalence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.aof")

	aof, err := OpenAOF(path)
	require.NoError(t, err)

	ctx1 := newTestContext()
	ctx1.AOF = aof

	dispatch.Dispatch(ctx1, resp.NewArray([]resp.Value{resp.NewBulk("SET"), resp.NewBulk("foo"), resp.NewBulk("bar")}))
	dispatch.Dispatch(ctx1, resp.NewArray([]resp.Value{resp.NewBulk("RPUSH"), resp.NewBulk("L"), resp.NewBulk("a"), resp.NewBulk("b")}))
	dispatch.Dispatch(ctx1, resp.NewArray([]resp.Value{resp.NewBulk("INCR"), resp.NewBulk("counter")}))
	require.NoError(t, aof.Close())

	ctx2 := newTestContext()
	n, err := Replay(path, ctx2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	it, ok := ctx2.Store.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", it.Str)

	lit, ok := ctx2.Store.Get("L")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, lit.List)

	cit, ok := ctx2.Store.Get("counter")
	require.True(t, ok)
	assert.Equal(t, "1", cit.Str)
}

func TestAOFDoesNotLogReadOnlyCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.aof")
	aof, err := OpenAOF(path)
	require.NoError(t, err)

	ctx := newTestContext()
	ctx.AOF = aof
	dispatch.Dispatch(ctx, resp.NewArray([]resp.Value{resp.NewBulk("SET"), resp.NewBulk("k"), resp.NewBulk("v")}))
	dispatch.Dispatch(ctx, resp.NewArray([]resp.Value{resp.NewBulk("GET"), resp.NewBulk("k")}))
	require.NoError(t, aof.Close())

	ctx2 := newTestContext()
	n, err := Replay(path, ctx2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
