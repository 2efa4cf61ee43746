package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji/literedis/internal/config"
	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/stats"
	"github.com/akashmaji/literedis/internal/store"
)

func newCtx() *Context {
	return &Context{
		Store:    store.New(),
		Counters: stats.New(),
		Config:   config.Default(),
	}
}

func cmd(ctx *Context, verb string, args ...string) resp.Value {
	items := make([]resp.Value, 0, len(args)+1)
	items = append(items, resp.NewBulk(verb))
	for _, a := range args {
		items = append(items, resp.NewBulk(a))
	}
	return Dispatch(ctx, resp.NewArray(items))
}

func TestStringSetGetType(t *testing.T) {
	ctx := newCtx()
	assert.Equal(t, resp.NewSimpleString("OK"), cmd(ctx, "SET", "foo", "bar"))
	assert.Equal(t, resp.NewBulk("bar"), cmd(ctx, "GET", "foo"))
	assert.Equal(t, resp.NewSimpleString("string"), cmd(ctx, "TYPE", "foo"))
}

func TestListPushAndRange(t *testing.T) {
	ctx := newCtx()
	cmd(ctx, "RPUSH", "mylist", "a", "b", "c")
	got := cmd(ctx, "LRANGE", "mylist", "0", "-1")
	assert.Equal(t, resp.StrArray([]string{"a", "b", "c"}), got)
	assert.Equal(t, resp.NewInteger(3), cmd(ctx, "LLEN", "mylist"))
}

func TestHashSetAndGetAll(t *testing.T) {
	ctx := newCtx()
	cmd(ctx, "HSET", "h", "f1", "v1", "f2", "v2")
	got := cmd(ctx, "HGET", "h", "f1")
	assert.Equal(t, resp.NewBulk("v1"), got)
	all := cmd(ctx, "HGETALL", "h")
	require.Equal(t, resp.Array, all.Kind)
	assert.Len(t, all.Items, 4)
}

func TestSetAddAndIsMember(t *testing.T) {
	ctx := newCtx()
	cmd(ctx, "SADD", "s", "x", "y")
	assert.Equal(t, resp.NewInteger(1), cmd(ctx, "SISMEMBER", "s", "x"))
	assert.Equal(t, resp.NewInteger(0), cmd(ctx, "SISMEMBER", "s", "z"))
	assert.Equal(t, resp.NewInteger(2), cmd(ctx, "SCARD", "s"))
}

func TestStreamAddAndRange(t *testing.T) {
	ctx := newCtx()
	id1 := cmd(ctx, "XADD", "stream1", "*", "field1", "value1")
	require.Equal(t, resp.Bulk, id1.Kind)
	id2 := cmd(ctx, "XADD", "stream1", "*", "field1", "value2")
	require.NotEqual(t, id1.Str, id2.Str)

	got := cmd(ctx, "XRANGE", "stream1", "-", "+")
	require.Equal(t, resp.Array, got.Kind)
	assert.Len(t, got.Items, 2)
}

func TestExpiryViaPXThenGet(t *testing.T) {
	ctx := newCtx()
	cmd(ctx, "SET", "k", "v", "PX", "20")
	assert.Equal(t, resp.NewBulk("v"), cmd(ctx, "GET", "k"))
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, resp.NewNull(), cmd(ctx, "GET", "k"))
	assert.Equal(t, resp.NewInteger(0), cmd(ctx, "EXISTS", "k"))
}

func TestWrongTypeErrorLeavesStoreUntouched(t *testing.T) {
	ctx := newCtx()
	cmd(ctx, "SET", "str", "v")
	reply := cmd(ctx, "RPUSH", "str", "x")
	assert.Equal(t, resp.Error, reply.Kind)

	got := cmd(ctx, "GET", "str")
	assert.Equal(t, resp.NewBulk("v"), got)
}

func TestErrorRepliesAreNotLoggedToAOF(t *testing.T) {
	ctx := newCtx()
	ctx.AOF = &countingAOF{}
	cmd(ctx, "SET", "k", "v")
	cmd(ctx, "RPUSH", "k", "x") // WRONGTYPE, must not append
	assert.Equal(t, 1, ctx.AOF.(*countingAOF).n)
}

type countingAOF struct{ n int }

func (c *countingAOF) Append(resp.Value) error { c.n++; return nil }
