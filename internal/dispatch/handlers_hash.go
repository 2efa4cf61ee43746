package dispatch

import (
	"strconv"

	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/store"
)

func init() {
	register("HSET", cmdHSet)
	register("HGET", cmdHGet)
	register("HMGET", cmdHMGet)
	register("HGETALL", cmdHGetAll)
	register("HINCRBY", cmdHIncrBy)
}

func cmdHSet(ctx *Context, args []string) resp.Value {
	if len(args) < 3 || len(args)%2 != 1 {
		return errArity("HSET")
	}
	it, err := ctx.Store.GetOrCreate(args[0], store.TypeHash)
	if err != nil {
		return errWrongType()
	}
	pairs := args[1:]
	for i := 0; i < len(pairs); i += 2 {
		it.Hash[pairs[i]] = pairs[i+1]
	}
	return resp.NewInteger(int64(len(it.Hash)))
}

func cmdHGet(ctx *Context, args []string) resp.Value {
	if len(args) != 2 {
		return errArity("HGET")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeHash)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewNull()
	}
	v, ok := it.Hash[args[1]]
	if !ok {
		return resp.NewNull()
	}
	return resp.NewBulk(v)
}

func cmdHMGet(ctx *Context, args []string) resp.Value {
	if len(args) < 2 {
		return errArity("HMGET")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeHash)
	if err != nil {
		return errWrongType()
	}
	out := make([]resp.Value, len(args)-1)
	for i, field := range args[1:] {
		if !ok {
			out[i] = resp.NewNull()
			continue
		}
		if v, found := it.Hash[field]; found {
			out[i] = resp.NewBulk(v)
		} else {
			out[i] = resp.NewNull()
		}
	}
	return resp.NewArray(out)
}

func cmdHGetAll(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("HGETALL")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeHash)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.StrArray(nil)
	}
	flat := make([]string, 0, len(it.Hash)*2)
	for f, v := range it.Hash {
		flat = append(flat, f, v)
	}
	return resp.StrArray(flat)
}

func cmdHIncrBy(ctx *Context, args []string) resp.Value {
	if len(args) != 3 {
		return errArity("HINCRBY")
	}
	delta, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return errInvalidNumber()
	}
	it, cerr := ctx.Store.GetOrCreate(args[0], store.TypeHash)
	if cerr != nil {
		return errWrongType()
	}
	var cur int64
	if s, ok := it.Hash[args[1]]; ok {
		n, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			return errInvalidNumber()
		}
		cur = n
	}
	cur += delta
	it.Hash[args[1]] = strconv.FormatInt(cur, 10)
	return resp.NewInteger(cur)
}
