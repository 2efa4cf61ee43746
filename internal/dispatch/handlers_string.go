package dispatch

import (
	"strconv"
	"strings"
	"time"

	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/store"
)

func init() {
	register("SET", cmdSet)
	register("GET", cmdGet)
	register("INCR", cmdIncr)
	register("DECR", cmdDecr)
}

// cmdSet implements SET key value [PX ms | EX s]. A plain SET with no
// expiry clause clears any expiry the key previously carried, since it
// creates a brand new value outright.
func cmdSet(ctx *Context, args []string) resp.Value {
	if len(args) < 2 {
		return errArity("SET")
	}
	key, val := args[0], args[1]

	var deadline time.Time
	hasDeadline := false
	if len(args) > 2 {
		if len(args) != 4 {
			return errArity("SET")
		}
		opt := strings.ToUpper(args[2])
		n, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return errInvalidNumber()
		}
		switch opt {
		case "PX":
			deadline = nowDeadline(time.Duration(n) * time.Millisecond)
			hasDeadline = true
		case "EX":
			deadline = nowDeadline(time.Duration(n) * time.Second)
			hasDeadline = true
		default:
			return resp.NewError("ERR syntax error")
		}
	}

	ctx.Store.SetString(key, val, !hasDeadline)
	if hasDeadline {
		ctx.Store.SetExpireAt(key, deadline)
	}
	return resp.NewSimpleString("OK")
}

func cmdGet(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("GET")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeString)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewNull()
	}
	return resp.NewBulk(it.Str)
}

func cmdIncr(ctx *Context, args []string) resp.Value {
	return incrDecr(ctx, args, "INCR", 1)
}

func cmdDecr(ctx *Context, args []string) resp.Value {
	return incrDecr(ctx, args, "DECR", -1)
}

func incrDecr(ctx *Context, args []string, cmd string, delta int64) resp.Value {
	if len(args) != 1 {
		return errArity(cmd)
	}
	key := args[0]
	it, ok, err := ctx.Store.GetTyped(key, store.TypeString)
	if err != nil {
		return errWrongType()
	}
	var cur int64
	if ok {
		n, err := strconv.ParseInt(it.Str, 10, 64)
		if err != nil {
			return errInvalidNumber()
		}
		cur = n
	}
	cur += delta
	ctx.Store.SetString(key, strconv.FormatInt(cur, 10), false)
	return resp.NewInteger(cur)
}
