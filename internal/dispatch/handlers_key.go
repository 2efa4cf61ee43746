package dispatch

import (
	"github.com/akashmaji/literedis/internal/resp"
)

func init() {
	register("EXISTS", cmdExists)
	register("DEL", cmdDel)
	register("KEYS", cmdKeys)
	register("TYPE", cmdType)
}

func cmdExists(ctx *Context, args []string) resp.Value {
	if len(args) < 1 {
		return errArity("EXISTS")
	}
	count := int64(0)
	for _, k := range args {
		if ctx.Store.Exists(k) {
			count++
		}
	}
	return resp.NewInteger(count)
}

func cmdDel(ctx *Context, args []string) resp.Value {
	if len(args) < 1 {
		return errArity("DEL")
	}
	count := int64(0)
	for _, k := range args {
		if ctx.Store.Delete(k) {
			count++
		}
	}
	return resp.NewInteger(count)
}

func cmdKeys(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("KEYS")
	}
	if args[0] != "*" {
		return errNotImplemented("KEYS pattern other than \"*\"")
	}
	return resp.StrArray(ctx.Store.Keys())
}

func cmdType(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("TYPE")
	}
	it, ok := ctx.Store.Get(args[0])
	if !ok {
		return resp.NewSimpleString("none")
	}
	return resp.NewSimpleString(it.Type.String())
}
