package dispatch

import (
	"strconv"

	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/store"
)

func init() {
	register("LPUSH", cmdLPush)
	register("RPUSH", cmdRPush)
	register("LLEN", cmdLLen)
	register("LRANGE", cmdLRange)
}

// cmdLPush prepends values so the last argument ends up at index 0.
func cmdLPush(ctx *Context, args []string) resp.Value {
	if len(args) < 2 {
		return errArity("LPUSH")
	}
	it, err := ctx.Store.GetOrCreate(args[0], store.TypeList)
	if err != nil {
		return errWrongType()
	}
	vals := args[1:]
	for _, v := range vals {
		it.List = append([]string{v}, it.List...)
	}
	return resp.NewInteger(int64(len(it.List)))
}

func cmdRPush(ctx *Context, args []string) resp.Value {
	if len(args) < 2 {
		return errArity("RPUSH")
	}
	it, err := ctx.Store.GetOrCreate(args[0], store.TypeList)
	if err != nil {
		return errWrongType()
	}
	it.List = append(it.List, args[1:]...)
	return resp.NewInteger(int64(len(it.List)))
}

func cmdLLen(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("LLEN")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeList)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewInteger(0)
	}
	return resp.NewInteger(int64(len(it.List)))
}

// cmdLRange returns the inclusive slice [low, high], with high == -1
// meaning "through the end"; out-of-range indices clamp to the list
// bounds. An absent or empty list returns an empty array, never null.
func cmdLRange(ctx *Context, args []string) resp.Value {
	if len(args) != 3 {
		return errArity("LRANGE")
	}
	low, err := strconv.Atoi(args[1])
	if err != nil {
		return errInvalidNumber()
	}
	high, err := strconv.Atoi(args[2])
	if err != nil {
		return errInvalidNumber()
	}

	it, ok, terr := ctx.Store.GetTyped(args[0], store.TypeList)
	if terr != nil {
		return errWrongType()
	}
	if !ok || len(it.List) == 0 {
		return resp.StrArray(nil)
	}

	n := len(it.List)
	if high == -1 {
		high = n - 1
	}
	if low < 0 {
		low = 0
	}
	if high >= n {
		high = n - 1
	}
	if low > high || low >= n {
		return resp.StrArray(nil)
	}
	return resp.StrArray(it.List[low : high+1])
}
