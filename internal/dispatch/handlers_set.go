package dispatch

import (
	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/store"
)

func init() {
	register("SADD", cmdSAdd)
	register("SREM", cmdSRem)
	register("SISMEMBER", cmdSIsMember)
	register("SINTER", cmdSInter)
	register("SCARD", cmdSCard)
	register("SMEMBERS", cmdSMembers)
}

func cmdSAdd(ctx *Context, args []string) resp.Value {
	if len(args) < 2 {
		return errArity("SADD")
	}
	it, err := ctx.Store.GetOrCreate(args[0], store.TypeSet)
	if err != nil {
		return errWrongType()
	}
	added := int64(0)
	for _, m := range args[1:] {
		if _, exists := it.Set[m]; !exists {
			it.Set[m] = struct{}{}
			added++
		}
	}
	return resp.NewInteger(added)
}

func cmdSRem(ctx *Context, args []string) resp.Value {
	if len(args) < 2 {
		return errArity("SREM")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeSet)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewInteger(0)
	}
	removed := int64(0)
	for _, m := range args[1:] {
		if _, exists := it.Set[m]; exists {
			delete(it.Set, m)
			removed++
		}
	}
	return resp.NewInteger(removed)
}

func cmdSIsMember(ctx *Context, args []string) resp.Value {
	if len(args) != 2 {
		return errArity("SISMEMBER")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeSet)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewInteger(0)
	}
	if _, exists := it.Set[args[1]]; exists {
		return resp.NewInteger(1)
	}
	return resp.NewInteger(0)
}

func cmdSCard(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("SCARD")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeSet)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewInteger(0)
	}
	return resp.NewInteger(int64(len(it.Set)))
}

func cmdSMembers(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("SMEMBERS")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeSet)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.StrArray(nil)
	}
	members := make([]string, 0, len(it.Set))
	for m := range it.Set {
		members = append(members, m)
	}
	return resp.StrArray(members)
}

func cmdSInter(ctx *Context, args []string) resp.Value {
	if len(args) < 1 {
		return errArity("SINTER")
	}
	sets := make([]map[string]struct{}, 0, len(args))
	for _, key := range args {
		it, ok, err := ctx.Store.GetTyped(key, store.TypeSet)
		if err != nil {
			return errWrongType()
		}
		if !ok {
			return resp.StrArray(nil) // intersection with an absent (empty) set is empty
		}
		sets = append(sets, it.Set)
	}
	result := make([]string, 0)
	for m := range sets[0] {
		inAll := true
		for _, s := range sets[1:] {
			if _, ok := s[m]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, m)
		}
	}
	return resp.StrArray(result)
}
