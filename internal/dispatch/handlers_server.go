package dispatch

import (
	"strconv"
	"strings"

	"github.com/akashmaji/literedis/internal/resp"
)

func init() {
	register("PING", cmdPing)
	register("ECHO", cmdEcho)
	register("CONFIG", cmdConfig)
	register("CLIENT", cmdClient)
	register("SAVE", cmdSave)
	register("BGSAVE", cmdBGSave)
	register("COMMAND", cmdCommand)
}

func cmdPing(ctx *Context, args []string) resp.Value {
	if len(args) == 0 {
		return resp.NewSimpleString("PONG")
	}
	if len(args) == 1 {
		return resp.NewBulk(args[0])
	}
	return errArity("PING")
}

func cmdEcho(ctx *Context, args []string) resp.Value {
	if len(args) != 1 {
		return errArity("ECHO")
	}
	return resp.NewBulk(args[0])
}

// cmdConfig implements the single required subverb, CONFIG GET <name>;
// every other subverb is deliberately out of scope.
func cmdConfig(ctx *Context, args []string) resp.Value {
	if len(args) < 1 {
		return errArity("CONFIG")
	}
	switch strings.ToUpper(args[0]) {
	case "GET":
		if len(args) != 2 {
			return errArity("CONFIG")
		}
		name := args[1]
		val := configValue(ctx, name)
		if val == nil {
			return resp.NewArray([]resp.Value{resp.NewBulk(name), resp.NewNull()})
		}
		return resp.NewArray([]resp.Value{resp.NewBulk(name), resp.NewBulk(*val)})
	default:
		return errNotImplemented("CONFIG " + args[0])
	}
}

func configValue(ctx *Context, name string) *string {
	var v string
	switch strings.ToLower(name) {
	case "dir":
		v = ctx.Config.Dir
	case "dbfilename":
		v = ctx.Config.DBFilename
	case "appendfilename":
		v = ctx.Config.AppendFilename
	case "port":
		v = strconv.Itoa(ctx.Config.Port)
	default:
		return nil
	}
	return &v
}

// cmdClient is a no-op returning OK, matching the dispatcher contract.
func cmdClient(ctx *Context, args []string) resp.Value {
	return resp.NewSimpleString("OK")
}

func cmdSave(ctx *Context, args []string) resp.Value {
	if ctx.RDB == nil {
		return resp.NewSimpleString("OK")
	}
	if err := ctx.RDB.Save(); err != nil {
		return resp.NewError("ERR " + err.Error())
	}
	ctx.Counters.RDBSaves++
	return resp.NewSimpleString("OK")
}

func cmdBGSave(ctx *Context, args []string) resp.Value {
	if ctx.RDB == nil {
		return resp.NewSimpleString("Background saving skipped, no snapshot configured")
	}
	go func() {
		ctx.Store.Mu.Lock()
		defer ctx.Store.Mu.Unlock()
		if err := ctx.RDB.Save(); err == nil {
			ctx.Counters.RDBSaves++
		}
	}()
	return resp.NewSimpleString("Background saving started")
}

func cmdCommand(ctx *Context, args []string) resp.Value {
	names := make([]string, 0, len(Handlers))
	for name := range Handlers {
		names = append(names, name)
	}
	return resp.StrArray(names)
}
