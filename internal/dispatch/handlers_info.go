package dispatch

import (
	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/stats"
)

func init() {
	register("INFO", cmdInfo)
}

func cmdInfo(ctx *Context, args []string) resp.Value {
	ctx.Counters.ExpiredKeys = ctx.Store.ExpiredCount()
	return resp.NewBulk(stats.Report(ctx.Counters))
}
