// Package dispatch maps a parsed command frame to store/stream operations
// and a reply frame. It normalizes the verb to uppercase, looks the verb
// up in a fixed table, and enforces the "no side effects on error"
// contract: a handler either fully succeeds or returns an error value
// without having mutated the store.
package dispatch

import (
	"strings"
	"time"

	"github.com/akashmaji/literedis/internal/config"
	"github.com/akashmaji/literedis/internal/logging"
	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/stats"
	"github.com/akashmaji/literedis/internal/store"
)

// AOFWriter decouples the dispatcher from the concrete persistence
// package (which itself calls Dispatch during replay) and avoids an
// import cycle between dispatch and persistence.
type AOFWriter interface {
	Append(frame resp.Value) error
}

// RDBSaver performs a synchronous snapshot write; wired up the same way
// as AOFWriter, for the same reason.
type RDBSaver interface {
	Save() error
}

// Context bundles everything a handler needs. It is created once per
// server and passed to every invocation; handlers never hold state of
// their own.
type Context struct {
	Store    *store.Store
	AOF      AOFWriter // nil if AOF is disabled
	RDB      RDBSaver  // nil if no snapshot path configured
	Counters *stats.Counters
	Config   *config.Config
}

// HandlerFunc implements one verb. args excludes the verb itself.
// Handlers must not mutate the store before validating all preconditions.
type HandlerFunc func(ctx *Context, args []string) resp.Value

var Handlers = map[string]HandlerFunc{}

func register(verb string, h HandlerFunc) { Handlers[verb] = h }

// readOnlyVerbs never get logged to the AOF. Taken from the persistence
// contract's enumeration of read-only verbs, plus INFO and COMMAND.
var readOnlyVerbs = map[string]bool{
	"GET": true, "EXISTS": true, "TYPE": true, "KEYS": true,
	"HGET": true, "HMGET": true, "HGETALL": true,
	"LLEN": true, "LRANGE": true,
	"SISMEMBER": true, "SCARD": true, "SMEMBERS": true, "SINTER": true,
	"XRANGE": true, "XREAD": true,
	"PING": true, "ECHO": true, "CLIENT": true, "CONFIG": true,
	"INFO": true, "COMMAND": true,
}

// Dispatch executes one already-parsed command frame and returns the
// reply frame, appending to the AOF on a successful mutating command.
func Dispatch(ctx *Context, frame resp.Value) resp.Value {
	if frame.Kind != resp.Array || len(frame.Items) == 0 {
		return resp.NewError("ERR empty command")
	}
	args := frame.AsBulkStrings()
	verb := strings.ToUpper(args[0])

	handler, ok := Handlers[verb]
	if !ok {
		return resp.NewError("ERR unknown command '" + args[0] + "'")
	}

	ctx.Counters.CommandsProcessed++
	reply := handler(ctx, args[1:])

	if reply.Kind != resp.Error && reply.Kind != resp.BulkError && !readOnlyVerbs[verb] {
		if ctx.AOF != nil {
			canonical := resp.NewArray(append([]resp.Value{resp.NewBulk(verb)}, frame.Items[1:]...))
			if err := ctx.AOF.Append(canonical); err != nil {
				// Persistence failure is logged, not surfaced: the in-memory
				// mutation already succeeded, per the error-handling design.
				ctx.Counters.AOFWriteErrors++
				logging.Default.Warn("aof append: %v", err)
			}
		}
	}
	return reply
}

func errArity(cmd string) resp.Value {
	return resp.NewError("ERR wrong number of arguments for '" + strings.ToLower(cmd) + "' command")
}

func errWrongType() resp.Value {
	return resp.NewError("WRONGTYPE Operation against a key holding the wrong kind of value")
}

func errNotImplemented(what string) resp.Value {
	return resp.NewError("ERR not implemented: " + what)
}

func errInvalidNumber() resp.Value {
	return resp.NewError("ERR value is not an integer or out of range")
}

func errInvalidStreamID(msg string) resp.Value {
	return resp.NewError("ERR Invalid stream ID specified: " + msg)
}

func nowDeadline(d time.Duration) time.Time { return time.Now().Add(d) }
