package dispatch

import (
	"strconv"
	"strings"
	"time"

	"github.com/akashmaji/literedis/internal/resp"
	"github.com/akashmaji/literedis/internal/store"
	"github.com/akashmaji/literedis/internal/stream"
)

func init() {
	register("XADD", cmdXAdd)
	register("XRANGE", cmdXRange)
	register("XREAD", cmdXRead)
}

// maxBlockWait bounds an XREAD ... BLOCK 0 ("wait indefinitely") call.
// True unbounded blocking would need per-connection cancellation wiring
// beyond the coarse-lock model, so it is capped rather than left open
// forever (see DESIGN.md).
const maxBlockWait = 24 * time.Hour

func cmdXAdd(ctx *Context, args []string) resp.Value {
	if len(args) < 4 || len(args)%2 != 0 {
		return errArity("XADD")
	}
	key, idSpec := args[0], args[1]
	fieldArgs := args[2:]

	// Resolve the ID against whatever stream already exists at key (or a
	// transient empty one, if key is absent) before touching the store, so
	// a rejected ID never leaves a freshly-created empty stream behind.
	existing, ok, err := ctx.Store.GetTyped(key, store.TypeStream)
	if err != nil {
		return errWrongType()
	}
	probe := existing
	if !ok {
		probe = &store.Item{Stream: stream.New()}
	}
	id, rerr := probe.Stream.ResolveID(idSpec)
	if rerr != nil {
		return errInvalidStreamID(rerr.Error())
	}

	it, err := ctx.Store.GetOrCreate(key, store.TypeStream)
	if err != nil {
		return errWrongType()
	}

	fields := make([]stream.Field, 0, len(fieldArgs)/2)
	for i := 0; i < len(fieldArgs); i += 2 {
		fields = append(fields, stream.Field{Name: fieldArgs[i], Value: fieldArgs[i+1]})
	}
	it.Stream.Add(id, fields)
	ctx.Store.Cond.Broadcast() // wake any XREAD BLOCK waiters
	return resp.NewBulk(id.String())
}

// entryToValue renders a stream entry as [id_str, [f1,v1,f2,v2,...]].
func entryToValue(e stream.Entry) resp.Value {
	flat := make([]string, 0, len(e.Fields)*2)
	for _, f := range e.Fields {
		flat = append(flat, f.Name, f.Value)
	}
	return resp.NewArray([]resp.Value{resp.NewBulk(e.ID.String()), resp.StrArray(flat)})
}

func cmdXRange(ctx *Context, args []string) resp.Value {
	if len(args) != 3 {
		return errArity("XRANGE")
	}
	it, ok, err := ctx.Store.GetTyped(args[0], store.TypeStream)
	if err != nil {
		return errWrongType()
	}
	if !ok {
		return resp.NewArray([]resp.Value{})
	}
	lo, lerr := stream.ParseRangeStart(args[1])
	if lerr != nil {
		return errInvalidStreamID(lerr.Error())
	}
	hi, herr := stream.ParseRangeEnd(args[2])
	if herr != nil {
		return errInvalidStreamID(herr.Error())
	}
	entries := it.Stream.Range(lo, hi, false)
	out := make([]resp.Value, len(entries))
	for i, e := range entries {
		out[i] = entryToValue(e)
	}
	return resp.NewArray(out)
}

// cmdXRead implements XREAD [BLOCK ms] [COUNT n] STREAMS k1 k2 ... id1 id2 ...
func cmdXRead(ctx *Context, args []string) resp.Value {
	blockMs := int64(-1)
	count := -1
	i := 0
	for i < len(args) {
		switch strings.ToUpper(args[i]) {
		case "BLOCK":
			if i+1 >= len(args) {
				return resp.NewError("ERR syntax error")
			}
			n, err := strconv.ParseInt(args[i+1], 10, 64)
			if err != nil {
				return errInvalidNumber()
			}
			blockMs = n
			i += 2
		case "COUNT":
			if i+1 >= len(args) {
				return resp.NewError("ERR syntax error")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return errInvalidNumber()
			}
			count = n
			i += 2
		case "STREAMS":
			i++
			goto streamsFound
		default:
			return resp.NewError("ERR syntax error")
		}
	}
streamsFound:
	rest := args[i:]
	if len(rest) == 0 || len(rest)%2 != 0 {
		return resp.NewError("ERR Unbalanced XREAD list of streams: for each stream key an ID must be specified.")
	}
	n := len(rest) / 2
	keys := rest[:n]
	ids := rest[n:]

	startIDs := make([]stream.ID, n)
	for idx, idSpec := range ids {
		id, err := stream.ParseExplicitID(idSpec)
		if err != nil {
			return errInvalidStreamID(err.Error())
		}
		startIDs[idx] = id
	}

	// scan reports (reply, found) where found is false only when every
	// listed stream came back empty — the case that may need to block.
	scan := func() (resp.Value, bool) {
		var out []resp.Value
		for idx, key := range keys {
			it, ok, err := ctx.Store.GetTyped(key, store.TypeStream)
			if err != nil {
				return errWrongType(), true
			}
			if !ok {
				continue
			}
			entries := it.Stream.Range(startIDs[idx], stream.ID{Ms: ^uint64(0), Seq: ^uint64(0)}, true)
			if count >= 0 && len(entries) > count {
				entries = entries[:count]
			}
			if len(entries) == 0 {
				continue
			}
			entryVals := make([]resp.Value, len(entries))
			for j, e := range entries {
				entryVals[j] = entryToValue(e)
			}
			out = append(out, resp.NewArray([]resp.Value{resp.NewBulk(key), resp.NewArray(entryVals)}))
		}
		if out == nil {
			return resp.Value{}, false
		}
		return resp.NewArray(out), true
	}

	if result, found := scan(); found {
		return result
	}

	if blockMs < 0 {
		return resp.NewNull()
	}

	wait := maxBlockWait
	if blockMs > 0 {
		wait = time.Duration(blockMs) * time.Millisecond
	}
	deadline := time.Now().Add(wait)

	timer := time.AfterFunc(wait, func() {
		ctx.Store.Mu.Lock()
		ctx.Store.Cond.Broadcast()
		ctx.Store.Mu.Unlock()
	})
	defer timer.Stop()

	for {
		ctx.Store.Cond.Wait() // releases Store.Mu while waiting, reacquires on wake
		if result, found := scan(); found {
			return result
		}
		if time.Now().After(deadline) {
			return resp.NewNull()
		}
	}
}
