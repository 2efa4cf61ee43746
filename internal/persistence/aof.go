// Package persistence implements the two durability mechanisms: the
// append-only command log (AOF) and the RDB binary snapshot reader/writer.
package persistence

import (
	"bufio"
	"io"
	"os"

	"github.com/akashmaji/literedis/internal/dispatch"
	"github.com/akashmaji/literedis/internal/logging"
	"github.com/akashmaji/literedis/internal/resp"
)

// AOF appends the raw serialized RESP frame for each mutating command,
// with no escaping. This is the "stricter implementation" that stores
// byte-for-byte frames and relies on the RESP parser itself to delimit
// one record from the next during replay, rather than the lossy
// CRLF-escaped-line format a naive reading of the wire log might suggest.
type AOF struct {
	f *os.File
	w *resp.Writer
}

func OpenAOF(path string) (*AOF, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	return &AOF{f: f, w: resp.NewWriter(f)}, nil
}

// Append writes one command frame and flushes immediately: each mutation
// writes to the AOF before the dispatcher reports success to the client.
func (a *AOF) Append(frame resp.Value) error {
	if err := a.w.Write(frame); err != nil {
		return err
	}
	return a.w.Flush()
}

func (a *AOF) Close() error { return a.f.Close() }

// Replay re-executes every command frame stored in path through ctx's
// dispatcher, in order. A parse error partway through the file is logged
// and replay stops there (frame boundaries come from the parser itself,
// so a corrupted record leaves no reliable way to locate the next one);
// everything replayed before that point is kept, matching "best-effort
// recovery" from a partially-written log.
func Replay(path string, ctx *dispatch.Context) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	count := 0
	for {
		frame, err := resp.ReadCommand(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			logging.Default.Warn("aof: stopping replay after malformed record #%d: %v", count+1, err)
			break
		}
		dispatch.Dispatch(ctx, frame)
		count++
	}
	ctx.Counters.AOFRecordsReplayed = int64(count)
	return count, nil
}
