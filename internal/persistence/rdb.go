package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/akashmaji/literedis/internal/store"
)

const (
	opAux          = 0xFA
	opResizeDB     = 0xFB
	opExpireMs     = 0xFC
	opExpire       = 0xFD
	opSelectDB     = 0xFE
	opEOF          = 0xFF
	typeStringByte = 0x00
)

// RDB reads and writes the binary snapshot format: "REDIS" magic, a
// 4-digit ASCII version, an opcode/record stream, 0xFF EOF, and an
// optional trailing checksum. Only the String value type is written and
// read back — the format's other value-type bytes are a deliberate scope
// narrowing, matched on load by failing with a not-implemented error
// rather than silently truncating data.
type RDB struct {
	path  string
	store *store.Store
}

func NewRDB(path string, s *store.Store) *RDB {
	return &RDB{path: path, store: s}
}

// Save snapshots every String-typed, non-expired key to path. Caller
// holds the store's lock (SAVE/BGSAVE dispatch under it), so this walks
// Store.ForEach synchronously.
func (r *RDB) Save() error {
	tmp := r.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	if _, err := w.WriteString("REDIS0001"); err != nil {
		f.Close()
		return err
	}

	type rec struct {
		key      string
		val      string
		deadline time.Time
		hasExp   bool
	}
	var recs []rec
	r.store.ForEach(func(key string, it *store.Item, deadline time.Time, hasExpiry bool) {
		if it.Type != store.TypeString {
			return // non-string variants are out of scope for RDB persistence
		}
		recs = append(recs, rec{key: key, val: it.Str, deadline: deadline, hasExp: hasExpiry})
	})

	if err := writeByte(w, opSelectDB); err != nil {
		return closeAndReturn(f, err)
	}
	if err := writeLength(w, 0); err != nil {
		return closeAndReturn(f, err)
	}

	expiring := 0
	for _, rc := range recs {
		if rc.hasExp {
			expiring++
		}
	}
	if err := writeByte(w, opResizeDB); err != nil {
		return closeAndReturn(f, err)
	}
	if err := writeLength(w, uint64(len(recs))); err != nil {
		return closeAndReturn(f, err)
	}
	if err := writeLength(w, uint64(expiring)); err != nil {
		return closeAndReturn(f, err)
	}

	for _, rc := range recs {
		if rc.hasExp {
			if err := writeByte(w, opExpireMs); err != nil {
				return closeAndReturn(f, err)
			}
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], uint64(rc.deadline.UnixMilli()))
			if _, err := w.Write(buf[:]); err != nil {
				return closeAndReturn(f, err)
			}
		}
		if err := writeByte(w, typeStringByte); err != nil {
			return closeAndReturn(f, err)
		}
		if err := writeString(w, rc.key); err != nil {
			return closeAndReturn(f, err)
		}
		if err := writeString(w, rc.val); err != nil {
			return closeAndReturn(f, err)
		}
	}

	if err := writeByte(w, opEOF); err != nil {
		return closeAndReturn(f, err)
	}
	var checksum [8]byte // CRC64 checksum field left zeroed: nothing reads it back
	if _, err := w.Write(checksum[:]); err != nil {
		return closeAndReturn(f, err)
	}
	if err := w.Flush(); err != nil {
		return closeAndReturn(f, err)
	}
	if err := f.Sync(); err != nil {
		return closeAndReturn(f, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func closeAndReturn(f *os.File, err error) error {
	f.Close()
	return err
}

// Load reads the snapshot at path, if present, applying every record
// directly to the store. A missing file is not an error.
func (r *RDB) Load() error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var header [9]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return fmt.Errorf("rdb: truncated header: %w", err)
	}
	if string(header[:5]) != "REDIS" {
		return fmt.Errorf("rdb: bad magic %q", header[:5])
	}
	if _, err := strconv.Atoi(string(header[5:9])); err != nil {
		return fmt.Errorf("rdb: bad version %q", header[5:9])
	}

	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	var pendingDeadline time.Time
	hasPendingDeadline := false

	for {
		op, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("rdb: truncated before EOF opcode: %w", err)
		}
		switch op {
		case opEOF:
			var checksum [8]byte
			io.ReadFull(br, checksum[:]) // best-effort read; value is never written meaningfully, so not verified
			return nil
		case opAux:
			if _, err := readString(br); err != nil {
				return err
			}
			if _, err := readString(br); err != nil {
				return err
			}
		case opResizeDB:
			if _, err := readLength(br); err != nil {
				return err
			}
			if _, err := readLength(br); err != nil {
				return err
			}
		case opSelectDB:
			if _, err := readLength(br); err != nil {
				return err
			}
		case opExpireMs:
			var buf [8]byte
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return fmt.Errorf("rdb: truncated EXPIRETIME_MS: %w", err)
			}
			ms := binary.LittleEndian.Uint64(buf[:])
			pendingDeadline = time.UnixMilli(int64(ms))
			hasPendingDeadline = true
		case opExpire:
			var buf [4]byte
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return fmt.Errorf("rdb: truncated EXPIRETIME: %w", err)
			}
			secs := binary.LittleEndian.Uint32(buf[:])
			pendingDeadline = time.Unix(int64(secs), 0)
			hasPendingDeadline = true
		default:
			if op != typeStringByte {
				return fmt.Errorf("rdb: not implemented: value type %d", op)
			}
			key, err := readString(br)
			if err != nil {
				return err
			}
			val, err := readString(br)
			if err != nil {
				return err
			}
			r.store.SetString(key, val, true)
			if hasPendingDeadline {
				r.store.SetExpireAt(key, pendingDeadline)
				hasPendingDeadline = false
			}
		}
	}
}
