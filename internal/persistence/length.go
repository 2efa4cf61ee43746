package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// Length-encoding primitives: the top two bits of a byte select one of
// four forms (00 = 6-bit length, 01 = 14-bit length, 10 = 32-bit length,
// 11 = a special integer/compressed encoding), matching the RDB length
// scheme bit for bit.
const (
	lenMask6  = 0x3F
	formMask  = 0xC0
	form6bit  = 0x00
	form14bit = 0x40
	form32bit = 0x80
	formSpec  = 0xC0

	specInt8  = 0
	specInt16 = 1
	specInt32 = 2
	specLZF   = 3
)

func writeByte(w *bufio.Writer, b byte) error { return w.WriteByte(b) }

// writeLength always chooses a plain-length encoding (never the special
// integer forms), since the writer only ever stores already-decimal
// string payloads.
func writeLength(w *bufio.Writer, n uint64) error {
	switch {
	case n < 1<<6:
		return w.WriteByte(byte(n))
	case n < 1<<14:
		if err := w.WriteByte(form14bit | byte(n>>8)); err != nil {
			return err
		}
		return w.WriteByte(byte(n))
	default:
		if err := w.WriteByte(form32bit); err != nil {
			return err
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(n))
		_, err := w.Write(buf[:])
		return err
	}
}

func writeString(w *bufio.Writer, s string) error {
	if err := writeLength(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

// readLength reads a plain length (the 00/01/10 forms). It is an error to
// call it where a special (11) encoding may appear; use readString there.
func readLength(r *bufio.Reader) (uint64, error) {
	n, special, _, err := readLengthOrEncoding(r)
	if err != nil {
		return 0, err
	}
	if special {
		return 0, fmt.Errorf("rdb: unexpected special-encoded length")
	}
	return n, nil
}

func readLengthOrEncoding(r *bufio.Reader) (n uint64, special bool, specialType byte, err error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, false, 0, fmt.Errorf("rdb: truncated length: %w", err)
	}
	switch first & formMask {
	case form6bit:
		return uint64(first & lenMask6), false, 0, nil
	case form14bit:
		second, err := r.ReadByte()
		if err != nil {
			return 0, false, 0, fmt.Errorf("rdb: truncated 14-bit length: %w", err)
		}
		return uint64(first&lenMask6)<<8 | uint64(second), false, 0, nil
	case form32bit:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, false, 0, fmt.Errorf("rdb: truncated 32-bit length: %w", err)
		}
		return uint64(binary.BigEndian.Uint32(buf[:])), false, 0, nil
	default: // formSpec
		return 0, true, first & lenMask6, nil
	}
}

// readString decodes a length-prefixed string, including the special
// integer encodings (rendered back to their decimal text form) and
// failing explicitly on the LZF-compressed form, which is out of scope.
func readString(r *bufio.Reader) (string, error) {
	n, special, specType, err := readLengthOrEncoding(r)
	if err != nil {
		return "", err
	}
	if !special {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("rdb: truncated string: %w", err)
		}
		return string(buf), nil
	}
	switch specType {
	case specInt8:
		b, err := r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("rdb: truncated int8: %w", err)
		}
		return strconv.FormatInt(int64(int8(b)), 10), nil
	case specInt16:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", fmt.Errorf("rdb: truncated int16: %w", err)
		}
		return strconv.FormatInt(int64(int16(binary.LittleEndian.Uint16(buf[:]))), 10), nil
	case specInt32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", fmt.Errorf("rdb: truncated int32: %w", err)
		}
		return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(buf[:]))), 10), nil
	case specLZF:
		return "", fmt.Errorf("rdb: not implemented: LZF-compressed string encoding")
	default:
		return "", fmt.Errorf("rdb: unknown special encoding %d", specType)
	}
}
