package stream

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a stream entry identifier: a (ms, seq) pair, strictly increasing
// in lexicographic order across a stream.
type ID struct {
	Ms  uint64
	Seq uint64
}

func (id ID) String() string { return fmt.Sprintf("%d-%d", id.Ms, id.Seq) }

// Less reports whether id sorts before o in (ms, seq) order.
func (id ID) Less(o ID) bool {
	if id.Ms != o.Ms {
		return id.Ms < o.Ms
	}
	return id.Seq < o.Seq
}

func (id ID) LessEq(o ID) bool { return id.Less(o) || id == o }

// bytes renders id as a 16-byte big-endian key, preserving numeric order
// as byte-lexicographic order: the representation the radix index keys on.
func (id ID) bytes() [16]byte {
	var b [16]byte
	putU64(b[0:8], id.Ms)
	putU64(b[8:16], id.Seq)
	return b
}

func putU64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

var (
	minID = ID{Ms: 0, Seq: 0}
	maxID = ID{Ms: ^uint64(0), Seq: ^uint64(0)}
)

// ParseExplicitID parses a literal "<ms>-<seq>" or bare "<ms>" form, the
// latter defaulting seq to 0. It does not interpret wildcards.
func ParseExplicitID(s string) (ID, error) {
	ms, seqStr, hasSeq := strings.Cut(s, "-")
	msv, err := strconv.ParseUint(ms, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("invalid stream ID %q", s)
	}
	if !hasSeq {
		return ID{Ms: msv, Seq: 0}, nil
	}
	seqv, err := strconv.ParseUint(seqStr, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("invalid stream ID %q", s)
	}
	return ID{Ms: msv, Seq: seqv}, nil
}

// ParseRangeStart interprets an XRANGE start endpoint: "-" means the open
// lower bound, a bare ms expands to (ms, 0).
func ParseRangeStart(s string) (ID, error) {
	if s == "-" {
		return minID, nil
	}
	return parseRangeEndpoint(s, 0)
}

// ParseRangeEnd interprets an XRANGE end endpoint: "+" means the open
// upper bound, a bare ms expands to (ms, 2^64-1).
func ParseRangeEnd(s string) (ID, error) {
	if s == "+" {
		return maxID, nil
	}
	return parseRangeEndpoint(s, ^uint64(0))
}

func parseRangeEndpoint(s string, defaultSeq uint64) (ID, error) {
	ms, seqStr, hasSeq := strings.Cut(s, "-")
	msv, err := strconv.ParseUint(ms, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("invalid stream ID %q", s)
	}
	if !hasSeq {
		return ID{Ms: msv, Seq: defaultSeq}, nil
	}
	seqv, err := strconv.ParseUint(seqStr, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("invalid stream ID %q", s)
	}
	return ID{Ms: msv, Seq: seqv}, nil
}
