package stream

import (
	"fmt"
	"strings"
)

// Stream is an ordered, append-only event log indexed by a radix tree
// keyed on the binary (ms, seq) entry ID.
type Stream struct {
	idx   *radixIndex
	top   ID
	empty bool
}

func New() *Stream {
	return &Stream{idx: newRadixIndex(), empty: true}
}

func (s *Stream) TopID() ID    { return s.top }
func (s *Stream) IsEmpty() bool { return s.empty }

// ResolveID turns an XADD id argument ("*", "<ms>-*", or an explicit
// "<ms>-<seq>") into a concrete ID, applying the wildcard generation
// rules and validating explicit IDs against the current top.
func (s *Stream) ResolveID(spec string) (ID, error) {
	if spec == "*" {
		return s.nextAuto(), nil
	}
	msPart, seqPart, hasDash := strings.Cut(spec, "-")
	if hasDash && seqPart == "*" {
		ms, err := parseMs(msPart)
		if err != nil {
			return ID{}, err
		}
		return s.nextForMs(ms)
	}
	id, err := ParseExplicitID(spec)
	if err != nil {
		return ID{}, err
	}
	if err := s.validateExplicit(id); err != nil {
		return ID{}, err
	}
	return id, nil
}

func parseMs(s string) (uint64, error) {
	id, err := ParseExplicitID(s)
	if err != nil {
		return 0, err
	}
	return id.Ms, nil
}

// nextAuto implements the "*" wildcard: (now_ms, 0) if now_ms > top.ms,
// else (top.ms, top.seq+1). Caller supplies the current time via NowMs so
// this stays deterministic and testable.
func (s *Stream) nextAuto() ID {
	now := NowMs()
	if s.empty || now > s.top.Ms {
		return ID{Ms: now, Seq: 0}
	}
	return ID{Ms: s.top.Ms, Seq: s.top.Seq + 1}
}

func (s *Stream) nextForMs(ms uint64) (ID, error) {
	if s.empty || ms > s.top.Ms {
		return ID{Ms: ms, Seq: 0}, nil
	}
	if ms == s.top.Ms {
		return ID{Ms: ms, Seq: s.top.Seq + 1}, nil
	}
	return ID{}, fmt.Errorf("invalid stream ID: %d-* is behind top ID %s", ms, s.top)
}

// validateExplicit enforces: reject 0-0 always; reject id <= top, except
// the documented first-entry exception where an empty stream accepts the
// literal ID 0-1.
func (s *Stream) validateExplicit(id ID) error {
	if id == minID {
		return fmt.Errorf("invalid stream ID: 0-0 is not allowed")
	}
	if s.empty {
		// Any non-zero ID is admissible as the first entry, including the
		// literal 0-1 exception noted in the invariants.
		return nil
	}
	if id.LessEq(s.top) {
		return fmt.Errorf("invalid stream ID: %s is not greater than top ID %s", id, s.top)
	}
	return nil
}

// Add stores fields under id, which must already be resolved/validated
// via ResolveID, and advances the top ID.
func (s *Stream) Add(id ID, fields []Field) {
	s.idx.insert(Entry{ID: id, Fields: fields})
	s.top = id
	s.empty = false
}

// Range returns every entry with lo <= ID <= hi, in ID order. When
// exclusiveStart is set, lo is nudged to the smallest ID strictly
// greater than lo before walking (used by XREAD's "entries strictly
// after idi" semantics).
func (s *Stream) Range(lo, hi ID, exclusiveStart bool) []Entry {
	if exclusiveStart {
		if lo.Seq == ^uint64(0) {
			lo = ID{Ms: lo.Ms + 1, Seq: 0}
		} else {
			lo = ID{Ms: lo.Ms, Seq: lo.Seq + 1}
		}
	}
	return s.idx.walkRange(lo, hi, nil)
}
