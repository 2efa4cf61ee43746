package store

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// WrongTypeError is returned whenever a command's type precondition is
// violated by the key's current variant.
type WrongTypeError struct {
	Key  string
	Want Type
	Have Type
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("WRONGTYPE Operation against a key holding the wrong kind of value")
}

// Store owns the entire keyspace: values, expirations, and (transitively,
// via Item.Stream) the stream index. A single coarse mutex guards all of
// it, acquired for the duration of each command, per the concurrency
// model: commands are short, so contention is acceptable and this gives
// serializable semantics with no extra bookkeeping.
type Store struct {
	Mu   sync.Mutex
	Cond *sync.Cond // bound to Mu; Broadcast on every stream write so blocked XREAD callers wake

	data    map[string]*Item
	expires map[string]time.Time

	expiredCount int64
}

func New() *Store {
	s := &Store{
		data:    make(map[string]*Item),
		expires: make(map[string]time.Time),
	}
	s.Cond = sync.NewCond(&s.Mu)
	return s
}

// expireIfNeeded implements lazy expiration: if key has a deadline that
// has passed, the value and the deadline are both removed and the key is
// reported absent to the caller. Callers must hold Mu.
func (s *Store) expireIfNeeded(key string) {
	deadline, ok := s.expires[key]
	if !ok {
		return
	}
	if time.Now().After(deadline) {
		delete(s.data, key)
		delete(s.expires, key)
		s.expiredCount++
	}
}

// ExpiredCount returns the number of keys lazily expired so far. Caller
// must hold Mu.
func (s *Store) ExpiredCount() int64 { return s.expiredCount }

// Get returns the item at key, or (nil, false) if absent or expired.
// Caller must hold Mu.
func (s *Store) Get(key string) (*Item, bool) {
	s.expireIfNeeded(key)
	it, ok := s.data[key]
	return it, ok
}

// GetTyped returns the item at key and checks its Type against want,
// returning a WrongTypeError without mutation if it differs. A missing
// key returns (nil, false, nil) — callers handle absence per-command.
func (s *Store) GetTyped(key string, want Type) (*Item, bool, error) {
	it, ok := s.Get(key)
	if !ok {
		return nil, false, nil
	}
	if it.Type != want {
		return nil, true, &WrongTypeError{Key: key, Want: want, Have: it.Type}
	}
	return it, true, nil
}

// GetOrCreate returns the item at key if present and of type want, or
// creates and stores a fresh zero-value item of that type otherwise. A
// present item of a different type is a WRONGTYPE error.
func (s *Store) GetOrCreate(key string, want Type) (*Item, error) {
	it, ok, err := s.GetTyped(key, want)
	if err != nil {
		return nil, err
	}
	if ok {
		return it, nil
	}
	var fresh *Item
	switch want {
	case TypeString:
		fresh = newStringItem("")
	case TypeList:
		fresh = newListItem()
	case TypeSet:
		fresh = newSetItem()
	case TypeHash:
		fresh = newHashItem()
	case TypeStream:
		fresh = newStreamItem()
	}
	s.data[key] = fresh
	return fresh, nil
}

// SetString stores key as a String item outright, replacing whatever
// variant was there before. If clearExpiry is true any existing
// expiration is dropped (a plain SET with no TTL clause creates a value
// with no expiry); otherwise an existing expiry is left untouched.
func (s *Store) SetString(key, value string, clearExpiry bool) {
	s.data[key] = newStringItem(value)
	if clearExpiry {
		delete(s.expires, key)
	}
}

// SetExpireAt sets an absolute expiration deadline on key.
func (s *Store) SetExpireAt(key string, deadline time.Time) {
	s.expires[key] = deadline
}

// Delete removes key's value and any expiry, reporting whether it had
// been present.
func (s *Store) Delete(key string) bool {
	s.expireIfNeeded(key)
	_, existed := s.data[key]
	delete(s.data, key)
	delete(s.expires, key)
	return existed
}

// Exists reports whether key currently holds a non-expired value.
func (s *Store) Exists(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Keys returns every currently-live key, lazily expiring each as it is
// visited. Keys are returned in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys) // stable, deterministic KEYS output
	out := keys[:0]
	for _, k := range keys {
		if s.Exists(k) {
			out = append(out, k)
		}
	}
	return out
}

// TTL reports whether key is present and whether it carries an expiry,
// plus the deadline when it does.
func (s *Store) TTL(key string) (deadline time.Time, hasExpiry, exists bool) {
	if _, ok := s.Get(key); !ok {
		return time.Time{}, false, false
	}
	d, ok := s.expires[key]
	return d, ok, true
}

// ForEach visits every live key and its item, reporting the expiry
// deadline when one is set. Caller must hold Mu. Used by the RDB writer
// to snapshot the keyspace.
func (s *Store) ForEach(fn func(key string, it *Item, deadline time.Time, hasExpiry bool)) {
	for k := range s.data {
		s.expireIfNeeded(k)
		it, ok := s.data[k]
		if !ok {
			continue
		}
		d, hasExpiry := s.expires[k]
		fn(k, it, d, hasExpiry)
	}
}

// Persist clears key's expiry if any, reporting whether one was cleared.
func (s *Store) Persist(key string) bool {
	if _, ok := s.Get(key); !ok {
		return false
	}
	if _, ok := s.expires[key]; !ok {
		return false
	}
	delete(s.expires, key)
	return true
}
