// Package store owns the keyspace: a mapping from key to a tagged Value
// (the "Item" below) plus a parallel expiry table, guarded by a single
// coarse lock per the concurrency model.
package store

import "github.com/akashmaji/literedis/internal/stream"

// Type tags which variant an Item currently holds. A key has at most one
// variant at a time; this replaces a runtime-typed dict-of-anything with
// a proper sum type dispatched on Type.
type Type int

const (
	TypeString Type = iota
	TypeList
	TypeSet
	TypeHash
	TypeStream
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeHash:
		return "hash"
	case TypeStream:
		return "stream"
	default:
		return "none"
	}
}

// Item is a tagged union over the five value variants. Only the field
// matching Type is meaningful.
type Item struct {
	Type Type

	Str  string
	List []string
	Set  map[string]struct{}
	Hash map[string]string

	Stream *stream.Stream
}

func newStringItem(s string) *Item { return &Item{Type: TypeString, Str: s} }
func newListItem() *Item           { return &Item{Type: TypeList} }
func newSetItem() *Item            { return &Item{Type: TypeSet, Set: make(map[string]struct{})} }
func newHashItem() *Item           { return &Item{Type: TypeHash, Hash: make(map[string]string)} }
func newStreamItem() *Item         { return &Item{Type: TypeStream, Stream: stream.New()} }
