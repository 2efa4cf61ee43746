// Package resp implements the wire codec: a streaming, recursive parser and
// a total serializer over the RESP2+RESP3 subset literedis speaks.
package resp

import "fmt"

// Kind tags the variant a Value holds. Values are a flat tagged struct
// rather than separate types per variant, mirroring how bulk/array/error
// frames were represented upstream — one struct, type-specific fields.
type Kind int

const (
	SimpleString Kind = iota
	Error
	Integer
	Null
	Boolean
	Bulk
	BulkError
	Array
	Map
	Set
)

// Value is a single decoded RESP frame. Only the fields relevant to Kind
// are meaningful; the rest are zero.
type Value struct {
	Kind  Kind
	Str   string  // SimpleString, Error, Bulk, BulkError payload
	Int   int64   // Integer
	Bool  bool    // Boolean
	Items []Value // Array, Set elements; Map as flattened [k0,v0,k1,v1,...]
}

func NewSimpleString(s string) Value { return Value{Kind: SimpleString, Str: s} }
func NewError(msg string) Value      { return Value{Kind: Error, Str: msg} }
func NewBulkError(msg string) Value  { return Value{Kind: BulkError, Str: msg} }
func NewInteger(n int64) Value       { return Value{Kind: Integer, Int: n} }
func NewNull() Value                 { return Value{Kind: Null} }
func NewBool(b bool) Value           { return Value{Kind: Boolean, Bool: b} }
func NewBulk(s string) Value         { return Value{Kind: Bulk, Str: s} }
func NewArray(items []Value) Value   { return Value{Kind: Array, Items: items} }
func NewSet(items []Value) Value     { return Value{Kind: Set, Items: items} }

// NewMap builds a Map frame from an ordered slice of key/value pairs,
// flattened as [k0,v0,k1,v1,...] to match how HGETALL-style flat replies
// are already represented as arrays.
func NewMap(pairs []Value) Value {
	if len(pairs)%2 != 0 {
		panic("resp: NewMap requires an even number of items")
	}
	return Value{Kind: Map, Items: pairs}
}

// StrArray is a convenience constructor for the common "array of bulk
// strings" reply shape (KEYS, SMEMBERS, HGETALL, LRANGE, ...).
func StrArray(ss []string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = NewBulk(s)
	}
	return NewArray(items)
}

// Equal reports deep equality between two Values, used by codec round-trip
// tests. Null Arrays/Maps/Sets (Items == nil) are distinguished from empty
// ones (Items != nil but len 0), matching the "0 elements is empty, not
// null" edge case in the parse/serialize contract.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case SimpleString, Error, BulkError, Bulk:
		return v.Str == o.Str
	case Integer:
		return v.Int == o.Int
	case Boolean:
		return v.Bool == o.Bool
	case Null:
		return true
	case Array, Set, Map:
		if (v.Items == nil) != (o.Items == nil) {
			return false
		}
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case SimpleString:
		return v.Str
	case Error, BulkError:
		return fmt.Sprintf("ERR %s", v.Str)
	case Integer:
		return fmt.Sprintf("%d", v.Int)
	case Null:
		return "<nil>"
	case Boolean:
		return fmt.Sprintf("%t", v.Bool)
	case Bulk:
		return v.Str
	default:
		return fmt.Sprintf("%v", v.Items)
	}
}

// AsBulkStrings extracts a command frame's arguments as plain strings. The
// caller has already established v is an Array of Bulk elements (the only
// shape a client command frame may take).
func (v Value) AsBulkStrings() []string {
	out := make([]string, len(v.Items))
	for i, it := range v.Items {
		out[i] = it.Str
	}
	return out
}
