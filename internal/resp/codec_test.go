package resp

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	wire := Serialize(v)
	got, err := Read(bufio.NewReader(strings.NewReader(wire)))
	require.NoError(t, err)
	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []Value{
		NewSimpleString("OK"),
		NewError("ERR boom"),
		NewInteger(42),
		NewInteger(-7),
		NewNull(),
		NewBool(true),
		NewBool(false),
		NewBulk(""),
		NewBulk("hello world"),
		NewBulkError("ERR bad"),
	}
	for _, c := range cases {
		got := roundTrip(t, c)
		assert.True(t, c.Equal(got), "expected %v got %v", c, got)
	}
}

func TestRoundTripArray(t *testing.T) {
	v := NewArray([]Value{
		NewInteger(-1),
		NewInteger(2),
		NewArray([]Value{NewInteger(999)}),
	})
	got := roundTrip(t, v)
	assert.True(t, v.Equal(got))
}

func TestRoundTripEmptyVsNullArray(t *testing.T) {
	empty := NewArray([]Value{})
	got := roundTrip(t, empty)
	assert.Equal(t, Array, got.Kind)
	assert.NotNil(t, got.Items)
	assert.Len(t, got.Items, 0)
}

func TestRoundTripSetAndMap(t *testing.T) {
	set := NewSet([]Value{NewBulk("a"), NewBulk("b")})
	assert.True(t, set.Equal(roundTrip(t, set)))

	m := NewMap([]Value{NewBulk("f1"), NewBulk("v1"), NewBulk("f2"), NewBulk("v2")})
	assert.True(t, m.Equal(roundTrip(t, m)))
}

func TestReadCommandRejectsNonArray(t *testing.T) {
	_, err := ReadCommand(bufio.NewReader(strings.NewReader("+OK\r\n")))
	assert.Error(t, err)
}

func TestReadTruncatedBulkIsParseError(t *testing.T) {
	_, err := Read(bufio.NewReader(strings.NewReader("$5\r\nhi\r\n")))
	assert.Error(t, err)
}

func TestReadUnknownPrefix(t *testing.T) {
	_, err := Read(bufio.NewReader(strings.NewReader("@oops\r\n")))
	assert.Error(t, err)
}
