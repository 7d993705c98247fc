package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTruthiness(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{name: "undefined", value: Undefined, want: false},
		{name: "null", value: Null, want: false},
		{name: "zero", value: Number(0), want: false},
		{name: "nan", value: Number(math.NaN()), want: false},
		{name: "non-zero", value: Number(-2), want: true},
		{name: "empty text", value: Text(""), want: false},
		{name: "text", value: Text("0"), want: true},
		{name: "empty list", value: List(), want: true},
		{name: "empty record", value: Record(nil), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestUndefinedIsDistinctFromNullAndNaN(t *testing.T) {
	assert.True(t, Undefined.IsUndefined())
	assert.False(t, Null.IsUndefined())
	assert.False(t, Number(math.NaN()).IsUndefined())
	assert.True(t, Number(math.NaN()).IsNaN())
	assert.NotEqual(t, Undefined, Null)
	assert.Equal(t, Undefined, Value{})
}

func TestValueOfConvertsGoData(t *testing.T) {
	got := ValueOf(map[string]any{
		"n":     3,
		"s":     "x",
		"list":  []any{true, nil, []byte{1, 2}},
		"inner": map[string]string{"a": "b"},
	})

	fields, ok := got.Record()
	require.True(t, ok)
	assert.Equal(t, Number(3), fields["n"])
	assert.Equal(t, Text("x"), fields["s"])
	assert.Equal(t, List(Number(1), Null, List(Number(1), Number(2))), fields["list"])
	assert.Equal(t, Record(map[string]Value{"a": Text("b")}), fields["inner"])
}

func TestValueStringFormatting(t *testing.T) {
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "42", Number(42).String())
	assert.Equal(t, "NaN", Number(math.NaN()).String())
	assert.Equal(t, "[a, 1, null]", List(Text("a"), Number(1), Null).String())
	assert.Equal(t, "{a: 1, b: x}", Record(map[string]Value{"b": Text("x"), "a": Number(1)}).String())
}

func TestValueBytesRoundTrip(t *testing.T) {
	data, ok := Bytes([]byte("hi")).Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("hi"), data)

	_, ok = List(Text("x")).Bytes()
	assert.False(t, ok)
}

func TestValueIntCoercion(t *testing.T) {
	n, ok := Text(" 12 ").Int()
	require.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = Number(math.Inf(1)).Int()
	assert.False(t, ok)

	_, ok = Null.Int()
	assert.False(t, ok)
}

func TestValueStrings(t *testing.T) {
	assert.Nil(t, Undefined.Strings())
	assert.Equal(t, []string{"42"}, Number(42).Strings())
	assert.Equal(t, []string{"a", "7"}, List(Text("a"), Number(7)).Strings())
}
