package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrace(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		source string
		rest   string
	}{
		{name: "simple", raw: "1 2 +} tail", source: "1 2 +", rest: " tail"},
		{name: "nested braces", raw: "{a}b} tail", source: "{a}b", rest: " tail"},
		{name: "brace inside parens", raw: "(})x} r", source: "(})x", rest: " r"},
		{name: "brace inside quotes", raw: `"}"x} r`, source: `"}"x`, rest: " r"},
		{name: "single quote escapes", raw: "'}x} r", source: "'}x", rest: " r"},
		{name: "unterminated", raw: "abc", source: "ab", rest: ""},
		{name: "empty", raw: "", source: "", rest: ""},
		{name: "multibyte", raw: "¿é}ü", source: "¿é", rest: "ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, rest := Brace(tt.raw)
			assert.Equal(t, tt.source, source)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParen(t *testing.T) {
	name, args, rest := Paren("greet hello world) and more")
	assert.Equal(t, "greet", name)
	assert.Equal(t, "hello world", args)
	assert.Equal(t, " and more", rest)

	name, args, rest = Paren("solo)")
	assert.Equal(t, "solo", name)
	assert.Empty(t, args)
	assert.Empty(t, rest)

	name, args, rest = Paren("open ended")
	assert.Equal(t, "open", name)
	assert.Equal(t, "ended", args)
	assert.Empty(t, rest)
}
