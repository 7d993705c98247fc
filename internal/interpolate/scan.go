// Package interpolate finds the end of inline script and command segments
// embedded in message text.
package interpolate

import "strings"

// Brace scans raw, the text following an opening "$¿{", up to its matching
// "}". Braces inside parentheses or double quotes do not nest, and a single
// quote escapes the next character. The last character is never inspected;
// an unterminated segment runs to it.
func Brace(raw string) (source, rest string) {
	runes := []rune(raw)

	level, parenLevel := 0, 0
	dblQuote := false
	i := 0
scan:
	for ; i < len(runes)-1; i++ {
		switch c := runes[i]; {
		case parenLevel == 0 && !dblQuote && c == '{':
			level++
		case parenLevel == 0 && !dblQuote && c == '}':
			if level == 0 {
				break scan
			}
			level--
		case !dblQuote && c == '(':
			parenLevel++
		case parenLevel > 0 && !dblQuote && c == ')':
			parenLevel--
		case parenLevel == 0 && c == '"':
			dblQuote = !dblQuote
		case parenLevel == 0 && c == '\'':
			i++
		}
	}

	source = string(runes[:i])
	if i+1 <= len(runes) {
		rest = string(runes[i+1:])
	}
	return source, rest
}

// Paren scans raw, the text following an opening "$¿(", up to the first ")"
// and splits it into a command name and its argument text. Without a closing
// parenthesis the whole input is the segment.
func Paren(raw string) (name, args, rest string) {
	source := raw
	if i := strings.Index(raw, ")"); i >= 0 {
		source, rest = raw[:i], raw[i+1:]
	}

	name, args, _ = strings.Cut(source, " ")
	return name, args, rest
}
