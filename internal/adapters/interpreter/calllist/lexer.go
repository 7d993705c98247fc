package calllist

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokSep
	tokIdent
	tokNumber
	tokString
	tokVar
	tokBlock
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokSep:
		return "end of line"
	case tokString:
		return fmt.Sprintf("%q", t.text)
	case tokBlock:
		return "{" + t.text + "}"
	case tokVar:
		return "$" + t.text
	default:
		return t.text
	}
}

type lexer struct {
	src  []rune
	pos  int
	line int
}

func tokenize(code string) ([]token, error) {
	l := &lexer{src: []rune(code), line: 1}
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) next() (token, error) {
	for {
		r, ok := l.peek()
		if !ok {
			return token{kind: tokEOF, line: l.line}, nil
		}
		switch {
		case r == '#':
			for r, ok := l.peek(); ok && r != '\n'; r, ok = l.peek() {
				l.pos++
			}
			continue
		case r == '\n' || r == ';':
			l.pos++
			tok := token{kind: tokSep, text: string(r), line: l.line}
			if r == '\n' {
				l.line++
			}
			return tok, nil
		case unicode.IsSpace(r):
			l.pos++
			continue
		}
		break
	}

	r, _ := l.peek()
	line := l.line
	switch {
	case r == '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", line: line}, nil
	case r == ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", line: line}, nil
	case r == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", line: line}, nil
	case r == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", line: line}, nil
	case r == '=':
		l.pos++
		return token{kind: tokIdent, text: "=", line: line}, nil
	case r == '"':
		text, err := l.quoted()
		return token{kind: tokString, text: text, line: line}, err
	case r == '{':
		text, err := l.block()
		return token{kind: tokBlock, text: text, line: line}, err
	case r == '$':
		l.pos++
		if r, ok := l.peek(); ok && r == '$' {
			l.pos++
			return token{kind: tokVar, text: "$", line: line}, nil
		}
		name := l.word()
		if name == "" {
			name = "$"
		}
		return token{kind: tokVar, text: name, line: line}, nil
	case r == '-' || unicode.IsDigit(r):
		word := l.word()
		if isNumber(word) {
			return token{kind: tokNumber, text: word, line: line}, nil
		}
		return token{kind: tokIdent, text: word, line: line}, nil
	case isWordRune(r):
		return token{kind: tokIdent, text: l.word(), line: line}, nil
	default:
		return token{}, fmt.Errorf("syntax error near %q", string(r))
	}
}

func isNumber(word string) bool {
	_, err := strconv.ParseFloat(word, 64)
	return err == nil && word != "-"
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

func (l *lexer) word() string {
	start := l.pos
	for r, ok := l.peek(); ok && isWordRune(r); r, ok = l.peek() {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

func (l *lexer) quoted() (string, error) {
	l.pos++
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok {
			return "", fmt.Errorf("syntax error near %q: unterminated string", b.String())
		}
		l.pos++
		switch r {
		case '"':
			return b.String(), nil
		case '\n':
			l.line++
			b.WriteRune(r)
		case '\\':
			esc, ok := l.peek()
			if !ok {
				return "", fmt.Errorf("syntax error near %q: unterminated string", b.String())
			}
			l.pos++
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

// block returns the raw source between balanced braces. Braces inside
// strings do not count.
func (l *lexer) block() (string, error) {
	l.pos++
	start := l.pos
	depth := 1
	inString := false
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '\n':
			l.line++
		case inString && r == '\\':
			l.pos++
		case r == '"':
			inString = !inString
		case !inString && r == '{':
			depth++
		case !inString && r == '}':
			depth--
			if depth == 0 {
				body := string(l.src[start:l.pos])
				l.pos++
				return body, nil
			}
		}
		l.pos++
	}
	return "", fmt.Errorf("syntax error near %q: unterminated block", "{")
}
