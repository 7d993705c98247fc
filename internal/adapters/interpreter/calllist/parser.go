package calllist

import (
	"fmt"
	"strconv"

	"github.com/bnema/scriptbridge/internal/domain"
)

type expr interface{}

type literal struct{ value domain.Value }

// varRef reads a variable; "$" is the previous statement's value and digits
// address operands from 1.
type varRef struct{ name string }

type listExpr struct{ items []expr }

type callExpr struct {
	name string
	args []expr
	line int
}

type statement struct {
	bind string
	expr expr
	line int
}

type parser struct {
	tokens []token
	pos    int
}

func parse(code string) ([]statement, error) {
	tokens, err := tokenize(code)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	var program []statement
	for {
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			return program, nil
		case tokSep:
			p.pos++
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		program = append(program, stmt)

		if end := p.peek(); end.kind != tokSep && end.kind != tokEOF {
			return nil, fmt.Errorf("syntax error near %s", quoteToken(end))
		}
	}
}

func quoteToken(t token) string {
	if t.kind == tokString {
		return t.String()
	}
	return strconv.Quote(t.String())
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) statement() (statement, error) {
	first := p.peek()
	if first.kind == tokIdent && first.text == "let" {
		p.advance()
		name := p.advance()
		if name.kind != tokIdent || name.text == "=" {
			return statement{}, fmt.Errorf("syntax error near %s: expected a name", quoteToken(name))
		}
		if eq := p.advance(); eq.kind != tokIdent || eq.text != "=" {
			return statement{}, fmt.Errorf("syntax error near %s: expected =", quoteToken(eq))
		}
		value, err := p.expression()
		if err != nil {
			return statement{}, err
		}
		return statement{bind: name.text, expr: value, line: first.line}, nil
	}

	value, err := p.expression()
	if err != nil {
		return statement{}, err
	}
	return statement{expr: value, line: first.line}, nil
}

// expression is a call when it starts with a word, a single term otherwise.
func (p *parser) expression() (expr, error) {
	first := p.peek()
	if first.kind == tokIdent && !isKeyword(first.text) {
		return p.call(func(t token) bool { return t.kind == tokSep || t.kind == tokEOF })
	}
	return p.term()
}

func (p *parser) call(stop func(token) bool) (expr, error) {
	name := p.advance()
	call := callExpr{name: name.text, line: name.line}
	for !stop(p.peek()) {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
	}
	return call, nil
}

func (p *parser) term() (expr, error) {
	tok := p.advance()
	switch tok.kind {
	case tokNumber:
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("syntax error near %s", quoteToken(tok))
		}
		return literal{domain.Number(n)}, nil
	case tokString, tokBlock:
		return literal{domain.Text(tok.text)}, nil
	case tokVar:
		return varRef{name: tok.text}, nil
	case tokIdent:
		if v, ok := keywordValue(tok.text); ok {
			return literal{v}, nil
		}
		return literal{domain.Text(tok.text)}, nil
	case tokLBracket:
		list := listExpr{}
		for p.peek().kind != tokRBracket {
			if p.peek().kind == tokEOF {
				return nil, fmt.Errorf("syntax error near %q: unterminated list", "[")
			}
			if p.peek().kind == tokSep {
				p.advance()
				continue
			}
			item, err := p.term()
			if err != nil {
				return nil, err
			}
			list.items = append(list.items, item)
		}
		p.advance()
		return list, nil
	case tokLParen:
		if p.peek().kind != tokIdent {
			inner, err := p.term()
			if err != nil {
				return nil, err
			}
			if closing := p.advance(); closing.kind != tokRParen {
				return nil, fmt.Errorf("syntax error near %s: expected )", quoteToken(closing))
			}
			return inner, nil
		}
		call, err := p.call(func(t token) bool {
			return t.kind == tokRParen || t.kind == tokEOF || t.kind == tokSep
		})
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokRParen {
			return nil, fmt.Errorf("syntax error near %s: expected )", quoteToken(closing))
		}
		return call, nil
	default:
		return nil, fmt.Errorf("syntax error near %s", quoteToken(tok))
	}
}

func isKeyword(word string) bool {
	_, ok := keywordValue(word)
	return ok
}

func keywordValue(word string) (domain.Value, bool) {
	switch word {
	case "null":
		return domain.Null, true
	case "undefined":
		return domain.Undefined, true
	default:
		return domain.Value{}, false
	}
}
