package jsonutil

import (
	"fmt"
	"strconv"
)

// parser builds a tree from lexer tokens by recursive descent with one
// token of lookahead. Every call of parse owns its own parser.
type parser struct {
	lex      lexer
	tok      token
	depth    int
	maxDepth int
}

// parse reads exactly one json value from data. maxDepth <= 0 disables
// the nesting limit. No partial tree is returned on failure.
func parse(data string, maxDepth int) (*Node, error) {
	p := &parser{lex: lexer{data: data}, maxDepth: maxDepth}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != eofToken {
		return nil, p.errorf(p.tok, "unexpected %s after top-level value", p.tok)
	}
	return n, nil
}

func (p *parser) advance() (err error) {
	p.tok, err = p.lex.next()
	return err
}

func (p *parser) errorf(t token, format string, args ...interface{}) *ParseError {
	return newParseError(p.lex.data, t.Offset, fmt.Sprintf(format, args...))
}

func (p *parser) expected(what string) *ParseError {
	if p.tok.Type == eofToken {
		return p.errorf(p.tok, "unexpected end of input, expected %s", what)
	}
	return p.errorf(p.tok, "expected %s, found %s", what, p.tok)
}

func (p *parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.errorf(p.tok, "exceeded maximum nesting depth of %d", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseValue() (*Node, error) {
	var n *Node
	switch t := p.tok; t.Type {
	case objectOToken:
		return p.parseObject()
	case arrayOToken:
		return p.parseArray()
	case stringToken:
		n = NewString(t.Value)
	case intToken:
		i, err := strconv.ParseInt(t.Value, 10, 64)
		if err == nil {
			n = NewInt(i)
			break
		}
		if u, err := strconv.ParseUint(t.Value, 10, 64); err == nil {
			n = NewUint(u)
			break
		}
		// out of integer range; keep the magnitude as a float
		f, _ := strconv.ParseFloat(t.Value, 64)
		n = NewFloat(f)
	case floatToken:
		// ParseFloat only fails with ErrRange here and then yields ±Inf or 0.
		f, _ := strconv.ParseFloat(t.Value, 64)
		n = NewFloat(f)
	case nullToken:
		n = NewNull()
	case trueToken:
		n = NewBool(true)
	case falseToken:
		n = NewBool(false)
	default:
		return nil, p.expected("value")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parseArray() (*Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.advance(); err != nil { // '['
		return nil, err
	}
	var nn []*Node
	if p.tok.Type == arrayCToken {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{jsonType: Array, value: nn}, nil
	}
	for {
		m, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		nn = append(nn, m)
		switch p.tok.Type {
		case commaToken:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case arrayCToken:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Node{jsonType: Array, value: nn}, nil
		default:
			return nil, p.expected("',' or ']'")
		}
	}
}

func (p *parser) parseObject() (*Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	if err := p.advance(); err != nil { // '{'
		return nil, err
	}
	var ob objectBuilder
	if p.tok.Type == objectCToken {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ob.node(), nil
	}
	for {
		if p.tok.Type != stringToken {
			return nil, p.expected("string key")
		}
		key := p.tok.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Type != colonToken {
			return nil, p.expected("':'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		m, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		ob.set(key, m)
		switch p.tok.Type {
		case commaToken:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case objectCToken:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return ob.node(), nil
		default:
			return nil, p.expected("',' or '}'")
		}
	}
}
