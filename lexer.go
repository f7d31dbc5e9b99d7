package jsonutil

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lexer generates tokens from json. A lexer belongs to exactly one parse call.
type lexer struct {
	data string
	pos  int
}

func (l *lexer) errorf(offset int, format string, args ...interface{}) *ParseError {
	return newParseError(l.data, offset, fmt.Sprintf(format, args...))
}

// peek returns the byte under the cursor or 0 at the end of input.
func (l *lexer) peek() byte {
	if l.pos >= len(l.data) {
		return 0
	}
	return l.data[l.pos]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// next returns the next token. At the end of input it keeps returning an
// eofToken.
func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.data) {
		return token{Type: eofToken, Offset: l.pos}, nil
	}
	switch c := l.data[l.pos]; c {
	case '{', '}', '[', ']', ',', ':':
		l.pos++
		return newToken(c, l.pos-1), nil
	case '"':
		return l.lexString()
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.lexNumber()
	case 't':
		return l.lexLiteral("true", trueToken)
	case 'f':
		return l.lexLiteral("false", falseToken)
	case 'n':
		return l.lexLiteral("null", nullToken)
	default:
		r, _ := utf8.DecodeRuneInString(l.data[l.pos:])
		return token{}, l.errorf(l.pos, "unexpected character %q", r)
	}
}

func (l *lexer) lexLiteral(lit string, typ tokenType) (token, error) {
	if !strings.HasPrefix(l.data[l.pos:], lit) {
		return token{}, l.errorf(l.pos, "invalid literal, expected '%s'", lit)
	}
	t := token{Type: typ, Offset: l.pos}
	l.pos += len(lit)
	return t, nil
}

// lexString scans a quoted string and unescapes it. Runs without escapes
// are copied as slices of the input.
func (l *lexer) lexString() (token, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	escaped := false
	run := l.pos
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '"':
			s := l.data[run:l.pos]
			if escaped {
				b.WriteString(s)
				s = b.String()
			}
			l.pos++
			return token{Type: stringToken, Value: s, Offset: start}, nil
		case '\\':
			escaped = true
			b.WriteString(l.data[run:l.pos])
			if err := l.unescape(&b); err != nil {
				return token{}, err
			}
			run = l.pos
		default:
			l.pos++
		}
	}
	return token{}, l.errorf(start, "unterminated string")
}

// unescape decodes the escape sequence under the cursor into b and moves
// the cursor behind it.
func (l *lexer) unescape(b *strings.Builder) error {
	esc := l.pos
	l.pos++
	if l.pos >= len(l.data) {
		return l.errorf(esc, "unterminated escape sequence")
	}
	switch c := l.data[l.pos]; c {
	case '"', '\\', '/':
		b.WriteByte(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		if l.pos+5 > len(l.data) {
			return l.errorf(esc, "incomplete unicode escape")
		}
		digits := l.data[l.pos+1 : l.pos+5]
		r, ok := unhex(digits)
		if !ok {
			return l.errorf(esc, "invalid unicode escape \\u%s", digits)
		}
		// A lone surrogate half has no UTF-8 form and is written as U+FFFD.
		b.WriteRune(r)
		l.pos += 4
	default:
		r, _ := utf8.DecodeRuneInString(l.data[l.pos:])
		return l.errorf(esc, "invalid escape character '\\%c'", r)
	}
	l.pos++
	return nil
}

func unhex(s string) (rune, bool) {
	var r rune
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			c -= '0'
		case 'a' <= c && c <= 'f':
			c = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *lexer) skipDigits() {
	for isDigit(l.peek()) {
		l.pos++
	}
}

// lexNumber scans
//     ['-'] ('0' | [1-9][0-9]*) ['.' [0-9]+] [('e'|'E') ['+'|'-'] [0-9]+]
// Errors point at the first character of the number.
func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	invalid := func() (token, error) {
		end := l.pos
		for end < len(l.data) && strings.IndexByte("+-.eE0123456789", l.data[end]) >= 0 {
			end++
		}
		return token{}, l.errorf(start, "invalid number %q", l.data[start:end])
	}
	if l.peek() == '-' {
		l.pos++
	}
	switch c := l.peek(); {
	case !isDigit(c):
		return invalid()
	case c == '0':
		l.pos++
	default:
		l.skipDigits()
	}
	typ := intToken
	if l.peek() == '.' {
		typ = floatToken
		l.pos++
		if !isDigit(l.peek()) {
			return invalid()
		}
		l.skipDigits()
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		typ = floatToken
		l.pos++
		if c := l.peek(); c == '+' || c == '-' {
			l.pos++
		}
		if !isDigit(l.peek()) {
			return invalid()
		}
		l.skipDigits()
	}
	return token{Type: typ, Value: l.data[start:l.pos], Offset: start}, nil
}
