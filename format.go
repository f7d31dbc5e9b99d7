package jsonutil

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
)

// encoder appends the json text of a tree to buf. An empty indent selects
// the compact form.
type encoder struct {
	buf    []byte
	indent string
}

// format writes a valid json representation of n to w, indented by indent
// per nesting level or compact if indent is empty.
func (n *Node) format(w io.Writer, indent string) (int, error) {
	b, err := n.appendJSON(make([]byte, 0, 64), indent)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

func (n *Node) appendJSON(dst []byte, indent string) ([]byte, error) {
	e := &encoder{buf: dst, indent: indent}
	if err := e.encode(n, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (e *encoder) encode(n *Node, level int) error {
	if n == nil {
		e.buf = append(e.buf, "null"...)
		return nil
	}
	if !assertNodeType(n) {
		return &SerializeError{Msg: "invalid node", Type: n.jsonType.String()}
	}
	switch n.jsonType {
	case Null:
		e.buf = append(e.buf, "null"...)
	case Bool:
		e.buf = strconv.AppendBool(e.buf, n.value.(bool))
	case Int:
		if u, ok := n.value.(uint64); ok {
			e.buf = strconv.AppendUint(e.buf, u, 10)
			break
		}
		e.buf = strconv.AppendInt(e.buf, n.value.(int64), 10)
	case Float:
		e.buf = appendFloat(e.buf, n.value.(float64))
	case String:
		e.buf = appendQuoted(e.buf, n.value.(string))
	case Opaque:
		s, err := stringOf(n.value.(fmt.Stringer))
		if err != nil {
			return err
		}
		e.buf = appendQuoted(e.buf, s)
	case Array:
		cc := n.value.([]*Node)
		if len(cc) == 0 {
			e.buf = append(e.buf, "[]"...)
			return nil
		}
		e.buf = append(e.buf, '[')
		for i, c := range cc {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			e.newline(level + 1)
			if err := e.encode(c, level+1); err != nil {
				return err
			}
		}
		e.newline(level)
		e.buf = append(e.buf, ']')
	case Object:
		cc := n.value.([]KeyNode)
		if len(cc) == 0 {
			e.buf = append(e.buf, "{}"...)
			return nil
		}
		e.buf = append(e.buf, '{')
		for i, c := range cc {
			if i > 0 {
				e.buf = append(e.buf, ',')
			}
			e.newline(level + 1)
			e.buf = appendQuoted(e.buf, c.Key)
			e.buf = append(e.buf, ':')
			if e.indent != "" {
				e.buf = append(e.buf, ' ')
			}
			if err := e.encode(c.Node, level+1); err != nil {
				return err
			}
		}
		e.newline(level)
		e.buf = append(e.buf, '}')
	}
	return nil
}

func (e *encoder) newline(level int) {
	if e.indent == "" {
		return
	}
	e.buf = append(e.buf, '\n')
	for i := 0; i < level; i++ {
		e.buf = append(e.buf, e.indent...)
	}
}

// stringOf calls s.String and turns a panic, e.g. from a nil receiver, into
// a SerializeError.
func stringOf(s fmt.Stringer) (str string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SerializeError{Msg: fmt.Sprintf("String method panicked: %v", r), Type: fmt.Sprintf("%T", s)}
		}
	}()
	return s.String(), nil
}

// appendFloat uses the shortest decimal that parses back to f. Values that
// would read as integers get a ".0" suffix so they stay floats.
func appendFloat(b []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(b, "null"...)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		b = strconv.AppendFloat(b, f, 'e', -1, 64)
		// clean up e-09 to e-9
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
		return b
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	if bytes.IndexByte(b[start:], '.') < 0 {
		b = append(b, ".0"...)
	}
	return b
}

const hex = "0123456789abcdef"

// appendQuoted appends s as a json string literal. Only the quote, the
// backslash and control characters are escaped.
func appendQuoted(b []byte, s string) []byte {
	b = append(b, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b = append(b, s[start:i]...)
		switch c {
		case '"', '\\':
			b = append(b, '\\', c)
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
		}
		start = i + 1
	}
	b = append(b, s[start:]...)
	return append(b, '"')
}

// String formats a tree as valid JSON with no whitespace. It returns the
// empty string if n cannot be serialized.
func (n *Node) String() string {
	b, err := n.appendJSON(nil, "")
	if err != nil {
		return ""
	}
	return string(b)
}

// MarshalJSON implements the json.Marshaler interface for Node
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.appendJSON(nil, "")
}

// UnmarshalJSON implements the json.Unmarshaler interface for Node
func (n *Node) UnmarshalJSON(data []byte) error {
	m, err := parse(string(data), DefaultMaxDepth)
	if err != nil {
		return err
	}
	*n = *m
	return nil
}

// WriteJSON writes the tree held by n to w with the same representation as
// n.String() and no whitespace.
func (n *Node) WriteJSON(w io.Writer) (int, error) {
	return n.format(w, "")
}

// WriteIndent writes the tree held by n to w with the given indent
// (preferably spaces or a tab).
func (n *Node) WriteIndent(w io.Writer, indent string) (int, error) {
	return n.format(w, indent)
}
