package jsonutil

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// Codec serializes and deserializes with fixed settings. The zero value
// writes compact text and uses DefaultMaxDepth. A Codec holds no state
// between calls and may be used concurrently.
type Codec struct {
	Config
	Pretty bool
}

// Serialize returns the json text of v. v may be a *Node, a Valuer or any Go
// value FromGo accepts.
func (c Codec) Serialize(v interface{}) (string, error) {
	b, err := c.serialize(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c Codec) serialize(v interface{}) ([]byte, error) {
	n, err := fromGo(v, c.maxDepth())
	if err != nil {
		return nil, err
	}
	indent := ""
	if c.Pretty {
		indent = "  "
	}
	return n.appendJSON(nil, indent)
}

// Deserialize parses text holding exactly one json value.
func (c Codec) Deserialize(text string) (*Node, error) {
	return parse(text, c.maxDepth())
}

// Encode is Serialize returning bytes.
func (c Codec) Encode(v interface{}) ([]byte, error) {
	return c.serialize(v)
}

// Decode parses data and stores the result in the value pointed to by v.
// v may be a **Node or *Node to receive the tree itself.
func (c Codec) Decode(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Errorf("cannot decode into non-pointer %T", v)
	}
	n, err := parse(string(data), c.maxDepth())
	if err != nil {
		return err
	}
	return bind(n, rv.Elem(), false)
}

// Serialize returns the json text of v, indented by two spaces per level
// if pretty is set.
func Serialize(v interface{}, pretty bool) (string, error) {
	return Codec{Pretty: pretty}.Serialize(v)
}

// Deserialize parses text holding exactly one json value. Errors are of type
// *ParseError.
func Deserialize(text string) (*Node, error) {
	return parse(text, DefaultMaxDepth)
}

// DeserializeBytes is Deserialize for a byte slice.
func DeserializeBytes(data []byte) (*Node, error) {
	return parse(string(data), DefaultMaxDepth)
}

// TrySerialize is Serialize without an error value. On failure ok is false
// and result holds the error message.
func TrySerialize(v interface{}, pretty bool) (ok bool, result string) {
	defer func() {
		if r := recover(); r != nil {
			ok, result = false, fmt.Sprintf("serialize: %v", r)
		}
	}()
	s, err := Serialize(v, pretty)
	if err != nil {
		return false, err.Error()
	}
	return true, s
}

// TryDeserialize is Deserialize without an error value. On failure ok is
// false, n is nil and msg holds the error message.
func TryDeserialize(text string) (ok bool, n *Node, msg string) {
	defer func() {
		if r := recover(); r != nil {
			ok, n, msg = false, nil, fmt.Sprintf("deserialize: %v", r)
		}
	}()
	n, err := Deserialize(text)
	if err != nil {
		return false, nil, err.Error()
	}
	return true, n, ""
}

// IsValid reports whether text is a single valid json value.
func IsValid(text string) bool {
	ok, _, _ := TryDeserialize(text)
	return ok
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return IsValid(string(data))
}

// Marshal returns the compact json encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return Codec{}.Encode(v)
}

// Unmarshal parses data and stores the result in the value pointed to by v.
func Unmarshal(data []byte, v interface{}) error {
	return Codec{}.Decode(data, v)
}

// NewJSONReader reads all of r and parses it.
func NewJSONReader(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read json")
	}
	return DeserializeBytes(data)
}

// NewJSONString parses str.
func NewJSONString(str string) (*Node, error) {
	return Deserialize(str)
}
