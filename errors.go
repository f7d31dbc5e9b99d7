package jsonutil

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNotArrayOrObject is returned when a path descends into a standalone
// value.
var ErrNotArrayOrObject = errors.New("not array or object")

// ErrNotFound is returned when a path names a key or index that does not
// exist.
var ErrNotFound = errors.New("no such child")

// ParseError captures information on errors when parsing.
type ParseError struct {
	Msg    string
	Offset int // byte offset into the input
	Pos    int // character offset into the input

	row, col int
}

func newParseError(data string, offset int, msg string) *ParseError {
	if offset > len(data) {
		offset = len(data)
	}
	prefix := data[:offset]
	line := prefix[strings.LastIndexByte(prefix, '\n')+1:]
	return &ParseError{
		Msg:    msg,
		Offset: offset,
		Pos:    utf8.RuneCountInString(prefix),
		row:    strings.Count(prefix, "\n"),
		col:    utf8.RuneCountInString(line),
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// Where returns the row and column where the syntax error in json occurred.
// Both are zero based.
func (e *ParseError) Where() (row, col int) {
	return e.row, e.col
}

// SerializeError is returned for values that have no JSON representation.
type SerializeError struct {
	Msg  string
	Type string
}

func (e *SerializeError) Error() string {
	if e.Type == "" {
		return "cannot serialize: " + e.Msg
	}
	return fmt.Sprintf("cannot serialize %s: %s", e.Type, e.Msg)
}
