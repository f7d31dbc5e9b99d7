package jsonutil

import (
	"math"
	"strings"
	"testing"
)

func TestParser(t *testing.T) {
	tests := []struct {
		have string
		want *Node
	}{
		{`{"a": null}`, NewObject(
			KeyNode{"a", NewNull()},
		)},
		{`[false, -31.2, 5, "ab\"cd"]`, NewArray(
			NewBool(false),
			NewFloat(-31.2),
			NewInt(5),
			NewString(`ab"cd`),
		)},
		{`{"a": 20, "b": [true, null]}`, NewObject(
			KeyNode{"a", NewInt(20)},
			KeyNode{"b", NewArray(NewBool(true), NewNull())},
		)},
		{`[0]`, NewArray(NewInt(0))},
		{`{"a":{},"b":[],"c":null,"d":0,"e":""}`, NewObject(
			KeyNode{"a", NewObject()},
			KeyNode{"b", NewArray()},
			KeyNode{"c", NewNull()},
			KeyNode{"d", NewInt(0)},
			KeyNode{"e", NewString("")},
		)},
		{`{"a":1,"b":2,"a":3}`, NewObject(
			KeyNode{"a", NewInt(3)},
			KeyNode{"b", NewInt(2)},
		)},
		{"-0", NewInt(0)},
		{"1.0", NewFloat(1)},
		{"1e2", NewFloat(100)},
		{"9223372036854775807", NewInt(math.MaxInt64)},
		{"-9223372036854775808", NewInt(math.MinInt64)},
		{"9223372036854775808", NewUint(9223372036854775808)},
		{"18446744073709551615", NewUint(math.MaxUint64)},
		{"18446744073709551616", NewFloat(18446744073709551616)},
		{"-9223372036854775809", NewFloat(-9223372036854775809)},
		{"1e400", NewFloat(math.Inf(1))},
		{" \n\t\"x\"\r\n ", NewString("x")},
		{`[[[]],{"k":[{}]}]`, NewArray(
			NewArray(NewArray()),
			NewObject(KeyNode{"k", NewArray(NewObject())}),
		)},
	}
	for i, test := range tests {
		n, err := parse(test.have, DefaultMaxDepth)
		if err != nil || !EqNode(n, test.want) {
			t.Errorf("%d: for %v, got %v, want %v, with err: %v", i, test.have, n, test.want, err)
		}
	}
}

func TestParseErr(t *testing.T) {
	tests := []struct {
		have string
		msg  string
		pos  int
	}{
		{"", "unexpected end of input, expected value", 0},
		{"   ", "unexpected end of input, expected value", 3},
		{"null 5", "unexpected number 5 after top-level value", 5},
		{`{"a":}`, "expected value, found '}'", 5},
		{`{"a": null`, "unexpected end of input, expected ',' or '}'", 10},
		{`{"a" 1}`, "expected ':', found number 1", 5},
		{`{1:2}`, "expected string key, found number 1", 1},
		{`{"a":1,}`, "expected string key, found '}'", 7},
		{`[1,]`, "expected value, found ']'", 3},
		{`[1 2]`, "expected ',' or ']', found number 2", 3},
		{`[1}`, "expected ',' or ']', found '}'", 2},
		{`[`, "unexpected end of input, expected value", 1},
		{`01`, "unexpected number 1 after top-level value", 1},
		{`abcdefghij`, "unexpected character 'a'", 0},
		{`{"index":[{"inner":[null,true]}}]`, "expected ',' or ']', found '}'", 31},
		{`"héllo" x`, "unexpected character 'x'", 8},
		{`[1, 2] ]`, "unexpected ']' after top-level value", 7},
	}
	for _, test := range tests {
		n, err := parse(test.have, DefaultMaxDepth)
		if n != nil {
			t.Errorf("for %v: got partial value %v", test.have, n)
		}
		pErr, ok := err.(*ParseError)
		if !ok {
			t.Fatalf("for %v: error is not of type parse error: %T", test.have, err)
		}
		if pErr.Msg != test.msg || pErr.Pos != test.pos {
			t.Errorf("for %v: got %q at %d, want %q at %d",
				test.have, pErr.Msg, pErr.Pos, test.msg, test.pos)
		}
	}
}

func TestParseOffsetCountsBytes(t *testing.T) {
	_, err := parse(`"héllo" x`, DefaultMaxDepth)
	pErr := err.(*ParseError)
	if pErr.Offset != 9 || pErr.Pos != 8 {
		t.Errorf("got offset %d pos %d, want 9 8", pErr.Offset, pErr.Pos)
	}
}

func TestParseMaxDepth(t *testing.T) {
	tests := []struct {
		have     string
		maxDepth int
		ok       bool
	}{
		{"[[1]]", 2, true},
		{"[[[1]]]", 2, false},
		{`{"a":{"b":{}}}`, 3, true},
		{`{"a":{"b":{}}}`, 2, false},
		{`[{"a":[]}]`, 2, false},
		{"1", 1, true},
		{strings.Repeat("[", 500) + strings.Repeat("]", 500), 0, true},
		{strings.Repeat("[", 500) + strings.Repeat("]", 500), 499, false},
	}
	for _, test := range tests {
		_, err := parse(test.have, test.maxDepth)
		if (err == nil) != test.ok {
			t.Errorf("for %.20s with max depth %d: got err %v", test.have, test.maxDepth, err)
		}
	}
	_, err := parse("[[[1]]]", 2)
	if pErr := err.(*ParseError); pErr.Offset != 2 {
		t.Errorf("depth error at %d, want 2", pErr.Offset)
	}
}

func TestDuplicateKeysKeepFirstPosition(t *testing.T) {
	n, err := parse(`{"x":1,"y":2,"x":{"z":true},"w":null}`, DefaultMaxDepth)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n.String(), `{"x":{"z":true},"y":2,"w":null}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
