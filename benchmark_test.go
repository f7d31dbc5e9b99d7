package jsonutil

import (
	"io"
	"testing"
)

const benchInput = `{"a":{"ab":[]},"b":[0,true,{}],"c":null,"d":0,"e":"",
	"n":{"bool":true,"obj":{"v":null},"values":[{"a":5,"b":"hi","c":5.8,
	"d":null,"e":true},{"a":[5,6,7,8],"b":"hi2","c":5.9,"d":{
	"f":"Hello there!\né"},"e":false}]}}`

func BenchmarkLexer(b *testing.B) {
	input := `{{{{{[[[[]null,]]false]}:::::::::::::}},,,,,,,,,,}}true
	-54235.54324e22452566666"fasdhlsahglsahglahgahslöggfhal        "
	{{]]                                "fasfaf"::true:,,""{}[125421525426]
	0.53123[]{{{}null,,,,,,,,"hibas"::5::false[[{{}}       `
	for i := 0; i < b.N; i++ {
		l := &lexer{data: input}
		for {
			tk, err := l.next()
			if err != nil {
				b.Fatal(err)
			}
			if tk.Type == eofToken {
				break
			}
		}
	}
}

func BenchmarkParser(b *testing.B) {
	b.SetBytes(int64(len(benchInput)))
	for i := 0; i < b.N; i++ {
		if _, err := parse(benchInput, DefaultMaxDepth); err != nil {
			b.Fatalf("non-valid input: %v", err)
		}
	}
}

func BenchmarkFormat(b *testing.B) {
	n, err := parse(benchInput, DefaultMaxDepth)
	if err != nil {
		b.Fatalf("benchmark setup failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err = n.format(io.Discard, "  ")
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFromGo(b *testing.B) {
	v := map[string]interface{}{
		"name":   "bench",
		"values": []float64{1.5, 2, 3e30},
		"nested": struct {
			A int    `json:"a"`
			B string `json:"b,omitempty"`
		}{A: 1},
	}
	for i := 0; i < b.N; i++ {
		if _, err := FromGo(v); err != nil {
			b.Fatal(err)
		}
	}
}
