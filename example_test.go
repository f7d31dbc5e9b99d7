package jsonutil_test

import (
	"fmt"

	"github.com/d1ced/jsonutil"
)

func ExampleSerialize() {
	s, _ := jsonutil.Serialize(map[string]interface{}{
		"Num": 3.125,
		"Str": "Hello, World!",
		"Arr": []int{},
	}, true)
	fmt.Println(s)
	// Output:
	// {
	//   "Arr": [],
	//   "Num": 3.125,
	//   "Str": "Hello, World!"
	// }
}

func ExampleTryDeserialize() {
	ok, _, msg := jsonutil.TryDeserialize(`{"a": [1, 2,]}`)
	fmt.Println(ok, msg)
	// Output: false expected value, found ']' at position 12
}

func ExampleNode_UnmarshalJSON() {
	data := []byte(`{"a": 20, "b": [true, null]}`)
	root := jsonutil.Node{}
	err := root.UnmarshalJSON(data)
	if err != nil {
		return
	}
	// root now holds the top of the JSON tree.
	fmt.Println(root.String())
	// Output: {"a":20,"b":[true,null]}
}

func ExampleNode_Value() {
	root, _ := jsonutil.Deserialize(`[{"a": null}, true, 1.5]`)
	v, _ := root.Value()
	fmt.Println(v)
	// Output: [map[a:<nil>] true 1.5]
}

func ExampleNode_GetChild() {
	root, _ := jsonutil.Deserialize(`{"servers": [{"host": "a"}, {"host": "b"}]}`)
	n, err := root.GetChild("servers.1.host")
	if err != nil {
		return
	}
	fmt.Println(n)
	// Output: "b"
}

func ExampleUnmarshal() {
	var cfg struct {
		Name  string   `json:"name"`
		Ports []uint16 `json:"ports"`
	}
	err := jsonutil.Unmarshal([]byte(`{"name": "web", "ports": [80, 443]}`), &cfg)
	fmt.Println(cfg.Name, cfg.Ports, err)
	// Output: web [80 443] <nil>
}
