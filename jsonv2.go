package jsonutil

import (
	"github.com/go-json-experiment/json/jsontext"
)

// MarshalJSONTo implements the json.MarshalerTo interface of
// github.com/go-json-experiment/json.
func (n *Node) MarshalJSONTo(enc *jsontext.Encoder) error {
	b, err := n.appendJSON(nil, "")
	if err != nil {
		return err
	}
	return enc.WriteValue(jsontext.Value(b))
}

// UnmarshalJSONFrom implements the json.UnmarshalerFrom interface of
// github.com/go-json-experiment/json.
//
// The value is read through dec first, so dec's options apply before the
// tree is built. jsontext rejects duplicate object names by default; pass
// jsontext.AllowDuplicateNames(true) to json.Unmarshal to get the usual
// last-write-wins objects.
func (n *Node) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	val, err := dec.ReadValue()
	if err != nil {
		return err
	}
	m, err := parse(string(val), DefaultMaxDepth)
	if err != nil {
		return err
	}
	*n = *m
	return nil
}
