// Jannis M. Hoffmann, 13. 9. 2018

/*
Package jsonutil encodes and decodes JSON.
In contrast to encoding/json jsonutil is centered around a tree model. A tree
is either parsed from text or built with the New* constructors and is never
changed afterwards, so it can be shared freely between goroutines.

Integers and floating point numbers are kept apart: 5 parses to an Int node,
5.0 and 5e0 to Float nodes, and serializing keeps the distinction.

Objects preserve the order in which keys first appeared. A key written twice
keeps its first position and takes the last value.

The package functions Serialize, Deserialize, TrySerialize, TryDeserialize and
IsValid are the whole surface most callers need. The Try variants never return
an error value; they report failure as a boolean and a message instead.

jsonutil is partly compatible with encoding/json.
Node fulfills the json.Marshaler/Unmarshaler interface and the
MarshalerTo/UnmarshalerFrom interfaces of github.com/go-json-experiment/json.
*/
package jsonutil // import "github.com/d1ced/jsonutil"
