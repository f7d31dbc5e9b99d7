package jsonutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// JSONType is an enum for any JSON-types
type JSONType uint8

//go:generate stringer -type JSONType

// JSONTypes to compare nodes of a tree with. The zero value signals invalid.
const (
	Error JSONType = iota
	Null
	Bool
	Int
	Float
	String
	Array
	Object
	Opaque
)

// Node is one node of a JSON tree.
// Depending on its internal type it holds a different value:
//     JSONType	ValueType
//     Error	nil
//     Null	nil
//     Bool	bool
//     Int	int64, or uint64 above math.MaxInt64
//     Float	float64
//     String	string
//     Array	[]*Node
//     Object	[]KeyNode
//     Opaque	fmt.Stringer
// Nodes are never modified after construction.
type Node struct {
	jsonType JSONType
	value    interface{}
}

// KeyNode is a member of an object.
type KeyNode struct {
	Key string
	*Node
}

// Valuer is implemented by types that know their own JSON representation.
// Serialize prefers it over reflection.
type Valuer interface {
	JSONValue() *Node
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{jsonType: Null} }

// NewBool returns a boolean node.
func NewBool(b bool) *Node { return &Node{jsonType: Bool, value: b} }

// NewInt returns an integer node.
func NewInt(i int64) *Node { return &Node{jsonType: Int, value: i} }

// NewUint returns an integer node for u. Values above math.MaxInt64 keep
// their exact digits.
func NewUint(u uint64) *Node {
	if u <= math.MaxInt64 {
		return NewInt(int64(u))
	}
	return &Node{jsonType: Int, value: u}
}

// NewFloat returns a floating point node. NaN and infinities are accepted
// and serialize as null.
func NewFloat(f float64) *Node { return &Node{jsonType: Float, value: f} }

// NewString returns a string node.
func NewString(s string) *Node { return &Node{jsonType: String, value: s} }

// NewOpaque returns a node that serializes as the string s.String()
// evaluated at serialization time.
func NewOpaque(s fmt.Stringer) *Node { return &Node{jsonType: Opaque, value: s} }

// NewArray returns an array holding nn in order. nil elements become null.
func NewArray(nn ...*Node) *Node {
	if len(nn) == 0 {
		return &Node{jsonType: Array, value: []*Node(nil)}
	}
	cc := make([]*Node, len(nn))
	for i, n := range nn {
		cc[i] = orNull(n)
	}
	return &Node{jsonType: Array, value: cc}
}

// NewObject returns an object with the members kk. A key given more than
// once keeps its first position and its last value.
func NewObject(kk ...KeyNode) *Node {
	var ob objectBuilder
	for _, k := range kk {
		ob.set(k.Key, orNull(k.Node))
	}
	return ob.node()
}

func orNull(n *Node) *Node {
	if n == nil {
		return NewNull()
	}
	return n
}

// objectBuilder collects object members with last-write-wins semantics.
type objectBuilder struct {
	members []KeyNode
	index   map[string]int
}

func (b *objectBuilder) set(key string, n *Node) {
	if i, ok := b.index[key]; ok {
		b.members[i].Node = n
		return
	}
	if b.index == nil {
		b.index = make(map[string]int, 4)
	}
	b.index[key] = len(b.members)
	b.members = append(b.members, KeyNode{Key: key, Node: n})
}

func (b *objectBuilder) node() *Node {
	return &Node{jsonType: Object, value: b.members}
}

// Type returns the JSONType of a node.
func (n *Node) Type() JSONType {
	if n == nil {
		return Error
	}
	return n.jsonType
}

// Bool returns the value of a Bool node.
func (n *Node) Bool() (bool, bool) {
	b, ok := n.raw().(bool)
	return b, ok && n.jsonType == Bool
}

// Int returns the value of an Int node. It fails for integers above
// math.MaxInt64, see Uint.
func (n *Node) Int() (int64, bool) {
	i, ok := n.raw().(int64)
	return i, ok && n.jsonType == Int
}

// Uint returns the value of a non-negative Int node.
func (n *Node) Uint() (uint64, bool) {
	switch v := n.raw().(type) {
	case int64:
		return uint64(v), v >= 0 && n.jsonType == Int
	case uint64:
		return v, n.jsonType == Int
	}
	return 0, false
}

// Float returns the value of a Float node, or an Int node converted to
// float64.
func (n *Node) Float() (float64, bool) {
	switch v := n.raw().(type) {
	case float64:
		return v, n.jsonType == Float
	case int64:
		return float64(v), n.jsonType == Int
	case uint64:
		return float64(v), n.jsonType == Int
	}
	return 0, false
}

// Str returns the value of a String node.
func (n *Node) Str() (string, bool) {
	s, ok := n.raw().(string)
	return s, ok && n.jsonType == String
}

func (n *Node) raw() interface{} {
	if n == nil {
		return nil
	}
	return n.value
}

// Len gives the length of an array or items in an object
func (n *Node) Len() int {
	switch n.Type() {
	case Array:
		return len(n.value.([]*Node))
	case Object:
		return len(n.value.([]KeyNode))
	case Error:
		return 0
	default:
		return 1
	}
}

// Total returns the number of total nodes held by n, n included.
func (n *Node) Total() int {
	switch n.Type() {
	case Array:
		i := 1
		for _, m := range n.value.([]*Node) {
			i += m.Total()
		}
		return i
	case Object:
		i := 1
		for _, m := range n.value.([]KeyNode) {
			i += m.Total()
		}
		return i
	default:
		return n.Len()
	}
}

// Depth returns the nesting depth of n. Scalars and empty containers have
// depth 1.
func (n *Node) Depth() int {
	d := 0
	switch n.Type() {
	case Array:
		for _, m := range n.value.([]*Node) {
			if md := m.Depth(); md > d {
				d = md
			}
		}
	case Object:
		for _, m := range n.value.([]KeyNode) {
			if md := m.Depth(); md > d {
				d = md
			}
		}
	case Error:
		return 0
	}
	return d + 1
}

// Elems returns a copy of the elements of an array or nil for any other
// node.
func (n *Node) Elems() []*Node {
	if n.Type() != Array {
		return nil
	}
	return append([]*Node(nil), n.value.([]*Node)...)
}

// Members returns a copy of the members of an object in order or nil for any
// other node.
func (n *Node) Members() []KeyNode {
	if n.Type() != Object {
		return nil
	}
	return append([]KeyNode(nil), n.value.([]KeyNode)...)
}

// Keys returns the keys of an object in order. For arrays it returns the
// indices as strings. It is nil for scalars.
func (n *Node) Keys() []string {
	switch n.Type() {
	case Object:
		kn := n.value.([]KeyNode)
		ss := make([]string, len(kn))
		for i, m := range kn {
			ss[i] = m.Key
		}
		return ss
	case Array:
		ss := make([]string, n.Len())
		for i := range ss {
			ss[i] = strconv.Itoa(i)
		}
		return ss
	default:
		return nil
	}
}

// Index returns the i-th element of an array.
func (n *Node) Index(i int) (*Node, bool) {
	if n.Type() != Array {
		return nil, false
	}
	nn := n.value.([]*Node)
	if i < 0 || i >= len(nn) {
		return nil, false
	}
	return nn[i], true
}

// Get returns the member key of an object.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Type() != Object {
		return nil, false
	}
	for _, m := range n.value.([]KeyNode) {
		if m.Key == key {
			return m.Node, true
		}
	}
	return nil, false
}

// GetChild returns the node specified by a dot separated path of object keys
// and array indices. The empty path returns n itself.
func (n *Node) GetChild(path string) (*Node, error) {
	if path == "" {
		return n, nil
	}
	m := n
	keys := strings.Split(path, ".")
	for i, key := range keys {
		var ok bool
		switch m.Type() {
		case Object:
			m, ok = m.Get(key)
		case Array:
			idx, err := strconv.Atoi(key)
			if err != nil {
				return nil, errors.Wrapf(ErrNotFound, "%q is not an array index", strings.Join(keys[:i+1], "."))
			}
			m, ok = m.Index(idx)
		default:
			return nil, errors.Wrapf(ErrNotArrayOrObject, "%q is %s",
				strings.Join(keys[:i], "."), m.Type())
		}
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "%q", strings.Join(keys[:i+1], "."))
		}
	}
	return m, nil
}

// Value creates the Go representation of a JSON-Node.
// The possible underlying types of the first return parameter are:
//     Object    map[string]interface{}
//     Array     []interface{}
//     String    string
//     Int       int64 (uint64 above math.MaxInt64)
//     Float     float64
//     Bool      bool
//     Null      nil (with the error being nil too)
// Opaque nodes yield the string they serialize to.
func (n *Node) Value() (interface{}, error) {
	if !assertNodeType(n) {
		return nil, fmt.Errorf("internal type mismatch; want %s, got %T",
			n.Type(), n.raw())
	}
	switch n.jsonType {
	default:
		return n.value, nil
	case Opaque:
		return stringOf(n.value.(fmt.Stringer))
	case Object:
		kn := n.value.([]KeyNode)
		m := make(map[string]interface{}, len(kn))
		for _, f := range kn {
			itf, err := f.Value()
			if err != nil {
				return nil, err
			}
			m[f.Key] = itf
		}
		return m, nil
	case Array:
		nn := n.value.([]*Node)
		s := make([]interface{}, 0, len(nn))
		for _, f := range nn {
			itf, err := f.Value()
			if err != nil {
				return nil, err
			}
			s = append(s, itf)
		}
		return s, nil
	}
}

// EqNode compares the nodes and all their children. Object members must be
// in the same order, Int and Float nodes never compare equal and NaN equals
// NaN.
func EqNode(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.jsonType != b.jsonType {
		return false
	}
	switch a.jsonType {
	case Array:
		an, bn := a.value.([]*Node), b.value.([]*Node)
		if len(an) != len(bn) {
			return false
		}
		for i := range an {
			if !EqNode(an[i], bn[i]) {
				return false
			}
		}
		return true
	case Object:
		an, bn := a.value.([]KeyNode), b.value.([]KeyNode)
		if len(an) != len(bn) {
			return false
		}
		for i := range an {
			if an[i].Key != bn[i].Key || !EqNode(an[i].Node, bn[i].Node) {
				return false
			}
		}
		return true
	case Float:
		af, bf := a.value.(float64), b.value.(float64)
		return af == bf || (math.IsNaN(af) && math.IsNaN(bf))
	case Opaque:
		as, aerr := a.Value()
		bs, berr := b.Value()
		return aerr == nil && berr == nil && as == bs
	default:
		return a.value == b.value
	}
}

func assertNodeType(n *Node) bool {
	if n == nil {
		return false
	}
	switch v := n.value.(type) {
	case nil:
		return n.jsonType == Null
	case bool:
		return n.jsonType == Bool
	case int64, uint64:
		return n.jsonType == Int
	case float64:
		return n.jsonType == Float
	case string:
		return n.jsonType == String
	case []*Node:
		return n.jsonType == Array
	case []KeyNode:
		return n.jsonType == Object
	case fmt.Stringer:
		return n.jsonType == Opaque && v != nil
	default:
		return false
	}
}
