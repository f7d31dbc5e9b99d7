package jsonutil

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	nodeType    = reflect.TypeOf(Node{})
	nodePtrType = reflect.TypeOf((*Node)(nil))
)

// FromGo reads in a Go-value and generates a json tree.
//
// Values are checked in this order: *Node, Node and Valuer are taken as they
// are; then bool, integer kinds, float kinds, string; maps and structs become
// objects; slices and arrays become arrays ([]byte becomes a string);
// everything else becomes the string fmt.Sprint would print. Structs
// implementing error or fmt.Stringer become Opaque nodes.
//
// Map keys are sorted since Go maps have no order. Struct fields follow the
// encoding/json tag conventions: a name, "-", omitempty and string.
//
// Maps, structs, slices and arrays count towards DefaultMaxDepth the same way
// nested arrays and objects do when parsing. Pointers and interfaces do not.
// Unsigned integers above math.MaxInt64 keep their exact value.
func FromGo(val interface{}) (*Node, error) {
	return fromGo(val, DefaultMaxDepth)
}

func fromGo(val interface{}, maxDepth int) (*Node, error) {
	g := goAdapter{maxDepth: maxDepth}
	return g.node(reflect.ValueOf(val), 0)
}

// maxPointerChain bounds consecutive pointer and interface indirections.
const maxPointerChain = 1000

type goAdapter struct {
	maxDepth int
}

func (g goAdapter) node(v reflect.Value, depth int) (*Node, error) {
	for hops := 0; ; hops++ {
		if !v.IsValid() {
			return NewNull(), nil
		}
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
			if v.IsNil() {
				return NewNull(), nil
			}
		}
		if n, ok := g.custom(v); ok {
			return n, nil
		}
		if k := v.Kind(); k != reflect.Ptr && k != reflect.Interface {
			break
		}
		if hops >= maxPointerChain {
			return nil, &SerializeError{
				Msg:  fmt.Sprintf("pointer chain longer than %d", maxPointerChain),
				Type: v.Type().String(),
			}
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		return NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewUint(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat(v.Float()), nil
	case reflect.String:
		return NewString(v.String()), nil
	case reflect.Map:
		if err := g.enter(v, depth); err != nil {
			return nil, err
		}
		return g.mapObject(v, depth)
	case reflect.Struct:
		if err := g.enter(v, depth); err != nil {
			return nil, err
		}
		return g.structObject(v, depth)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return NewString(string(v.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		if err := g.enter(v, depth); err != nil {
			return nil, err
		}
		nn := make([]*Node, v.Len())
		for i := range nn {
			n, err := g.node(v.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			nn[i] = n
		}
		return NewArray(nn...), nil
	default:
		if v.CanInterface() {
			return NewString(fmt.Sprint(v.Interface())), nil
		}
		return NewString(v.String()), nil
	}
}

// custom handles values that bring their own representation.
func (g goAdapter) custom(v reflect.Value) (*Node, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	switch x := v.Interface().(type) {
	case *Node:
		return x, true
	case Node:
		return &x, true
	case Valuer:
		return orNull(x.JSONValue()), true
	}
	if k := v.Kind(); k == reflect.Struct || (k == reflect.Ptr && v.Elem().Kind() == reflect.Struct) {
		switch x := v.Interface().(type) {
		case error:
			return NewOpaque(errorText{x}), true
		case fmt.Stringer:
			return NewOpaque(x), true
		}
	}
	return nil, false
}

// enter fails if a container at depth, the number of enclosing containers,
// would nest deeper than the limit. The parser counts the same way.
func (g goAdapter) enter(v reflect.Value, depth int) error {
	if g.maxDepth > 0 && depth >= g.maxDepth {
		return &SerializeError{
			Msg:  fmt.Sprintf("exceeded maximum nesting depth of %d", g.maxDepth),
			Type: v.Type().String(),
		}
	}
	return nil
}

func (g goAdapter) mapObject(v reflect.Value, depth int) (*Node, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	ee := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		key := ""
		if k.Kind() == reflect.String {
			key = k.String()
		} else {
			key = fmt.Sprint(k.Interface())
		}
		ee = append(ee, entry{key, iter.Value()})
	}
	sort.Slice(ee, func(i, j int) bool { return ee[i].key < ee[j].key })
	kk := make([]KeyNode, len(ee))
	for i, e := range ee {
		n, err := g.node(e.val, depth+1)
		if err != nil {
			return nil, err
		}
		kk[i] = KeyNode{Key: e.key, Node: n}
	}
	return NewObject(kk...), nil
}

func (g goAdapter) structObject(v reflect.Value, depth int) (*Node, error) {
	t := v.Type()
	kk := make([]KeyNode, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, opts := parseTag(f.Tag.Get("json"))
		if name == "-" && opts == "" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fv := v.Field(i)
		if opts.contains("omitempty") && isEmptyValue(fv) {
			continue
		}
		n, err := g.node(fv, depth+1)
		if err != nil {
			return nil, err
		}
		if opts.contains("string") && isScalarKind(f.Type.Kind()) {
			n = NewString(n.String())
		}
		kk = append(kk, KeyNode{Key: name, Node: n})
	}
	return NewObject(kk...), nil
}

// errorText adapts an error to fmt.Stringer.
type errorText struct{ err error }

func (e errorText) String() string { return e.err.Error() }

// bind stores n in v. v must be settable. Like encoding/json, null leaves
// non-pointer values untouched and missing struct fields are not reset.
func bind(n *Node, v reflect.Value, stringify bool) error {
	switch v.Type() {
	case nodePtrType:
		v.Set(reflect.ValueOf(n))
		return nil
	case nodeType:
		v.Set(reflect.ValueOf(*n))
		return nil
	}
	if stringify && n.Type() == String {
		s, _ := n.Str()
		m, err := parse(s, DefaultMaxDepth)
		if err != nil {
			return errors.Wrapf(err, "invalid use of ,string for %q", s)
		}
		n = m
	}
	switch v.Kind() {
	case reflect.Ptr:
		if n.Type() == Null {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return bind(n, v.Elem(), false)
	case reflect.Interface:
		if v.NumMethod() != 0 {
			return mismatch(n, v)
		}
		val, err := n.Value()
		if err != nil {
			return err
		}
		if val == nil {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		v.Set(reflect.ValueOf(val))
		return nil
	}
	if n.Type() == Null {
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		b, ok := n.Bool()
		if !ok {
			return mismatch(n, v)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := integer(n)
		if !ok {
			if u, isUint := n.raw().(uint64); isUint {
				return errors.Errorf("value %d overflows Go value of type %s", u, v.Type())
			}
			return mismatch(n, v)
		}
		if v.OverflowInt(i) {
			return errors.Errorf("value %d overflows Go value of type %s", i, v.Type())
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := n.Uint()
		if !ok {
			i, isInt := integer(n)
			if !isInt || i < 0 {
				return mismatch(n, v)
			}
			u = uint64(i)
		}
		if v.OverflowUint(u) {
			return errors.Errorf("value %d overflows Go value of type %s", u, v.Type())
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, ok := n.Float()
		if !ok {
			return mismatch(n, v)
		}
		if v.OverflowFloat(f) {
			return errors.Errorf("value %v overflows Go value of type %s", f, v.Type())
		}
		v.SetFloat(f)
	case reflect.String:
		s, ok := n.Str()
		if !ok {
			return mismatch(n, v)
		}
		v.SetString(s)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 && n.Type() == String {
			s, _ := n.Str()
			v.SetBytes([]byte(s))
			return nil
		}
		if n.Type() != Array {
			return mismatch(n, v)
		}
		nn := n.value.([]*Node)
		s := reflect.MakeSlice(v.Type(), len(nn), len(nn))
		for i, m := range nn {
			if err := bind(m, s.Index(i), false); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		v.Set(s)
	case reflect.Array:
		if n.Type() != Array {
			return mismatch(n, v)
		}
		nn := n.value.([]*Node)
		for i := 0; i < v.Len(); i++ {
			if i >= len(nn) {
				v.Index(i).Set(reflect.Zero(v.Type().Elem()))
				continue
			}
			if err := bind(nn[i], v.Index(i), false); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
	case reflect.Map:
		if n.Type() != Object {
			return mismatch(n, v)
		}
		t := v.Type()
		if t.Key().Kind() != reflect.String {
			return errors.Errorf("unsupported map key type %s", t.Key())
		}
		if v.IsNil() {
			v.Set(reflect.MakeMapWithSize(t, n.Len()))
		}
		for _, m := range n.value.([]KeyNode) {
			e := reflect.New(t.Elem()).Elem()
			if err := bind(m.Node, e, false); err != nil {
				return errors.Wrapf(err, "key %q", m.Key)
			}
			v.SetMapIndex(reflect.ValueOf(m.Key).Convert(t.Key()), e)
		}
	case reflect.Struct:
		if n.Type() != Object {
			return mismatch(n, v)
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			name, opts := parseTag(f.Tag.Get("json"))
			if name == "-" && opts == "" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			m, ok := n.Get(name)
			if !ok {
				continue
			}
			strfy := opts.contains("string") && isScalarKind(f.Type.Kind())
			if err := bind(m, v.Field(i), strfy); err != nil {
				return errors.Wrapf(err, "field %s", f.Name)
			}
		}
	default:
		return mismatch(n, v)
	}
	return nil
}

func mismatch(n *Node, v reflect.Value) error {
	return errors.Errorf("cannot unmarshal %s into Go value of type %s", n.Type(), v.Type())
}

// integer returns the value of an Int node or of a Float node without
// fractional part.
func integer(n *Node) (int64, bool) {
	if i, ok := n.Int(); ok {
		return i, true
	}
	f, ok := n.Float()
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

type tagOptions string

func parseTag(tag string) (string, tagOptions) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, tagOptions(opts)
}

func (o tagOptions) contains(opt string) bool {
	s := string(o)
	for s != "" {
		var name string
		name, s, _ = strings.Cut(s, ",")
		if name == opt {
			return true
		}
	}
	return false
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
