package conform

import (
	"fmt"
	"reflect"
)

type (
	// Kind identifies the runtime kind of a Value. Primitive descriptors
	// match on kind equality and nothing else; there is no widening between
	// kinds, so a Boolean never satisfies an integer descriptor and an
	// Integer never satisfies a float descriptor.
	Kind string

	// Value is the dynamic runtime representation that descriptors are
	// checked against. Values are plain data; checking them never mutates
	// them.
	Value interface {
		fmt.Stringer
		Kind() Kind
		Val() any
	}
	Nil     struct{}
	Boolean struct{ val bool }
	Integer struct{ val int64 }
	Float   struct{ val float64 }
	String  struct{ val string }
	// Opaque wraps any Go value the dynamic model has no kind for. It is
	// carried around untouched and only ever matched by kind.
	Opaque struct{ val any }
)

const (
	KindNil     Kind = "nil"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindString  Kind = "string"
	KindOpaque  Kind = "opaque"
	KindList    Kind = "list"
	KindSet     Kind = "set"
	KindTuple   Kind = "tuple"
	KindMap     Kind = "map"
)

// ToValue translates a native Go value into the dynamic value model. It
// never fails: slices become lists, arrays become tuples, maps become maps
// (or sets when the element type is struct{}), and anything else it cannot
// interpret is wrapped as Opaque.
func ToValue(in any) Value {
	switch val := unifyType(in).(type) {
	case int64:
		return &Integer{val: val}
	case float64:
		return &Float{val: val}
	case bool:
		return &Boolean{val: val}
	case string:
		return &String{val: val}
	case nil:
		return &Nil{}
	case Value:
		return val
	case []Value:
		return NewList(val...)
	default:
		return reflectValue(reflect.ValueOf(in))
	}
}

func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Slice:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = ToValue(rv.Index(i).Interface())
		}
		return NewList(items...)
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = ToValue(rv.Index(i).Interface())
		}
		return NewTuple(items...)
	case reflect.Map:
		if isSetType(rv.Type()) {
			items := make([]Value, 0, rv.Len())
			for _, key := range rv.MapKeys() {
				items = append(items, ToValue(key.Interface()))
			}
			return NewSet(items...)
		}
		out := NewMap()
		for _, key := range rv.MapKeys() {
			out.Insert(ToValue(key.Interface()), ToValue(rv.MapIndex(key).Interface()))
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return &Nil{}
		}
		return &Opaque{val: rv.Interface()}
	default:
		return &Opaque{val: rv.Interface()}
	}
}

// map[T]struct{} is the conventional Go set, so it translates to Set
// rather than Map.
func isSetType(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem() == reflect.TypeOf(struct{}{})
}

func unifyType(in any) any {
	switch val := in.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return in
	}
}

// toKey folds a value down to a comparable key for set membership and map
// lookup. Scalars key by their underlying value so that two equal integers
// collapse to one set entry; containers and opaques key by identity.
func toKey(in Value) any {
	switch tin := in.(type) {
	case *Nil:
		return nil
	case *String:
		return tin.val
	case *Boolean:
		return tin.val
	case *Integer:
		return tin.val
	case *Float:
		return tin.val
	default:
		return in
	}
}

func (n *Nil) Kind() Kind     { return KindNil }
func (n *Nil) Val() any       { return nil }
func (n *Nil) String() string { return "nil" }

func (b *Boolean) Kind() Kind     { return KindBoolean }
func (b *Boolean) Val() any       { return bool(b.val) }
func (b *Boolean) String() string { return fmt.Sprintf("%v", b.val) }

func (i *Integer) Kind() Kind     { return KindInteger }
func (i *Integer) Val() any       { return int64(i.val) }
func (i *Integer) String() string { return fmt.Sprintf("%v", i.val) }

func (f *Float) Kind() Kind     { return KindFloat }
func (f *Float) Val() any       { return float64(f.val) }
func (f *Float) String() string { return fmt.Sprintf("%v", f.val) }

func (s *String) Kind() Kind     { return KindString }
func (s *String) Val() any       { return string(s.val) }
func (s *String) String() string { return fmt.Sprintf("%q", s.val) }

func (o *Opaque) Kind() Kind     { return KindOpaque }
func (o *Opaque) Val() any       { return o.val }
func (o *Opaque) String() string { return fmt.Sprintf("%v", o.val) }
