package conform

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Describe translates a Go type into a descriptor. The translation never
// fails: types without a counterpart in the descriptor model come out as
// the opaque primitive (matched by identity of kind only) and the empty
// interface comes out as Any. Translation happens once, at wrap time, never
// per call.
func Describe(t reflect.Type) Descriptor {
	if t == nil {
		return Any()
	}
	switch t.Kind() {
	case reflect.Bool:
		return Prim(KindBoolean)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Prim(KindInteger)
	case reflect.Float32, reflect.Float64:
		return Prim(KindFloat)
	case reflect.String:
		return Prim(KindString)
	case reflect.Slice:
		return ListOf(Describe(t.Elem()))
	case reflect.Array:
		elems := make([]Descriptor, t.Len())
		for i := range elems {
			elems[i] = Describe(t.Elem())
		}
		return TupleOf(elems...)
	case reflect.Map:
		if isSetType(t) {
			return SetOf(Describe(t.Key()))
		}
		return MapOf(Describe(t.Key()), Describe(t.Elem()))
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Any()
		}
		return Prim(KindOpaque)
	default:
		return Prim(KindOpaque)
	}
}

// Wrap builds a contract straight from a Go function's signature, the
// static-Go stand-in for reading a function's type annotations. Parameter
// and return descriptors are derived with Describe; the returned contract
// converts dynamic arguments to native form, calls fn, and converts the
// result back. fn may return nothing, one value, or one value and an
// error; a trailing error result passes through the enforcer untouched.
// paramNames, when given, must name every parameter; otherwise parameters
// are named arg0, arg1, and so on.
func Wrap(name string, fn any, paramNames ...string) (*Contract, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("cannot wrap %T, not a function", fn)
	}
	rt := rv.Type()
	if rt.IsVariadic() {
		return nil, fmt.Errorf("cannot wrap %v, variadic functions are not supported", name)
	}
	if len(paramNames) != 0 && len(paramNames) != rt.NumIn() {
		return nil, fmt.Errorf("cannot wrap %v, %v names given for %v parameters", name, len(paramNames), rt.NumIn())
	}
	hasErr := rt.NumOut() > 0 && rt.Out(rt.NumOut()-1) == errType
	numResults := rt.NumOut()
	if hasErr {
		numResults--
	}
	if numResults > 1 {
		return nil, fmt.Errorf("cannot wrap %v, it returns %v values", name, numResults)
	}

	params := make([]Param, rt.NumIn())
	for i := range params {
		pname := fmt.Sprintf("arg%v", i)
		if len(paramNames) != 0 {
			pname = paramNames[i]
		}
		params[i] = Param{Name: pname, Type: Describe(rt.In(i))}
	}
	ret := Prim(KindNil)
	if numResults == 1 {
		ret = Describe(rt.Out(0))
	}

	call := func(args []Value) (Value, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			native, err := fromValue(arg, rt.In(i))
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", params[i].Name, err)
			}
			in[i] = native
		}
		out := rv.Call(in)
		if hasErr {
			if errOut := out[len(out)-1]; !errOut.IsNil() {
				return nil, errOut.Interface().(error)
			}
		}
		if numResults == 0 {
			return &Nil{}, nil
		}
		return ToValue(out[0].Interface()), nil
	}
	return NewContract(name, call, ret, params...)
}

// fromValue converts a dynamic value back into native Go form for a
// reflective call. By the time this runs the argument has already passed
// its descriptor, so a conversion failure only happens for Any-typed
// positions fed a shape the target type cannot hold.
func fromValue(v Value, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		v = &Nil{}
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		if _, isNil := v.(*Nil); isNil {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(nativeOf(v)), nil
	}
	switch tv := v.(type) {
	case *Nil:
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			return reflect.Zero(t), nil
		}
	case *Boolean:
		if t.Kind() == reflect.Bool {
			return reflect.ValueOf(tv.val).Convert(t), nil
		}
	case *Integer:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return reflect.ValueOf(tv.val).Convert(t), nil
		}
	case *Float:
		switch t.Kind() {
		case reflect.Float32, reflect.Float64:
			return reflect.ValueOf(tv.val).Convert(t), nil
		}
	case *String:
		if t.Kind() == reflect.String {
			return reflect.ValueOf(tv.val).Convert(t), nil
		}
	case *List:
		if t.Kind() == reflect.Slice {
			return itemsToSlice(tv.items, t)
		}
	case *Tuple:
		if t.Kind() == reflect.Array {
			if len(tv.items) != t.Len() {
				return reflect.Value{}, fmt.Errorf("cannot pass %v-tuple as %v", len(tv.items), t)
			}
			out := reflect.New(t).Elem()
			for i, item := range tv.items {
				native, err := fromValue(item, t.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				out.Index(i).Set(native)
			}
			return out, nil
		}
		if t.Kind() == reflect.Slice {
			return itemsToSlice(tv.items, t)
		}
	case *Set:
		if isSetType(t) {
			out := reflect.MakeMapWithSize(t, tv.Len())
			empty := reflect.ValueOf(struct{}{})
			for _, item := range tv.Items() {
				key, err := fromValue(item, t.Key())
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetMapIndex(key, empty)
			}
			return out, nil
		}
	case *Map:
		if t.Kind() == reflect.Map && !isSetType(t) {
			out := reflect.MakeMapWithSize(t, tv.Len())
			for _, key := range tv.Keys() {
				val, _ := tv.Get(key)
				nativeKey, err := fromValue(key, t.Key())
				if err != nil {
					return reflect.Value{}, err
				}
				nativeVal, err := fromValue(val, t.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetMapIndex(nativeKey, nativeVal)
			}
			return out, nil
		}
	case *Opaque:
		rv := reflect.ValueOf(tv.val)
		if rv.IsValid() && rv.Type().AssignableTo(t) {
			return rv, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot pass %v value as %v", v.Kind(), t)
}

func itemsToSlice(items []Value, t reflect.Type) (reflect.Value, error) {
	out := reflect.MakeSlice(t, len(items), len(items))
	for i, item := range items {
		native, err := fromValue(item, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(native)
	}
	return out, nil
}

// nativeOf unwraps a dynamic value into plain Go data for an any-typed
// position.
func nativeOf(v Value) any {
	switch tv := v.(type) {
	case *Nil:
		return nil
	case *List:
		return itemsToNative(tv.items)
	case *Tuple:
		return itemsToNative(tv.items)
	case *Set:
		out := make(map[any]struct{}, tv.Len())
		for _, item := range tv.Items() {
			out[toKey(item)] = struct{}{}
		}
		return out
	case *Map:
		out := make(map[any]any, tv.Len())
		for _, key := range tv.Keys() {
			val, _ := tv.Get(key)
			out[toKey(key)] = nativeOf(val)
		}
		return out
	default:
		return v.Val()
	}
}

func itemsToNative(items []Value) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = nativeOf(item)
	}
	return out
}
