package conform

// Matches reports whether v structurally conforms to desc. It is pure and
// total: it never mutates its arguments, never invokes user code, and
// recursion is bounded by the descriptor tree's depth. A nil descriptor is
// an absent constraint and accepts everything; a nil value is checked as
// Nil.
func Matches(v Value, desc Descriptor) bool {
	if desc == nil {
		return true
	}
	if v == nil {
		v = &Nil{}
	}
	switch d := desc.(type) {
	case *primType:
		return v.Kind() == d.kind
	case *unionType:
		for _, opt := range d.opts {
			if Matches(v, opt) {
				return true
			}
		}
		return false
	case *listType:
		list, isList := v.(*List)
		return isList && allMatch(list.items, d.elem)
	case *setType:
		set, isSet := v.(*Set)
		return isSet && allMatch(set.Items(), d.elem)
	case *tupleType:
		tuple, isTuple := v.(*Tuple)
		if !isTuple {
			return false
		}
		if len(d.elems) == 0 {
			return true
		}
		if len(tuple.items) != len(d.elems) {
			return false
		}
		for i, elem := range d.elems {
			if !Matches(tuple.items[i], elem) {
				return false
			}
		}
		return true
	case *variadicType:
		tuple, isTuple := v.(*Tuple)
		return isTuple && allMatch(tuple.items, d.elem)
	case *mapType:
		mapping, isMap := v.(*Map)
		if !isMap {
			return false
		}
		for _, key := range mapping.Keys() {
			val, _ := mapping.Get(key)
			if !Matches(key, d.key) || !Matches(val, d.val) {
				return false
			}
		}
		return true
	case *anyType:
		return true
	default:
		// Descriptors are a closed set so this is unreachable, but an
		// uninterpretable descriptor accepts rather than rejects.
		return true
	}
}

func allMatch(items []Value, elem Descriptor) bool {
	if elem == nil {
		return true
	}
	for _, item := range items {
		if !Matches(item, elem) {
			return false
		}
	}
	return true
}
