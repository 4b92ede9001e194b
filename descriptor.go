package conform

import (
	"bytes"
	"fmt"
	"strings"
)

type (
	// Descriptor is an immutable tree describing an expected value shape.
	// The variant set is closed: descriptors are built with the constructor
	// functions below and carry no reference to any value being checked.
	Descriptor interface {
		fmt.Stringer
		descriptor()
	}
	primType     struct{ kind Kind }
	unionType    struct{ opts []Descriptor }
	listType     struct{ elem Descriptor }
	setType      struct{ elem Descriptor }
	tupleType    struct{ elems []Descriptor }
	variadicType struct{ elem Descriptor }
	mapType      struct{ key, val Descriptor }
	anyType      struct{}
)

// Prim describes a value of exactly the given primitive kind. Container
// kinds passed here never match anything; use the container constructors
// instead.
func Prim(kind Kind) Descriptor { return &primType{kind: kind} }

// Union describes a value matching any one of the options, tried in
// declaration order.
func Union(opts ...Descriptor) Descriptor {
	return &unionType{opts: append([]Descriptor{}, opts...)}
}

// ListOf describes a list whose every element matches elem. A nil elem
// constrains only the container kind and accepts any element.
func ListOf(elem Descriptor) Descriptor { return &listType{elem: elem} }

// SetOf describes a set whose every member matches elem. A nil elem
// constrains only the container kind and accepts any member.
func SetOf(elem Descriptor) Descriptor { return &setType{elem: elem} }

// TupleOf describes a tuple of exactly len(elems) elements matched
// pairwise. With no elems it accepts a tuple of any shape.
func TupleOf(elems ...Descriptor) Descriptor {
	return &tupleType{elems: append([]Descriptor{}, elems...)}
}

// VariadicOf describes a tuple of any length whose every element matches
// elem.
func VariadicOf(elem Descriptor) Descriptor { return &variadicType{elem: elem} }

// MapOf describes a map whose keys all match key and values all match val.
// A nil key or val leaves that position unconstrained.
func MapOf(key, val Descriptor) Descriptor { return &mapType{key: key, val: val} }

// Any describes the catch-all that every value of every shape satisfies.
// It is the explicit, permissive fallback for annotations the translator
// cannot interpret: a value matched by it has not been validated at all.
func Any() Descriptor { return &anyType{} }

func (d *primType) descriptor()     {}
func (d *unionType) descriptor()    {}
func (d *listType) descriptor()     {}
func (d *setType) descriptor()      {}
func (d *tupleType) descriptor()    {}
func (d *variadicType) descriptor() {}
func (d *mapType) descriptor()      {}
func (d *anyType) descriptor()      {}

func (d *primType) String() string { return string(d.kind) }

func (d *unionType) String() string {
	parts := make([]string, len(d.opts))
	for i, opt := range d.opts {
		parts[i] = descString(opt)
	}
	return strings.Join(parts, "|")
}

func (d *listType) String() string { return printElem("list", d.elem) }
func (d *setType) String() string  { return printElem("set", d.elem) }

func (d *tupleType) String() string {
	if len(d.elems) == 0 {
		return "tuple"
	}
	var buf bytes.Buffer
	fmt.Fprint(&buf, "tuple[")
	for i, elem := range d.elems {
		if i > 0 {
			fmt.Fprint(&buf, ", ")
		}
		fmt.Fprint(&buf, descString(elem))
	}
	fmt.Fprint(&buf, "]")
	return buf.String()
}

func (d *variadicType) String() string {
	return fmt.Sprintf("tuple[%v...]", descString(d.elem))
}

func (d *mapType) String() string {
	if d.key == nil && d.val == nil {
		return "map"
	}
	return fmt.Sprintf("map[%v, %v]", descString(d.key), descString(d.val))
}

func (d *anyType) String() string { return "any" }

func printElem(name string, elem Descriptor) string {
	if elem == nil {
		return name
	}
	return fmt.Sprintf("%v[%v]", name, elem)
}

// nil descriptors stand for an absent constraint and print as the shape
// that accepts anything.
func descString(desc Descriptor) string {
	if desc == nil {
		return "any"
	}
	return desc.String()
}
