package conform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesPrimitives(t *testing.T) {
	testcases := []struct {
		val  Value
		desc Descriptor
		out  bool
	}{
		{val: &Integer{val: 1}, desc: Prim(KindInteger), out: true},
		{val: &Float{val: 1}, desc: Prim(KindFloat), out: true},
		{val: &String{val: "a"}, desc: Prim(KindString), out: true},
		{val: &Boolean{val: true}, desc: Prim(KindBoolean), out: true},
		{val: &Nil{}, desc: Prim(KindNil), out: true},
		{val: &Opaque{val: struct{}{}}, desc: Prim(KindOpaque), out: true},
		// no widening in either direction
		{val: &Boolean{val: true}, desc: Prim(KindInteger), out: false},
		{val: &Integer{val: 1}, desc: Prim(KindBoolean), out: false},
		{val: &Integer{val: 1}, desc: Prim(KindFloat), out: false},
		{val: &Float{val: 1}, desc: Prim(KindInteger), out: false},
		{val: &String{val: "1"}, desc: Prim(KindInteger), out: false},
		{val: &Integer{val: 1}, desc: Prim(KindString), out: false},
		// container kinds match no primitive descriptor
		{val: NewList(), desc: Prim(KindOpaque), out: false},
	}

	for _, tcase := range testcases {
		assert.Equal(t, tcase.out, Matches(tcase.val, tcase.desc),
			"value %v against %v", tcase.val, tcase.desc)
	}
}

func TestMatchesUnion(t *testing.T) {
	intOrStr := Union(Prim(KindInteger), Prim(KindString))
	strOrInt := Union(Prim(KindString), Prim(KindInteger))

	testcases := []Value{
		&Integer{val: 1},
		&String{val: "a"},
		&Float{val: 1},
		&Boolean{val: true},
		NewList(),
	}

	// option order affects evaluation cost only, never the result
	for _, val := range testcases {
		a := Matches(val, Prim(KindInteger)) || Matches(val, Prim(KindString))
		assert.Equal(t, a, Matches(val, intOrStr))
		assert.Equal(t, a, Matches(val, strOrInt))
	}
	assert.False(t, Matches(&Integer{val: 1}, Union()))
}

func TestMatchesList(t *testing.T) {
	ints := ListOf(Prim(KindInteger))

	testcases := []struct {
		val  Value
		desc Descriptor
		out  bool
	}{
		{val: NewList(&Integer{val: 1}, &Integer{val: 2}), desc: ints, out: true},
		{val: NewList(), desc: ints, out: true},
		{val: NewList(&Integer{val: 1}, &String{val: "a"}), desc: ints, out: false},
		{val: NewSet(&Integer{val: 1}), desc: ints, out: false},
		{val: NewTuple(&Integer{val: 1}), desc: ints, out: false},
		{val: &Integer{val: 1}, desc: ints, out: false},
		// absent element constraint accepts any element, but not any shape
		{val: NewList(&Integer{val: 1}, &String{val: "a"}), desc: ListOf(nil), out: true},
		{val: NewSet(), desc: ListOf(nil), out: false},
	}

	for _, tcase := range testcases {
		assert.Equal(t, tcase.out, Matches(tcase.val, tcase.desc),
			"value %v against %v", tcase.val, tcase.desc)
	}
}

func TestMatchesSet(t *testing.T) {
	strs := SetOf(Prim(KindString))
	assert.True(t, Matches(NewSet(&String{val: "x"}, &String{val: "y"}), strs))
	assert.True(t, Matches(NewSet(), strs))
	assert.False(t, Matches(NewSet(&Integer{val: 1}), strs))
	assert.False(t, Matches(NewList(&String{val: "x"}), strs))
	assert.True(t, Matches(NewSet(&Integer{val: 1}, &String{val: "x"}), SetOf(nil)))
}

func TestMatchesTuple(t *testing.T) {
	pair := TupleOf(Prim(KindInteger), Prim(KindInteger))

	testcases := []struct {
		val  Value
		desc Descriptor
		out  bool
	}{
		{val: NewTuple(&Integer{val: 1}, &Integer{val: 2}), desc: pair, out: true},
		{val: NewTuple(&String{val: "1"}, &Integer{val: 2}), desc: pair, out: false},
		// arity is strict, never truncated
		{val: NewTuple(&Integer{val: 1}), desc: pair, out: false},
		{val: NewTuple(&Integer{val: 1}, &Integer{val: 2}, &Integer{val: 3}), desc: pair, out: false},
		{val: NewTuple(), desc: pair, out: false},
		{val: NewList(&Integer{val: 1}, &Integer{val: 2}), desc: pair, out: false},
		// bare tuple accepts any arity
		{val: NewTuple(&String{val: "a"}, &Integer{val: 1}), desc: TupleOf(), out: true},
		{val: NewTuple(), desc: TupleOf(), out: true},
	}

	for _, tcase := range testcases {
		assert.Equal(t, tcase.out, Matches(tcase.val, tcase.desc),
			"value %v against %v", tcase.val, tcase.desc)
	}
}

func TestMatchesVariadicTuple(t *testing.T) {
	ints := VariadicOf(Prim(KindInteger))
	assert.True(t, Matches(NewTuple(), ints))
	assert.True(t, Matches(NewTuple(&Integer{val: 1}), ints))
	assert.True(t, Matches(NewTuple(&Integer{val: 1}, &Integer{val: 2}, &Integer{val: 3}), ints))
	assert.False(t, Matches(NewTuple(&Integer{val: 1}, &String{val: "a"}), ints))
	assert.False(t, Matches(NewList(&Integer{val: 1}), ints))
}

func TestMatchesMap(t *testing.T) {
	strToInt := MapOf(Prim(KindString), Prim(KindInteger))

	good := NewMap()
	good.Insert(&String{val: "a"}, &Integer{val: 1})
	good.Insert(&String{val: "b"}, &Integer{val: 2})
	badKey := NewMap()
	badKey.Insert(&Integer{val: 1}, &Integer{val: 1})
	badVal := NewMap()
	badVal.Insert(&String{val: "a"}, &String{val: "1"})

	assert.True(t, Matches(good, strToInt))
	assert.True(t, Matches(NewMap(), strToInt))
	assert.False(t, Matches(badKey, strToInt))
	assert.False(t, Matches(badVal, strToInt))
	assert.False(t, Matches(NewList(), strToInt))
	assert.True(t, Matches(badKey, MapOf(nil, Prim(KindInteger))))
	assert.False(t, Matches(badVal, MapOf(nil, Prim(KindInteger))))
}

func TestMatchesAny(t *testing.T) {
	testcases := []Value{
		&Nil{},
		&Integer{val: 1},
		&String{val: "a"},
		NewList(&Opaque{val: t}),
		NewSet(),
		NewTuple(),
		NewMap(),
	}
	for _, val := range testcases {
		assert.True(t, Matches(val, Any()))
	}
	assert.True(t, Matches(nil, Any()))
	assert.True(t, Matches(&Integer{val: 1}, nil))
}

func TestMatchesNested(t *testing.T) {
	desc := ListOf(MapOf(Prim(KindString), Union(Prim(KindInteger), ListOf(Prim(KindInteger)))))

	inner := NewMap()
	inner.Insert(&String{val: "plain"}, &Integer{val: 1})
	inner.Insert(&String{val: "nested"}, NewList(&Integer{val: 2}))
	require.True(t, Matches(NewList(inner), desc))

	inner.Insert(&String{val: "bad"}, &String{val: "nope"})
	require.False(t, Matches(NewList(inner), desc))
}

func TestMatchesIsPure(t *testing.T) {
	desc := ListOf(Prim(KindInteger))
	val := NewList(&Integer{val: 1}, &String{val: "a"})

	first := Matches(val, desc)
	second := Matches(val, desc)
	assert.Equal(t, first, second)
	assert.Equal(t, "list[integer]", desc.String())
	assert.Equal(t, 2, val.Len())
}
