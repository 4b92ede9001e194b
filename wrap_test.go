package conform

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	testcases := []struct {
		in  any
		out string
	}{
		{in: true, out: "boolean"},
		{in: int(0), out: "integer"},
		{in: int32(0), out: "integer"},
		{in: uint16(0), out: "integer"},
		{in: float64(0), out: "float"},
		{in: "", out: "string"},
		{in: []int{}, out: "list[integer]"},
		{in: [][]string{}, out: "list[list[string]]"},
		{in: [2]int{}, out: "tuple[integer, integer]"},
		{in: map[string]int{}, out: "map[string, integer]"},
		{in: map[string]struct{}{}, out: "set[string]"},
		{in: []any{}, out: "list[any]"},
		{in: struct{}{}, out: "opaque"},
		{in: make(chan int), out: "opaque"},
	}

	for _, tcase := range testcases {
		assert.Equal(t, tcase.out, Describe(reflect.TypeOf(tcase.in)).String())
	}
	assert.Equal(t, "any", Describe(reflect.TypeOf((*any)(nil)).Elem()).String())
	assert.Equal(t, "opaque", Describe(reflect.TypeOf((*fmt.Stringer)(nil)).Elem()).String())
	assert.Equal(t, "any", Describe(nil).String())
}

func TestWrapGreet(t *testing.T) {
	greet, err := Wrap("greet", func(name string) string {
		return "Hello " + name
	}, "name")
	require.NoError(t, err)

	result, err := greet.Call(&String{val: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, &String{val: "Hello Alice"}, result)

	_, err = greet.Call(&Integer{val: 123})
	var violation *Violation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, ArgumentConformanceError, violation.Kind)
	assert.Equal(t, "name", violation.Name)
}

func TestWrapSum(t *testing.T) {
	sum, err := Wrap("add_all", func(numbers []int) int {
		total := 0
		for _, n := range numbers {
			total += n
		}
		return total
	}, "numbers")
	require.NoError(t, err)

	result, err := sum.Call(NewList(&Integer{val: 1}, &Integer{val: 2}, &Integer{val: 3}))
	require.NoError(t, err)
	assert.Equal(t, &Integer{val: 6}, result)

	_, err = sum.Call(NewList(&String{val: "a"}))
	var violation *Violation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "numbers", violation.Name)
}

func TestWrapContainers(t *testing.T) {
	sizes, err := Wrap("sizes", func(tags map[string]struct{}, factor int) map[string]int {
		out := map[string]int{}
		for tag := range tags {
			out[tag] = len(tag) * factor
		}
		return out
	}, "tags", "factor")
	require.NoError(t, err)

	result, err := sizes.Call(
		NewSet(&String{val: "ab"}, &String{val: "c"}),
		&Integer{val: 2},
	)
	require.NoError(t, err)
	require.Equal(t, KindMap, result.Kind())
	val, found := result.(*Map).Get(&String{val: "ab"})
	require.True(t, found)
	assert.Equal(t, &Integer{val: 4}, val)

	_, err = sizes.Call(NewList(&String{val: "ab"}), &Integer{val: 2})
	var violation *Violation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "tags", violation.Name)
}

func TestWrapErrorResult(t *testing.T) {
	boom := fmt.Errorf("boom")
	fail, err := Wrap("fail", func(n int) (int, error) {
		if n < 0 {
			return 0, boom
		}
		return n * 2, nil
	}, "n")
	require.NoError(t, err)

	result, err := fail.Call(&Integer{val: 3})
	require.NoError(t, err)
	assert.Equal(t, &Integer{val: 6}, result)

	_, err = fail.Call(&Integer{val: -1})
	assert.Equal(t, boom, err)
}

func TestWrapNoResult(t *testing.T) {
	ran := false
	fire, err := Wrap("fire", func() { ran = true })
	require.NoError(t, err)

	result, err := fire.Call()
	require.NoError(t, err)
	assert.Equal(t, &Nil{}, result)
	assert.True(t, ran)
}

func TestWrapErrorOnlyResult(t *testing.T) {
	ping, err := Wrap("ping", func() error { return nil })
	require.NoError(t, err)

	result, err := ping.Call()
	require.NoError(t, err)
	assert.Equal(t, &Nil{}, result)
}

func TestWrapAnyParam(t *testing.T) {
	echo, err := Wrap("echo", func(v any) any { return v }, "v")
	require.NoError(t, err)

	result, err := echo.Call(NewList(&Integer{val: 1}, &String{val: "a"}))
	require.NoError(t, err)
	assert.Equal(t, KindList, result.Kind())

	result, err = echo.Call(&Nil{})
	require.NoError(t, err)
	assert.Equal(t, &Nil{}, result)
}

func TestWrapRejections(t *testing.T) {
	_, err := Wrap("notfn", 42)
	assert.ErrorContains(t, err, "not a function")

	_, err = Wrap("variadic", func(ns ...int) {})
	assert.ErrorContains(t, err, "variadic")

	_, err = Wrap("misnamed", func(a, b int) {}, "a")
	assert.ErrorContains(t, err, "2 parameters")

	_, err = Wrap("multi", func() (int, int) { return 0, 0 })
	assert.ErrorContains(t, err, "returns 2 values")
}
