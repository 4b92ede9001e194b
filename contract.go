package conform

import (
	"fmt"
	"sort"
)

type (
	// Func is the computation a contract guards. It receives the bound
	// arguments in declared parameter order and its error, if any, passes
	// through the enforcer untouched.
	Func func(args []Value) (Value, error)

	// Param declares one parameter: its name, the descriptor its bound
	// argument must satisfy (nil leaves it unchecked), and an optional
	// default used when no argument is supplied. A nil Default marks the
	// parameter required; an explicit nil default is declared with &Nil{}.
	Param struct {
		Name    string
		Type    Descriptor
		Default Value
	}

	// Contract associates a computation with its declared parameters and
	// return descriptor. It is built once and never mutated, so a single
	// contract may be called from any number of goroutines.
	Contract struct {
		name   string
		fn     Func
		params []Param
		ret    Descriptor
	}
)

// NewContract builds the contract for fn. The name is only used in error
// messages. A nil ret leaves the return value unchecked.
func NewContract(name string, fn Func, ret Descriptor, params ...Param) (*Contract, error) {
	if fn == nil {
		return nil, fmt.Errorf("contract %v has no computation", name)
	}
	seen := map[string]bool{}
	for _, param := range params {
		if param.Name == "" {
			return nil, fmt.Errorf("contract %v has an unnamed parameter", name)
		}
		if seen[param.Name] {
			return nil, fmt.Errorf("contract %v declares parameter %q twice", name, param.Name)
		}
		seen[param.Name] = true
	}
	return &Contract{
		name:   name,
		fn:     fn,
		params: append([]Param{}, params...),
		ret:    ret,
	}, nil
}

func (c *Contract) Name() string { return c.name }

// Call enforces the contract for a purely positional invocation.
func (c *Contract) Call(args ...Value) (Value, error) {
	return c.CallNamed(args, nil)
}

// CallNamed enforces the contract for a mixed positional and named
// invocation. Arguments are bound to parameter names with defaults applied,
// every bound argument is checked against its descriptor in declared order,
// and only when all of them conform does the computation run, exactly once.
// Its result is then checked against the return descriptor and handed back
// unchanged.
func (c *Contract) CallNamed(args []Value, named map[string]Value) (Value, error) {
	bound, err := c.bind(args, named)
	if err != nil {
		return nil, err
	}
	for i, param := range c.params {
		if !Matches(bound[i], param.Type) {
			return nil, &Violation{
				Kind:     ArgumentConformanceError,
				Name:     param.Name,
				Expected: param.Type,
				Got:      bound[i],
			}
		}
	}
	result, err := c.fn(bound)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &Nil{}
	}
	if !Matches(result, c.ret) {
		return nil, &Violation{
			Kind:     ReturnConformanceError,
			Name:     "return",
			Expected: c.ret,
			Got:      result,
		}
	}
	return result, nil
}

func (c *Contract) bind(args []Value, named map[string]Value) ([]Value, error) {
	if len(args) > len(c.params) {
		return nil, newBindErr("", "%v takes %v arguments, got %v", c.name, len(c.params), len(args))
	}
	for _, name := range sortedNames(named) {
		if c.paramIndex(name) < 0 {
			return nil, newBindErr(name, "%v has no parameter %q", c.name, name)
		}
	}
	bound := make([]Value, len(c.params))
	isBound := make([]bool, len(c.params))
	for i, arg := range args {
		if arg == nil {
			arg = &Nil{}
		}
		bound[i] = arg
		isBound[i] = true
	}
	for i, param := range c.params {
		val, supplied := named[param.Name]
		if !supplied {
			continue
		}
		if isBound[i] {
			return nil, newBindErr(param.Name, "%v got parameter %q twice", c.name, param.Name)
		}
		if val == nil {
			val = &Nil{}
		}
		bound[i] = val
		isBound[i] = true
	}
	for i, param := range c.params {
		if isBound[i] {
			continue
		}
		if param.Default == nil {
			return nil, newBindErr(param.Name, "%v requires parameter %q", c.name, param.Name)
		}
		bound[i] = param.Default
	}
	return bound, nil
}

func (c *Contract) paramIndex(name string) int {
	for i, param := range c.params {
		if param.Name == name {
			return i
		}
	}
	return -1
}

// map iteration order is random, so unknown names are reported smallest
// first to keep diagnostics deterministic.
func sortedNames(named map[string]Value) []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
