package conform

import "fmt"

type (
	// ViolationKind distinguishes the three terminal failure modes of
	// enforcing a contract.
	ViolationKind int
	// Violation captures every failure the enforcer can report. It carries
	// enough context that a failure is diagnosable from the message alone:
	// the offending position, the expected shape, and the actual value's
	// kind and printed form.
	Violation struct {
		Kind     ViolationKind
		Name     string
		Expected Descriptor
		Got      Value
		err      error
	}
)

const (
	// BindingError means the provided arguments could not be matched to the
	// declared parameters at all: too many values, an unknown name, a
	// duplicate binding, or a missing required parameter.
	BindingError ViolationKind = iota
	// ArgumentConformanceError means a bound argument failed its
	// descriptor. The underlying computation was never invoked.
	ArgumentConformanceError
	// ReturnConformanceError means the computation's result failed the
	// return descriptor. The computation has already run and its side
	// effects stand.
	ReturnConformanceError
)

func (k ViolationKind) String() string {
	switch k {
	case BindingError:
		return "binding error"
	case ArgumentConformanceError:
		return "argument conformance error"
	case ReturnConformanceError:
		return "return conformance error"
	default:
		return fmt.Sprintf("violation(%d)", int(k))
	}
}

func (v *Violation) Error() string {
	switch v.Kind {
	case BindingError:
		return fmt.Sprintf("cannot bind arguments: %v", v.err)
	case ReturnConformanceError:
		return fmt.Sprintf("return expected %v, got %v with value=%v", v.Expected, v.Got.Kind(), v.Got)
	default:
		return fmt.Sprintf("argument %q expected %v, got %v with value=%v", v.Name, v.Expected, v.Got.Kind(), v.Got)
	}
}

func (v *Violation) Unwrap() error { return v.err }

func newBindErr(name, format string, data ...any) *Violation {
	return &Violation{
		Kind: BindingError,
		Name: name,
		err:  fmt.Errorf(format, data...),
	}
}
