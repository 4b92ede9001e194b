// Package conform is a structural runtime type-conformance checker. Given a
// dynamic value and a declarative descriptor of the shape it should have,
// Matches decides whether the value conforms, recursively, without running
// any user code. A Contract wraps that check around a computation: bind the
// arguments, apply defaults, check each one against its declared shape,
// invoke the computation exactly once, and check what it returned.
//
//	desc, _ := conform.ParseType("list[int]")
//	conform.Matches(conform.ToValue([]int{1, 2, 3}), desc) // true
//	conform.Matches(conform.ToValue("nope"), desc)         // false
//
// Descriptors come from three places: the constructor functions (Prim,
// Union, ListOf, ...), the ParseType text grammar, or Describe/Wrap which
// read a Go function's own signature the way a dynamic language would read
// its annotations.
//
// Two policies worth knowing before trusting the checker:
//
//   - Kinds never widen. A boolean does not satisfy an integer descriptor
//     and an integer does not satisfy a float descriptor.
//   - Any always matches. Annotations the translators cannot interpret
//     degrade to Any instead of failing, which keeps unrecognized types from
//     blocking calls but means such values are not validated at all.
package conform
