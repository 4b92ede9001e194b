package conform

import (
	"fmt"
	"strings"
	"unicode"
)

type (
	typeParser struct {
		src string
		pos int
	}
	ParseError struct {
		Column int
		err    error
	}
)

func (pe *ParseError) Error() string {
	return fmt.Sprintf("type parse error at column %v: %v", pe.Column, pe.err)
}

func (pe *ParseError) Unwrap() error { return pe.err }

// ParseType builds a descriptor from its compact text form:
//
//	int, float, string, bool, nil, opaque, any
//	list[T]  set[T]  tuple[A, B]  tuple[T...]  map[K, V]
//	A|B unions, bare list/set/tuple/map for unconstrained containers
//
// Names the grammar does not know degrade to the permissive any rather than
// failing, so building a descriptor from a well-formed expression never
// rejects. Malformed syntax is an error carrying the offending column.
func ParseType(src string) (Descriptor, error) {
	parser := &typeParser{src: src}
	desc, err := parser.union()
	if err != nil {
		return nil, err
	}
	parser.skipSpace()
	if !parser.done() {
		return nil, parser.errf("unexpected %q", parser.peek())
	}
	return desc, nil
}

func (p *typeParser) union() (Descriptor, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	opts := []Descriptor{first}
	for p.accept('|') {
		opt, err := p.term()
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if len(opts) == 1 {
		return opts[0], nil
	}
	return Union(opts...), nil
}

func (p *typeParser) term() (Descriptor, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	switch name {
	case "list", "set":
		elem, err := p.elemConstraint()
		if err != nil {
			return nil, err
		}
		if name == "set" {
			return SetOf(elem), nil
		}
		return ListOf(elem), nil
	case "map":
		if !p.accept('[') {
			return MapOf(nil, nil), nil
		}
		key, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.accept(',') {
			return nil, p.errf("map takes a key and a value type")
		}
		val, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.accept(']') {
			return nil, p.errf("expected ]")
		}
		return MapOf(key, val), nil
	case "tuple":
		return p.tuple()
	case "nil":
		return Prim(KindNil), nil
	case "bool", "boolean":
		return Prim(KindBoolean), nil
	case "int", "integer":
		return Prim(KindInteger), nil
	case "float":
		return Prim(KindFloat), nil
	case "str", "string":
		return Prim(KindString), nil
	case "opaque", "object":
		return Prim(KindOpaque), nil
	default:
		// Unrecognized names accept everything rather than rejecting calls
		// outright. "any" lands here on purpose.
		return Any(), nil
	}
}

// elemConstraint parses an optional [T] suffix; absence means the container
// kind alone is constrained.
func (p *typeParser) elemConstraint() (Descriptor, error) {
	if !p.accept('[') {
		return nil, nil
	}
	elem, err := p.union()
	if err != nil {
		return nil, err
	}
	if !p.accept(']') {
		return nil, p.errf("expected ]")
	}
	return elem, nil
}

func (p *typeParser) tuple() (Descriptor, error) {
	if !p.accept('[') {
		return TupleOf(), nil
	}
	first, err := p.union()
	if err != nil {
		return nil, err
	}
	if p.acceptEllipsis() {
		if !p.accept(']') {
			return nil, p.errf("expected ]")
		}
		return VariadicOf(first), nil
	}
	elems := []Descriptor{first}
	for p.accept(',') {
		if p.acceptEllipsis() {
			if len(elems) != 1 {
				return nil, p.errf("... must follow a single element type")
			}
			if !p.accept(']') {
				return nil, p.errf("expected ]")
			}
			return VariadicOf(first), nil
		}
		elem, err := p.union()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if !p.accept(']') {
		return nil, p.errf("expected ]")
	}
	return TupleOf(elems...), nil
}

func (p *typeParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for !p.done() && (unicode.IsLetter(p.peek()) || unicode.IsDigit(p.peek()) || p.peek() == '_') {
		p.pos++
	}
	if start == p.pos {
		if p.done() {
			return "", p.errf("expected a type name")
		}
		return "", p.errf("expected a type name, found %q", p.peek())
	}
	return p.src[start:p.pos], nil
}

func (p *typeParser) accept(ch rune) bool {
	p.skipSpace()
	if !p.done() && p.peek() == ch {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) acceptEllipsis() bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], "...") {
		p.pos += 3
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *typeParser) peek() rune { return rune(p.src[p.pos]) }
func (p *typeParser) done() bool { return p.pos >= len(p.src) }

func (p *typeParser) errf(msg string, data ...any) error {
	return &ParseError{Column: p.pos + 1, err: fmt.Errorf(msg, data...)}
}
