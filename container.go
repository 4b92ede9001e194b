package conform

import (
	"bytes"
	"fmt"
)

type (
	// List is an ordered sequence of values.
	List struct{ items []Value }
	// Tuple is an ordered sequence with a fixed arity once built.
	Tuple struct{ items []Value }
	// Set is an unordered, deduplicated collection. Inserting a value equal
	// to an existing member is a no-op; insertion order is remembered only
	// so iteration and printing stay deterministic.
	Set struct {
		members map[any]Value
		order   []any
	}
	// Map is an associative container. Keys are deduplicated the same way
	// set members are, and iterate in insertion order so that checking and
	// printing are deterministic.
	Map struct {
		entries map[any]Value
		keys    map[any]Value
		order   []any
	}
)

func NewList(items ...Value) *List {
	return &List{items: normalizeItems(items)}
}

func NewTuple(items ...Value) *Tuple {
	return &Tuple{items: normalizeItems(items)}
}

func NewSet(items ...Value) *Set {
	set := &Set{members: map[any]Value{}}
	for _, item := range items {
		set.Insert(item)
	}
	return set
}

func NewMap() *Map {
	return &Map{entries: map[any]Value{}, keys: map[any]Value{}}
}

func normalizeItems(items []Value) []Value {
	out := make([]Value, len(items))
	for i, item := range items {
		if item == nil {
			item = &Nil{}
		}
		out[i] = item
	}
	return out
}

func (l *List) Kind() Kind     { return KindList }
func (l *List) Val() any       { return l.items }
func (l *List) Len() int       { return len(l.items) }
func (l *List) Items() []Value { return l.items }
func (l *List) String() string { return printItems("[", l.items, "]") }

func (t *Tuple) Kind() Kind     { return KindTuple }
func (t *Tuple) Val() any       { return t.items }
func (t *Tuple) Len() int       { return len(t.items) }
func (t *Tuple) Items() []Value { return t.items }
func (t *Tuple) String() string { return printItems("(", t.items, ")") }

func (s *Set) Kind() Kind { return KindSet }
func (s *Set) Val() any   { return s.Items() }
func (s *Set) Len() int   { return len(s.order) }

func (s *Set) Insert(item Value) {
	if item == nil {
		item = &Nil{}
	}
	key := toKey(item)
	if _, exists := s.members[key]; exists {
		return
	}
	s.members[key] = item
	s.order = append(s.order, key)
}

func (s *Set) Contains(item Value) bool {
	_, exists := s.members[toKey(item)]
	return exists
}

func (s *Set) Items() []Value {
	items := make([]Value, len(s.order))
	for i, key := range s.order {
		items[i] = s.members[key]
	}
	return items
}

func (s *Set) String() string { return printItems("{", s.Items(), "}") }

func (m *Map) Kind() Kind { return KindMap }
func (m *Map) Val() any   { return m.entries }
func (m *Map) Len() int   { return len(m.order) }

// Insert sets key to val, replacing the value of an equal existing key.
func (m *Map) Insert(key, val Value) {
	if key == nil {
		key = &Nil{}
	}
	if val == nil {
		val = &Nil{}
	}
	hashed := toKey(key)
	if _, exists := m.keys[hashed]; !exists {
		m.order = append(m.order, hashed)
		m.keys[hashed] = key
	}
	m.entries[hashed] = val
}

func (m *Map) Get(key Value) (Value, bool) {
	val, exists := m.entries[toKey(key)]
	return val, exists
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []Value {
	keys := make([]Value, len(m.order))
	for i, hashed := range m.order {
		keys[i] = m.keys[hashed]
	}
	return keys
}

func (m *Map) String() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "{")
	for i, hashed := range m.order {
		if i > 0 {
			fmt.Fprint(&buf, ",")
		}
		fmt.Fprintf(&buf, " %s = %s", m.keys[hashed], m.entries[hashed])
	}
	fmt.Fprint(&buf, " }")
	return buf.String()
}

func printItems(open string, items []Value, closing string) string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, open)
	for i, item := range items {
		if i > 0 {
			fmt.Fprint(&buf, ",")
		}
		fmt.Fprintf(&buf, " %s", item)
	}
	fmt.Fprint(&buf, " "+closing)
	return buf.String()
}
