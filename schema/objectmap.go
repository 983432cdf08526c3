package schema

import "fmt"

// Named is implemented by every object that lives in a name-keyed
// collection.
type Named interface {
	LocalName() string
}

// ObjectMap is an order-preserving collection keyed by logical name.
// Insertion order drives rendering (CREATE TABLE column order) while
// lookups and diffing go by name only.
type ObjectMap[T Named] struct {
	names []string
	items map[string]T
}

// NewObjectMap builds a map from items in order. A repeated name replaces
// the earlier item in place.
func NewObjectMap[T Named](items ...T) *ObjectMap[T] {
	m := &ObjectMap[T]{items: make(map[string]T, len(items))}
	for _, item := range items {
		name := item.LocalName()
		if _, ok := m.items[name]; !ok {
			m.names = append(m.names, name)
		}
		m.items[name] = item
	}
	return m
}

// Add appends an item, failing on a duplicate name.
func (m *ObjectMap[T]) Add(item T) error {
	name := item.LocalName()
	if _, ok := m.items[name]; ok {
		return fmt.Errorf("item already in collection: %s", name)
	}
	m.names = append(m.names, name)
	m.items[name] = item
	return nil
}

// Get looks up an item by logical name.
func (m *ObjectMap[T]) Get(name string) (T, bool) {
	item, ok := m.items[name]
	return item, ok
}

// Has reports whether the name is present.
func (m *ObjectMap[T]) Has(name string) bool {
	_, ok := m.items[name]
	return ok
}

// Names returns all names in insertion order.
func (m *ObjectMap[T]) Names() []string {
	return m.names
}

// Values returns all items in insertion order.
func (m *ObjectMap[T]) Values() []T {
	values := make([]T, 0, len(m.names))
	for _, name := range m.names {
		values = append(values, m.items[name])
	}
	return values
}

// Len returns the number of items.
func (m *ObjectMap[T]) Len() int {
	return len(m.names)
}

// reversed returns a slice of items in reverse insertion order, used when
// dropping objects so dependents go before their dependencies.
func reversed[T Named](m *ObjectMap[T]) []T {
	values := m.Values()
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
	return values
}
