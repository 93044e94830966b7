// Package ident provides case-insensitive identifier comparison, the
// Identifier value the parser attaches to object references, and a small
// case-insensitive map type built on top of it. Split out from the parser
// and function registry so both can depend on the same normalization rules
// without importing each other.
package ident

import "strings"

// Normalize lower-cases name for case-insensitive storage and comparison.
// Access identifiers, keywords, and function names are all case-insensitive.
func Normalize(name string) string {
	return strings.ToLower(name)
}

// Equal reports whether a and b are the same identifier, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Map is a case-insensitive string-keyed map, used by the function
// registry and anywhere else a host needs to look values up by Access
// identifier without worrying about the caller's casing.
type Map[V any] struct {
	m map[string]entry[V]
}

type entry[V any] struct {
	originalKey string
	value       V
}

// NewMap creates an empty case-insensitive Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{m: make(map[string]entry[V])}
}

// Set stores value under key, preserving key's original casing for Keys().
func (m *Map[V]) Set(key string, value V) {
	m.m[Normalize(key)] = entry[V]{originalKey: key, value: value}
}

// Get looks up key case-insensitively.
func (m *Map[V]) Get(key string) (V, bool) {
	e, ok := m.m[Normalize(key)]
	return e.value, ok
}

// Delete removes key, if present.
func (m *Map[V]) Delete(key string) {
	delete(m.m, Normalize(key))
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.m)
}

// Keys returns the original-cased keys in unspecified order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.m))
	for _, e := range m.m {
		keys = append(keys, e.originalKey)
	}
	return keys
}
