package args

import "strings"

// Map is an insertion-ordered mapping of argument names to values.
// Order is insignificant to the wire contract but stable, so encoding
// the same Map twice yields identical output.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Set stores v under key and returns m for chaining. Keys are trimmed
// of surrounding whitespace; a key empty after trimming is dropped.
// Setting an existing key replaces its value in place, keeping the
// original position.
func (m *Map) Set(key string, v Value) *Map {
	key = strings.TrimSpace(key)
	if key == "" {
		return m
	}

	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v

	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Delete removes key from the map.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}

	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}
