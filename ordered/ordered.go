// Package ordered provides the insertion-ordered string-keyed mapping
// that schema serialization produces. Key order is the canonical
// keyword order chosen by the serializer, so marshaling the same node
// twice yields identical bytes.
package ordered

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Map is an insertion-ordered mapping from string keys to
// JSON-representable values (string, number, boolean, []any, nested
// *Map). It implements json.Marshaler; output preserves insertion
// order with no extra whitespace.
type Map struct {
	keys []string
	vals map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{vals: map[string]any{}}
}

// Set stores v under key. Re-setting an existing key overwrites the
// value but keeps the original position.
func (m *Map) Set(key string, v any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order.
// Values are encoded with goccy/go-json, so nested *Map values recurse
// through this method.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
