// Package orderedmap provides a map that preserves insertion order of its
// keys, used everywhere the document model needs a map whose iteration
// order must match the order keys appeared in the source document (paths,
// components, properties, media types, ...). Field order is not guaranteed
// to be bit-identical to the source after a round trip (spec Non-goals),
// but passes that only read or reorder within the same map must not
// otherwise scramble it.
package orderedmap

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// element is a single key/value slot. Stored by pointer so Set can mutate
// a value in place without disturbing position in the backing slice.
type element[K comparable, V any] struct {
	key   K
	value V
}

// Map is an insertion-ordered map from K to V. The zero value is an empty
// map ready to use; New returns a pointer to one.
type Map[K comparable, V any] struct {
	index map[K]*element[K, V]
	order []*element[K, V]
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		index: make(map[K]*element[K, V]),
		order: make([]*element[K, V], 0),
	}
}

func (m *Map[K, V]) ensureInit() {
	if m.index == nil {
		m.index = make(map[K]*element[K, V])
	}
}

// Len returns the number of entries. Nil-safe.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Set inserts key/value, or updates value in place if key already exists
// (preserving its original position).
func (m *Map[K, V]) Set(key K, value V) {
	m.ensureInit()
	if existing, ok := m.index[key]; ok {
		existing.value = value
		return
	}
	e := &element[K, V]{key: key, value: value}
	m.index[key] = e
	m.order = append(m.order, e)
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	e, ok := m.index[key]
	if !ok {
		return zero, false
	}
	return e.value, true
}

// GetOrZero returns the value for key, or the zero value if absent.
func (m *Map[K, V]) GetOrZero(key K) V {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Delete removes key, if present.
func (m *Map[K, V]) Delete(key K) {
	if m == nil {
		return
	}
	e, ok := m.index[key]
	if !ok {
		return
	}
	delete(m.index, key)
	i := slices.Index(m.order, e)
	if i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// All iterates key/value pairs in insertion order. Safe against mutation
// during iteration: it snapshots the order slice first.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		snapshot := make([]*element[K, V], len(m.order))
		copy(snapshot, m.order)
		for _, e := range snapshot {
			if _, exists := m.index[e.key]; exists {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// Keys iterates keys in insertion order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values iterates values in insertion order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// MarshalJSON renders the map as a JSON object preserving key order.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	i := 0
	for _, e := range m.order {
		ks, err := json.Marshal(fmt.Sprintf("%v", e.key))
		if err != nil {
			return nil, err
		}
		vs, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, ks...)
		buf = append(buf, ':')
		buf = append(buf, vs...)
		i++
	}
	buf = append(buf, '}')
	return buf, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, preserving the order keys
// appear in the source mapping node.
func (m *Map[K, V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("orderedmap: cannot unmarshal %s into map", value.ShortTag())
	}

	m.index = make(map[K]*element[K, V])
	m.order = make([]*element[K, V], 0, len(value.Content)/2)

	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]

		var key K
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("orderedmap: decode key: %w", err)
		}
		var val V
		if err := valNode.Decode(&val); err != nil {
			return fmt.Errorf("orderedmap: decode value for key %v: %w", key, err)
		}

		e := &element[K, V]{key: key, value: val}
		m.index[key] = e
		m.order = append(m.order, e)
	}

	return nil
}

// MarshalYAML implements yaml.Marshaler, preserving key order.
func (m *Map[K, V]) MarshalYAML() (interface{}, error) {
	if m == nil {
		return nil, nil
	}

	content := make([]*yaml.Node, 0, len(m.order)*2)
	for _, e := range m.order {
		var keyNode yaml.Node
		if err := keyNode.Encode(e.key); err != nil {
			return nil, err
		}
		var valNode yaml.Node
		if err := valNode.Encode(e.value); err != nil {
			return nil, err
		}
		content = append(content, &keyNode, &valNode)
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: content}, nil
}
