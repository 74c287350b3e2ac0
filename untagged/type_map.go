/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"fmt"
	"slices"
	"strings"
)

// TypeMap is an ordered map from key to boxed value. Iteration follows
// insertion order, or encounter order for maps produced by DeserializeMap.
// Replacing the value of an existing key keeps the key's position.
//
// The zero TypeMap is empty and ready to use. A TypeMap is not safe for
// concurrent mutation.
type TypeMap[K comparable] struct {
	entries map[K]BoxDt
	keys    []K
}

// NewTypeMap returns an empty TypeMap.
func NewTypeMap[K comparable]() *TypeMap[K] {
	return &TypeMap[K]{
		entries: make(map[K]BoxDt),
	}
}

// Insert boxes v and stores it under key, replacing any existing value.
func Insert[T any, K comparable](m *TypeMap[K], key K, v T) {
	m.InsertRaw(key, NewBoxDt(v))
}

// Get returns the value under key if it is present and of type T.
func Get[T any, K comparable](m *TypeMap[K], key K) (T, bool) {
	box, ok := m.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return DowncastRef[T](box)
}

// GetMut returns a pointer to the value under key if it is present and of type T.
func GetMut[T any, K comparable](m *TypeMap[K], key K) (*T, bool) {
	box, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return DowncastMut[T](box)
}

// InsertRaw stores an already boxed value under key.
func (m *TypeMap[K]) InsertRaw(key K, box BoxDt) {
	if m.entries == nil {
		m.entries = make(map[K]BoxDt)
	}
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = box
}

// GetRaw returns the boxed value under key.
func (m *TypeMap[K]) GetRaw(key K) (BoxDt, bool) {
	box, ok := m.entries[key]
	return box, ok
}

// Contains reports whether key is present.
func (m *TypeMap[K]) Contains(key K) bool {
	_, ok := m.entries[key]
	return ok
}

// Remove detaches the value under key and returns it. The position of key
// is found by a linear scan, so Remove costs O(n) in the number of keys.
func (m *TypeMap[K]) Remove(key K) (BoxDt, bool) {
	box, ok := m.entries[key]
	if !ok {
		return BoxDt{}, false
	}
	delete(m.entries, key)
	if i := slices.Index(m.keys, key); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return box, true
}

// Len returns the number of entries.
func (m *TypeMap[K]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in map order.
func (m *TypeMap[K]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Range calls fn for each entry in order until fn returns false.
func (m *TypeMap[K]) Range(fn func(key K, value BoxDt) bool) {
	for _, k := range m.keys {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}

// Iter returns an iterator positioned before the first entry. Each call
// starts a new pass over the map. The map must not be modified while an
// iterator is in use.
func (m *TypeMap[K]) Iter() *Iter[K] {
	return &Iter[K]{m: m, i: -1}
}

// Iter walks the entries of a TypeMap in order.
//
//	it := m.Iter()
//	for it.Next() {
//	    fmt.Println(it.Key(), it.Value())
//	}
type Iter[K comparable] struct {
	m *TypeMap[K]
	i int
}

// Next advances to the next entry and reports whether there is one.
func (it *Iter[K]) Next() bool {
	if it.i < len(it.m.keys) {
		it.i++
	}
	return it.i < len(it.m.keys)
}

func (it *Iter[K]) valid() bool {
	return it.i >= 0 && it.i < len(it.m.keys)
}

// Key returns the key of the current entry. Before the first call to Next
// and after Next returns false it returns the zero key.
func (it *Iter[K]) Key() K {
	if !it.valid() {
		var zero K
		return zero
	}
	return it.m.keys[it.i]
}

// Value returns the boxed value of the current entry, or an empty BoxDt
// when the iterator is not positioned on an entry.
func (it *Iter[K]) Value() BoxDt {
	if !it.valid() {
		return BoxDt{}
	}
	return it.m.entries[it.m.keys[it.i]]
}

// Clone returns a deep copy of the map, cloning every value.
func (m *TypeMap[K]) Clone() *TypeMap[K] {
	out := &TypeMap[K]{
		entries: make(map[K]BoxDt, len(m.entries)),
		keys:    make([]K, len(m.keys)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.entries {
		out.entries[k] = v.Clone()
	}
	return out
}

// Equal reports whether both maps hold the same keys with equal values of
// the same concrete types. Order is not compared.
func (m *TypeMap[K]) Equal(other *TypeMap[K]) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, v := range m.entries {
		o, ok := other.entries[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// GoString formats the map with the debug form of every value.
func (m *TypeMap[K]) GoString() string {
	var b strings.Builder
	b.WriteString("TypeMap{")
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%#v: %#v", k, m.entries[k])
	}
	b.WriteString("}")
	return b.String()
}

func (m *TypeMap[K]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", k, m.entries[k])
	}
	b.WriteString("}")
	return b.String()
}
