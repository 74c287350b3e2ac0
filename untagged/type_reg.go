/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"fmt"
	"sync"

	"github.com/suparena/typereg/errors"
)

// ValueDecoder decodes the value a map cursor is positioned on into v,
// which is always a non-nil pointer.
type ValueDecoder interface {
	Decode(v any) error
}

// DecodeFunc decodes exactly one value from d and returns it boxed.
type DecodeFunc func(d ValueDecoder) (BoxDt, error)

type registration struct {
	decode   DecodeFunc
	typeName TypeName
}

// TypeReg maps keys to the concrete type their values decode into.
//
// A TypeReg is usually populated once and then only read; readers may share
// it across goroutines.
type TypeReg[K comparable] struct {
	mu      sync.RWMutex
	entries map[K]registration
	keys    []K
}

// NewTypeReg returns an empty registry.
func NewTypeReg[K comparable]() *TypeReg[K] {
	return &TypeReg[K]{
		entries: make(map[K]registration),
	}
}

// Register records that values under key decode into T. A previous
// registration for key is replaced.
func Register[T any, K comparable](r *TypeReg[K], key K) {
	r.set(key, registration{decode: decodeAs[T], typeName: TypeNameOf[T]()}, false)
}

// TryRegister is Register, except that it refuses to replace an existing
// registration and returns an AlreadyExistsError instead.
func TryRegister[T any, K comparable](r *TypeReg[K], key K) error {
	return r.set(key, registration{decode: decodeAs[T], typeName: TypeNameOf[T]()}, true)
}

// RegisterFunc registers a custom decode routine for key. typeName is used
// in diagnostics only. fn must consume exactly one value from its decoder.
func (r *TypeReg[K]) RegisterFunc(key K, typeName TypeName, fn DecodeFunc) {
	r.set(key, registration{decode: fn, typeName: typeName}, false)
}

func (r *TypeReg[K]) set(key K, reg registration, strict bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[K]registration)
	}
	if _, exists := r.entries[key]; exists {
		if strict {
			return errors.NewAlreadyExistsError("type registration", fmt.Sprint(key))
		}
	} else {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = reg
	return nil
}

// Lookup returns the decode routine and type name registered for key.
func (r *TypeReg[K]) Lookup(key K) (DecodeFunc, TypeName, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[key]
	if !ok {
		return nil, "", false
	}
	return reg.decode, reg.typeName, true
}

// TypeNameOf returns the type name registered for key.
func (r *TypeReg[K]) TypeNameOf(key K) (TypeName, bool) {
	_, name, ok := r.Lookup(key)
	return name, ok
}

// Keys returns the registered keys in registration order.
func (r *TypeReg[K]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of registered keys.
func (r *TypeReg[K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func decodeAs[T any](d ValueDecoder) (BoxDt, error) {
	var v T
	if err := d.Decode(&v); err != nil {
		return BoxDt{}, err
	}
	return NewBoxDt(v), nil
}
