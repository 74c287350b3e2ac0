/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/untagged"
)

// Registrar registers one concrete type under key in r.
type Registrar func(r *untagged.TypeReg[string], key string)

// Of returns the Registrar for T.
func Of[T any]() Registrar {
	return func(r *untagged.TypeReg[string], key string) {
		untagged.Register[T](r, key)
	}
}

var (
	namedMu    sync.RWMutex
	namedTypes = map[string]Registrar{
		"u8":       Of[uint8](),
		"u16":      Of[uint16](),
		"u32":      Of[uint32](),
		"u64":      Of[uint64](),
		"i8":       Of[int8](),
		"i16":      Of[int16](),
		"i32":      Of[int32](),
		"i64":      Of[int64](),
		"f32":      Of[float32](),
		"f64":      Of[float64](),
		"bool":     Of[bool](),
		"string":   Of[string](),
		"bytes":    Of[[]byte](),
		"strings":  Of[[]string](),
		"map":      Of[map[string]any](),
		"any":      Of[any](),
		"datetime": Of[strfmt.DateTime](),
		"date":     Of[strfmt.Date](),
		"duration": Of[strfmt.Duration](),
		"uuid":     Of[strfmt.UUID](),
		"email":    Of[strfmt.Email](),
	}
)

// RegisterNamed makes a type available to configuration under name.
// Registering an existing name replaces it.
func RegisterNamed(name string, fn Registrar) {
	namedMu.Lock()
	defer namedMu.Unlock()
	namedTypes[name] = fn
}

// TypeNames lists the names known to RegisterNamedType, sorted.
func TypeNames() []string {
	namedMu.RLock()
	defer namedMu.RUnlock()

	names := make([]string, 0, len(namedTypes))
	for name := range namedTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterNamedType registers the type known as typeName under key in r.
func RegisterNamedType(r *untagged.TypeReg[string], key, typeName string) error {
	namedMu.RLock()
	fn, ok := namedTypes[typeName]
	namedMu.RUnlock()

	if !ok {
		return errors.NewValidationError(key, fmt.Sprintf("unknown type name %q", typeName))
	}
	fn(r, key)
	return nil
}

// FromTypeNames builds a registry from key to type name pairs. Keys are
// registered in lexical order.
func FromTypeNames(names map[string]string) (*untagged.TypeReg[string], error) {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := untagged.NewTypeReg[string]()
	for _, k := range keys {
		if err := RegisterNamedType(r, k, names[k]); err != nil {
			return nil, err
		}
	}
	return r, nil
}
