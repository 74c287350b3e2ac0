/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"

	"github.com/suparena/typereg/untagged"
)

// defaultRegistry holds the registrations made through RegisterType.
var defaultRegistry = untagged.NewTypeReg[string]()

// RegisterType registers T as the type of values stored under key in the
// default registry.
// If a type is already registered for the given key, it panics to prevent accidental overrides.
func RegisterType[T any](key string) {
	if err := untagged.TryRegister[T](defaultRegistry, key); err != nil {
		panic(fmt.Sprintf("type registry: %v", err))
	}
}

// Default returns the registry populated by RegisterType.
func Default() *untagged.TypeReg[string] {
	return defaultRegistry
}
