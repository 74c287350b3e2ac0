/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"fmt"

	"github.com/suparena/typereg/errors"
)

// MapAccess is a sequential cursor over a serialized map. Each key returned
// by NextKey must be followed by exactly one NextValue call.
type MapAccess[K comparable] interface {
	// NextKey returns the next key, or ok == false when the map is exhausted.
	NextKey() (key K, ok bool, err error)
	// NextValue returns a decoder for the value of the last key.
	NextValue() ValueDecoder
}

// DeserializeMap reads every entry of access, decoding each value as the
// type registered for its key.
//
// The result preserves the order in which keys were encountered. A key
// without a registration fails with an UnknownKeyError, a value that does
// not decode fails with a ValueDecodeError; in both cases no map is
// returned. A key that appears twice keeps its first position and its last
// value.
func (r *TypeReg[K]) DeserializeMap(access MapAccess[K]) (*TypeMap[K], error) {
	m := NewTypeMap[K]()
	for {
		key, ok, err := access.NextKey()
		if err != nil {
			return nil, fmt.Errorf("type map: failed to read key: %w", err)
		}
		if !ok {
			return m, nil
		}

		decode, typeName, found := r.Lookup(key)
		if !found {
			return nil, errors.NewUnknownKeyError(key)
		}

		box, err := decode(access.NextValue())
		if err != nil {
			return nil, errors.NewValueDecodeError(key, string(typeName), err)
		}
		if box.IsEmpty() {
			return nil, errors.NewValueDecodeError(key, string(typeName), fmt.Errorf("decode routine returned no value"))
		}
		m.InsertRaw(key, box)
	}
}

// DecoderFunc adapts a function to ValueDecoder.
type DecoderFunc func(v any) error

// Decode calls f(v).
func (f DecoderFunc) Decode(v any) error {
	return f(v)
}
