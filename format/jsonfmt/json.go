/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package jsonfmt reads and writes untagged type maps as JSON objects.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/suparena/typereg/untagged"
)

// MapAccess reads a JSON object from a token stream. Object keys are
// converted to K with untagged.ParseKey.
type MapAccess[K comparable] struct {
	dec     *json.Decoder
	started bool
	done    bool
}

// NewMapAccess returns a cursor over the JSON object read from r.
func NewMapAccess[K comparable](r io.Reader) *MapAccess[K] {
	return &MapAccess[K]{dec: json.NewDecoder(r)}
}

// NextKey returns the next object key.
func (a *MapAccess[K]) NextKey() (K, bool, error) {
	var key K
	if a.done {
		return key, false, nil
	}
	if !a.started {
		tok, err := a.dec.Token()
		if err != nil {
			return key, false, err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return key, false, fmt.Errorf("expected a JSON object, found %v", tok)
		}
		a.started = true
	}
	if !a.dec.More() {
		if _, err := a.dec.Token(); err != nil {
			return key, false, err
		}
		a.done = true
		return key, false, nil
	}

	tok, err := a.dec.Token()
	if err != nil {
		return key, false, err
	}
	s, ok := tok.(string)
	if !ok {
		return key, false, fmt.Errorf("expected an object key, found %v", tok)
	}
	key, err = untagged.ParseKey[K](s)
	if err != nil {
		return key, false, err
	}
	return key, true, nil
}

// NextValue returns the underlying decoder, positioned on the value.
func (a *MapAccess[K]) NextValue() untagged.ValueDecoder {
	return a.dec
}

// finish checks that nothing but whitespace follows the object.
func (a *MapAccess[K]) finish() error {
	if _, err := a.dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// Decode decodes the JSON object in data through reg.
func Decode[K comparable](reg *untagged.TypeReg[K], data []byte) (*untagged.TypeMap[K], error) {
	return DecodeReader(reg, bytes.NewReader(data))
}

// DecodeReader decodes a single JSON object read from r through reg.
func DecodeReader[K comparable](reg *untagged.TypeReg[K], r io.Reader) (*untagged.TypeMap[K], error) {
	access := NewMapAccess[K](r)
	m, err := reg.DeserializeMap(access)
	if err != nil {
		return nil, err
	}
	if err := access.finish(); err != nil {
		return nil, fmt.Errorf("type map: %w", err)
	}
	return m, nil
}

// Encode writes m as a compact JSON object in map order.
func Encode[K comparable](m *untagged.TypeMap[K]) ([]byte, error) {
	return json.Marshal(m)
}

// EncodeIndent writes m as an indented JSON object followed by a newline.
func EncodeIndent[K comparable](w io.Writer, m *untagged.TypeMap[K], indent string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(m)
}
