/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package pbfmt reads and writes untagged type maps as protobuf Struct
// messages.
//
// Struct fields carry no order, so a decoded TypeMap lists its keys in
// lexical order. Values cross the Struct boundary through their JSON form;
// numbers are doubles, so integers beyond 2^53 lose precision.
package pbfmt

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/suparena/typereg/untagged"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MapAccess walks the fields of a Struct in lexical key order.
type MapAccess[K comparable] struct {
	fields map[string]*structpb.Value
	keys   []string
	pos    int
}

// NewMapAccess returns a cursor over s.
func NewMapAccess[K comparable](s *structpb.Struct) *MapAccess[K] {
	fields := s.GetFields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &MapAccess[K]{fields: fields, keys: keys}
}

// NextKey returns the next field name converted to K.
func (a *MapAccess[K]) NextKey() (K, bool, error) {
	if a.pos >= len(a.keys) {
		var zero K
		return zero, false, nil
	}
	key, err := untagged.ParseKey[K](a.keys[a.pos])
	if err != nil {
		return key, false, err
	}
	return key, true, nil
}

// NextValue returns a decoder for the current field and advances.
func (a *MapAccess[K]) NextValue() untagged.ValueDecoder {
	if a.pos >= len(a.keys) {
		return untagged.DecoderFunc(func(any) error {
			return fmt.Errorf("pb: no value to decode")
		})
	}
	pv := a.fields[a.keys[a.pos]]
	a.pos++
	return untagged.DecoderFunc(func(v any) error {
		data, err := protojson.Marshal(pv)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, v)
	})
}

// Decode decodes s through reg.
func Decode[K comparable](reg *untagged.TypeReg[K], s *structpb.Struct) (*untagged.TypeMap[K], error) {
	return reg.DeserializeMap(NewMapAccess[K](s))
}

// Unmarshal decodes a binary encoded Struct through reg.
func Unmarshal[K comparable](reg *untagged.TypeReg[K], data []byte) (*untagged.TypeMap[K], error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("pb: unmarshal struct: %w", err)
	}
	return Decode(reg, &s)
}

// Encoder collects TypeMap entries into a Struct.
type Encoder[K comparable] struct {
	Struct *structpb.Struct
}

// EncodeEntry converts value through its JSON form.
func (e *Encoder[K]) EncodeEntry(key K, value untagged.BoxDt) error {
	name, err := untagged.FormatKey(key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	pv := &structpb.Value{}
	if err := protojson.Unmarshal(data, pv); err != nil {
		return err
	}
	e.Struct.Fields[name] = pv
	return nil
}

// Encode converts m to a Struct.
func Encode[K comparable](m *untagged.TypeMap[K]) (*structpb.Struct, error) {
	enc := &Encoder[K]{Struct: &structpb.Struct{Fields: make(map[string]*structpb.Value, m.Len())}}
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	return enc.Struct, nil
}

// Marshal converts m to a binary encoded Struct.
func Marshal[K comparable](m *untagged.TypeMap[K]) ([]byte, error) {
	s, err := Encode(m)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}
