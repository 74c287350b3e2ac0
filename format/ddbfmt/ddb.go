/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ddbfmt reads and writes untagged type maps as DynamoDB attribute
// value maps.
//
// DynamoDB maps carry no key order, so a decoded TypeMap lists its keys in
// lexical order. Values are converted with the attributevalue package;
// types that need a custom representation implement
// attributevalue.Marshaler and attributevalue.Unmarshaler.
package ddbfmt

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/typereg/untagged"
)

// MapAccess walks a DynamoDB item in lexical key order.
type MapAccess[K comparable] struct {
	item map[string]types.AttributeValue
	keys []string
	pos  int
}

// NewMapAccess returns a cursor over item.
func NewMapAccess[K comparable](item map[string]types.AttributeValue) *MapAccess[K] {
	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &MapAccess[K]{item: item, keys: keys}
}

// NextKey returns the next attribute name converted to K.
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

// NextValue returns a decoder for the current attribute and advances.
func (a *MapAccess[K]) NextValue() untagged.ValueDecoder {
	if a.pos >= len(a.keys) {
		return untagged.DecoderFunc(func(any) error {
			return fmt.Errorf("ddb: no value to decode")
		})
	}
	av := a.item[a.keys[a.pos]]
	a.pos++
	return untagged.DecoderFunc(func(v any) error {
		return attributevalue.Unmarshal(av, v)
	})
}

// Decode decodes item through reg.
func Decode[K comparable](reg *untagged.TypeReg[K], item map[string]types.AttributeValue) (*untagged.TypeMap[K], error) {
	return reg.DeserializeMap(NewMapAccess[K](item))
}

// DecodeAttributeValue decodes a map attribute (M) through reg.
func DecodeAttributeValue[K comparable](reg *untagged.TypeReg[K], av types.AttributeValue) (*untagged.TypeMap[K], error) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberM:
		return Decode(reg, tv.Value)
	case *types.AttributeValueMemberNULL:
		return untagged.NewTypeMap[K](), nil
	default:
		return nil, fmt.Errorf("ddb: expected a map attribute, got %T", av)
	}
}

// Encoder collects TypeMap entries into a DynamoDB item.
type Encoder[K comparable] struct {
	Item map[string]types.AttributeValue
}

// EncodeEntry marshals value with attributevalue.Marshal.
func (e *Encoder[K]) EncodeEntry(key K, value untagged.BoxDt) error {
	name, err := untagged.FormatKey(key)
	if err != nil {
		return err
	}
	av, err := attributevalue.Marshal(value.Value())
	if err != nil {
		return err
	}
	e.Item[name] = av
	return nil
}

// Encode converts m to a DynamoDB item.
func Encode[K comparable](m *untagged.TypeMap[K]) (map[string]types.AttributeValue, error) {
	enc := &Encoder[K]{Item: make(map[string]types.AttributeValue, m.Len())}
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	return enc.Item, nil
}

// EncodeAttributeValue converts m to a map attribute (M).
func EncodeAttributeValue[K comparable](m *untagged.TypeMap[K]) (types.AttributeValue, error) {
	item, err := Encode(m)
	if err != nil {
		return nil, err
	}
	return &types.AttributeValueMemberM{Value: item}, nil
}
