/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MapEncoder receives the entries of a TypeMap in order. Implementations
// write value with its own representation and no type information.
type MapEncoder[K comparable] interface {
	EncodeEntry(key K, value BoxDt) error
}

// Encode feeds every entry to enc in map order.
func (m *TypeMap[K]) Encode(enc MapEncoder[K]) error {
	for _, k := range m.keys {
		if err := enc.EncodeEntry(k, m.entries[k]); err != nil {
			return fmt.Errorf("encode entry %v: %w", k, err)
		}
	}
	return nil
}

// MarshalJSON writes the map as a JSON object in map order.
func (m *TypeMap[K]) MarshalJSON() ([]byte, error) {
	enc := &jsonObjectEncoder[K]{}
	enc.buf.WriteByte('{')
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	enc.buf.WriteByte('}')
	return enc.buf.Bytes(), nil
}

// MarshalYAML returns an ordered mapping node.
func (m *TypeMap[K]) MarshalYAML() (any, error) {
	enc := &yamlNodeEncoder[K]{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	return enc.node, nil
}

type jsonObjectEncoder[K comparable] struct {
	buf bytes.Buffer
	n   int
}

func (e *jsonObjectEncoder[K]) EncodeEntry(key K, value BoxDt) error {
	s, err := FormatKey(key)
	if err != nil {
		return err
	}
	k, err := json.Marshal(s)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if e.n > 0 {
		e.buf.WriteByte(',')
	}
	e.buf.Write(k)
	e.buf.WriteByte(':')
	e.buf.Write(v)
	e.n++
	return nil
}

type yamlNodeEncoder[K comparable] struct {
	node *yaml.Node
}

func (e *yamlNodeEncoder[K]) EncodeEntry(key K, value BoxDt) error {
	var k, v yaml.Node
	if err := k.Encode(key); err != nil {
		return err
	}
	if err := v.Encode(value.Value()); err != nil {
		return err
	}
	e.node.Content = append(e.node.Content, &k, &v)
	return nil
}
