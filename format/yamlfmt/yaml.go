/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package yamlfmt reads and writes untagged type maps as YAML.
package yamlfmt

import (
	"errors"
	"fmt"
	"io"

	"github.com/suparena/typereg/untagged"
	"gopkg.in/yaml.v3"
)

// MapAccess walks the key/value pairs of a YAML mapping node.
type MapAccess[K comparable] struct {
	node *yaml.Node
	pos  int
}

// NewMapAccess returns a cursor over node. Document and alias nodes are
// unwrapped; an empty document reads as an empty map.
func NewMapAccess[K comparable](node *yaml.Node) (*MapAccess[K], error) {
	n, err := mappingNode(node)
	if err != nil {
		return nil, err
	}
	return &MapAccess[K]{node: n}, nil
}

func mappingNode(node *yaml.Node) (*yaml.Node, error) {
	n := node
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil, nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		case yaml.MappingNode:
			return n, nil
		case 0:
			return nil, nil
		case yaml.ScalarNode:
			if n.Tag == "!!null" {
				return nil, nil
			}
			return nil, fmt.Errorf("line %d: expected a YAML mapping, found scalar %q", n.Line, n.Value)
		default:
			return nil, fmt.Errorf("line %d: expected a YAML mapping, found %s", n.Line, n.ShortTag())
		}
	}
	return nil, nil
}

// NextKey decodes the next mapping key into K.
func (a *MapAccess[K]) NextKey() (K, bool, error) {
	var key K
	if a.node == nil || a.pos+1 >= len(a.node.Content) {
		return key, false, nil
	}
	keyNode := a.node.Content[a.pos]
	if err := keyNode.Decode(&key); err != nil {
		return key, false, fmt.Errorf("line %d: %w", keyNode.Line, err)
	}
	return key, true, nil
}

// NextValue returns the value node of the last key and advances the cursor.
func (a *MapAccess[K]) NextValue() untagged.ValueDecoder {
	if a.node == nil || a.pos+1 >= len(a.node.Content) {
		return untagged.DecoderFunc(func(any) error {
			return errors.New("yaml: no value to decode")
		})
	}
	value := a.node.Content[a.pos+1]
	a.pos += 2
	return value
}

// Decode parses data as a YAML document and decodes it through reg.
func Decode[K comparable](reg *untagged.TypeReg[K], data []byte) (*untagged.TypeMap[K], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return DecodeNode(reg, &doc)
}

// DecodeReader decodes the first YAML document read from r.
func DecodeReader[K comparable](reg *untagged.TypeReg[K], r io.Reader) (*untagged.TypeMap[K], error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return DecodeNode(reg, &doc)
}

// DecodeNode decodes an already parsed YAML node through reg.
func DecodeNode[K comparable](reg *untagged.TypeReg[K], node *yaml.Node) (*untagged.TypeMap[K], error) {
	access, err := NewMapAccess[K](node)
	if err != nil {
		return nil, err
	}
	return reg.DeserializeMap(access)
}

// Encode writes m as a YAML document.
func Encode[K comparable](m *untagged.TypeMap[K]) ([]byte, error) {
	return yaml.Marshal(m)
}

// EncodeTo writes m as a YAML document to w.
func EncodeTo[K comparable](w io.Writer, m *untagged.TypeMap[K]) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
