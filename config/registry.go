/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"

	tserrors "github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/registry"
	"github.com/suparena/typereg/untagged"
	"gopkg.in/yaml.v3"
)

// RegistryFile is the YAML layout of a registry definition:
//
//	types:
//	  one: u32
//	  two: u64
//	index_map:
//	  PK: "SETTINGS#{ID}"
//	  SK: "SETTINGS"
//
// Type names are those known to registry.RegisterNamedType.
type RegistryFile struct {
	Types    yaml.Node         `yaml:"types"`
	IndexMap map[string]string `yaml:"index_map,omitempty"`
}

// LoadRegistry reads a registry definition from path.
func LoadRegistry(path string) (*untagged.TypeReg[string], *RegistryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read registry file: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry builds a registry from a YAML registry definition. Keys are
// registered in file order.
func ParseRegistry(data []byte) (*untagged.TypeReg[string], *RegistryFile, error) {
	var file RegistryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse registry file: %w", err)
	}

	reg := untagged.NewTypeReg[string]()
	if file.Types.Kind == 0 {
		return reg, &file, nil
	}
	if file.Types.Kind != yaml.MappingNode {
		return nil, nil, tserrors.NewValidationError("types", "must be a mapping of key to type name")
	}

	content := file.Types.Content
	for i := 0; i+1 < len(content); i += 2 {
		var key, typeName string
		if err := content[i].Decode(&key); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", content[i].Line, err)
		}
		if err := content[i+1].Decode(&typeName); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", content[i+1].Line, err)
		}
		if err := registry.RegisterNamedType(reg, key, typeName); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", content[i+1].Line, err)
		}
	}
	return reg, &file, nil
}
