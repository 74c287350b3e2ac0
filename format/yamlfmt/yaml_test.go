/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package yamlfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/untagged"
	"gopkg.in/yaml.v3"
)

type endpoint struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func newRegistry() *untagged.TypeReg[string] {
	reg := untagged.NewTypeReg[string]()
	untagged.Register[uint32](reg, "one")
	untagged.Register[uint64](reg, "two")
	untagged.Register[endpoint](reg, "endpoint")
	untagged.Register[[]string](reg, "tags")
	return reg
}

func TestDecode(t *testing.T) {
	t.Run("ConcreteScenario", func(t *testing.T) {
		m, err := Decode(newRegistry(), []byte("---\none: 1\ntwo: 2\n"))
		require.NoError(t, err)

		one, ok := untagged.Get[uint32](m, "one")
		require.True(t, ok)
		assert.Equal(t, uint32(1), one)

		two, ok := untagged.Get[uint64](m, "two")
		require.True(t, ok)
		assert.Equal(t, uint64(2), two)

		_, ok = untagged.Get[uint64](m, "one")
		assert.False(t, ok)
	})

	t.Run("EncounterOrder", func(t *testing.T) {
		m, err := Decode(newRegistry(), []byte("two: 2\ntags: [a]\none: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"two", "tags", "one"}, m.Keys())
	})

	t.Run("StructValue", func(t *testing.T) {
		m, err := Decode(newRegistry(), []byte("endpoint:\n  host: example.com\n  port: 443\n"))
		require.NoError(t, err)
		ep, ok := untagged.Get[endpoint](m, "endpoint")
		require.True(t, ok)
		assert.Equal(t, endpoint{Host: "example.com", Port: 443}, ep)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		m, err := Decode(newRegistry(), []byte("one: 1\nthree: 3\n"))
		assert.Nil(t, m)
		assert.True(t, errors.IsUnknownKey(err))
	})

	t.Run("MalformedValue", func(t *testing.T) {
		_, err := Decode(newRegistry(), []byte("one: -1\n"))
		require.Error(t, err)
		assert.True(t, errors.IsValueDecode(err))
		assert.Contains(t, err.Error(), `key "one" as uint32`)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		m, err := Decode(newRegistry(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())

		m, err = Decode(newRegistry(), []byte("~\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("NotAMapping", func(t *testing.T) {
		_, err := Decode(newRegistry(), []byte("- one\n- two\n"))
		assert.Error(t, err)

		_, err = Decode(newRegistry(), []byte("hello\n"))
		assert.Error(t, err)
	})

	t.Run("AnchoredMapping", func(t *testing.T) {
		reg := untagged.NewTypeReg[string]()
		untagged.Register[map[string]int](reg, "base")
		untagged.Register[map[string]int](reg, "copy")

		m, err := Decode(reg, []byte("base: &b {a: 1}\ncopy: *b\n"))
		require.NoError(t, err)
		cp, ok := untagged.Get[map[string]int](m, "copy")
		require.True(t, ok)
		assert.Equal(t, map[string]int{"a": 1}, cp)
	})

	t.Run("IntegerKeys", func(t *testing.T) {
		reg := untagged.NewTypeReg[int]()
		untagged.Register[string](reg, 1)
		untagged.Register[bool](reg, 2)

		m, err := Decode(reg, []byte("2: true\n1: one\n"))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, m.Keys())
		v, _ := untagged.Get[string](m, 1)
		assert.Equal(t, "one", v)
	})

	t.Run("Reader", func(t *testing.T) {
		m, err := DecodeReader(newRegistry(), strings.NewReader("one: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())

		m, err = DecodeReader(newRegistry(), strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})
}

func TestRoundTrip(t *testing.T) {
	m := untagged.NewTypeMap[string]()
	untagged.Insert(m, "two", uint64(2))
	untagged.Insert(m, "endpoint", endpoint{Host: "localhost", Port: 8080})
	untagged.Insert(m, "one", uint32(1))
	untagged.Insert(m, "tags", []string{"x", "w"})

	data, err := Encode(m)
	require.NoError(t, err)
	assert.Equal(t, "two: 2\nendpoint:\n    host: localhost\n    port: 8080\none: 1\ntags:\n    - x\n    - w\n", string(data))

	decoded, err := Decode(newRegistry(), data)
	require.NoError(t, err)
	assert.True(t, m.Equal(decoded))
	assert.Equal(t, m.Keys(), decoded.Keys())

	var buf bytes.Buffer
	require.NoError(t, EncodeTo(&buf, m))
	assert.True(t, strings.HasPrefix(buf.String(), "two: 2\nendpoint:\n  host: localhost\n"))
}

func TestMapAccessWithoutKey(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("{}"), &node))
	access, err := NewMapAccess[string](&node)
	require.NoError(t, err)

	_, ok, err := access.NextKey()
	require.NoError(t, err)
	assert.False(t, ok)

	var v int
	assert.Error(t, access.NextValue().Decode(&v))
}
