/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddbfmt

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/typereg/errors"
	"github.com/suparena/typereg/registry"
	"github.com/suparena/typereg/untagged"
)

type owner struct {
	Name  string   `dynamodbav:"name"`
	Roles []string `dynamodbav:"roles,stringset"`
}

func newRegistry() *untagged.TypeReg[string] {
	reg := untagged.NewTypeReg[string]()
	untagged.Register[uint32](reg, "one")
	untagged.Register[uint64](reg, "two")
	untagged.Register[owner](reg, "owner")
	untagged.Register[bool](reg, "enabled")
	return reg
}

func TestDecode(t *testing.T) {
	item := map[string]types.AttributeValue{
		"two": &types.AttributeValueMemberN{Value: "2"},
		"one": &types.AttributeValueMemberN{Value: "1"},
	}

	m, err := Decode(newRegistry(), item)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, m.Keys(), "attribute maps decode in lexical order")

	one, ok := untagged.Get[uint32](m, "one")
	require.True(t, ok)
	assert.Equal(t, uint32(1), one)

	two, ok := untagged.Get[uint64](m, "two")
	require.True(t, ok)
	assert.Equal(t, uint64(2), two)

	_, ok = untagged.Get[uint64](m, "one")
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	t.Run("UnknownKey", func(t *testing.T) {
		_, err := Decode(newRegistry(), map[string]types.AttributeValue{
			"three": &types.AttributeValueMemberN{Value: "3"},
		})
		assert.True(t, errors.IsUnknownKey(err))
	})

	t.Run("WrongAttributeType", func(t *testing.T) {
		_, err := Decode(newRegistry(), map[string]types.AttributeValue{
			"enabled": &types.AttributeValueMemberS{Value: "yes"},
		})
		assert.True(t, errors.IsValueDecode(err))
	})

	t.Run("NotAMap", func(t *testing.T) {
		_, err := DecodeAttributeValue(newRegistry(), &types.AttributeValueMemberS{Value: "x"})
		assert.Error(t, err)
	})

	t.Run("NullIsEmpty", func(t *testing.T) {
		m, err := DecodeAttributeValue(newRegistry(), &types.AttributeValueMemberNULL{Value: true})
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})
}

func TestRoundTrip(t *testing.T) {
	m := untagged.NewTypeMap[string]()
	untagged.Insert(m, "owner", owner{Name: "ops", Roles: []string{"admin"}})
	untagged.Insert(m, "enabled", true)
	untagged.Insert(m, "one", uint32(1))
	untagged.Insert(m, "two", uint64(2))

	av, err := EncodeAttributeValue(m)
	require.NoError(t, err)

	mv, ok := av.(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, mv.Value["one"])
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, mv.Value["enabled"])

	ownerAttr, ok := mv.Value["owner"].(*types.AttributeValueMemberM)
	require.True(t, ok, "struct values are written as plain maps without a type tag")
	assert.Len(t, ownerAttr.Value, 2)

	decoded, err := DecodeAttributeValue(newRegistry(), av)
	require.NoError(t, err)
	assert.True(t, m.Equal(decoded))
	assert.Equal(t, []string{"enabled", "one", "owner", "two"}, decoded.Keys())
}

func TestDateTypesRoundTrip(t *testing.T) {
	reg, err := registry.FromTypeNames(map[string]string{
		"created": "datetime",
		"day":     "date",
	})
	require.NoError(t, err)

	created := strfmt.DateTime(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	day := strfmt.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	m := untagged.NewTypeMap[string]()
	untagged.Insert(m, "created", created)
	untagged.Insert(m, "day", day)

	av, err := EncodeAttributeValue(m)
	require.NoError(t, err)
	item := av.(*types.AttributeValueMemberM).Value
	// Both types convert to time.Time, which attributevalue writes as RFC 3339 strings.
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-05-01T10:00:00Z"}, item["created"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-05-01T00:00:00Z"}, item["day"])

	got, err := DecodeAttributeValue(reg, av)
	require.NoError(t, err)
	assert.True(t, m.Equal(got), "got %#v", got)
}
