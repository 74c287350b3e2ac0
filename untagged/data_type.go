/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"fmt"
	"reflect"

	"github.com/huandu/go-clone"
)

// TypeName is a human readable name of a Go type. It is only used for
// diagnostics and never written to the wire.
type TypeName string

// DataType is the capability set of a value stored in a TypeMap.
//
// Every Go type satisfies it through the package's generic adapter, so
// callers never implement DataType themselves. A type can refine the
// defaults by implementing Cloner or Equaler.
type DataType interface {
	// TypeName reports the live concrete type of the value.
	TypeName() TypeName
	// Equal reports whether other holds the same concrete type and an equal value.
	Equal(other DataType) bool
	// Clone returns an independently owned copy of the value.
	Clone() DataType
	// Value returns the stored value for encoders.
	Value() any

	fmt.Stringer
	fmt.GoStringer
}

// Cloner lets a type provide its own deep copy. Without it, values are
// copied with go-clone, which follows unexported fields and pointer cycles.
type Cloner[T any] interface {
	Clone() T
}

// Equaler lets a type provide its own equality. Without it, values are
// compared with reflect.DeepEqual.
type Equaler[T any] interface {
	Equal(T) bool
}

// TypeNameOf returns the TypeName of T.
func TypeNameOf[T any]() TypeName {
	return TypeName(reflect.TypeOf((*T)(nil)).Elem().String())
}

// dataType adapts any T to DataType.
type dataType[T any] struct {
	v T
}

func newDataType[T any](v T) *dataType[T] {
	return &dataType[T]{v: v}
}

func (d *dataType[T]) TypeName() TypeName {
	return TypeNameOf[T]()
}

func (d *dataType[T]) Equal(other DataType) bool {
	o, ok := other.(*dataType[T])
	if !ok {
		return false
	}
	if !isNil(d.v) {
		if eq, ok := any(d.v).(Equaler[T]); ok {
			return eq.Equal(o.v)
		}
	}
	return reflect.DeepEqual(d.v, o.v)
}

func (d *dataType[T]) Clone() DataType {
	if !isNil(d.v) {
		if c, ok := any(d.v).(Cloner[T]); ok {
			return newDataType(c.Clone())
		}
	}
	// Slowly tracks visited pointers so cyclic values copy with their shape intact.
	if v, ok := clone.Slowly(d.v).(T); ok {
		return newDataType(v)
	}
	return newDataType(d.v)
}

func (d *dataType[T]) Value() any {
	return d.v
}

func (d *dataType[T]) String() string {
	return fmt.Sprintf("%v", d.v)
}

func (d *dataType[T]) GoString() string {
	return fmt.Sprintf("%#v", d.v)
}

// isNil reports whether v is a nil pointer, map, slice or interface, on
// which user methods must not be called.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
