/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"encoding/json"
)

// BoxDt owns one value behind the DataType capability set.
//
// Copying a BoxDt copies the handle, not the value; use Clone for an
// independently owned copy. The zero BoxDt is empty: every downcast misses.
type BoxDt struct {
	dt DataType
}

// NewBoxDt returns a BoxDt owning v.
func NewBoxDt[T any](v T) BoxDt {
	return BoxDt{dt: newDataType(v)}
}

// DowncastRef returns a copy of the boxed value if its concrete type is T.
func DowncastRef[T any](b BoxDt) (T, bool) {
	if d, ok := b.dt.(*dataType[T]); ok {
		return d.v, true
	}
	var zero T
	return zero, false
}

// DowncastMut returns a pointer to the boxed value if its concrete type is
// T. Writes through the pointer change the value held by the box.
func DowncastMut[T any](b BoxDt) (*T, bool) {
	if d, ok := b.dt.(*dataType[T]); ok {
		return &d.v, true
	}
	return nil, false
}

// IsEmpty reports whether the box holds no value.
func (b BoxDt) IsEmpty() bool {
	return b.dt == nil
}

// TypeName reports the concrete type of the boxed value, or "" when empty.
func (b BoxDt) TypeName() TypeName {
	if b.dt == nil {
		return ""
	}
	return b.dt.TypeName()
}

// Inner returns the boxed value through its capability set.
func (b BoxDt) Inner() DataType {
	return b.dt
}

// Value returns the boxed value, or nil when empty.
func (b BoxDt) Value() any {
	if b.dt == nil {
		return nil
	}
	return b.dt.Value()
}

// Clone returns a BoxDt holding a deep copy of the value.
func (b BoxDt) Clone() BoxDt {
	if b.dt == nil {
		return BoxDt{}
	}
	return BoxDt{dt: b.dt.Clone()}
}

// Equal reports whether both boxes hold the same concrete type and equal values.
func (b BoxDt) Equal(other BoxDt) bool {
	if b.dt == nil || other.dt == nil {
		return b.dt == nil && other.dt == nil
	}
	return b.dt.Equal(other.dt)
}

func (b BoxDt) String() string {
	if b.dt == nil {
		return "<empty>"
	}
	return b.dt.String()
}

func (b BoxDt) GoString() string {
	if b.dt == nil {
		return "untagged.BoxDt{}"
	}
	return b.dt.GoString()
}

// MarshalJSON writes the boxed value's own JSON form.
func (b BoxDt) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Value())
}

// MarshalYAML writes the boxed value's own YAML form.
func (b BoxDt) MarshalYAML() (any, error) {
	return b.Value(), nil
}
