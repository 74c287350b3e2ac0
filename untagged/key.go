/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package untagged

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// FormatKey renders a key for formats whose map keys are strings. Keys may
// implement encoding.TextMarshaler or have a string or integer kind.
func FormatKey[K comparable](key K) (string, error) {
	if tm, ok := any(key).(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}

	v := reflect.ValueOf(&key).Elem()
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	}
	return "", fmt.Errorf("unsupported map key type %s", v.Type())
}

// ParseKey is the inverse of FormatKey.
func ParseKey[K comparable](s string) (K, error) {
	var key K
	if tu, ok := any(&key).(encoding.TextUnmarshaler); ok {
		err := tu.UnmarshalText([]byte(s))
		return key, err
	}

	v := reflect.ValueOf(&key).Elem()
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
		return key, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return key, fmt.Errorf("invalid map key %q: %w", s, err)
		}
		v.SetInt(n)
		return key, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return key, fmt.Errorf("invalid map key %q: %w", s, err)
		}
		v.SetUint(n)
		return key, nil
	}
	return key, fmt.Errorf("unsupported map key type %s", v.Type())
}
