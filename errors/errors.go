/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a stored type map is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when a key or name is registered twice
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownKey is returned when a serialized map holds a key with no registered type
	ErrUnknownKey = errors.New("no type registered for key")

	// ErrValueDecode is returned when a value cannot be decoded as its registered type
	ErrValueDecode = errors.New("value decode failed")

	// ErrNoIndexMap is returned when no index map is found for a table
	ErrNoIndexMap = errors.New("no index map found for table")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownKeyError is returned when a map key has no registered decode routine.
// Key holds the offending key as it was read from the input.
type UnknownKeyError struct {
	Key any
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("no type registered for key %s", formatKey(e.Key))
}

func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// ValueDecodeError is returned when the registered decode routine for a key
// fails on the value found at that key.
type ValueDecodeError struct {
	Key      any
	TypeName string
	Err      error
}

func (e *ValueDecodeError) Error() string {
	return fmt.Sprintf("failed to decode value for key %s as %s: %v", formatKey(e.Key), e.TypeName, e.Err)
}

func (e *ValueDecodeError) Is(target error) bool {
	return target == ErrValueDecode
}

func (e *ValueDecodeError) Unwrap() error {
	return e.Err
}

func formatKey(key any) string {
	if s, ok := key.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", key)
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnknownKeyError creates a new UnknownKeyError
func NewUnknownKeyError(key any) error {
	return &UnknownKeyError{Key: key}
}

// NewValueDecodeError creates a new ValueDecodeError wrapping cause
func NewValueDecodeError(key any, typeName string, cause error) error {
	return &ValueDecodeError{Key: key, TypeName: typeName, Err: cause}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownKey checks if an error reports an unregistered map key
func IsUnknownKey(err error) bool {
	return errors.Is(err, ErrUnknownKey)
}

// IsValueDecode checks if an error reports a value that failed to decode
func IsValueDecode(err error) bool {
	return errors.Is(err, ErrValueDecode)
}
