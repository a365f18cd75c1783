// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrDuplicateKey is reported by Object.Add for a key that is already
	// present in the object.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingKey is reported by Object.Get for a key that is not present
	// in the object.
	ErrMissingKey = errors.New("key not found")

	// ErrInvalidKeyType is reported by ToNode for a map whose keys are not
	// strings.
	ErrInvalidKeyType = errors.New("map key is not a string")

	// ErrUnsupportedValue is reported by ToNode for a value that has no
	// representation as a node, such as a channel or a function.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// KeyError is the concrete type of errors reported by Object methods.
type KeyError struct {
	Key string // the key that was requested
	Err error  // ErrDuplicateKey or ErrMissingKey
}

func (e *KeyError) Error() string { return fmt.Sprintf("key %q: %v", e.Key, e.Err) }

func (e *KeyError) Unwrap() error { return e.Err }

// ConvertError is the concrete type of errors reported by ToNode.
type ConvertError struct {
	Path string       // location of the value, e.g., "users[2].address"
	Type reflect.Type // the type of the value that could not be converted
	Err  error
}

func (e *ConvertError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("convert %s (%v): %v", e.Path, e.Type, e.Err)
	}
	return fmt.Sprintf("convert %v: %v", e.Type, e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }
