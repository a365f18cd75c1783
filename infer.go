// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"
)

// A FieldValue is a named value reported by a Record.
type FieldValue struct {
	Name  string
	Value any
}

// A Record is a value that describes its own fields. ToNode converts a
// Record to an object whose properties are the fields it reports, in order.
type Record interface {
	Fields() []FieldValue
}

// ToNode converts a Go value into a document tree:
//
//	Go value                                  | Node
//	----------------------------------------- | -----------------------------
//	nil, nil pointer, map, slice or interface | *Null
//	Node                                      | the node, copied if it has a parent
//	Record                                    | *Object of the reported fields
//	encoding.TextMarshaler                    | *String of the marshaled text
//	integer type with a String method (enum)  | *String of its name
//	string                                    | *String
//	integer or floating-point number          | *Number
//	bool                                      | *Bool
//	slice or array                            | *Array
//	map with string keys                      | *Object, sorted by key
//	struct                                    | *Object of the exported fields
//
// Pointers and interfaces are converted through to the values they refer to.
//
// The keys for struct fields are taken from the name in a "json" field tag,
// if one is present, or else the field name converted to lower camel case.
// A field with tag "-" is omitted. The fields of an embedded struct without
// a tag name are promoted into the enclosing object.
//
// A map with non-string keys reports an error wrapping ErrInvalidKeyType.
// Channels, functions, complex numbers and other values not listed report
// an error wrapping ErrUnsupportedValue. ToNode does not detect cycles; a
// self-referential value recurses without bound.
func ToNode(v any) (Node, error) { return toNode(reflect.ValueOf(v), "") }

// Field constructs an object property with the given key and value, which
// is converted by ToNode. It panics if the value cannot be converted.
func Field(key string, value any) *Property {
	return NewProperty(key, mustNode(value))
}

// ArrayOf constructs an array of the given values, each converted by ToNode.
// It panics if any value cannot be converted.
func ArrayOf[T any](vs ...T) *Array {
	elems := make([]Node, len(vs))
	for i, v := range vs {
		elems[i] = mustNode(v)
	}
	return NewArray(elems...)
}

func mustNode(v any) Node {
	n, err := ToNode(v)
	if err != nil {
		panic(err)
	}
	return n
}

var (
	nodeType     = reflect.TypeFor[Node]()
	recordType   = reflect.TypeFor[Record]()
	textType     = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// toNode converts v into a node. The path locates v in the top-level value,
// for error reporting.
func toNode(v reflect.Value, path string) (Node, error) {
	if !v.IsValid() {
		return NewNull(), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return NewNull(), nil
		}
	}

	// Check for values that describe themselves, before looking at the
	// underlying kind.
	if v.CanInterface() {
		if n, ok, err := fromMethods(v, path); ok {
			return n, err
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return toNode(v.Elem(), path)

	case reflect.String:
		return NewString(v.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(v.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewUint(v.Uint()), nil

	case reflect.Float32:
		return &Number{text: formatFloat(v.Float(), 32)}, nil

	case reflect.Float64:
		return &Number{text: formatFloat(v.Float(), 64)}, nil

	case reflect.Bool:
		return NewBool(v.Bool()), nil

	case reflect.Slice, reflect.Array:
		elems := make([]Node, v.Len())
		for i := range elems {
			e, err := toNode(v.Index(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return NewArray(elems...), nil

	case reflect.Map:
		return fromMap(v, path)

	case reflect.Struct:
		props, err := appendFields(nil, v, path)
		if err != nil {
			return nil, err
		}
		return NewObject(props...), nil

	default:
		return nil, &ConvertError{Path: path, Type: v.Type(), Err: ErrUnsupportedValue}
	}
}

// fromMethods converts v using the methods of its type, if it has any that
// apply. It reports false if v should be converted by its kind instead.
func fromMethods(v reflect.Value, path string) (Node, bool, error) {
	t := v.Type()
	if t.Implements(nodeType) {
		n := v.Interface().(Node)
		if n.Parent() != nil {
			n = Clone(n)
		}
		return n, true, nil
	}
	if rec, ok := implements[Record](v, recordType); ok {
		n, err := fromRecord(rec, path)
		return n, true, err
	}
	if tm, ok := implements[encoding.TextMarshaler](v, textType); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, true, &ConvertError{Path: path, Type: t, Err: err}
		}
		return NewString(string(text)), true, nil
	}
	if isInteger(t.Kind()) && t.Implements(stringerType) {
		return NewString(v.Interface().(fmt.Stringer).String()), true, nil
	}
	return nil, false, nil
}

// implements reports whether v, or a pointer to v if v is addressable,
// implements the interface T whose type is it.
func implements[T any](v reflect.Value, it reflect.Type) (T, bool) {
	if v.Type().Implements(it) {
		return v.Interface().(T), true
	} else if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(it) {
		return v.Addr().Interface().(T), true
	}
	var zero T
	return zero, false
}

func isInteger(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}

func fromRecord(rec Record, path string) (Node, error) {
	fields := rec.Fields()
	props := make([]*Property, len(fields))
	for i, f := range fields {
		n, err := toNode(reflect.ValueOf(f.Value), joinPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		props[i] = NewProperty(f.Name, n)
	}
	return NewObject(props...), nil
}

func fromMap(v reflect.Value, path string) (Node, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, &ConvertError{Path: path, Type: v.Type(), Err: ErrInvalidKeyType}
	}
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})
	props := make([]*Property, len(keys))
	for i, k := range keys {
		n, err := toNode(v.MapIndex(k), joinPath(path, k.String()))
		if err != nil {
			return nil, err
		}
		props[i] = NewProperty(k.String(), n)
	}
	return NewObject(props...), nil
}

// appendFields appends properties for the fields of the struct v to props,
// in declaration order.
func appendFields(props []*Property, v reflect.Value, path string) ([]*Property, error) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		name, ok := fieldKey(f)
		if !ok {
			continue
		}
		fv := v.Field(i)

		if f.Anonymous && name == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				var err error
				props, err = appendFields(props, fv, path)
				if err != nil {
					return nil, err
				}
				continue
			}
			if !f.IsExported() {
				continue
			}
			name = strcase.ToLowerCamel(f.Name)
		}

		n, err := toNode(fv, joinPath(path, name))
		if err != nil {
			return nil, err
		}
		props = append(props, NewProperty(name, n))
	}
	return props, nil
}

// fieldKey returns the object key for struct field f, and reports whether
// the field should be included. For an embedded field without a tag name,
// the key is empty.
func fieldKey(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, f.IsExported()
	}
	if f.Anonymous {
		return "", true
	}
	return strcase.ToLowerCamel(f.Name), f.IsExported()
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
