// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"iter"
	"slices"
)

// An Object is an ordered collection of key-value properties.
//
// Construction does not require keys to be unique, but Add refuses to create
// a duplicate. Lookups by key find the first matching property.
type Object struct {
	link
	props []*Property
}

// NewObject constructs an object with the given properties, in order.
// A property that already belongs to another object is copied.
func NewObject(props ...*Property) *Object {
	o := &Object{props: make([]*Property, len(props))}
	for i, p := range props {
		if p == nil {
			panic("jdoc: nil property")
		}
		o.props[i] = attach(o, p).(*Property)
	}
	return o
}

// Kind satisfies the Node interface.
func (*Object) Kind() Kind { return ObjectKind }

// JSON satisfies the Node interface.
func (o *Object) JSON() string { return string(appendJSON(nil, o, false)) }

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.props)) }

// Len reports the number of properties in o.
func (o *Object) Len() int { return len(o.props) }

// Properties returns a slice of the properties of o, in order.
// Modifying the slice does not affect o.
func (o *Object) Properties() []*Property { return slices.Clone(o.props) }

// All is a range function over the keys and values of o, in order.
func (o *Object) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, p := range o.props {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}

// Find returns the first property of o with the given key, or nil.
func (o *Object) Find(key string) *Property {
	if i := o.index(key); i >= 0 {
		return o.props[i]
	}
	return nil
}

func (o *Object) index(key string) int {
	return slices.IndexFunc(o.props, func(p *Property) bool { return p.key == key })
}

// Has reports whether o has a property with the given key.
func (o *Object) Has(key string) bool { return o.index(key) >= 0 }

// Get returns the value of the first property of o with the given key.
// If there is no such property, it reports an error wrapping ErrMissingKey.
func (o *Object) Get(key string) (Node, error) {
	if p := o.Find(key); p != nil {
		return p.value, nil
	}
	return nil, &KeyError{Key: key, Err: ErrMissingKey}
}

// Add appends a new property with the given key and value to o. If o already
// has a property with that key, Add reports an error wrapping ErrDuplicateKey
// and o is not modified.
func (o *Object) Add(key string, value Node) error {
	if o.Has(key) {
		return &KeyError{Key: key, Err: ErrDuplicateKey}
	}
	o.props = append(o.props, o.newProperty(key, value))
	return nil
}

// Set replaces the first property of o with the given key by a new property
// holding value, keeping its position. The replaced property becomes a root.
// If o has no such property, Set appends one.
func (o *Object) Set(key string, value Node) {
	p := o.newProperty(key, value)
	if i := o.index(key); i >= 0 {
		o.props[i].setParent(nil)
		o.props[i] = p
	} else {
		o.props = append(o.props, p)
	}
}

// Remove removes the first property of o with the given key, and reports
// whether a property was removed. The removed property becomes a root.
func (o *Object) Remove(key string) bool {
	i := o.index(key)
	if i < 0 {
		return false
	}
	o.props[i].setParent(nil)
	o.props = slices.Delete(o.props, i, i+1)
	return true
}

// newProperty constructs a property of o. The property is linked to o before
// its value is attached, so that o and its ancestors are copied rather than
// made descendants of themselves.
func (o *Object) newProperty(key string, value Node) *Property {
	p := &Property{key: key}
	p.setParent(o)
	p.value = attach(p, value)
	return p
}

// A Property is a single key-value pair belonging to an Object.
type Property struct {
	link
	key   string
	value Node
}

// NewProperty constructs a property with the given key and value.
// A value that already belongs to another container is copied.
func NewProperty(key string, value Node) *Property {
	p := &Property{key: key}
	p.value = attach(p, value)
	return p
}

// Key returns the key of p.
func (p *Property) Key() string { return p.key }

// Value returns the value of p.
func (p *Property) Value() Node { return p.value }

// Kind satisfies the Node interface.
func (*Property) Kind() Kind { return PropertyKind }

// JSON satisfies the Node interface.
func (p *Property) JSON() string { return string(appendJSON(nil, p, false)) }

func (p *Property) String() string { return fmt.Sprintf("Property(key=%q)", p.key) }
