// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"iter"
	"slices"
)

// An Array is an ordered sequence of values. Arrays cannot be modified after
// construction; use Filter or Map to derive a new array.
type Array struct {
	link
	elems []Node
}

// NewArray constructs an array with the given elements, in order.
// An element that already belongs to another container is copied.
func NewArray(elems ...Node) *Array {
	a := &Array{elems: make([]Node, len(elems))}
	for i, e := range elems {
		a.elems[i] = attach(a, e)
	}
	return a
}

// Kind satisfies the Node interface.
func (*Array) Kind() Kind { return ArrayKind }

// JSON satisfies the Node interface.
func (a *Array) JSON() string { return string(appendJSON(nil, a, false)) }

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.elems)) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element of a at index i. It panics if i is out of range.
func (a *Array) At(i int) Node { return a.elems[i] }

// Elements returns a slice of the elements of a, in order.
// Modifying the slice does not affect a.
func (a *Array) Elements() []Node { return slices.Clone(a.elems) }

// All is a range function over the indexes and elements of a, in order.
func (a *Array) All() iter.Seq2[int, Node] { return slices.All(a.elems) }
