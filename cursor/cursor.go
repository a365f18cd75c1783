// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements navigation over the structure of a document tree.
package cursor

import (
	"fmt"
	"slices"

	"github.com/creachadair/jdoc"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T jdoc.Node](v jdoc.Node, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of a jdoc.Node.
type Cursor struct {
	org jdoc.Node
	stk []jdoc.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin jdoc.Node) *Cursor { return &Cursor{org: origin} }

// Root constructs a new Cursor whose origin is the root of the tree
// containing n, positioned at n. The path of the cursor is the chain of
// parent links from the root down to n.
func Root(n jdoc.Node) *Cursor {
	var stk []jdoc.Node
	for ; n.Parent() != nil; n = n.Parent() {
		stk = append(stk, n)
	}
	slices.Reverse(stk)
	return &Cursor{org: n, stk: stk}
}

// Origin returns the origin value of c.
func (c *Cursor) Origin() jdoc.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() jdoc.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []jdoc.Node {
	return append([]jdoc.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), functions (see below), or
// nil. If the path cannot be completely consumed, traversal stops and an
// error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves to the first property with that key. If this is the
// last element of the path, the *jdoc.Property is the result; otherwise,
// subsequent path elements continue from the value of that property. Use a
// nil path element to step into the value of a property at the end of a path.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to an element of the array or a property of
// the object. Negative indices count backward from the end (-1 is last).
// An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(jdoc.Node) (jdoc.Node, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		if p, ok := cur.(*jdoc.Property); ok {
			cur = c.push(p.Value())
		}
		next, err := step(cur, elt)
		if err != nil {
			c.err = err
			return c
		} else if next != nil {
			cur = c.push(next)
		}
	}
	return c
}

// step resolves a single path element against cur. It returns nil without
// error for a nil element.
func step(cur jdoc.Node, elt any) (jdoc.Node, error) {
	switch t := elt.(type) {
	case nil:
		return nil, nil
	case string:
		o, ok := cur.(*jdoc.Object)
		if !ok {
			return nil, fmt.Errorf("cannot traverse %v with %q", cur.Kind(), t)
		} else if p := o.Find(t); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("key %q not found", t)
	case int:
		return index(cur, t)
	case func(jdoc.Node) (jdoc.Node, error):
		return t(cur)
	default:
		return nil, fmt.Errorf("invalid path element %T", elt)
	}
}

// index selects the element at offset i of an array, or the property at
// offset i of an object. Negative offsets count from the end.
func index(cur jdoc.Node, i int) (jdoc.Node, error) {
	switch e := cur.(type) {
	case *jdoc.Array:
		if j, ok := fixArrayBound(e.Len(), i); ok {
			return e.At(j), nil
		}
		return nil, fmt.Errorf("array index %d out of bounds (n=%d)", i, e.Len())
	case *jdoc.Object:
		if j, ok := fixArrayBound(e.Len(), i); ok {
			return e.Properties()[j], nil
		}
		return nil, fmt.Errorf("object index %d out of bounds (n=%d)", i, e.Len())
	default:
		return nil, fmt.Errorf("cannot traverse %v with %d", cur.Kind(), i)
	}
}

func (c *Cursor) push(v jdoc.Node) jdoc.Node { c.stk = append(c.stk, v); return v }

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
