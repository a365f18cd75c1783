// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Node is a value in a document tree. The concrete type of a Node is one of
// *Object, *Property, *Array, *String, *Number, *Bool, or *Null.
type Node interface {
	// Kind reports which variant of node this is.
	Kind() Kind

	// Parent returns the container of this node, or nil if it is a root.
	Parent() Node

	// JSON renders the node as compact single-line JSON text.
	JSON() string

	setParent(Node)
}

// Kind identifies the concrete type of a Node.
type Kind byte

const (
	ObjectKind Kind = 1 + iota
	PropertyKind
	ArrayKind
	StringKind
	NumberKind
	BoolKind
	NullKind
)

var kindStr = [...]string{
	ObjectKind:   "object",
	PropertyKind: "property",
	ArrayKind:    "array",
	StringKind:   "string",
	NumberKind:   "number",
	BoolKind:     "bool",
	NullKind:     "null",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) && kindStr[k] != "" {
		return kindStr[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// link is the parent back-reference shared by all node types.
// The parent owns the child; the link is only used to look upward.
type link struct{ up Node }

// Parent returns the container of the node, or nil if it is a root.
func (l *link) Parent() Node { return l.up }

func (l *link) setParent(up Node) { l.up = up }

// attach makes up the parent of n and returns n. If n already has a parent,
// or if n is up or one of its ancestors, a copy of n is attached and returned
// instead.
func attach(up, n Node) Node {
	if n == nil {
		panic("jdoc: nil node")
	}
	if n.Parent() != nil || encloses(n, up) {
		n = Clone(n)
	}
	n.setParent(up)
	return n
}

// encloses reports whether n is m or an ancestor of m.
func encloses(n, m Node) bool {
	for ; m != nil; m = m.Parent() {
		if m == n {
			return true
		}
	}
	return false
}

// Depth reports the nesting depth of n in its tree. A root has depth 0, and
// each container adds one level, except that a property does not add a level
// to its value.
func Depth(n Node) int {
	var d int
	for up := n.Parent(); up != nil; up = up.Parent() {
		if up.Kind() != PropertyKind {
			d++
		}
	}
	return d
}

// Root returns the root of the tree containing n.
func Root(n Node) Node {
	for up := n.Parent(); up != nil; up = up.Parent() {
		n = up
	}
	return n
}

// A String is a string value.
type String struct {
	link
	text string
}

// NewString constructs a new string node with the given text.
func NewString(s string) *String { return &String{text: s} }

// Value returns the unescaped text of s.
func (s *String) Value() string { return s.text }

// Kind satisfies the Node interface.
func (*String) Kind() Kind { return StringKind }

// JSON satisfies the Node interface.
func (s *String) JSON() string { return string(appendJSON(nil, s, false)) }

func (s *String) String() string { return s.JSON() }

// A Number is a numeric value. The number is stored as its canonical text.
type Number struct {
	link
	text string
}

// NewInt constructs a number node with an integer value.
func NewInt(v int64) *Number { return &Number{text: strconv.FormatInt(v, 10)} }

// NewUint constructs a number node with an unsigned integer value.
func NewUint(v uint64) *Number { return &Number{text: strconv.FormatUint(v, 10)} }

// NewFloat constructs a number node with a floating-point value.
//
// Finite values are rendered in decimal notation, or exponent notation for
// very large and very small magnitudes. Infinities and NaN are rendered as
// strconv does, and are not valid JSON.
func NewFloat(v float64) *Number { return &Number{text: formatFloat(v, 64)} }

func formatFloat(f float64, bits int) string {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// Trim a leading zero from a two-digit exponent, e-07 to e-7.
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

// IsInt reports whether n is an integer value.
func (n *Number) IsInt() bool { return !strings.ContainsAny(n.text, ".eEIN") }

// Int64 returns the value of n as an int64. It reports false if n is not an
// integer or does not fit in an int64.
func (n *Number) Int64() (int64, bool) {
	v, err := strconv.ParseInt(n.text, 10, 64)
	return v, err == nil
}

// Float64 returns the value of n as a float64, rounded if necessary.
func (n *Number) Float64() float64 {
	v, _ := strconv.ParseFloat(n.text, 64) // out-of-range values saturate
	return v
}

// Kind satisfies the Node interface.
func (*Number) Kind() Kind { return NumberKind }

// JSON satisfies the Node interface.
func (n *Number) JSON() string { return n.text }

func (n *Number) String() string { return n.text }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	link
	value bool
}

// NewBool constructs a Boolean node with the given value.
func NewBool(v bool) *Bool { return &Bool{value: v} }

// Value returns the truth value of b.
func (b *Bool) Value() bool { return b.value }

// Kind satisfies the Node interface.
func (*Bool) Kind() Kind { return BoolKind }

// JSON satisfies the Node interface.
func (b *Bool) JSON() string { return strconv.FormatBool(b.value) }

func (b *Bool) String() string { return b.JSON() }

// Null represents the null constant. All null nodes are equal.
type Null struct{ link }

// NewNull constructs a new null node.
func NewNull() *Null { return new(Null) }

// Kind satisfies the Node interface.
func (*Null) Kind() Kind { return NullKind }

// JSON satisfies the Node interface.
func (*Null) JSON() string { return "null" }

func (*Null) String() string { return "null" }

// Equal reports whether a and b are structurally equal: they have the same
// kind and payload, and their children are pairwise equal in order. Parent
// links are not compared.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	} else if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case *Object:
		u := b.(*Object)
		if len(t.props) != len(u.props) {
			return false
		}
		for i, p := range t.props {
			if !Equal(p, u.props[i]) {
				return false
			}
		}
		return true
	case *Property:
		u := b.(*Property)
		return t.key == u.key && Equal(t.value, u.value)
	case *Array:
		u := b.(*Array)
		if len(t.elems) != len(u.elems) {
			return false
		}
		for i, e := range t.elems {
			if !Equal(e, u.elems[i]) {
				return false
			}
		}
		return true
	case *String:
		return t.text == b.(*String).text
	case *Number:
		return t.text == b.(*Number).text
	case *Bool:
		return t.value == b.(*Bool).value
	case *Null:
		return true
	default:
		panic(fmt.Sprintf("unknown node type %T", a))
	}
}

// Clone returns a deep copy of n with no parent.
func Clone(n Node) Node {
	switch t := n.(type) {
	case *Object:
		o := &Object{props: make([]*Property, len(t.props))}
		for i, p := range t.props {
			c := Clone(p).(*Property)
			c.setParent(o)
			o.props[i] = c
		}
		return o
	case *Property:
		p := &Property{key: t.key, value: Clone(t.value)}
		p.value.setParent(p)
		return p
	case *Array:
		a := &Array{elems: make([]Node, len(t.elems))}
		for i, e := range t.elems {
			c := Clone(e)
			c.setParent(a)
			a.elems[i] = c
		}
		return a
	case *String:
		return NewString(t.text)
	case *Number:
		return &Number{text: t.text}
	case *Bool:
		return NewBool(t.value)
	case *Null:
		return NewNull()
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}
