// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import "fmt"

// A Visitor receives a callback for each node visited by Walk.
//
// VisitObject and VisitArray report whether Walk should descend into the
// children of the composite. The other methods have no say in the traversal.
//
// A Visitor must not modify an object while it is being traversed.
type Visitor interface {
	VisitObject(*Object) bool
	VisitArray(*Array) bool
	VisitProperty(*Property)
	VisitString(*String)
	VisitNumber(*Number)
	VisitBool(*Bool)
	VisitNull(*Null)
}

// BaseVisitor is a Visitor that does nothing and descends into every
// composite. Embed it in a visitor to override only the methods of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitObject(*Object) bool { return true }
func (BaseVisitor) VisitArray(*Array) bool { return true }
func (BaseVisitor) VisitProperty(*Property) {}
func (BaseVisitor) VisitString(*String) {}
func (BaseVisitor) VisitNumber(*Number) {}
func (BaseVisitor) VisitBool(*Bool) {}
func (BaseVisitor) VisitNull(*Null) {}

// Walk traverses n depth-first, calling the method of v that matches each
// node visited. Array elements are visited in order. Object properties are
// visited in order, and each property is followed by its value.
func Walk(n Node, v Visitor) {
	switch t := n.(type) {
	case *Object:
		if v.VisitObject(t) {
			for _, p := range t.props {
				Walk(p, v)
			}
		}
	case *Property:
		v.VisitProperty(t)
		Walk(t.value, v)
	case *Array:
		if v.VisitArray(t) {
			for _, e := range t.elems {
				Walk(e, v)
			}
		}
	case *String:
		v.VisitString(t)
	case *Number:
		v.VisitNumber(t)
	case *Bool:
		v.VisitBool(t)
	case *Null:
		v.VisitNull(t)
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

// Inspect traverses n depth-first, calling f for each node visited. If f
// returns false for an object or array, its children are skipped. The value
// f returns for other nodes is ignored.
func Inspect(n Node, f func(Node) bool) { Walk(n, inspector(f)) }

type inspector func(Node) bool

func (f inspector) VisitObject(o *Object) bool { return f(o) }
func (f inspector) VisitArray(a *Array) bool { return f(a) }
func (f inspector) VisitProperty(p *Property) { f(p) }
func (f inspector) VisitString(s *String) { f(s) }
func (f inspector) VisitNumber(n *Number) { f(n) }
func (f inspector) VisitBool(b *Bool) { f(b) }
func (f inspector) VisitNull(z *Null) { f(z) }
