// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

// Filter returns a new array containing the elements of a for which keep
// reports true, in their original order. The elements of the result are
// copies; a is not modified.
func (a *Array) Filter(keep func(Node) bool) *Array {
	out := &Array{elems: make([]Node, 0, len(a.elems))}
	for _, e := range a.elems {
		if keep(e) {
			out.elems = append(out.elems, attach(out, e))
		}
	}
	return out
}

// Map returns a new array containing the results of calling f on each
// element of a, in order. If f returns a node that already belongs to a
// tree, including its argument, or returns a or one of its ancestors, the
// result holds a copy of it.
func (a *Array) Map(f func(Node) Node) *Array {
	out := &Array{elems: make([]Node, len(a.elems))}
	for i, e := range a.elems {
		r := f(e)
		if r != nil && encloses(r, a) {
			r = Clone(r)
		}
		out.elems[i] = attach(out, r)
	}
	return out
}

// Filter returns a new object containing copies of the properties of o for
// which keep reports true, in their original order. The object o and its
// properties are not modified.
func (o *Object) Filter(keep func(key string, value Node) bool) *Object {
	out := &Object{props: make([]*Property, 0, len(o.props))}
	for _, p := range o.props {
		if keep(p.key, p.value) {
			out.props = append(out.props, attach(out, p).(*Property))
		}
	}
	return out
}

// Is returns a predicate that reports whether its argument has type T.
func Is[T Node]() func(Node) bool {
	return func(n Node) bool { _, ok := n.(T); return ok }
}

// IsNot returns a predicate that reports whether its argument does not have
// type T.
func IsNot[T Node]() func(Node) bool {
	return func(n Node) bool { _, ok := n.(T); return !ok }
}

// Where returns a predicate that reports whether its argument has type T and
// satisfies f. Values of other types are rejected.
func Where[T Node](f func(T) bool) func(Node) bool {
	return func(n Node) bool { v, ok := n.(T); return ok && f(v) }
}
