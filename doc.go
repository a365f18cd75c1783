// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jdoc implements an in-memory document tree for JSON values.
//
// # Nodes
//
// A document is a tree of Node values. There are seven concrete node types:
//
//	Type      | Constructor           | Children
//	--------- | --------------------- | ------------------------------
//	*Object   | NewObject             | an ordered list of *Property
//	*Property | NewProperty           | exactly one value
//	*Array    | NewArray              | an ordered list of nodes
//	*String   | NewString             | --
//	*Number   | NewInt, NewFloat, ... | --
//	*Bool     | NewBool               | --
//	*Null     | NewNull               | --
//
// Each node records its parent, which is assigned when the node is passed to
// the constructor of its container and never changes afterward. A node that
// already belongs to a tree is copied before it is added to another, so the
// original tree is never modified:
//
//	name := jdoc.NewString("Alice")
//	obj := jdoc.NewObject(jdoc.NewProperty("name", name))
//	// name.Parent() is the property; obj.Parent() is nil.
//
// Use Depth to find the nesting level of a node. The value of a property has
// the same depth as the property itself, so that a property and its value
// are indented together.
//
// Arrays are immutable. Objects may be modified with Add, Set and Remove.
// Use the Filter and Map methods to derive new composites from old ones.
//
// # Traversal
//
// Walk traverses a tree depth-first and calls the methods of a Visitor for
// each node. The VisitObject and VisitArray methods report whether to descend
// into the children of the composite. Embed BaseVisitor in a visitor type to
// inherit default implementations of the methods it does not need:
//
//	type stringCounter struct {
//	   jdoc.BaseVisitor
//	   n int
//	}
//
//	func (c *stringCounter) VisitString(*jdoc.String) { c.n++ }
//
// # Output
//
// The JSON method of a node renders it as compact single-line text. Canonical
// renders the same text without any whitespace outside of strings, and Format
// renders an indented multi-line representation:
//
//	fmt.Println(obj.JSON())            // {"name": "Alice"}
//	fmt.Println(jdoc.Canonical(obj))   // {"name":"Alice"}
//	fmt.Println(jdoc.FormatToString(obj))
//
// # Conversion
//
// ToNode builds a tree from an arbitrary Go value: strings, numbers, Booleans,
// slices, maps with string keys, and structs. A type can control which fields
// it reports by implementing the Record interface.
package jdoc
