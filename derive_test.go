// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/google/go-cmp/cmp"
)

func mixed() *jdoc.Array {
	return jdoc.NewArray(
		jdoc.NewInt(1),
		jdoc.NewString("two"),
		jdoc.NewInt(3),
		jdoc.NewNull(),
		jdoc.NewFloat(4.5),
		jdoc.NewBool(true),
	)
}

func TestArrayFilter(t *testing.T) {
	src := mixed()
	before := src.JSON()

	tests := []struct {
		name string
		keep func(jdoc.Node) bool
		want string
	}{
		{"All", func(jdoc.Node) bool { return true }, before},
		{"None", func(jdoc.Node) bool { return false }, `[]`},
		{"Numbers", jdoc.Is[*jdoc.Number](), `[1,3,4.5]`},
		{"NotNull", jdoc.IsNot[*jdoc.Null](), `[1,"two",3,4.5,true]`},
		{"Ints", jdoc.Where(func(n *jdoc.Number) bool { return n.IsInt() }), `[1,3]`},
		{"Short", jdoc.Where(func(s *jdoc.String) bool { return len(s.Value()) < 4 }), `["two"]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := src.Filter(tc.keep)
			if diff := cmp.Diff(got.JSON(), tc.want); diff != "" {
				t.Errorf("Filter (-got, +want):\n%s", diff)
			}
			if got.Parent() != nil {
				t.Errorf("Filter result has parent %v", got.Parent())
			}
			for i, e := range got.All() {
				if e.Parent() != got {
					t.Errorf("Element %d parent: got %v, want result", i, e.Parent())
				}
			}

			// Filtering again with the same predicate changes nothing.
			if again := got.Filter(tc.keep); !jdoc.Equal(again, got) {
				t.Errorf("Filter is not idempotent: %s vs. %s", again.JSON(), got.JSON())
			}
		})
	}

	if got := src.JSON(); got != before {
		t.Errorf("Source modified: got %s, want %s", got, before)
	}
	for i, e := range src.All() {
		if e.Parent() != src {
			t.Errorf("Source element %d reparented to %v", i, e.Parent())
		}
	}
}

func TestArrayMap(t *testing.T) {
	src := mixed()
	got := src.Map(func(n jdoc.Node) jdoc.Node {
		switch t := n.(type) {
		case *jdoc.Number:
			return jdoc.NewFloat(t.Float64() * 2)
		case *jdoc.String:
			return jdoc.NewString(strings.ToUpper(t.Value()))
		}
		return n // unchanged nodes are copied
	})
	if diff := cmp.Diff(got.JSON(), `[2,"TWO",6,null,9,true]`); diff != "" {
		t.Errorf("Map (-got, +want):\n%s", diff)
	}
	if got.At(3) == src.At(3) {
		t.Error("Map result shares a node with its source")
	}
	if src.At(3).Parent() != src {
		t.Error("Map reparented a source node")
	}

	self := src.Map(func(jdoc.Node) jdoc.Node { return src })
	if up := src.Parent(); up != nil {
		t.Errorf("Map re-parented its source: parent is %v", up)
	}
	for i, e := range self.All() {
		if e == jdoc.Node(src) || !jdoc.Equal(e, src) {
			t.Errorf("Element %d: got %v, want a copy of the source", i, e)
		}
	}

	doc := jdoc.NewObject(jdoc.NewProperty("list", jdoc.ArrayOf(1, 2)))
	list, _ := doc.Get("list")
	list.(*jdoc.Array).Map(func(jdoc.Node) jdoc.Node { return doc })
	if up := doc.Parent(); up != nil {
		t.Errorf("Map re-parented an ancestor of its source: parent is %v", up)
	}

	ident := src.Map(func(n jdoc.Node) jdoc.Node { return n })
	if !jdoc.Equal(ident, src) {
		t.Errorf("Identity map: got %s, want %s", ident.JSON(), src.JSON())
	}
}

func TestObjectFilter(t *testing.T) {
	src := library()
	before := src.JSON()

	got := src.Filter(func(key string, value jdoc.Node) bool {
		return key != "books"
	})
	if diff := cmp.Diff(got.JSON(), `{"library": "Downtown Branch", "open": true}`); diff != "" {
		t.Errorf("Filter (-got, +want):\n%s", diff)
	}
	for _, p := range got.Properties() {
		if p.Parent() != got {
			t.Errorf("Property %q parent: got %v, want result", p.Key(), p.Parent())
		}
		if p == src.Find(p.Key()) {
			t.Errorf("Property %q is shared with the source", p.Key())
		}
	}

	strs := src.Filter(func(_ string, v jdoc.Node) bool { return jdoc.Is[*jdoc.String]()(v) })
	if diff := cmp.Diff(strs.JSON(), `{"library": "Downtown Branch"}`); diff != "" {
		t.Errorf("Filter strings (-got, +want):\n%s", diff)
	}

	// Changes to the result do not affect the source.
	got.Set("open", jdoc.NewBool(false))
	if after := src.JSON(); after != before {
		t.Errorf("Source modified: got %s, want %s", after, before)
	}
}
