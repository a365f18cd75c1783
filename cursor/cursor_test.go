// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/cursor"
	"github.com/google/go-cmp/cmp"
)

func testDoc() *jdoc.Object {
	return jdoc.NewObject(
		jdoc.Field("list", []map[string]int{{"x": 1}, {"x": 2}}),
		jdoc.Field("y", map[string]string{"hello": "there"}),
		jdoc.Field("o", []string{"hi", "yourself"}),
		jdoc.NewProperty("xyz", jdoc.NewObject(
			jdoc.Field("p", true),
			jdoc.Field("d", true),
			jdoc.Field("q", false),
		)),
	)
}

func TestCursor(t *testing.T) {
	v := testDoc()
	list, _ := v.Get("list")
	o, _ := v.Get("o")
	xyz, _ := v.Get("xyz")

	tests := []struct {
		name string
		path []any
		want jdoc.Node
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{"o", "x"}, o, true},

		{"ArrayPos", []any{"list", 1}, list.(*jdoc.Array).At(1), false},
		{"ArrayNeg", []any{"list", -1}, list.(*jdoc.Array).At(1), false},
		{"ArrayRange", []any{"o", 25}, o, true},
		{"ObjIndex", []any{-1}, v.Find("xyz"), false},
		{"ObjPath", []any{"xyz", "d"}, xyz.(*jdoc.Object).Find("d"), false},
		{"ObjValue", []any{"xyz", "d", nil}, xyz.(*jdoc.Object).Find("d").Value(), false},

		{"FuncArray", []any{"o", testPathFunc}, jdoc.NewInt(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, jdoc.NewInt(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc},
			xyz.(*jdoc.Object).Find("d").Value(),
			true,
		},
		{"BadElement", []any{3.5}, v, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Errorf("Down %+v: got %v, want error", tc.path, c.Value())
			}
			got := c.Value()
			if !jdoc.Equal(got, tc.want) {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got.JSON(), tc.want.JSON())
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	v := testDoc()
	c := cursor.New(v)
	if !c.AtOrigin() || c.Origin() != v {
		t.Fatal("New cursor is not at its origin")
	}

	c.Down("y", "hello")
	if err := c.Err(); err != nil {
		t.Fatalf("Down: unexpected error: %v", err)
	}
	var kinds []string
	for _, n := range c.Path() {
		kinds = append(kinds, n.Kind().String())
	}
	if diff := cmp.Diff(kinds, []string{"object", "property", "object", "property"}); diff != "" {
		t.Errorf("Path kinds (-got, +want):\n%s", diff)
	}

	if got := c.Up().Value(); got.Kind() != jdoc.ObjectKind {
		t.Errorf("Up: got %v, want object", got)
	}
	c.Up().Up().Up().Up() // extra steps stop at the origin
	if !c.AtOrigin() {
		t.Errorf("Up: got %v, want origin", c.Value())
	}

	c.Down("missing")
	if c.Err() == nil {
		t.Error("Down missing: got nil error")
	}
	c.Reset()
	if c.Err() != nil || !c.AtOrigin() {
		t.Errorf("Reset: got %v at %v, want origin", c.Err(), c.Value())
	}
}

func TestRoot(t *testing.T) {
	v := testDoc()
	leaf, err := cursor.Path[*jdoc.Number](v, "list", 0, "x", nil)
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}

	c := cursor.Root(leaf)
	if c.Origin() != v {
		t.Errorf("Origin: got %v, want %v", c.Origin(), v)
	}
	if c.Value() != leaf {
		t.Errorf("Value: got %v, want %v", c.Value(), leaf)
	}
	if got, want := len(c.Path()), 6; got != want {
		t.Errorf("Path length: got %d, want %d", got, want)
	}
	if got := c.Up().Value(); got.Kind() != jdoc.PropertyKind {
		t.Errorf("Up: got %v, want a property", got)
	}

	if c := cursor.Root(v); !c.AtOrigin() || c.Value() != v {
		t.Errorf("Root of root: got %v, want %v", c.Value(), v)
	}
}

func TestPathType(t *testing.T) {
	v := testDoc()
	if s, err := cursor.Path[*jdoc.String](v, "o", 1); err != nil {
		t.Errorf("Path: unexpected error: %v", err)
	} else if s.Value() != "yourself" {
		t.Errorf("Path: got %q, want yourself", s.Value())
	}
	if _, err := cursor.Path[*jdoc.Array](v, "y"); err == nil {
		t.Error("Path with wrong type: got nil error")
	}
	if _, err := cursor.Path[*jdoc.Bool](v, "nonesuch"); err == nil {
		t.Error("Path with missing key: got nil error")
	}
}

func testPathFunc(v jdoc.Node) (jdoc.Node, error) {
	switch t := v.(type) {
	case *jdoc.Array:
		return jdoc.NewInt(int64(t.Len())), nil
	case *jdoc.Object:
		return jdoc.NewInt(int64(t.Len())), nil
	default:
		return nil, errors.New("not a thing with length")
	}
}
