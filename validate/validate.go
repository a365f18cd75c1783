// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package validate implements visitors that check the structure of a
// document tree. Each validator accumulates human-readable findings; a
// validator with no findings considers the tree valid.
package validate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/cursor"
	"github.com/creachadair/mds/mapset"
)

// Keys reports the findings of a KeyValidator applied to n.
func Keys(n jdoc.Node) []string {
	var v KeyValidator
	jdoc.Walk(n, &v)
	return v.Findings()
}

// ArrayTypes reports the findings of an ArrayTypeValidator applied to n.
func ArrayTypes(n jdoc.Node) []string {
	var v ArrayTypeValidator
	jdoc.Walk(n, &v)
	return v.Findings()
}

// A KeyValidator checks the keys of every object it visits. It reports each
// key that is empty or all whitespace, and each key that repeats an earlier
// key of the same object. Keys shared by different objects are not reported.
//
// The zero value is ready for use. Pass a pointer to jdoc.Walk.
type KeyValidator struct {
	jdoc.BaseVisitor
	findings []string
}

// VisitObject implements part of the jdoc.Visitor interface.
func (v *KeyValidator) VisitObject(o *jdoc.Object) bool {
	seen := mapset.New[string]()
	for _, p := range o.Properties() {
		key := p.Key()
		if strings.TrimSpace(key) == "" {
			v.addf(p, "blank key %q", key)
		} else if seen.Has(key) {
			v.addf(p, "duplicate key %q", key)
		}
		seen.Add(key)
	}
	return true
}

func (v *KeyValidator) addf(n jdoc.Node, msg string, args ...any) {
	v.findings = append(v.findings, finding(n, fmt.Sprintf(msg, args...)))
}

// Valid reports whether v has no findings.
func (v *KeyValidator) Valid() bool { return len(v.findings) == 0 }

// Findings returns the findings recorded by v, in the order they were found.
func (v *KeyValidator) Findings() []string { return slices.Clone(v.findings) }

// An ArrayTypeValidator checks the elements of every array it visits. An
// array is valid if all its elements other than null have the same kind.
// Traversal continues into the elements of an invalid array, so that all
// the invalid arrays in a tree are reported.
//
// The zero value is ready for use. Pass a pointer to jdoc.Walk.
type ArrayTypeValidator struct {
	jdoc.BaseVisitor
	findings []string
}

// VisitArray implements part of the jdoc.Visitor interface.
func (v *ArrayTypeValidator) VisitArray(a *jdoc.Array) bool {
	var want jdoc.Kind
	for i, e := range a.All() {
		k := e.Kind()
		if k == jdoc.NullKind {
			continue
		} else if want == 0 {
			want = k
		} else if k != want {
			v.findings = append(v.findings, finding(a,
				fmt.Sprintf("mixed array: element %d is %v, want %v", i, k, want)))
			break
		}
	}
	return true
}

// Valid reports whether v has no findings.
func (v *ArrayTypeValidator) Valid() bool { return len(v.findings) == 0 }

// Findings returns the findings recorded by v, in the order they were found.
func (v *ArrayTypeValidator) Findings() []string { return slices.Clone(v.findings) }

// finding formats a message about n, prefixed by its location and depth.
func finding(n jdoc.Node, msg string) string {
	return fmt.Sprintf("%s (depth %d): %s", Location(n), jdoc.Depth(n), msg)
}

// Location renders the position of n in its tree as a path from the root,
// for example "$.books[1].title". The root is "$".
func Location(n jdoc.Node) string {
	var sb strings.Builder
	sb.WriteString("$")
	path := cursor.Root(n).Path()
	for i, cur := range path[1:] {
		switch up := path[i].(type) {
		case *jdoc.Object:
			sb.WriteString("." + cur.(*jdoc.Property).Key())
		case *jdoc.Array:
			for j, e := range up.All() {
				if e == cur {
					sb.WriteString("[" + strconv.Itoa(j) + "]")
					break
				}
			}
		}
	}
	return sb.String()
}
