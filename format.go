// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/jdoc/internal/escape"
	"go4.org/mem"
)

// Canonical renders n as JSON text with no whitespace outside of strings.
// Unlike n.JSON, it is suitable for exact comparison with other compact
// encoders.
func Canonical(n Node) string { return string(appendJSON(nil, n, true)) }

// appendJSON appends the single-line encoding of n to buf. If strip is true,
// no spaces are written between tokens.
func appendJSON(buf []byte, n Node, strip bool) []byte {
	switch t := n.(type) {
	case *Object:
		if len(t.props) == 0 {
			if strip {
				return append(buf, "{}"...)
			}
			return append(buf, "{ }"...)
		}
		buf = append(buf, '{')
		for i, p := range t.props {
			if i > 0 {
				buf = append(buf, ',')
				if !strip {
					buf = append(buf, ' ')
				}
			}
			buf = appendJSON(buf, p, strip)
		}
		return append(buf, '}')
	case *Property:
		buf = escape.AppendQuote(buf, mem.S(t.key))
		buf = append(buf, ':')
		if !strip {
			buf = append(buf, ' ')
		}
		return appendJSON(buf, t.value, strip)
	case *Array:
		buf = append(buf, '[')
		for i, e := range t.elems {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSON(buf, e, strip)
		}
		return append(buf, ']')
	case *String:
		return escape.AppendQuote(buf, mem.S(t.text))
	case *Number:
		return append(buf, t.text...)
	case *Bool:
		return strconv.AppendBool(buf, t.value)
	case *Null:
		return append(buf, "null"...)
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

// A Formatter carries the settings for rendering indented text.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the text written once per level of depth.
	// If empty, a single tab is used.
	Indent string
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "\t"
	}
	return f.Indent
}

// Format renders an indented representation of n to w with default
// settings.
func Format(w io.Writer, n Node) error {
	var f Formatter
	return f.Format(w, n)
}

// FormatToString formats n to a string with default settings.
func FormatToString(n Node) string {
	var f Formatter
	return string(f.appendNode(nil, n, Depth(n)))
}

// Format renders an indented representation of n to w using the settings
// from f. Each element of an array and each property of an object is written
// on its own line, indented by its depth relative to n.
func (f Formatter) Format(w io.Writer, n Node) error {
	_, err := w.Write(f.appendNode(nil, n, Depth(n)))
	return err
}

// appendNode appends the indented encoding of n to buf, with depths measured
// relative to base.
func (f Formatter) appendNode(buf []byte, n Node, base int) []byte {
	ind := bytes.Repeat([]byte(f.indent()), Depth(n)-base)
	buf = append(buf, f.lead(n, ind)...)
	switch t := n.(type) {
	case *Object:
		if len(t.props) == 0 {
			return append(buf, "{ }"...)
		}
		buf = append(buf, "{\n"...)
		for i, p := range t.props {
			buf = f.appendNode(buf, p, base)
			if i+1 < len(t.props) {
				buf = append(buf, ',')
			}
			buf = append(buf, '\n')
		}
		buf = append(buf, ind...)
		return append(buf, '}')

	case *Property:
		buf = escape.AppendQuote(buf, mem.S(t.key))
		buf = append(buf, ": "...)
		return f.appendNode(buf, t.value, base)

	case *Array:
		if len(t.elems) == 0 {
			return append(buf, "[]"...)
		}
		buf = append(buf, "[\n"...)
		for i, e := range t.elems {
			buf = f.appendNode(buf, e, base)
			if i+1 < len(t.elems) {
				buf = append(buf, ',')
			}
			buf = append(buf, '\n')
		}
		buf = append(buf, ind...)
		return append(buf, ']')

	default:
		return appendJSON(buf, n, false)
	}
}

// lead returns the indentation that precedes the first line of n. The value
// of a property follows its key on the same line, and is not indented.
func (Formatter) lead(n Node, ind []byte) []byte {
	if up := n.Parent(); up != nil && up.Kind() == PropertyKind {
		return nil
	}
	return ind
}
