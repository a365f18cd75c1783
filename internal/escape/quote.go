// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and object keys.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote returns src as a double-quoted JSON string.
func Quote(src string) string { return string(AppendQuote(nil, mem.S(src))) }

// AppendQuote appends the double-quoted JSON encoding of src to buf and
// returns the extended slice.
//
// Backslash, double quote and the control characters with short escapes are
// written as two-byte escapes. Other code points below U+0020, bytes that are
// not valid UTF-8, and the separators U+2028 and U+2029 are written as \uXXXX
// escapes. All other text, including a correctly encoded U+FFFD, is copied
// through unchanged.
func AppendQuote(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = appendUnicode(buf, r)
				}
			} else if r == '\\' || r == '"' {
				buf = append(buf, '\\', byte(r))
			} else {
				buf = append(buf, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch {
		case r == utf8.RuneError && n == 1, r == 0x2028, r == 0x2029:
			buf = appendUnicode(buf, r)
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}

// appendUnicode appends a six-byte Unicode escape for r, which must be in the
// Basic Multilingual Plane.
func appendUnicode(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigit[int(r>>12&15)], hexDigit[int(r>>8&15)],
		hexDigit[int(r>>4&15)], hexDigit[int(r&15)])
}
