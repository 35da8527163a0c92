// Copyright 2021 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytesutil

import (
	"bytes"
)

// Cut slices s around the first instance of sep,
// returning the text before and after sep.
// The found result reports whether sep appears in s.
// If sep does not appear in s, cut returns s, nil, false.
//
// Cut returns slices of the original slice s, not copies.
func Cut(s, sep []byte) (l []byte, r []byte, ok bool) {
	if i := bytes.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, nil, false
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// TrimLine strips a trailing newline or carriage return and any leading
// or trailing spaces and tabs.  The result aliases s.
func TrimLine(s []byte) []byte {
	for len(s) > 0 && isBlank(s[0]) {
		s = s[1:]
	}
	for n := len(s); n > 0; n = len(s) {
		c := s[n-1]
		if !isBlank(c) && c != '\n' && c != '\r' {
			break
		}
		s = s[:n-1]
	}
	return s
}

// Fields splits s around runs of spaces and tabs.  Unlike bytes.Fields
// other whitespace (vertical tab, form feed, unicode spaces) is part of a
// token.
func Fields(s []byte) [][]byte {
	return bytes.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}
