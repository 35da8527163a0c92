// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package kvline splits a single line of the form
//
//	KEY1=VALUE1 KEY2=VALUE2 ...
//
// into key/value pairs.  Tokens are separated by runs of ASCII spaces and
// tabs, and each token is split around the first occurrence of the
// separator, so the separator may appear again inside the value.
package kvline

import (
	"errors"
	"fmt"

	"github.com/bpowers/recset/internal/bytesutil"
)

var ErrMalformedToken = errors.New("malformed token")

// Pair is one KEY<sep>VALUE token.  Key and Value alias the line passed
// to Tokenize.
type Pair struct {
	Key   []byte
	Value []byte
}

// Tokenize splits line into pairs.  A token without sep is an error
// wrapping ErrMalformedToken; no pairs are returned in that case.
func Tokenize(line, sep []byte) ([]Pair, error) {
	if len(sep) == 0 {
		return nil, errors.New("empty separator")
	}
	tokens := bytesutil.Fields(line)
	pairs := make([]Pair, 0, len(tokens))
	for _, token := range tokens {
		k, v, ok := bytesutil.Cut(token, sep)
		if !ok {
			return nil, fmt.Errorf("%w (no %q): %s", ErrMalformedToken, sep, token)
		}
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	return pairs, nil
}

// Lookup returns the first pair whose key equals key.
func Lookup(pairs []Pair, key string) (Pair, bool) {
	for _, p := range pairs {
		if string(p.Key) == key {
			return p, true
		}
	}
	return Pair{}, false
}
