// Copyright 2021 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package zero provides functions to zero byte ranges and record slots.
package zero

func Bytes(b []byte) {
	for i := 0; i < len(b); i++ {
		b[i] = 0
	}
}

// Slots zeroes the records [from, to) of a buffer holding contiguous
// records of size bytes each.
func Slots(buf []byte, size, from, to int) {
	if from >= to {
		return
	}
	Bytes(buf[from*size : to*size])
}

// IsZero reports whether every byte of b is 0.
func IsZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
