// Copyright 2021 The recset Authors and Caleb Spare. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

// Bitset is an in-memory bitmap that is conceptually similar to []bool, but more memory efficient.
type Bitset struct {
	bits   []uint64
	length int64
}

func getOffsets(off int64) (sliceOff int64, bitOff uint64) {
	sliceOff = off / 64
	bitOff = uint64(off) % 64
	return
}

// Set sets the bit at position `off` to 1.
func (b *Bitset) Set(off int64) {
	if off < 0 || off >= b.length {
		return
	}
	sliceOff, bitOff := getOffsets(off)
	u64 := &b.bits[sliceOff]
	*u64 |= 1 << bitOff
}

// IsSet returns true if the bit at position `off` is 1.
func (b *Bitset) IsSet(off int64) bool {
	if off < 0 || off >= b.length {
		return false
	}
	sliceOff, bitOff := getOffsets(off)
	u64 := &b.bits[sliceOff]
	return *u64&(1<<bitOff) != 0
}

// Len returns the number of addressable bits.
func (b *Bitset) Len() int64 {
	return b.length
}

// Grow extends the bitset so that at least `length` bits are addressable.
// Existing bits are preserved and new bits start cleared.
func (b *Bitset) Grow(length int64) {
	if length <= b.length {
		return
	}
	sliceLen := (length + 63) / 64
	if sliceLen > int64(len(b.bits)) {
		bits := make([]uint64, sliceLen)
		copy(bits, b.bits)
		b.bits = bits
	}
	b.length = length
}

// New returns a new in-memory bitset where you can set and test individual bits.
func New(length int64) *Bitset {
	sliceLen := (length + 63) / 64
	return &Bitset{
		bits:   make([]uint64, sliceLen),
		length: length,
	}
}
