// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"errors"
	"fmt"
	"math"

	"github.com/dgryski/go-farm"

	"github.com/bpowers/recset/internal/zero"
)

// InitialCapacity is the number of record slots allocated before the
// first line is parsed.
const InitialCapacity = 16

// Record is a view of the bytes of one record inside a RecordSet.  It's
// only valid until the RecordSet is released, and must not be written to.
type Record []byte

// RecordSet is a growable array of fixed-size records stored back to back
// in one buffer.  Slots in [0, Cap()) that haven't been written are all
// zero bytes.
type RecordSet struct {
	buf        []byte
	recordSize int
	count      int
	capacity   int
	// limit is the most slots the set may ever hold.
	limit int
}

func newRecordSet(recordSize, capacity int) *RecordSet {
	return &RecordSet{
		buf:        make([]byte, capacity*recordSize),
		recordSize: recordSize,
		capacity:   capacity,
		limit:      math.MaxInt / recordSize,
	}
}

// setLimit caps the number of slots at n.  The cap never exceeds what a
// single buffer can address.
func (rs *RecordSet) setLimit(n int) {
	rs.limit = min(n, math.MaxInt/rs.recordSize)
}

// Len returns the number of occupied slots.  In index-placement mode this
// includes zero-filled gaps below the highest placed position.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return rs.count
}

// Cap returns the number of allocated slots.
func (rs *RecordSet) Cap() int {
	if rs == nil {
		return 0
	}
	return rs.capacity
}

func (rs *RecordSet) RecordSize() int {
	if rs == nil {
		return 0
	}
	return rs.recordSize
}

func (rs *RecordSet) slot(i int) []byte {
	off := i * rs.recordSize
	end := off + rs.recordSize
	return rs.buf[off:end:end]
}

// At returns the record in slot i, which must be in [0, Len()).
func (rs *RecordSet) At(i int) (Record, bool) {
	if i < 0 || i >= rs.Len() {
		return nil, false
	}
	return rs.slot(i), true
}

// Each calls fn for every occupied slot in storage order until fn returns
// false.
func (rs *RecordSet) Each(fn func(i int, r Record) bool) {
	for i := 0; i < rs.Len(); i++ {
		if !fn(i, rs.slot(i)) {
			return
		}
	}
}

// Bytes returns the occupied prefix of the storage: Len() records of
// RecordSize() bytes each.
func (rs *RecordSet) Bytes() []byte {
	if rs == nil || rs.buf == nil {
		return nil
	}
	n := rs.count * rs.recordSize
	return rs.buf[:n:n]
}

// CopyTo copies the occupied records into dst, truncating to len(dst) if
// dst is smaller.  Truncation is byte-wise: the last record may be copied
// partially.  It returns the number of bytes copied.
func (rs *RecordSet) CopyTo(dst []byte) int {
	return copy(dst, rs.Bytes())
}

// Checksum returns a 64-bit farmhash of Bytes(), handy for checking that
// an exported copy matches.
func (rs *RecordSet) Checksum() uint64 {
	return farm.Hash64(rs.Bytes())
}

// Release drops the storage.  It's safe to call more than once and on a
// nil *RecordSet; afterwards the set is empty.
func (rs *RecordSet) Release() {
	if rs == nil {
		return
	}
	rs.buf = nil
	rs.count = 0
	rs.capacity = 0
}

// grow reallocates the storage to newCap slots.  Bytes of existing slots
// are preserved and the new slots are zeroed.
func (rs *RecordSet) grow(newCap int) {
	buf := make([]byte, newCap*rs.recordSize)
	copy(buf, rs.buf)
	// make already hands back zeroed memory; be explicit about the new
	// slots so the invariant doesn't depend on the allocation strategy.
	zero.Slots(buf, rs.recordSize, rs.capacity, newCap)
	rs.buf = buf
	rs.capacity = newCap
}

var errReleased = errors.New("record set released")

// nextSlot returns the zeroed slot at Len(), doubling capacity first if
// the set is full.  The caller commits it with commit.
func (rs *RecordSet) nextSlot() ([]byte, int, error) {
	if rs.buf == nil {
		return nil, 0, errReleased
	}
	if rs.count == rs.capacity {
		if rs.count >= rs.limit {
			return nil, 0, fmt.Errorf("%w: limit is %d", ErrTooManyRecords, rs.limit)
		}
		newCap := rs.limit
		if rs.capacity <= rs.limit/2 {
			newCap = max(rs.capacity*2, 1)
		}
		rs.grow(newCap)
	}
	rec := rs.slot(rs.count)
	zero.Bytes(rec)
	return rec, rs.count, nil
}

// placeSlot returns the zeroed slot at pos, doubling capacity (up to the
// limit) until pos fits.  Only newly allocated slots are zeroed by growth; the target slot
// itself is always zeroed so a repeated position doesn't see stale data.
func (rs *RecordSet) placeSlot(pos int) ([]byte, error) {
	if rs.buf == nil {
		return nil, errReleased
	}
	if pos < 0 {
		return nil, errors.New("negative slot position")
	}
	if pos >= rs.limit {
		return nil, fmt.Errorf("%w: position %d, limit is %d", ErrTooManyRecords, pos+1, rs.limit)
	}
	if pos >= rs.capacity {
		newCap := max(rs.capacity, 1)
		for newCap <= pos && newCap <= rs.limit/2 {
			newCap *= 2
		}
		rs.grow(max(min(newCap, rs.limit), pos+1))
	}
	rec := rs.slot(pos)
	zero.Bytes(rec)
	return rec, nil
}

// commit marks slot pos as occupied.
func (rs *RecordSet) commit(pos int) {
	if pos+1 > rs.count {
		rs.count = pos + 1
	}
}
