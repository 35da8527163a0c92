// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"fmt"
	"strconv"
)

// FindByField returns the first record, in storage order, whose field
// fieldName equals value.  value is converted with the same rules Set
// uses, and numbers are compared exactly: 0.1 only matches a stored value
// that parses to the very same float, and NaN matches nothing.
//
// It returns ErrUnknownField if m has no such field, ErrInvalidQuery if
// value doesn't convert, and ErrNotFound if no record matches.
func FindByField(rs *RecordSet, m *Mapping, fieldName, value string) (Record, error) {
	pos, err := locateByField(rs, m, fieldName, value)
	if err != nil {
		return nil, err
	}
	return rs.slot(pos), nil
}

func locateByField(rs *RecordSet, m *Mapping, fieldName, value string) (int, error) {
	if m == nil {
		return -1, fmt.Errorf("%w: nil mapping", ErrLayout)
	}
	f, ok := m.Resolve(fieldName)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownField, fieldName)
	}
	if rs.Len() > 0 {
		if err := m.checkFits(rs.RecordSize()); err != nil {
			return -1, err
		}
	}
	v, err := f.convert(value)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	for i := 0; i < rs.Len(); i++ {
		if f.matches(rs.slot(i), v) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s=%s", ErrNotFound, fieldName, value)
}

// FindByIndex returns the record in the 0-based slot named by value.
// value must be a non-negative decimal integer, otherwise ErrInvalidQuery
// is returned; slots at or past Len() give ErrNotFound.
func FindByIndex(rs *RecordSet, value string) (Record, error) {
	pos, err := locateByIndex(rs, value)
	if err != nil {
		return nil, err
	}
	return rs.slot(pos), nil
}

func locateByIndex(rs *RecordSet, value string) (int, error) {
	idx, err := strconv.ParseInt(value, 10, 64)
	if err != nil || idx < 0 {
		return -1, fmt.Errorf("%w: index must be a non-negative integer: %q", ErrInvalidQuery, value)
	}
	if idx >= int64(rs.Len()) {
		return -1, fmt.Errorf("%w: index %d is out of range (record count: %d)", ErrNotFound, idx, rs.Len())
	}
	return int(idx), nil
}

// Find looks value up the way cfg says records are keyed: by array index
// in IndexKey mode, and by cfg.PrimaryKey otherwise.
func (rs *RecordSet) Find(cfg Config, m *Mapping, value string) (Record, error) {
	pos, err := rs.Locate(cfg, m, value)
	if err != nil {
		return nil, err
	}
	return rs.slot(pos), nil
}

// Locate is like Find, but returns the 0-based slot of the record.
func (rs *RecordSet) Locate(cfg Config, m *Mapping, value string) (int, error) {
	if cfg.KeyMode == IndexKey {
		return locateByIndex(rs, value)
	}
	if cfg.PrimaryKey == "" {
		return -1, fmt.Errorf("%w: no primary key configured", ErrConfig)
	}
	return locateByField(rs, m, cfg.PrimaryKey, value)
}
