// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"fmt"
)

// Mapping is an ordered list of field descriptors for one record layout.
// It's read-only once built and can be shared between parses.
type Mapping struct {
	fields []Field
}

// NewMapping validates fields and returns a Mapping over a copy of them.
// Duplicate names are allowed; Resolve returns the first.
func NewMapping(fields ...Field) (*Mapping, error) {
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
	}
	m := &Mapping{
		fields: make([]Field, len(fields)),
	}
	copy(m.fields, fields)
	return m, nil
}

// MustMapping is like NewMapping but panics on an invalid field.  It's
// meant for package-level mapping tables.
func MustMapping(fields ...Field) *Mapping {
	m, err := NewMapping(fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Resolve returns the first field called name.  Names are case-sensitive.
// Mappings are expected to be small (tens of fields), so this is a linear
// scan.
func (m *Mapping) Resolve(name string) (Field, bool) {
	for _, f := range m.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (m *Mapping) Len() int {
	return len(m.fields)
}

// Fields returns a copy of the descriptors in declaration order.
func (m *Mapping) Fields() []Field {
	fields := make([]Field, len(m.fields))
	copy(fields, m.fields)
	return fields
}

// checkFits verifies every field lies inside a record of recordSize bytes.
func (m *Mapping) checkFits(recordSize int) error {
	for _, f := range m.fields {
		if f.Offset+f.Size > recordSize {
			return fmt.Errorf("%w: field %q [%d, %d) doesn't fit in a %d-byte record",
				ErrLayout, f.Name, f.Offset, f.Offset+f.Size, recordSize)
		}
	}
	return nil
}
