// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"fmt"
	"reflect"
)

// TagName is the struct tag MappingOf and Decode read field names from.
const TagName = "recset"

func fieldTypeOf(t reflect.Type) (FieldType, bool) {
	switch t.Kind() {
	case reflect.Int32:
		return Int, true
	case reflect.Int16:
		return Short, true
	case reflect.Int64:
		return Long, true
	case reflect.Float32:
		return Float, true
	case reflect.Float64:
		return Double, true
	case reflect.Uint8:
		return Char, true
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 && t.Len() > 0 {
			return String, true
		}
	}
	return 0, false
}

func structType(v any) (reflect.Type, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrLayout, v)
	}
	return t, nil
}

// MappingOf builds a Mapping from the `recset:"NAME"` tags on the fields of
// the struct v (or the struct v points to), using each field's Go offset
// and size.  It also returns the size of the struct, which is the record
// size to pass to Parse.
//
// Supported field types are int32 (Int), int16 (Short), int64 (Long),
// float32 (Float), float64 (Double), byte (Char) and [N]byte (String).
// Untagged fields and fields tagged "-" are left out of the mapping but
// still occupy their bytes in the record.
//
//	type sample struct {
//		ID    int32    `recset:"ID"`
//		Name  [64]byte `recset:"NAME"`
//		Value float64  `recset:"VALUE"`
//	}
//	m, size, err := recset.MappingOf(sample{})
func MappingOf(v any) (*Mapping, int, error) {
	t, err := structType(v)
	if err != nil {
		return nil, 0, err
	}
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := sf.Tag.Lookup(TagName)
		if !ok || name == "-" {
			continue
		}
		ft, ok := fieldTypeOf(sf.Type)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s.%s has unsupported type %s", ErrLayout, t.Name(), sf.Name, sf.Type)
		}
		fields = append(fields, Field{
			Name:   name,
			Offset: int(sf.Offset),
			Size:   int(sf.Type.Size()),
			Type:   ft,
		})
	}
	m, err := NewMapping(fields...)
	if err != nil {
		return nil, 0, err
	}
	return m, int(t.Size()), nil
}

// Decode copies the mapped fields of rec into the tagged fields of the
// struct dst points to.  Struct fields are matched to m by tag name; tags
// absent from m are left untouched.
func Decode(rec Record, m *Mapping, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("recset.Decode: need a non-nil pointer to a struct, got %T", dst)
	}
	sv := rv.Elem()
	t := sv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := sf.Tag.Lookup(TagName)
		if !ok || name == "-" {
			continue
		}
		f, ok := m.Resolve(name)
		if !ok {
			continue
		}
		if ft, ok := fieldTypeOf(sf.Type); !ok || ft != f.Type {
			return fmt.Errorf("%w: %s.%s can't hold a %s", ErrLayout, t.Name(), sf.Name, f.Type)
		}
		fv := sv.Field(i)
		if !fv.CanSet() {
			return fmt.Errorf("%w: %s.%s is unexported", ErrLayout, t.Name(), sf.Name)
		}
		if f.Type == String {
			src, err := f.span(rec)
			if err != nil {
				return err
			}
			fv.Set(reflect.Zero(sf.Type))
			// copies min(len(array), f.Size) bytes, NULs included
			reflect.Copy(fv, reflect.ValueOf(src))
			continue
		}
		v, err := f.Value(rec)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v).Convert(sf.Type))
	}
	return nil
}
