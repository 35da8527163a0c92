// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bpowers/recset/internal/unsafestring"
	"github.com/bpowers/recset/internal/zero"
)

// FieldType is the binary representation of a field inside a record.
type FieldType uint8

const (
	Int    FieldType = iota // 32-bit signed integer
	Short                   // 16-bit signed integer
	Long                    // 64-bit signed integer
	Float                   // 32-bit IEEE 754
	Double                  // 64-bit IEEE 754
	Char                    // a single byte
	String                  // NUL-terminated bytes, fixed capacity
)

var fieldTypeNames = [...]string{
	Int:    "int",
	Short:  "short",
	Long:   "long",
	Float:  "float",
	Double: "double",
	Char:   "char",
	String: "string",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// ParseFieldType maps a type name as returned by FieldType.String back to
// the FieldType.
func ParseFieldType(name string) (FieldType, error) {
	for t, n := range fieldTypeNames {
		if n == name {
			return FieldType(t), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown field type %q", ErrLayout, name)
}

// Width is the fixed size in bytes of a field of this type, or 0 for
// String, which may have any size of at least 1 byte.
func (t FieldType) Width() int {
	switch t {
	case Int, Float:
		return 4
	case Short:
		return 2
	case Long, Double:
		return 8
	case Char:
		return 1
	}
	return 0
}

// Field describes where and how a named value is stored inside a
// fixed-size record.
type Field struct {
	Name   string
	Offset int
	Size   int
	Type   FieldType
}

func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: field with empty name", ErrLayout)
	}
	if f.Offset < 0 {
		return fmt.Errorf("%w: field %q has negative offset %d", ErrLayout, f.Name, f.Offset)
	}
	if int(f.Type) >= len(fieldTypeNames) {
		return fmt.Errorf("%w: field %q has unknown type %s", ErrLayout, f.Name, f.Type)
	}
	if w := f.Type.Width(); w != 0 && f.Size != w {
		return fmt.Errorf("%w: field %q of type %s must be %d bytes, not %d", ErrLayout, f.Name, f.Type, w, f.Size)
	}
	if f.Size < 1 {
		return fmt.Errorf("%w: field %q has size %d", ErrLayout, f.Name, f.Size)
	}
	return nil
}

// span returns the bytes of rec that belong to f.
func (f Field) span(rec []byte) ([]byte, error) {
	end := f.Offset + f.Size
	if f.Offset < 0 || end > len(rec) {
		return nil, fmt.Errorf("%w: field %q [%d, %d) outside record of %d bytes", ErrLayout, f.Name, f.Offset, end, len(rec))
	}
	return rec[f.Offset:end:end], nil
}

// scalar is the converted form of a textual value, ready to be stored in
// or compared against a field.
type scalar struct {
	i int64
	f float64
	b []byte
}

// convert parses text according to f.Type.  Strings are returned
// untruncated.
func (f Field) convert(text string) (scalar, error) {
	var v scalar
	var err error
	switch f.Type {
	case Int:
		v.i, err = strconv.ParseInt(text, 10, 32)
	case Short:
		v.i, err = strconv.ParseInt(text, 10, 16)
	case Long:
		v.i, err = strconv.ParseInt(text, 10, 64)
	case Float:
		v.f, err = strconv.ParseFloat(text, 32)
	case Double:
		v.f, err = strconv.ParseFloat(text, 64)
	case Char:
		if len(text) == 0 {
			err = errEmptyChar
		} else {
			v.b = unsafestring.ToBytes(text[:1])
		}
	case String:
		v.b = unsafestring.ToBytes(text)
	default:
		err = fmt.Errorf("unknown type %s", f.Type)
	}
	if err != nil {
		// text may alias a read buffer that is reused for the next line
		return scalar{}, &ConversionError{Field: f.Name, Type: f.Type, Value: strings.Clone(text), Err: err}
	}
	return v, nil
}

// Set converts text and stores it in rec.  Only the bytes of rec covered
// by f are modified.  String values longer than Size-1 bytes are silently
// truncated; the final byte of a String field is always NUL.
func (f Field) Set(rec []byte, text string) error {
	dst, err := f.span(rec)
	if err != nil {
		return err
	}
	v, err := f.convert(text)
	if err != nil {
		return err
	}
	f.store(dst, v)
	return nil
}

func (f Field) store(dst []byte, v scalar) {
	switch f.Type {
	case Int:
		binary.NativeEndian.PutUint32(dst, uint32(int32(v.i)))
	case Short:
		binary.NativeEndian.PutUint16(dst, uint16(int16(v.i)))
	case Long:
		binary.NativeEndian.PutUint64(dst, uint64(v.i))
	case Float:
		binary.NativeEndian.PutUint32(dst, math.Float32bits(float32(v.f)))
	case Double:
		binary.NativeEndian.PutUint64(dst, math.Float64bits(v.f))
	case Char:
		dst[0] = v.b[0]
	case String:
		n := copy(dst[:len(dst)-1], v.b)
		zero.Bytes(dst[n:])
	}
}

// cString returns the bytes of a String field up to the first NUL.
func cString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// matches reports whether the value stored in rec equals v.  Floating
// point values are compared with ==: there is no tolerance, and NaN never
// matches.
func (f Field) matches(rec []byte, v scalar) bool {
	src := rec[f.Offset : f.Offset+f.Size]
	switch f.Type {
	case Int:
		return int64(int32(binary.NativeEndian.Uint32(src))) == v.i
	case Short:
		return int64(int16(binary.NativeEndian.Uint16(src))) == v.i
	case Long:
		return int64(binary.NativeEndian.Uint64(src)) == v.i
	case Float:
		return math.Float32frombits(binary.NativeEndian.Uint32(src)) == float32(v.f)
	case Double:
		return math.Float64frombits(binary.NativeEndian.Uint64(src)) == v.f
	case Char:
		return src[0] == v.b[0]
	case String:
		return bytes.Equal(cString(src), v.b)
	}
	return false
}

// Value reads the field back out of rec.  The dynamic type of the result
// is int32, int16, int64, float32, float64, byte or string depending on
// f.Type.
func (f Field) Value(rec []byte) (any, error) {
	src, err := f.span(rec)
	if err != nil {
		return nil, err
	}
	switch f.Type {
	case Int:
		return int32(binary.NativeEndian.Uint32(src)), nil
	case Short:
		return int16(binary.NativeEndian.Uint16(src)), nil
	case Long:
		return int64(binary.NativeEndian.Uint64(src)), nil
	case Float:
		return math.Float32frombits(binary.NativeEndian.Uint32(src)), nil
	case Double:
		return math.Float64frombits(binary.NativeEndian.Uint64(src)), nil
	case Char:
		return src[0], nil
	case String:
		return string(cString(src)), nil
	}
	return nil, fmt.Errorf("%w: field %q has unknown type %s", ErrLayout, f.Name, f.Type)
}

// Format renders the field stored in rec as text that Set would accept.
// A Char holding NUL renders as the empty string.
func (f Field) Format(rec []byte) (string, error) {
	v, err := f.Value(rec)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case byte:
		if v == 0 {
			return "", nil
		}
		return string([]byte{v}), nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("unexpected value %T", v)
}
