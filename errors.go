// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"errors"
	"fmt"

	"github.com/bpowers/recset/internal/kvline"
)

var (
	// ErrIO is returned (wrapped in a *ParseError) when the input can't
	// be opened or read.
	ErrIO = errors.New("i/o error")
	// ErrMalformedToken means a token on a data line has no separator.
	ErrMalformedToken = kvline.ErrMalformedToken
	// ErrConversion matches every *ConversionError.
	ErrConversion        = errors.New("conversion error")
	ErrIndexFieldMissing = errors.New("index field missing")
	ErrIndexFieldInvalid = errors.New("index field invalid")
	// ErrTooManyRecords means a parse needed more slots than the
	// configured maximum (see WithMaxRecords).
	ErrTooManyRecords = errors.New("too many records")

	ErrNotFound     = errors.New("record not found")
	ErrInvalidQuery = errors.New("invalid query")
	ErrUnknownField = errors.New("unknown field")

	// ErrLayout reports a mapping that can't describe a record, e.g. a
	// field that extends past the end of the record.
	ErrLayout = errors.New("invalid record layout")
	ErrConfig = errors.New("invalid parser config")

	errEmptyChar = errors.New("empty value for char field")
)

// ConversionError reports a textual value that can't be stored in a field
// of the declared type.
type ConversionError struct {
	Field string
	Type  FieldType
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid %s value %q for field %q: %s", e.Type, e.Value, e.Field, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ParseError wraps any error that aborted a parse.  Line is 1-based, or 0
// when the failure isn't tied to a line (e.g. the file couldn't be opened).
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
