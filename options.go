// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"io"
	"log/slog"
)

// KeyMode selects how records are identified.
type KeyMode uint8

const (
	// FieldKey identifies records by the value of a named field.
	FieldKey KeyMode = iota
	// IndexKey identifies records by their position in the set.
	IndexKey
)

func (m KeyMode) String() string {
	switch m {
	case FieldKey:
		return "field"
	case IndexKey:
		return "index"
	}
	return "unknown"
}

const (
	DefaultCommentPrefix = '#'
	DefaultSeparator     = "="
	// DefaultMaxRecords bounds how many slots a parse may allocate,
	// including gaps left by index placement.
	DefaultMaxRecords = 1 << 24
)

// Config controls how a file is read and how records are placed.
type Config struct {
	// CommentPrefix marks a line to skip when it's the first non-blank
	// character.  Zero means DefaultCommentPrefix.
	CommentPrefix byte
	// Separator splits each token into key and value.  Empty means
	// DefaultSeparator.
	Separator string
	// PrimaryKey names the field Find compares against in FieldKey mode.
	PrimaryKey string
	KeyMode    KeyMode
	// IndexField, in IndexKey mode, names a column holding the 1-based
	// position of the record.  The column is never stored in the record.
	// When empty, records are appended in file order.
	IndexField string
}

func (c Config) withDefaults() Config {
	if c.CommentPrefix == 0 {
		c.CommentPrefix = DefaultCommentPrefix
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	return c
}

// placeByIndex reports whether records are placed by an explicit position
// column rather than appended.
func (c Config) placeByIndex() bool {
	return c.KeyMode == IndexKey && c.IndexField != ""
}

// Option configures Parse and ParseReader.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	maxRecords int
}

// WithLogger sets an optional logger for the parser to report skipped lines,
// growth and failures.  If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithMaxRecords caps the number of record slots a parse may allocate.  A
// line that would need more fails with ErrTooManyRecords, or with
// ErrIndexFieldInvalid when its index column points past the cap.  Values
// below 1 leave DefaultMaxRecords in place.
func WithMaxRecords(n int) Option {
	return func(opts *options) {
		if n > 0 {
			opts.maxRecords = n
		}
	}
}

func newOptions(opts []Option) options {
	var o options
	o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	o.maxRecords = DefaultMaxRecords
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
