// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package recset loads line-oriented KEY=VALUE text files into a dense
// array of fixed-layout binary records.
//
// A record layout is described once as a Mapping: an ordered list of
// Fields, each naming a column in the input and giving the byte offset,
// size and type of the value inside the record.  A mapping can be written
// out by hand or derived from a tagged Go struct with MappingOf.
//
// An input file looks like:
//
//	# comment
//	ID=1 NAME=alpha VALUE=1.5
//	ID=2 NAME=beta  VALUE=2.25 NOTE=ignored
//
// Each non-blank, non-comment line becomes one record.  Columns that
// aren't in the mapping are ignored, a token without the separator is a
// fatal error, and values are converted to the field's type:
//
//	┌─────────┬──────────┬───────────────────────────────────────┐
//	│ type    │ size     │ stored as                             │
//	├─────────┼──────────┼───────────────────────────────────────┤
//	│ Int     │ 4        │ int32, host byte order                │
//	│ Short   │ 2        │ int16, host byte order                │
//	│ Long    │ 8        │ int64, host byte order                │
//	│ Float   │ 4        │ IEEE 754 binary32, host byte order    │
//	│ Double  │ 8        │ IEEE 754 binary64, host byte order    │
//	│ Char    │ 1        │ first byte of the value               │
//	│ String  │ N >= 1   │ up to N-1 bytes, NUL padded           │
//	└─────────┴──────────┴───────────────────────────────────────┘
//
// Strings longer than their field are truncated without error.
//
// Records are either appended in file order, or, in IndexKey mode with an
// IndexField, placed at the 1-based position given by that column.  Slots
// skipped over by sparse positions are left as all-zero records and count
// toward Len.
//
// Lookups are a linear scan comparing one field (FindByField) or direct
// access by 0-based slot (FindByIndex).  A RecordSet isn't safe for
// concurrent mutation, but it is never modified after Parse returns.
package recset
