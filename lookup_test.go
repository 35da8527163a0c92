// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAllTypes(t *testing.T) *RecordSet {
	t.Helper()
	path := writeFile(t,
		"IVAL=1 LVAL=10 SVAL=100 FVAL=0.1 DVAL=0.1 CVAL=a STRVAL=first",
		"IVAL=2 LVAL=20 SVAL=200 FVAL=0.2 DVAL=0.2 CVAL=b STRVAL=second",
		"IVAL=3 LVAL=30 SVAL=300 FVAL=0.3 DVAL=0.3 CVAL=c STRVAL=third",
		"IVAL=2 LVAL=40 SVAL=400 FVAL=0.4 DVAL=0.4 CVAL=d STRVAL=second",
	)
	rs, err := Parse(path, Config{}, allTypesMapping, allTypesSize)
	require.NoError(t, err)
	t.Cleanup(rs.Release)
	return rs
}

func TestFindByField(t *testing.T) {
	rs := parseAllTypes(t)

	for _, tc := range []struct {
		field    string
		value    string
		expected int32 // IVAL of the expected record
	}{
		{"IVAL", "3", 3},
		{"IVAL", "+3", 3},
		{"LVAL", "20", 2},
		{"SVAL", "300", 3},
		{"FVAL", "0.1", 1},
		{"FVAL", "0.2", 2},
		{"DVAL", "0.3", 3},
		{"DVAL", "3e-1", 3},
		{"CVAL", "c", 3},
		{"CVAL", "cat", 3},
		{"STRVAL", "first", 1},
		// first match in storage order wins
		{"IVAL", "2", 2},
		{"STRVAL", "second", 2},
	} {
		rec, err := FindByField(rs, allTypesMapping, tc.field, tc.value)
		require.NoError(t, err, "%s=%s", tc.field, tc.value)
		assert.Equal(t, tc.expected, fieldValue(t, allTypesMapping, rec, "IVAL"), "%s=%s", tc.field, tc.value)
		if tc.field == "IVAL" && tc.value == "2" {
			assert.Equal(t, int64(20), fieldValue(t, allTypesMapping, rec, "LVAL"))
		}
	}
}

func TestFindByField_NotFound(t *testing.T) {
	rs := parseAllTypes(t)

	for _, tc := range []struct {
		field string
		value string
	}{
		{"IVAL", "99"},
		{"STRVAL", "fir"},
		{"STRVAL", "firstly"},
		{"CVAL", "z"},
		// exact comparison: no tolerance window
		{"DVAL", "0.30000000000000004"},
		{"DVAL", "0.1000001"},
		{"FVAL", "NaN"},
	} {
		_, err := FindByField(rs, allTypesMapping, tc.field, tc.value)
		require.ErrorIs(t, err, ErrNotFound, "%s=%s", tc.field, tc.value)
	}
}

func TestFindByField_Errors(t *testing.T) {
	rs := parseAllTypes(t)

	_, err := FindByField(rs, allTypesMapping, "NOPE", "1")
	require.ErrorIs(t, err, ErrUnknownField)
	require.False(t, errors.Is(err, ErrNotFound))

	for _, tc := range []struct {
		field string
		value string
	}{
		{"IVAL", "two"},
		{"IVAL", "2x"},
		{"SVAL", "70000"},
		{"CVAL", ""},
		{"DVAL", ""},
	} {
		_, err := FindByField(rs, allTypesMapping, tc.field, tc.value)
		require.ErrorIs(t, err, ErrInvalidQuery, "%s=%q", tc.field, tc.value)
		require.ErrorIs(t, err, ErrConversion)
	}

	_, err = FindByField(rs, nil, "IVAL", "1")
	require.ErrorIs(t, err, ErrLayout)

	// a mapping for a bigger record can't be used against this set
	wide := MustMapping(Field{Name: "IVAL", Offset: 200, Size: 4, Type: Int})
	_, err = FindByField(rs, wide, "IVAL", "1")
	require.ErrorIs(t, err, ErrLayout)
}

func TestFindByField_StringCompareUsesStoredTruncation(t *testing.T) {
	m := MustMapping(Field{Name: "S", Offset: 0, Size: 4, Type: String})
	rs, err := Parse(writeFile(t, "S=abcdef"), Config{}, m, 4)
	require.NoError(t, err)
	defer rs.Release()

	// only "abc" fits
	_, err = FindByField(rs, m, "S", "abc")
	require.NoError(t, err)
	_, err = FindByField(rs, m, "S", "abcdef")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByIndex(t *testing.T) {
	path := writeFile(t,
		"ID=1 LOCATION=a",
		"ID=2 LOCATION=b",
		"ID=3 LOCATION=c",
	)
	rs, err := Parse(path, sensorIndexConfig, sensorMapping, sensorSize)
	require.NoError(t, err)
	defer rs.Release()
	require.Equal(t, 3, rs.Len())

	rec, err := FindByIndex(rs, "2")
	require.NoError(t, err)
	assert.Equal(t, "c", fieldValue(t, sensorMapping, rec, "LOCATION"))
	require.Len(t, rec, sensorSize)
	require.Equal(t, sensorSize, cap(rec))

	rec, err = FindByIndex(rs, "0")
	require.NoError(t, err)
	assert.Equal(t, "a", fieldValue(t, sensorMapping, rec, "LOCATION"))

	_, err = FindByIndex(rs, "3")
	require.ErrorIs(t, err, ErrNotFound)

	for _, bad := range []string{"-1", "", "x", "1.0", "1 "} {
		_, err = FindByIndex(rs, bad)
		require.ErrorIs(t, err, ErrInvalidQuery, "index %q", bad)
	}

	_, err = FindByIndex(nil, "0")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordSet_Find(t *testing.T) {
	path := writeFile(t, "ID=5 NAME=five VALUE=5", "ID=6 NAME=six VALUE=6")
	rs, err := Parse(path, sampleConfig, sampleMapping, sampleSize)
	require.NoError(t, err)
	defer rs.Release()

	rec, err := rs.Find(sampleConfig, sampleMapping, "6")
	require.NoError(t, err)
	assert.Equal(t, "six", fieldValue(t, sampleMapping, rec, "NAME"))

	// the same key treated as a position
	_, err = rs.Find(Config{KeyMode: IndexKey}, sampleMapping, "6")
	require.ErrorIs(t, err, ErrNotFound)
	rec, err = rs.Find(Config{KeyMode: IndexKey}, sampleMapping, "0")
	require.NoError(t, err)
	assert.Equal(t, "five", fieldValue(t, sampleMapping, rec, "NAME"))

	_, err = rs.Find(Config{}, sampleMapping, "6")
	require.ErrorIs(t, err, ErrConfig)
}

func TestRecordSet_Locate(t *testing.T) {
	rs := parseAllTypes(t)
	cfg := Config{PrimaryKey: "IVAL"}

	pos, err := rs.Locate(cfg, allTypesMapping, "3")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	// first match in storage order
	pos, err = rs.Locate(cfg, allTypesMapping, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	pos, err = rs.Locate(Config{KeyMode: IndexKey}, allTypesMapping, "3")
	require.NoError(t, err)
	assert.Equal(t, 3, pos)

	pos, err = rs.Locate(cfg, allTypesMapping, "9")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, -1, pos)
}
