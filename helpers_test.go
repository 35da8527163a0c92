// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sample mirrors a C struct { int id; char name[64]; double value; }.
type sample struct {
	ID    int32    `recset:"ID"`
	Name  [64]byte `recset:"NAME"`
	Value float64  `recset:"VALUE"`
}

const sampleSize = 80

var sampleMapping = MustMapping(
	Field{Name: "ID", Offset: 0, Size: 4, Type: Int},
	Field{Name: "NAME", Offset: 4, Size: 64, Type: String},
	Field{Name: "VALUE", Offset: 72, Size: 8, Type: Double},
)

var sampleConfig = Config{
	CommentPrefix: '#',
	Separator:     "=",
	PrimaryKey:    "ID",
	KeyMode:       FieldKey,
}

// sensor has no identifying field; records are addressed by position.
type sensor struct {
	Location    [32]byte `recset:"LOCATION"`
	Temperature float32  `recset:"TEMP"`
	Humidity    float32  `recset:"HUMIDITY"`
}

const sensorSize = 40

var sensorMapping = MustMapping(
	Field{Name: "LOCATION", Offset: 0, Size: 32, Type: String},
	Field{Name: "TEMP", Offset: 32, Size: 4, Type: Float},
	Field{Name: "HUMIDITY", Offset: 36, Size: 4, Type: Float},
)

var sensorIndexConfig = Config{
	KeyMode:    IndexKey,
	IndexField: "ID",
}

var sensorSequentialConfig = Config{
	KeyMode: IndexKey,
}

// allTypes covers every FieldType:
// struct { int i; long l; short s; float f; double d; char c; char str[32]; }
const allTypesSize = 72

var allTypesMapping = MustMapping(
	Field{Name: "IVAL", Offset: 0, Size: 4, Type: Int},
	Field{Name: "LVAL", Offset: 8, Size: 8, Type: Long},
	Field{Name: "SVAL", Offset: 16, Size: 2, Type: Short},
	Field{Name: "FVAL", Offset: 20, Size: 4, Type: Float},
	Field{Name: "DVAL", Offset: 24, Size: 8, Type: Double},
	Field{Name: "CVAL", Offset: 32, Size: 1, Type: Char},
	Field{Name: "STRVAL", Offset: 33, Size: 32, Type: String},
)

// writeFile writes lines to a file in a fresh temp dir and returns its path.
func writeFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
	require.NoError(t, err)
	return path
}

// fieldValue reads a named field out of rec, failing the test on error.
func fieldValue(t *testing.T, m *Mapping, rec Record, name string) any {
	t.Helper()
	f, ok := m.Resolve(name)
	require.True(t, ok, "field %q", name)
	v, err := f.Value(rec)
	require.NoError(t, err)
	return v
}

func decodeSample(t *testing.T, rec Record) sample {
	t.Helper()
	var s sample
	require.NoError(t, Decode(rec, sampleMapping, &s))
	return s
}

func cstr(b []byte) string {
	return string(cString(b))
}
