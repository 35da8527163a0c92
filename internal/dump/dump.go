// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package dump renders records for people: either as one text block per
// record, or as a JSON array of objects with keys in mapping order.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/tidwall/pretty"

	"github.com/bpowers/recset"
)

// Entry is one record to render along with its slot.
type Entry struct {
	Index  int
	Record recset.Record
}

// Text writes each entry as
//
//	record[0] {
//	  ID    = 42
//	  NAME  = "TestItem"
//	}
func Text(w io.Writer, m *recset.Mapping, entries ...Entry) error {
	fields := m.Fields()
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "record[%d] {\n", e.Index); err != nil {
			return err
		}
		for _, f := range fields {
			s, err := f.Format(e.Record)
			if err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
			if f.Type == recset.String || f.Type == recset.Char {
				s = strconv.Quote(s)
			}
			if _, err := fmt.Fprintf(w, "  %-*s = %s\n", width, f.Name, s); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes the entries as an indented JSON array.  Each object has an
// "index" key followed by the mapped fields in mapping order.  Floats that
// JSON can't represent (NaN, ±Inf) are written as strings.
func JSON(w io.Writer, m *recset.Mapping, entries ...Entry) error {
	fields := m.Fields()
	buf := []byte{'['}
	for i, e := range entries {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, `{"index":`...)
		buf = strconv.AppendInt(buf, int64(e.Index), 10)
		for _, f := range fields {
			v, err := f.Value(e.Record)
			if err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
			buf = append(buf, ',')
			buf = appendString(buf, f.Name)
			buf = append(buf, ':')
			buf, err = appendValue(buf, v)
			if err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
		buf = append(buf, '}')
	}
	buf = append(buf, ']')
	_, err := w.Write(pretty.Pretty(buf))
	return err
}

func appendString(buf []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(buf, b...)
}

func appendFloat(buf []byte, f float64, bits int) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return appendString(buf, strconv.FormatFloat(f, 'g', -1, bits))
	}
	return strconv.AppendFloat(buf, f, 'g', -1, bits)
}

func appendValue(buf []byte, v any) ([]byte, error) {
	switch v := v.(type) {
	case int32:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case int16:
		return strconv.AppendInt(buf, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(buf, v, 10), nil
	case float32:
		return appendFloat(buf, float64(v), 32), nil
	case float64:
		return appendFloat(buf, v, 64), nil
	case byte:
		if v == 0 {
			return appendString(buf, ""), nil
		}
		return appendString(buf, string([]byte{v})), nil
	case string:
		return appendString(buf, v), nil
	}
	return nil, fmt.Errorf("unexpected value %T", v)
}
