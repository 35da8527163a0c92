// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package layout loads a record layout (field mapping, record size and
// parser settings) from a YAML file, so a loader binary can be pointed at
// any record type without recompiling.
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bpowers/recset"
)

// Field is one entry of the `fields` list.
type Field struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
	Size   int    `yaml:"size"`
	Type   string `yaml:"type"`
}

// Layout is the on-disk form of a record layout.
type Layout struct {
	RecordSize int     `yaml:"record_size"`
	Comment    string  `yaml:"comment"`
	Separator  string  `yaml:"separator"`
	KeyMode    string  `yaml:"key_mode"`
	PrimaryKey string  `yaml:"primary_key"`
	IndexField string  `yaml:"index_field"`
	Fields     []Field `yaml:"fields"`
}

// Load reads and validates the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if l.RecordSize <= 0 {
		return fmt.Errorf("record_size must be positive, got %d", l.RecordSize)
	}
	if len(l.Comment) > 1 {
		return fmt.Errorf("comment must be a single character, got %q", l.Comment)
	}
	if len(l.Fields) == 0 {
		return fmt.Errorf("no fields defined")
	}
	if _, err := l.keyMode(); err != nil {
		return err
	}
	if _, err := l.Mapping(); err != nil {
		return err
	}
	return nil
}

func (l *Layout) keyMode() (recset.KeyMode, error) {
	switch l.KeyMode {
	case "", "field":
		return recset.FieldKey, nil
	case "index":
		return recset.IndexKey, nil
	}
	return 0, fmt.Errorf("key_mode must be \"field\" or \"index\", got %q", l.KeyMode)
}

// Mapping builds the field mapping described by the layout.
func (l *Layout) Mapping() (*recset.Mapping, error) {
	fields := make([]recset.Field, 0, len(l.Fields))
	for i, f := range l.Fields {
		ft, err := recset.ParseFieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("fields[%d] (%s): %w", i, f.Name, err)
		}
		fields = append(fields, recset.Field{
			Name:   f.Name,
			Offset: f.Offset,
			Size:   f.Size,
			Type:   ft,
		})
	}
	return recset.NewMapping(fields...)
}

// Config returns the parser configuration described by the layout.
func (l *Layout) Config() recset.Config {
	mode, _ := l.keyMode()
	cfg := recset.Config{
		Separator:  l.Separator,
		PrimaryKey: l.PrimaryKey,
		KeyMode:    mode,
		IndexField: l.IndexField,
	}
	if l.Comment != "" {
		cfg.CommentPrefix = l.Comment[0]
	}
	return cfg
}
