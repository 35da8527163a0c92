// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bpowers/recset/internal/bitset"
	"github.com/bpowers/recset/internal/bytesutil"
	"github.com/bpowers/recset/internal/kvline"
	"github.com/bpowers/recset/internal/unsafestring"
)

// MaxLineLen is the longest input line the parser accepts.
const MaxLineLen = 1 << 20

// Parse reads the KEY=VALUE file at path into a new RecordSet holding
// records of recordSize bytes laid out according to m.
//
// Blank lines and lines starting with cfg.CommentPrefix are skipped; every
// other line becomes one record.  Any error aborts the whole parse: the
// partially built set is released and a *ParseError is returned.
func Parse(path string, cfg Config, m *Mapping, recordSize int, opts ...Option) (*RecordSet, error) {
	if err := checkArgs(cfg, m, recordSize); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	defer func() {
		_ = f.Close()
	}()
	return parse(path, f, cfg, m, recordSize, newOptions(opts))
}

// ParseReader is like Parse, but reads lines from r.
func ParseReader(r io.Reader, cfg Config, m *Mapping, recordSize int, opts ...Option) (*RecordSet, error) {
	name := "<reader>"
	if n, ok := r.(interface{ Name() string }); ok {
		name = n.Name()
	}
	if err := checkArgs(cfg, m, recordSize); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	return parse(name, r, cfg, m, recordSize, newOptions(opts))
}

func checkArgs(cfg Config, m *Mapping, recordSize int) error {
	if m == nil {
		return fmt.Errorf("%w: nil mapping", ErrLayout)
	}
	if recordSize <= 0 {
		return fmt.Errorf("%w: record size %d", ErrLayout, recordSize)
	}
	if err := m.checkFits(recordSize); err != nil {
		return err
	}
	if cfg.KeyMode != FieldKey && cfg.KeyMode != IndexKey {
		return fmt.Errorf("%w: unknown key mode %d", ErrConfig, cfg.KeyMode)
	}
	if strings.ContainsAny(cfg.Separator, " \t") {
		return fmt.Errorf("%w: separator %q contains whitespace", ErrConfig, cfg.Separator)
	}
	return nil
}

type parser struct {
	cfg    Config
	m      *Mapping
	sep    []byte
	rs     *RecordSet
	logger *slog.Logger

	// placed tracks which slots were written in index-placement mode, so
	// repeated positions can be reported.
	placed *bitset.Bitset
	// unknown holds column names already reported as unmapped.
	unknown map[string]struct{}
}

func parse(name string, r io.Reader, cfg Config, m *Mapping, recordSize int, opts options) (*RecordSet, error) {
	cfg = cfg.withDefaults()
	p := &parser{
		cfg:     cfg,
		m:       m,
		sep:     []byte(cfg.Separator),
		rs:      newRecordSet(recordSize, min(InitialCapacity, opts.maxRecords)),
		logger:  opts.logger.With("path", name),
		unknown: make(map[string]struct{}),
	}
	p.rs.setLimit(opts.maxRecords)
	if cfg.placeByIndex() {
		p.placed = bitset.New(InitialCapacity)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineLen)

	var lineNo, skipped int
	for sc.Scan() {
		lineNo++
		line := bytesutil.TrimLine(sc.Bytes())
		if len(line) == 0 || line[0] == cfg.CommentPrefix {
			skipped++
			continue
		}
		if err := p.parseLine(line); err != nil {
			p.rs.Release()
			p.logger.Error("parse failed", "line", lineNo, "err", err)
			return nil, &ParseError{Path: name, Line: lineNo, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		p.rs.Release()
		p.logger.Error("read failed", "line", lineNo+1, "err", err)
		return nil, &ParseError{Path: name, Line: lineNo + 1, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}

	p.logger.Debug("parsed",
		"records", p.rs.Len(),
		"capacity", p.rs.Cap(),
		"lines", lineNo,
		"skipped", skipped)
	return p.rs, nil
}

func (p *parser) parseLine(line []byte) error {
	pairs, err := kvline.Tokenize(line, p.sep)
	if err != nil {
		return err
	}

	if !p.cfg.placeByIndex() {
		oldCap := p.rs.Cap()
		rec, pos, err := p.rs.nextSlot()
		if err != nil {
			return err
		}
		p.logGrowth(oldCap)
		if err := p.populate(rec, pairs); err != nil {
			return err
		}
		p.rs.commit(pos)
		return nil
	}

	pos, err := p.position(pairs)
	if err != nil {
		return err
	}
	oldCap := p.rs.Cap()
	rec, err := p.rs.placeSlot(pos)
	if err != nil {
		return err
	}
	p.logGrowth(oldCap)
	if n := int64(p.rs.Cap()); n > p.placed.Len() {
		p.placed.Grow(n)
	}
	if p.placed.IsSet(int64(pos)) {
		p.logger.Debug("overwriting record at repeated position", "position", pos+1)
	}
	if err := p.populate(rec, pairs); err != nil {
		return err
	}
	p.placed.Set(int64(pos))
	p.rs.commit(pos)
	return nil
}

func (p *parser) logGrowth(oldCap int) {
	if newCap := p.rs.Cap(); newCap != oldCap {
		p.logger.Debug("grew record set", "from", oldCap, "to", newCap)
	}
}

// position extracts the 0-based slot from the 1-based index column.
func (p *parser) position(pairs []kvline.Pair) (int, error) {
	name := p.cfg.IndexField
	pair, ok := kvline.Lookup(pairs, name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrIndexFieldMissing, name)
	}
	v, err := strconv.ParseInt(string(pair.Value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q=%q is not an integer", ErrIndexFieldInvalid, name, pair.Value)
	}
	if v < 1 {
		return 0, fmt.Errorf("%w: %q must be >= 1, got %d", ErrIndexFieldInvalid, name, v)
	}
	if v > int64(p.rs.limit) {
		return 0, fmt.Errorf("%w: %q=%d is past the limit of %d records", ErrIndexFieldInvalid, name, v, p.rs.limit)
	}
	return int(v - 1), nil
}

// populate stores every mapped pair into rec.  Unmapped columns, and the
// index column in index-placement mode, are skipped.
func (p *parser) populate(rec []byte, pairs []kvline.Pair) error {
	for _, pair := range pairs {
		key := unsafestring.FromBytes(pair.Key)
		if p.cfg.placeByIndex() && key == p.cfg.IndexField {
			continue
		}
		f, ok := p.m.Resolve(key)
		if !ok {
			if _, seen := p.unknown[key]; !seen {
				p.unknown[string(pair.Key)] = struct{}{}
				p.logger.Debug("ignoring unmapped column", "column", string(pair.Key))
			}
			continue
		}
		if err := f.Set(rec, unsafestring.FromBytes(pair.Value)); err != nil {
			return err
		}
	}
	return nil
}
