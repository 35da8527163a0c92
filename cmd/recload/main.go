// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// recload loads a KEY=VALUE file into fixed-layout records described by a
// YAML layout, and optionally dumps them, looks one up, or exports them
// into a POSIX shared memory segment.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgryski/go-farm"
	"github.com/spf13/cobra"

	"github.com/bpowers/recset"
	"github.com/bpowers/recset/internal/dump"
	"github.com/bpowers/recset/internal/layout"
	"github.com/bpowers/recset/internal/shm"
)

type flags struct {
	file       string
	layout     string
	dump       bool
	key        string
	json       bool
	shm        string
	shmRecords int
	keepShm    bool
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "recload -l layout.yaml -f data.txt",
		Short: "Load KEY=VALUE records into fixed-layout binary records",
		Long: `recload reads a line-oriented KEY=VALUE file and stores every line as a
fixed-size binary record, laid out as described by a YAML layout file.

The loaded records can be dumped as text or JSON, looked up by primary key,
or copied into a POSIX shared memory segment for other processes to map.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "input file")
	fl.StringVarP(&f.layout, "layout", "l", "", "YAML layout file")
	fl.BoolVarP(&f.dump, "dump", "d", false, "dump records (all, or the one selected by --key)")
	fl.StringVarP(&f.key, "key", "k", "", "select a record by primary key (field value or 0-based index)")
	fl.BoolVar(&f.json, "json", false, "dump as indented JSON instead of text blocks")
	fl.StringVar(&f.shm, "shm", "", "export records into the POSIX shared memory segment `NAME`")
	fl.IntVar(&f.shmRecords, "shm-records", 64, "shared memory segment capacity in records")
	fl.BoolVar(&f.keepShm, "keep-shm", false, "keep the segment after exit instead of unlinking it")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("layout")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(f flags, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, f.verbose)

	l, err := layout.Load(f.layout)
	if err != nil {
		return err
	}
	m, err := l.Mapping()
	if err != nil {
		return fmt.Errorf("layout %s: %w", f.layout, err)
	}
	cfg := l.Config()

	rs, err := recset.Parse(f.file, cfg, m, l.RecordSize, recset.WithLogger(logger))
	if err != nil {
		return err
	}
	defer rs.Release()
	logger.Info("loaded", "file", f.file, "records", rs.Len(), "record_size", rs.RecordSize())

	if f.shm != "" {
		if err := export(logger, rs, f.shm, f.shmRecords, f.keepShm); err != nil {
			return err
		}
	}

	var entries []dump.Entry
	switch {
	case f.key != "":
		pos, err := rs.Locate(cfg, m, f.key)
		if err != nil {
			return fmt.Errorf("key %q: %w", f.key, err)
		}
		r, _ := rs.At(pos)
		entries = append(entries, dump.Entry{Index: pos, Record: r})
	case f.dump:
		rs.Each(func(i int, r recset.Record) bool {
			entries = append(entries, dump.Entry{Index: i, Record: r})
			return true
		})
	default:
		return nil
	}

	if f.json {
		return dump.JSON(stdout, m, entries...)
	}
	return dump.Text(stdout, m, entries...)
}

func export(logger *slog.Logger, rs *recset.RecordSet, name string, records int, keep bool) error {
	if records <= 0 {
		return fmt.Errorf("--shm-records must be positive, got %d", records)
	}
	seg, err := shm.Create(name, records*rs.RecordSize())
	if err != nil {
		return err
	}
	defer func() {
		if err := seg.Close(); err != nil {
			logger.Warn("closing segment failed", "segment", seg.Path(), "err", err)
		}
		if !keep {
			if err := shm.Unlink(name); err != nil {
				logger.Warn("unlinking segment failed", "segment", seg.Path(), "err", err)
			}
		}
	}()

	n := rs.CopyTo(seg.Bytes())
	exported := farm.Hash64(seg.Bytes()[:n])
	if n < len(rs.Bytes()) {
		logger.Warn("segment too small, export truncated",
			"segment", seg.Path(), "copied", n, "total", len(rs.Bytes()))
	} else if sum := rs.Checksum(); sum != exported {
		return fmt.Errorf("segment %s: checksum mismatch: exported %016x, records %016x", seg.Path(), exported, sum)
	}
	logger.Info("exported",
		"segment", seg.Path(),
		"bytes", n,
		"checksum", fmt.Sprintf("%016x", exported))
	return nil
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "recload: %s\n", err)
		os.Exit(1)
	}
}
