// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package shm creates and maps POSIX shared memory segments.  A segment
// named "foo" is the file /dev/shm/foo, the same object shm_open("/foo")
// refers to, so C programs on the same host can map what we export.
package shm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Dir is where named segments live.
var Dir = "/dev/shm"

// Segment is a shared memory mapping.  Make sure to `defer s.Close()`.
type Segment struct {
	path   string
	data   []byte
	closed atomic.Bool
}

func segmentPath(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("invalid segment name %q", name)
	}
	return filepath.Join(Dir, name), nil
}

// Create opens (creating if needed) the segment name, sizes it to size
// bytes and maps it read-write.
func Create(name string, size int) (*Segment, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid segment size %d", size)
	}
	path, err := segmentPath(name)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile(%s): %w", path, err)
	}
	// the mapping stays valid after the descriptor is closed
	defer func() {
		_ = f.Close()
	}()

	if err := unix.Ftruncate(int(f.Fd()), int64(size)); err != nil {
		return nil, fmt.Errorf("ftruncate(%s, %d): %w", path, size, err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap(%s): %w", path, err)
	}
	return &Segment{
		path: path,
		data: data,
	}, nil
}

// Open maps an existing segment read-only.
func Open(name string) (*Segment, error) {
	path, err := segmentPath(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat(%s): %w", path, err)
	}
	size := int(fi.Size())
	if size == 0 {
		return nil, fmt.Errorf("segment %s is empty", path)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap(%s): %w", path, err)
	}
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}
	return &Segment{
		path: path,
		data: data,
	}, nil
}

// Bytes returns the mapped memory.  It must not be used after Close.
func (s *Segment) Bytes() []byte {
	return s.data
}

func (s *Segment) Len() int {
	return len(s.data)
}

func (s *Segment) Path() string {
	return s.path
}

// Close unmaps the segment.  It's safe to call more than once.
func (s *Segment) Close() error {
	if alreadyClosed := s.closed.Swap(true); alreadyClosed {
		return nil
	}
	data := s.data
	s.data = nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("munmap(%s): %w", s.path, err)
	}
	return nil
}

// Unlink removes the segment name.  Existing mappings stay valid until
// they're unmapped.
func Unlink(name string) error {
	path, err := segmentPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove(%s): %w", path, err)
	}
	return nil
}
