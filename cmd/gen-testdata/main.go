// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata writes synthetic KEY=VALUE lines matching the sample layout
// (ID, NAME, VALUE) to stdout, for load testing recload.
package main

import (
	"bufio"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"

	flag "github.com/spf13/pflag"
)

const (
	prefix  = "item_"
	nameLen = 12
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		_, _ = crand.Read(seedBytes[:])
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

func main() {
	n := flag.IntP("records", "n", 1000000, "number of records")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	index := flag.String("index", "", "emit a 1-based index column with this name")
	flag.Parse()

	rng := newRand(*seed)
	w := bufio.NewWriter(os.Stdout)

	fmt.Fprintf(w, "# %d generated records\n", *n)
	for i := 0; i < *n; i++ {
		var buf [nameLen / 2]byte
		if _, err := rng.Read(buf[:]); err != nil {
			panic(err)
		}
		if *index != "" {
			fmt.Fprintf(w, "%s=%d ", *index, i+1)
		}
		fmt.Fprintf(w, "ID=%d NAME=%s%x VALUE=%g\n", i, prefix, buf, rng.NormFloat64()*100)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "gen-testdata: %s\n", err)
		os.Exit(1)
	}
}
