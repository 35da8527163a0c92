// Copyright 2026 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package recset_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bpowers/recset"
)

type item struct {
	ID    int32    `recset:"ID"`
	Name  [64]byte `recset:"NAME"`
	Value float64  `recset:"VALUE"`
}

func Example() {
	m, size, err := recset.MappingOf(item{})
	if err != nil {
		panic(err)
	}

	input := `# inventory
ID=42 NAME=TestItem VALUE=3.14
ID=43 NAME=Widget VALUE=2.5
`
	cfg := recset.Config{PrimaryKey: "ID"}
	rs, err := recset.ParseReader(strings.NewReader(input), cfg, m, size)
	if err != nil {
		panic(err)
	}
	defer rs.Release()

	rec, err := rs.Find(cfg, m, "43")
	if err != nil {
		panic(err)
	}
	var it item
	if err := recset.Decode(rec, m, &it); err != nil {
		panic(err)
	}
	name, _, _ := bytes.Cut(it.Name[:], []byte{0})
	fmt.Println(rs.Len(), it.ID, string(name), it.Value)
	// Output: 2 43 Widget 2.5
}

func ExampleFindByIndex() {
	m := recset.MustMapping(
		recset.Field{Name: "TEMP", Offset: 0, Size: 4, Type: recset.Float},
	)
	cfg := recset.Config{KeyMode: recset.IndexKey, IndexField: "SLOT"}
	rs, err := recset.ParseReader(strings.NewReader("SLOT=3 TEMP=21.5\n"), cfg, m, 4)
	if err != nil {
		panic(err)
	}
	defer rs.Release()

	for _, idx := range []string{"0", "2", "3"} {
		rec, err := recset.FindByIndex(rs, idx)
		if err != nil {
			fmt.Println(idx, err)
			continue
		}
		v, _ := m.Fields()[0].Format(rec)
		fmt.Println(idx, v)
	}
	// Output:
	// 0 0
	// 2 21.5
	// 3 record not found: index 3 is out of range (record count: 3)
}
