// Copyright 2021 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytesutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCut(t *testing.T) {
	for _, sep := range []string{",", "=>"} {
		sepBytes := []byte(sep)
		for _, testcase := range []string{
			"",
			"a" + sep + "b",
			sep + "a" + sep + "b" + sep,
			"a" + sep + "b" + sep,
			"ab",
		} {
			input := []byte(testcase)
			expected := bytes.SplitN(input, sepBytes, 2)
			var actualL, actualR []byte
			var ok bool
			allocs := testing.AllocsPerRun(1, func() {
				actualL, actualR, ok = Cut(input, sepBytes)
			})
			require.Zero(t, allocs)
			require.True(t, len(expected) <= 2)
			if len(expected) < 2 {
				require.False(t, ok)
			} else {
				require.True(t, ok)
				require.Equal(t, expected[0], actualL)
				require.Equal(t, expected[1], actualR)
			}
		}
	}
}

func TestTrimLine(t *testing.T) {
	for input, expected := range map[string]string{
		"":                 "",
		"\n":               "",
		"  \t\r\n":         "",
		"a=b\n":            "a=b",
		"a=b\r\n":          "a=b",
		"\t a=b  c=d \t\n": "a=b  c=d",
		"# comment":        "# comment",
	} {
		require.Equal(t, expected, string(TrimLine([]byte(input))), "input %q", input)
	}
}

func TestFields(t *testing.T) {
	var got []string
	for _, f := range Fields([]byte(" a=1\t\tb=2  c=3 ")) {
		got = append(got, string(f))
	}
	require.Equal(t, []string{"a=1", "b=2", "c=3"}, got)
	require.Empty(t, Fields([]byte(" \t ")))
}
