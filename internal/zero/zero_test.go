// Copyright 2021 The recset Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zero

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	for _, input := range [][]byte{
		{},
		{'a', 'b', 'c'},
	} {
		initialLen := len(input)
		initialCap := cap(input)
		// slices are zero'd by default
		expected := make([]byte, len(input))
		Bytes(input)
		require.Equal(t, expected, input)
		// len and cap should be unchanged
		require.Equal(t, initialLen, len(input))
		require.Equal(t, initialCap, cap(input))
	}
}

func TestSlots(t *testing.T) {
	buf := []byte("aabbccdd")
	Slots(buf, 2, 1, 3)
	require.Equal(t, []byte{'a', 'a', 0, 0, 0, 0, 'd', 'd'}, buf)

	// empty and inverted ranges are no-ops
	Slots(buf, 2, 3, 3)
	Slots(buf, 2, 4, 0)
	require.Equal(t, []byte{'a', 'a', 0, 0, 0, 0, 'd', 'd'}, buf)
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero(nil))
	require.True(t, IsZero(make([]byte, 16)))
	require.False(t, IsZero([]byte{0, 0, 1}))
}
