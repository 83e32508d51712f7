// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeXYCoversInterval(t *testing.T) {
	segs := DecomposeXY(6, 3, 57)
	require.NotEmpty(t, segs)
	// every emitted segment must be disjoint and the union, when each is
	// expanded to leaf resolution 6, equals exactly [3,57].
	covered := map[uint64]bool{}
	for _, s := range segs {
		shift := uint(6 - s.Z)
		lo := s.Dim << shift
		hi := lo + (1 << shift) - 1
		for v := lo; v <= hi; v++ {
			assert.False(t, covered[v], "value %d covered twice", v)
			covered[v] = true
		}
	}
	for v := uint64(3); v <= 57; v++ {
		assert.True(t, covered[v], "value %d not covered", v)
	}
	assert.Len(t, covered, 57-3+1)
}

func TestDecomposeFCoversInterval(t *testing.T) {
	segs := DecomposeF(4, -8, 8)
	covered := map[int64]bool{}
	for _, s := range segs {
		shift := uint(4 - s.Z)
		width := int64(1) << shift
		lo := s.Dim * width
		for v := lo; v < lo+width; v++ {
			assert.False(t, covered[v])
			covered[v] = true
		}
	}
	for v := int64(-8); v <= 8; v++ {
		assert.True(t, covered[v], "value %d not covered", v)
	}
}

func TestXYBitPathRoundTrip(t *testing.T) {
	for z := 0; z <= 10; z++ {
		max := uint64(1) << uint(z)
		for v := uint64(0); v < max; v++ {
			s := Segment[uint64]{Z: z, Dim: v}
			p := XYToBitPath(s)
			back := BitPathToXY(p)
			require.Equal(t, s, back)
		}
	}
}

func TestFBitPathRoundTrip(t *testing.T) {
	for z := 0; z <= 10; z++ {
		lo := -(int64(1) << uint(z))
		hi := (int64(1) << uint(z)) - 1
		for v := lo; v <= hi; v++ {
			s := Segment[int64]{Z: z, Dim: v}
			p := FToBitPath(s)
			back := BitPathToF(p)
			require.Equal(t, s, back)
		}
	}
}

func TestSegmentToBitPathToSegmentIdentity(t *testing.T) {
	segs := DecomposeXY(8, 17, 200)
	for _, s := range segs {
		p := XYToBitPath(s)
		assert.Equal(t, s, BitPathToXY(p))
	}
}
