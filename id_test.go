// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingleIdValidation(t *testing.T) {
	_, err := NewSingleId(4, 0, 0, 0)
	require.NoError(t, err)

	_, err = NewSingleId(4, 0, 16, 0)
	assert.Error(t, err)

	_, err = NewSingleId(100, 0, 0, 0)
	assert.Error(t, err)
}

func TestSingleIdString(t *testing.T) {
	id, err := NewSingleId(3, -2, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, "3/-2/1/6", id.String())
}

func TestRangeIdStringCollapsesEqualEndpoints(t *testing.T) {
	r, err := NewRangeId(4, V(int64(2)), Span[uint64]{Lo: 1, Hi: 3}, V(uint64(5)))
	require.NoError(t, err)
	assert.Equal(t, "4/2/1:3/5", r.String())
}

func TestRangeIdNormalizesSwappedSpan(t *testing.T) {
	r, err := NewRangeId(4, Span[int64]{Lo: 5, Hi: -1}, V(uint64(0)), V(uint64(0)))
	require.NoError(t, err)
	assert.Equal(t, int64(-1), r.F.Lo)
	assert.Equal(t, int64(5), r.F.Hi)
}

func TestRangeIdAsSingle(t *testing.T) {
	r := RangeId{Z: 2, F: V(int64(1)), X: V(uint64(1)), Y: V(uint64(1))}
	single, ok := r.AsSingle()
	require.True(t, ok)
	assert.Equal(t, SingleId{Z: 2, F: 1, X: 1, Y: 1}, single)

	r2 := RangeId{Z: 2, F: Span[int64]{Lo: 0, Hi: 1}, X: V(uint64(1)), Y: V(uint64(1))}
	_, ok = r2.AsSingle()
	assert.False(t, ok)
}

func TestSingleIdChildrenThenParentRoundTrips(t *testing.T) {
	id, err := NewSingleId(2, 1, 1, 1)
	require.NoError(t, err)
	children, err := id.Children(3)
	require.NoError(t, err)
	assert.Equal(t, 5, children.Z)

	// dz=3 turns one voxel into an 8x8x8 box, so take its lower corner.
	_, ok := children.AsSingle()
	assert.False(t, ok)
	single, err := NewSingleId(children.Z, children.F.Lo, children.X.Lo, children.Y.Lo)
	require.NoError(t, err)

	parent, ok, err := single.Parent(3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, parent)
}

func TestChildrenThenParentRoundTrips(t *testing.T) {
	r, err := NewRangeId(2, V(int64(1)), V(uint64(1)), V(uint64(1)))
	require.NoError(t, err)
	children, err := r.Children(3)
	require.NoError(t, err)
	assert.Equal(t, 5, children.Z)

	parent, ok, err := children.Parent(3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, r, parent)
}

func TestParentPreservesNegativeOneSentinel(t *testing.T) {
	r := RangeId{Z: 4, F: V(int64(-1)), X: V(uint64(0)), Y: V(uint64(0))}
	parent, ok, err := r.Parent(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(-1), parent.F.Lo)
	assert.Equal(t, int64(-1), parent.F.Hi)
}

func TestParentBeyondZReturnsNotOk(t *testing.T) {
	r := RangeId{Z: 1, F: V(int64(0)), X: V(uint64(0)), Y: V(uint64(0))}
	_, ok, err := r.Parent(5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRangeIdToEncodedIdHasSegmentsOnEveryAxis(t *testing.T) {
	r, err := NewRangeId(5, Span[int64]{Lo: -3, Hi: 3}, Span[uint64]{Lo: 0, Hi: 7}, Span[uint64]{Lo: 0, Hi: 7})
	require.NoError(t, err)
	enc := r.ToEncodedId()
	require.NotEmpty(t, enc.F)
	require.NotEmpty(t, enc.X)
	require.NotEmpty(t, enc.Y)
}
