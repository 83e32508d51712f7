// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(t *testing.T, z int, f int64, x, y uint64) EncodedId {
	t.Helper()
	id, err := NewSingleId(z, f, x, y)
	require.NoError(t, err)
	return id.ToEncodedId()
}

func TestInsertAndGetExactMatch(t *testing.T) {
	s := NewEncodedIdSet()
	enc := single(t, 4, 0, 3, 5)
	s.Insert(enc)
	assert.Equal(t, 1, s.Len())

	got := s.Get(enc)
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(enc))
}

func TestInsertDisjointKeepsBothEntries(t *testing.T) {
	s := NewEncodedIdSet()
	s.Insert(single(t, 4, 0, 3, 5))
	s.Insert(single(t, 4, 0, 3, 6))
	assert.Equal(t, 2, s.Len())
}

func TestInsertOverlappingCoarserEntrySplitsIt(t *testing.T) {
	s := NewEncodedIdSet()
	r, err := NewRangeId(2, V(int64(0)), Span[uint64]{Lo: 0, Hi: 3}, V(uint64(0)))
	require.NoError(t, err)
	s.Insert(r.ToEncodedId())

	fine := single(t, 3, 0, 2, 0)
	s.Insert(fine)

	got := s.Get(fine)
	require.NotEmpty(t, got)
	assert.True(t, got[0].Equal(fine))
}

func TestRemoveShrinksCoverage(t *testing.T) {
	s := NewEncodedIdSet()
	r, err := NewRangeId(2, V(int64(0)), Span[uint64]{Lo: 0, Hi: 3}, V(uint64(0)))
	require.NoError(t, err)
	s.Insert(r.ToEncodedId())

	victim := single(t, 2, 0, 1, 0)
	s.Remove(victim)

	assert.Empty(t, s.Get(victim))
	// a neighboring cell should still be covered
	assert.NotEmpty(t, s.Get(single(t, 2, 0, 2, 0)))
}

func TestUnionCombinesBothSets(t *testing.T) {
	a := NewEncodedIdSet()
	a.Insert(single(t, 4, 0, 1, 1))
	b := NewEncodedIdSet()
	b.Insert(single(t, 4, 0, 2, 2))

	u := Union(a, b)
	assert.NotEmpty(t, u.Get(single(t, 4, 0, 1, 1)))
	assert.NotEmpty(t, u.Get(single(t, 4, 0, 2, 2)))
}

func TestIntersectionKeepsOnlySharedRegion(t *testing.T) {
	a := NewEncodedIdSet()
	ra, err := NewRangeId(3, V(int64(0)), Span[uint64]{Lo: 0, Hi: 3}, V(uint64(0)))
	require.NoError(t, err)
	a.Insert(ra.ToEncodedId())

	b := NewEncodedIdSet()
	rb, err := NewRangeId(3, V(int64(0)), Span[uint64]{Lo: 2, Hi: 5}, V(uint64(0)))
	require.NoError(t, err)
	b.Insert(rb.ToEncodedId())

	i := Intersection(a, b)
	assert.NotEmpty(t, i.Get(single(t, 3, 0, 2, 0)))
	assert.NotEmpty(t, i.Get(single(t, 3, 0, 3, 0)))
	assert.Empty(t, i.Get(single(t, 3, 0, 1, 0)))
	assert.Empty(t, i.Get(single(t, 3, 0, 4, 0)))
}

func TestDifferenceRemovesOverlap(t *testing.T) {
	a := NewEncodedIdSet()
	ra, err := NewRangeId(3, V(int64(0)), Span[uint64]{Lo: 0, Hi: 3}, V(uint64(0)))
	require.NoError(t, err)
	a.Insert(ra.ToEncodedId())

	b := NewEncodedIdSet()
	b.Insert(single(t, 3, 0, 1, 0))

	d := Difference(a, b)
	assert.Empty(t, d.Get(single(t, 3, 0, 1, 0)))
	assert.NotEmpty(t, d.Get(single(t, 3, 0, 0, 0)))
}

func TestIterRescalesToCommonZoom(t *testing.T) {
	s := NewEncodedIdSet()
	s.Insert(single(t, 4, 0, 1, 1))
	out := s.Iter()
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Z)
}
