// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"bytes"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/kasane-logic/voxtree/internal/bitpath"
	"github.com/kasane-logic/voxtree/internal/segment"
)

// EncodedIdSet is a deduplicating, hierarchical index of many EncodedId
// values. It maintains three per-axis ordered maps (BitPath -> *LayerInfo,
// one persistent radix tree per axis) plus a reverse EntryId -> EncodedId
// table, and keeps the invariant that no two live entries overlap and no
// live entry is a descendant of another on all three axes at once.
type EncodedIdSet struct {
	trees   [3]*iradix.Tree
	reverse map[EntryId]EncodedId
	nextID  EntryId
}

// NewEncodedIdSet returns an empty set.
func NewEncodedIdSet() *EncodedIdSet {
	return &EncodedIdSet{
		trees:   [3]*iradix.Tree{iradix.New(), iradix.New(), iradix.New()},
		reverse: make(map[EntryId]EncodedId),
	}
}

// Len returns the number of live entries.
func (s *EncodedIdSet) Len() int { return len(s.reverse) }

// Clone returns a shallow-on-trees, deep-on-bookkeeping copy: the three
// persistent radix trees are shared (safe, since they are never mutated in
// place) and the reverse map and id counter are copied.
func (s *EncodedIdSet) Clone() *EncodedIdSet {
	rev := make(map[EntryId]EncodedId, len(s.reverse))
	for k, v := range s.reverse {
		rev[k] = v
	}
	return &EncodedIdSet{trees: s.trees, reverse: rev, nextID: s.nextID}
}

func (s *EncodedIdSet) countAt(d DimSelect, p bitpath.BitPath) uint32 {
	if v, ok := s.trees[d].Get(p.Bytes()); ok {
		return v.(*LayerInfo).count
	}
	return 0
}

func (s *EncodedIdSet) component(id EntryId, d DimSelect) bitpath.BitPath {
	return s.reverse[id].Axis(d)[0]
}

func (s *EncodedIdSet) exactOwners(d DimSelect, p bitpath.BitPath) []EntryId {
	if v, ok := s.trees[d].Get(p.Bytes()); ok {
		return entryIDsFromOwners(v.(*LayerInfo))
	}
	return nil
}

// collectAncestors gathers entry ids whose component on axis d is a proper
// ancestor of pivot (i.e. a strictly shorter prefix of it with non-empty
// owners).
func (s *EncodedIdSet) collectAncestors(d DimSelect, pivot bitpath.BitPath) []EntryId {
	anc := pivot.Ancestors()
	var out []EntryId
	for i := 0; i < len(anc)-1; i++ {
		if v, ok := s.trees[d].Get(anc[i].Bytes()); ok {
			out = append(out, entryIDsFromOwners(v.(*LayerInfo))...)
		}
	}
	return out
}

// collectDescendants range-scans axis d's tree over (pivot, upper(pivot))
// exclusive and unions the owners found there.
func (s *EncodedIdSet) collectDescendants(d DimSelect, pivot bitpath.BitPath) []EntryId {
	it := s.trees[d].Root().Iterator()
	it.SeekLowerBound(pivot.Bytes())
	upper, hasUpper := pivot.Upper()
	var out []EntryId
	for {
		key, val, ok := it.Next()
		if !ok {
			break
		}
		if bytes.Equal(key, pivot.Bytes()) {
			continue
		}
		if hasUpper && bytes.Compare(key, upper.Bytes()) >= 0 {
			break
		}
		out = append(out, entryIDsFromOwners(val.(*LayerInfo))...)
	}
	return out
}

// uncheckInsertEncoded assigns a fresh EntryId to a fully-decomposed single
// triple (one BitPath per axis) and walks each axis's ancestor chain,
// bumping count and recording ownership at the exact key.
func (s *EncodedIdSet) uncheckInsertEncoded(triple EncodedId) EntryId {
	id := s.nextID
	s.nextID++
	s.reverse[id] = triple
	comps := [3]bitpath.BitPath{triple.F[0], triple.X[0], triple.Y[0]}
	for d := 0; d < 3; d++ {
		txn := s.trees[d].Txn()
		p := comps[d]
		for _, anc := range p.Ancestors() {
			key := anc.Bytes()
			var li *LayerInfo
			if v, ok := txn.Get(key); ok {
				li = v.(*LayerInfo).clone()
			} else {
				li = newLayerInfo()
			}
			li.count++
			if anc.Equal(p) {
				li.add(id)
			}
			txn.Insert(key, li)
		}
		s.trees[d] = txn.Commit()
	}
	return id
}

// uncheckDelete is the inverse of uncheckInsertEncoded: decrements count
// along every ancestor, removes ownership at the exact key, and prunes any
// node whose count drops to zero.
func (s *EncodedIdSet) uncheckDelete(id EntryId) {
	triple := s.reverse[id]
	comps := [3]bitpath.BitPath{triple.F[0], triple.X[0], triple.Y[0]}
	for d := 0; d < 3; d++ {
		txn := s.trees[d].Txn()
		p := comps[d]
		for _, anc := range p.Ancestors() {
			key := anc.Bytes()
			v, ok := txn.Get(key)
			if !ok {
				continue
			}
			li := v.(*LayerInfo).clone()
			li.count--
			if anc.Equal(p) {
				li.remove(id)
			}
			if li.empty() {
				txn.Delete(key)
			} else {
				txn.Insert(key, li)
			}
		}
		s.trees[d] = txn.Commit()
	}
	delete(s.reverse, id)
}

// axisLeftover classifies incoming against stored (both on the same axis)
// and returns the overlap piece (covered) plus the maximal dyadic pieces of
// stored lying outside incoming. When stored is the bigger of the two,
// covered is incoming itself and leftover is stored minus incoming; when
// incoming is bigger or equal, stored is entirely covered and there is no
// leftover.
func axisLeftover(incoming, stored bitpath.BitPath) (covered bitpath.BitPath, leftover []bitpath.BitPath) {
	switch incoming.Relation(stored) {
	case bitpath.Ancestor: // stored contains incoming
		return incoming, bitpath.SubtractRange(stored, incoming)
	default: // Equal or Descendant: incoming covers all of stored
		return stored, nil
	}
}

// leftoverOf decomposes e \ (f,x,y) into the maximal dyadic triples lying
// outside the incoming box, by peeling one axis at a time: every piece that
// differs from e on F (keeping e's original X, Y), then every piece that
// differs on X within the F-covered slab, then every piece that differs on
// Y within the F,X-covered slab. This is the standard axis-peeling
// decomposition of an axis-aligned box difference into disjoint slabs.
func leftoverOf(e EncodedId, f, x, y bitpath.BitPath) []EncodedId {
	coveredF, leftF := axisLeftover(f, e.F[0])
	coveredX, leftX := axisLeftover(x, e.X[0])
	_, leftY := axisLeftover(y, e.Y[0])

	var out []EncodedId
	for _, p := range leftF {
		out = append(out, EncodedId{F: []bitpath.BitPath{p}, X: []bitpath.BitPath{e.X[0]}, Y: []bitpath.BitPath{e.Y[0]}})
	}
	for _, p := range leftX {
		out = append(out, EncodedId{F: []bitpath.BitPath{coveredF}, X: []bitpath.BitPath{p}, Y: []bitpath.BitPath{e.Y[0]}})
	}
	for _, p := range leftY {
		out = append(out, EncodedId{F: []bitpath.BitPath{coveredF}, X: []bitpath.BitPath{coveredX}, Y: []bitpath.BitPath{p}})
	}
	return out
}

// pivotAxis picks the axis whose component has the smallest count (live
// entries at or below that node), per the dimension-pivot abstraction: that
// axis yields the fewest
// ancestor/descendant candidates to visit.
func (s *EncodedIdSet) pivotAxis(f, x, y bitpath.BitPath) (m DimSelect, main bitpath.BitPath) {
	target := EncodedId{F: []bitpath.BitPath{f}, X: []bitpath.BitPath{x}, Y: []bitpath.BitPath{y}}
	m = DimF
	best := s.countAt(DimF, f)
	a, b := DimF.Other()
	for _, d := range []DimSelect{a, b} {
		c := s.countAt(d, target.Axis(d)[0])
		if c < best {
			m, best = d, c
		}
	}
	return m, target.Axis(m)[0]
}

// findOverlapping returns every live entry whose (F, X, Y) components each
// relate to (f, x, y) as Equal, Ancestor, or Descendant (i.e. genuinely
// intersect in 3-space), gathered via the pivot axis's ancestor/descendant/
// exact-match candidates.
func (s *EncodedIdSet) findOverlapping(f, x, y bitpath.BitPath) []EntryId {
	m, main := s.pivotAxis(f, x, y)
	candidates := s.collectAncestors(m, main)
	candidates = append(candidates, s.collectDescendants(m, main)...)
	candidates = append(candidates, s.exactOwners(m, main)...)

	var out []EntryId
	for _, eid := range candidates {
		e := s.reverse[eid]
		if f.Relation(e.F[0]) == bitpath.Unrelated {
			continue
		}
		if x.Relation(e.X[0]) == bitpath.Unrelated {
			continue
		}
		if y.Relation(e.Y[0]) == bitpath.Unrelated {
			continue
		}
		out = append(out, eid)
	}
	return out
}

// Insert adds enc's Cartesian product of per-axis segments to the set,
// trimming any existing entry it overlaps down to its non-overlapping
// remainder and inserting the new triple itself, preserving disjointness.
func (s *EncodedIdSet) Insert(enc EncodedId) {
	for _, f := range enc.F {
		for _, x := range enc.X {
			for _, y := range enc.Y {
				s.insertOneTriple(f, x, y)
			}
		}
	}
}

func (s *EncodedIdSet) insertOneTriple(f, x, y bitpath.BitPath) {
	for _, eid := range s.findOverlapping(f, x, y) {
		e := s.reverse[eid]
		s.uncheckDelete(eid)
		for _, piece := range leftoverOf(e, f, x, y) {
			s.uncheckInsertEncoded(piece)
		}
	}
	s.uncheckInsertEncoded(EncodedId{F: []bitpath.BitPath{f}, X: []bitpath.BitPath{x}, Y: []bitpath.BitPath{y}})
}

// Remove subtracts enc's Cartesian product of per-axis segments from the
// set: every overlapping entry is trimmed to its non-overlapping remainder,
// and no new triple is inserted.
func (s *EncodedIdSet) Remove(enc EncodedId) {
	for _, f := range enc.F {
		for _, x := range enc.X {
			for _, y := range enc.Y {
				s.removeOneTriple(f, x, y)
			}
		}
	}
}

func (s *EncodedIdSet) removeOneTriple(f, x, y bitpath.BitPath) {
	for _, eid := range s.findOverlapping(f, x, y) {
		e := s.reverse[eid]
		s.uncheckDelete(eid)
		for _, piece := range leftoverOf(e, f, x, y) {
			s.uncheckInsertEncoded(piece)
		}
	}
}

// Get performs a non-mutating point query: for every live entry that
// overlaps any triple in enc's Cartesian product, it returns the
// intersection cuboid (one EncodedId per overlapping entry, per triple).
func (s *EncodedIdSet) Get(enc EncodedId) []EncodedId {
	var out []EncodedId
	for _, f := range enc.F {
		for _, x := range enc.X {
			for _, y := range enc.Y {
				for _, eid := range s.findOverlapping(f, x, y) {
					e := s.reverse[eid]
					cf, _ := axisLeftover(f, e.F[0])
					cx, _ := axisLeftover(x, e.X[0])
					cy, _ := axisLeftover(y, e.Y[0])
					out = append(out, EncodedId{F: []bitpath.BitPath{cf}, X: []bitpath.BitPath{cx}, Y: []bitpath.BitPath{cy}})
				}
			}
		}
	}
	return out
}

// Union returns a new set covering the union of a and b: starting from
// a clone of the larger operand, it inserts every entry of the smaller.
func Union(a, b *EncodedIdSet) *EncodedIdSet {
	big, small := a, b
	if small.Len() > big.Len() {
		big, small = small, big
	}
	result := big.Clone()
	for _, enc := range small.reverse {
		result.Insert(enc)
	}
	return result
}

// Intersection returns a new set covering the intersection of a and b: it
// iterates the smaller operand and accumulates the other's intersection
// pieces for each entry.
func Intersection(a, b *EncodedIdSet) *EncodedIdSet {
	big, small := a, b
	if small.Len() > big.Len() {
		big, small = small, big
	}
	result := NewEncodedIdSet()
	for _, enc := range small.reverse {
		for _, piece := range big.Get(enc) {
			result.Insert(piece)
		}
	}
	return result
}

// Difference returns a new set covering a \ b: a clone of a with every
// entry of b removed.
func Difference(a, b *EncodedIdSet) *EncodedIdSet {
	result := a.Clone()
	for _, enc := range b.reverse {
		result.Remove(enc)
	}
	return result
}

// Iter yields one RangeId per live entry, converting each axis's BitPath
// back to a Segment and rescaling all three to the common zoom
// z* = max(z_f, z_x, z_y) so the triple can be reported together.
func (s *EncodedIdSet) Iter() []RangeId {
	out := make([]RangeId, 0, len(s.reverse))
	for _, enc := range s.reverse {
		fSeg := segment.BitPathToF(enc.F[0])
		xSeg := segment.BitPathToXY(enc.X[0])
		ySeg := segment.BitPathToXY(enc.Y[0])
		zStar := fSeg.Z
		if xSeg.Z > zStar {
			zStar = xSeg.Z
		}
		if ySeg.Z > zStar {
			zStar = ySeg.Z
		}
		fLo, fHi := scaleF(fSeg, zStar)
		xLo, xHi := scaleXY(xSeg, zStar)
		yLo, yHi := scaleXY(ySeg, zStar)
		out = append(out, RangeId{
			Z: zStar,
			F: Span[int64]{Lo: fLo, Hi: fHi},
			X: Span[uint64]{Lo: xLo, Hi: xHi},
			Y: Span[uint64]{Lo: yLo, Hi: yHi},
		})
	}
	return out
}

func scaleXY(seg segment.Segment[uint64], zStar int) (lo, hi uint64) {
	shift := uint(zStar - seg.Z)
	lo = seg.Dim << shift
	hi = lo + (uint64(1)<<shift) - 1
	return
}

func scaleF(seg segment.Segment[int64], zStar int) (lo, hi int64) {
	shift := uint(zStar - seg.Z)
	lo = seg.Dim << shift
	hi = lo + (int64(1)<<shift) - 1
	return
}
