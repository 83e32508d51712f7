// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

// Package segment decomposes an integer axis range into the smallest set
// of maximal dyadic cells ("segments") at a given zoom, and converts those
// segments to and from bitpath.BitPath.
package segment

import "github.com/kasane-logic/voxtree/internal/bitpath"

// Segment denotes one maximal dyadic cell at zoom Z whose integer index on
// its axis is Dim. T is uint64 for the unsigned X/Y axes and int64 for the
// signed F axis.
type Segment[T uint64 | int64] struct {
	Z   int
	Dim T
}

// DecomposeXY partitions the unsigned interval [lo, hi] at zoom z into the
// smallest set of maximal dyadic segments covering exactly that interval.
// Output ordering is unspecified; the set of emitted segments is not.
func DecomposeXY(z int, lo, hi uint64) []Segment[uint64] {
	var out []Segment[uint64]
	curZ := z
	for {
		if lo > hi {
			return out
		}
		if lo == hi {
			out = append(out, Segment[uint64]{Z: curZ, Dim: lo})
			return out
		}
		if lo%2 != 0 {
			out = append(out, Segment[uint64]{Z: curZ, Dim: lo})
			lo++
		}
		if hi%2 == 0 {
			out = append(out, Segment[uint64]{Z: curZ, Dim: hi})
			hi--
		}
		if lo > hi {
			return out
		}
		if curZ == 0 {
			// Only DecomposeF's offset range reaches here with lo < hi: at
			// zoom 0 it is [0, 1], two cells with no common parent.
			for v := lo; v <= hi; v++ {
				out = append(out, Segment[uint64]{Z: 0, Dim: v})
			}
			return out
		}
		lo /= 2
		hi /= 2
		curZ--
	}
}

// DecomposeF partitions the signed interval [lo, hi] at zoom z the same
// way as DecomposeXY, after sliding both endpoints by 2^z so the unsigned
// algorithm can be reused, then sliding the results back.
func DecomposeF(z int, lo, hi int64) []Segment[int64] {
	diff := int64(1) << uint(z)
	segs := DecomposeXY(z, uint64(lo+diff), uint64(hi+diff))
	out := make([]Segment[int64], len(segs))
	for i, s := range segs {
		out[i] = Segment[int64]{Z: s.Z, Dim: int64(s.Dim) - (int64(1) << uint(s.Z))}
	}
	return out
}

// XYToBitPath encodes an unsigned segment as a BitPath of length Z+1,
// whose level k tests bit (Z-k) of Dim — i.e. the binary expansion of Dim,
// MSB first.
func XYToBitPath(s Segment[uint64]) bitpath.BitPath {
	n := s.Z + 1
	branches := make([]uint8, n)
	for k := 0; k < n; k++ {
		bitPos := uint(s.Z - k)
		branches[k] = uint8((s.Dim >> bitPos) & 1)
	}
	return bitpath.FromLevels(branches)
}

// BitPathToXY is the inverse of XYToBitPath: it reads p's branch bits top
// to bottom as the MSB-first binary expansion of the segment's index, with
// Z equal to p's level count minus one.
func BitPathToXY(p bitpath.BitPath) Segment[uint64] {
	n := p.Len()
	var val uint64
	for k := 0; k < n; k++ {
		val <<= 1
		val |= uint64(p.Level(k))
	}
	return Segment[uint64]{Z: n - 1, Dim: val}
}

// FToBitPath encodes a signed F segment. Non-negative values reuse the
// unsigned encoding directly; negative values encode |Dim|-1 unsigned and
// then fold the sign into the top level's branch bit, which is otherwise
// always 0 there (the magnitude never uses its top bit once offset by one).
func FToBitPath(s Segment[int64]) bitpath.BitPath {
	if s.Dim >= 0 {
		return XYToBitPath(Segment[uint64]{Z: s.Z, Dim: uint64(s.Dim)})
	}
	u := uint64(-s.Dim - 1)
	p := XYToBitPath(Segment[uint64]{Z: s.Z, Dim: u})
	return p.WithBranch(0, 1)
}

// BitPathToF is the inverse of FToBitPath.
func BitPathToF(p bitpath.BitPath) Segment[int64] {
	xy := BitPathToXY(p)
	if p.Level(0) == 0 {
		return Segment[int64]{Z: xy.Z, Dim: int64(xy.Dim)}
	}
	fMax := (int64(1) << uint(xy.Z)) - 1
	return Segment[int64]{Z: xy.Z, Dim: fMax - int64(xy.Dim)}
}
