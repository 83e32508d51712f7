// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"github.com/zeebo/xxh3"

	"github.com/kasane-logic/voxtree/internal/bitpath"
)

// EncodedId is the Cartesian-product BitPath encoding of a RangeId (or
// SingleId): one BitPath per dyadic segment on each of the three axes. A
// SingleId always encodes to exactly one BitPath per axis; a RangeId may
// encode to several per axis when its span does not collapse to a single
// dyadic cell.
type EncodedId struct {
	F []bitpath.BitPath
	X []bitpath.BitPath
	Y []bitpath.BitPath
}

// Axis returns the BitPath slice for the given pivot axis.
func (e EncodedId) Axis(d DimSelect) []bitpath.BitPath {
	switch d {
	case DimF:
		return e.F
	case DimX:
		return e.X
	case DimY:
		return e.Y
	default:
		panic("voxtree: invalid DimSelect")
	}
}

// Equal reports whether e and other encode the same triple of axis
// segments, in the same order.
func (e EncodedId) Equal(other EncodedId) bool {
	return equalPaths(e.F, other.F) && equalPaths(e.X, other.X) && equalPaths(e.Y, other.Y)
}

func equalPaths(a, b []bitpath.BitPath) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Hash returns a fast, non-cryptographic, order-sensitive digest of e,
// suitable for deduplicating EncodedId values in caches. It is not stable
// across process versions of this package.
func (e EncodedId) Hash() uint64 {
	var h xxh3.Hasher
	writeAxis(&h, e.F)
	h.Write([]byte{0xff})
	writeAxis(&h, e.X)
	h.Write([]byte{0xff})
	writeAxis(&h, e.Y)
	return h.Sum64()
}

func writeAxis(h *xxh3.Hasher, paths []bitpath.BitPath) {
	for _, p := range paths {
		n := p.Len()
		h.Write([]byte{byte(n), byte(n >> 8)})
		h.Write(p.Bytes())
	}
}
