// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kasane-logic/voxtree/internal/bitpath"
)

// Stats summarizes an EncodedIdSet's size for logs and debug output.
type Stats struct {
	Entries int
	F, X, Y uint64 // live node count in each axis's radix tree
}

// Stats computes a snapshot of s's current size.
func (s *EncodedIdSet) Stats() Stats {
	return Stats{
		Entries: s.Len(),
		F:       uint64(s.trees[DimF].Len()),
		X:       uint64(s.trees[DimX].Len()),
		Y:       uint64(s.trees[DimY].Len()),
	}
}

// String renders st as a short human-readable summary.
func (st Stats) String() string {
	return fmt.Sprintf("%s entries (f:%s x:%s y:%s nodes)",
		humanize.Comma(int64(st.Entries)),
		humanize.Comma(int64(st.F)),
		humanize.Comma(int64(st.X)),
		humanize.Comma(int64(st.Y)),
	)
}

// DebugDump writes one line per live entry to w, in an informal text form,
// for interactive inspection. Not sorted, not meant for machine parsing.
func (s *EncodedIdSet) DebugDump(w io.Writer) {
	fmt.Fprintf(w, "EncodedIdSet: %s\n", s.Stats())
	for id, enc := range s.reverse {
		pivot, main := s.pivotAxis(enc.F[0], enc.X[0], enc.Y[0])
		a, b := pivot.Other()
		aVal, bVal := enc.Axis(a)[0], enc.Axis(b)[0]
		f, x, y := assembleTriple(pivot, main, aVal, bVal)
		fmt.Fprintf(w, "  #%d %s (pivot=%s) f=%s x=%s y=%s\n", id, enc, pivot, f, x, y)
	}
}

// String renders e for debug output as the three axis BitPath strings.
func (e EncodedId) String() string {
	var sb strings.Builder
	sb.WriteString("f=[")
	writePaths(&sb, e.F)
	sb.WriteString("] x=[")
	writePaths(&sb, e.X)
	sb.WriteString("] y=[")
	writePaths(&sb, e.Y)
	sb.WriteByte(']')
	return sb.String()
}

func writePaths(sb *strings.Builder, paths []bitpath.BitPath) {
	for i, p := range paths {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.String())
	}
}
