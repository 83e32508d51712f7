// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"fmt"

	"github.com/kasane-logic/voxtree/geo"
	"github.com/kasane-logic/voxtree/internal/bitpath"
	"github.com/kasane-logic/voxtree/internal/segment"
)

// Span is a closed [Lo, Hi] interval on one axis. V builds the single-value
// shorthand; Span{Lo: a, Hi: b} builds a full range.
type Span[T any] struct {
	Lo, Hi T
}

// V builds the single-value shorthand span [v, v].
func V[T any](v T) Span[T] { return Span[T]{Lo: v, Hi: v} }

// SingleId identifies exactly one voxel at zoom Z.
type SingleId struct {
	Z    int
	F    int64
	X, Y uint64
}

// NewSingleId validates and constructs a SingleId.
func NewSingleId(z int, f int64, x, y uint64) (SingleId, error) {
	if err := validateZ(z); err != nil {
		return SingleId{}, err
	}
	if err := validateF(z, f); err != nil {
		return SingleId{}, err
	}
	if err := validateX(z, x); err != nil {
		return SingleId{}, err
	}
	if err := validateY(z, y); err != nil {
		return SingleId{}, err
	}
	return SingleId{Z: z, F: f, X: x, Y: y}, nil
}

// String renders id per the "z/f/x/y" text form.
func (id SingleId) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", id.Z, id.F, id.X, id.Y)
}

// ToRangeId widens id to the degenerate range [id, id] on every axis.
func (id SingleId) ToRangeId() RangeId {
	return RangeId{
		Z: id.Z,
		F: Span[int64]{Lo: id.F, Hi: id.F},
		X: Span[uint64]{Lo: id.X, Hi: id.X},
		Y: Span[uint64]{Lo: id.Y, Hi: id.Y},
	}
}

// ToEncodedId encodes id as a single BitPath per axis.
func (id SingleId) ToEncodedId() EncodedId {
	return EncodedId{
		F: []bitpath.BitPath{segment.FToBitPath(segment.Segment[int64]{Z: id.Z, Dim: id.F})},
		X: []bitpath.BitPath{segment.XYToBitPath(segment.Segment[uint64]{Z: id.Z, Dim: id.X})},
		Y: []bitpath.BitPath{segment.XYToBitPath(segment.Segment[uint64]{Z: id.Z, Dim: id.Y})},
	}
}

// Children returns the finer-zoom range covering the same physical volume
// at zoom Z+dz, by delegating to RangeId.Children on id's degenerate range.
func (id SingleId) Children(dz int) (RangeId, error) {
	return id.ToRangeId().Children(dz)
}

// Parent returns the coarser-zoom single voxel covering id's volume at zoom
// Z-dz, or ok=false if dz > Z. It delegates to RangeId.Parent and collapses
// the result back to a SingleId, which always succeeds since a single
// voxel's parent range is itself degenerate on every axis.
func (id SingleId) Parent(dz int) (parent SingleId, ok bool, err error) {
	r, ok, err := id.ToRangeId().Parent(dz)
	if err != nil || !ok {
		return SingleId{}, ok, err
	}
	single, _ := r.AsSingle()
	return single, true, nil
}

// Center returns the physical center of id's voxel via proj.
func (id SingleId) Center(proj geo.Projector) (geo.Point, error) {
	if proj == nil {
		return geo.Point{}, geo.ErrNoProjector{}
	}
	return proj.Center(id.Z, id.F, id.X, id.Y)
}

// Vertices returns the eight corners of id's voxel via proj.
func (id SingleId) Vertices(proj geo.Projector) ([8]geo.Point, error) {
	if proj == nil {
		return [8]geo.Point{}, geo.ErrNoProjector{}
	}
	return proj.Vertices(id.Z, id.F, id.X, id.Y)
}

// RangeId identifies an axis-aligned box of voxels at zoom Z: the closed
// span [Lo, Hi] on each of F, X, Y.
type RangeId struct {
	Z int
	F Span[int64]
	X Span[uint64]
	Y Span[uint64]
}

// NewRangeId validates and constructs a RangeId, normalizing any span given
// with Lo > Hi.
func NewRangeId(z int, f Span[int64], x Span[uint64], y Span[uint64]) (RangeId, error) {
	if err := validateZ(z); err != nil {
		return RangeId{}, err
	}
	if f.Lo > f.Hi {
		f.Lo, f.Hi = f.Hi, f.Lo
	}
	if x.Lo > x.Hi {
		x.Lo, x.Hi = x.Hi, x.Lo
	}
	if y.Lo > y.Hi {
		y.Lo, y.Hi = y.Hi, y.Lo
	}
	if err := validateF(z, f.Lo); err != nil {
		return RangeId{}, err
	}
	if err := validateF(z, f.Hi); err != nil {
		return RangeId{}, err
	}
	if err := validateX(z, x.Lo); err != nil {
		return RangeId{}, err
	}
	if err := validateX(z, x.Hi); err != nil {
		return RangeId{}, err
	}
	if err := validateY(z, y.Lo); err != nil {
		return RangeId{}, err
	}
	if err := validateY(z, y.Hi); err != nil {
		return RangeId{}, err
	}
	return RangeId{Z: z, F: f, X: x, Y: y}, nil
}

// AsSingle reports whether r's span collapses to one voxel on every axis,
// returning the equivalent SingleId if so.
func (r RangeId) AsSingle() (SingleId, bool) {
	if r.F.Lo == r.F.Hi && r.X.Lo == r.X.Hi && r.Y.Lo == r.Y.Hi {
		return SingleId{Z: r.Z, F: r.F.Lo, X: r.X.Lo, Y: r.Y.Lo}, true
	}
	return SingleId{}, false
}

// String renders r per the "z/f1:f2/x1:x2/y1:y2" text form, collapsing any
// axis whose endpoints are equal down to a single value.
func (r RangeId) String() string {
	ff := spanStr(r.F.Lo, r.F.Hi)
	xx := spanStr(r.X.Lo, r.X.Hi)
	yy := spanStr(r.Y.Lo, r.Y.Hi)
	return fmt.Sprintf("%d/%s/%s/%s", r.Z, ff, xx, yy)
}

func spanStr[T comparable](lo, hi T) string {
	if lo == hi {
		return fmt.Sprintf("%v", lo)
	}
	return fmt.Sprintf("%v:%v", lo, hi)
}

// Children returns the finer-zoom range covering the same physical volume
// at zoom Z+dz: every axis scales by 2^dz. dz must be non-negative.
func (r RangeId) Children(dz int) (RangeId, error) {
	if dz < 0 {
		return RangeId{}, fmt.Errorf("voxtree: Children requires dz >= 0, got %d", dz)
	}
	newZ := r.Z + dz
	if err := validateZ(newZ); err != nil {
		return RangeId{}, err
	}
	uscale := uint64(1) << uint(dz)
	fscale := int64(1) << uint(dz)
	return RangeId{
		Z: newZ,
		F: Span[int64]{Lo: r.F.Lo * fscale, Hi: (r.F.Hi+1)*fscale - 1},
		X: Span[uint64]{Lo: r.X.Lo * uscale, Hi: (r.X.Hi+1)*uscale - 1},
		Y: Span[uint64]{Lo: r.Y.Lo * uscale, Hi: (r.Y.Hi+1)*uscale - 1},
	}, nil
}

// Parent returns the coarser-zoom range covering the same physical volume
// at zoom Z-dz, or ok=false if dz > Z. F's right shift is a native Go
// arithmetic shift on int64, which leaves -1 fixed under any shift amount —
// the "just below ground" sentinel cell stays stable across Parent calls
// without any special-casing here.
func (r RangeId) Parent(dz int) (parent RangeId, ok bool, err error) {
	if dz < 0 {
		return RangeId{}, false, fmt.Errorf("voxtree: Parent requires dz >= 0, got %d", dz)
	}
	if dz > r.Z {
		return RangeId{}, false, nil
	}
	u := uint(dz)
	return RangeId{
		Z: r.Z - dz,
		F: Span[int64]{Lo: r.F.Lo >> u, Hi: r.F.Hi >> u},
		X: Span[uint64]{Lo: r.X.Lo >> u, Hi: r.X.Hi >> u},
		Y: Span[uint64]{Lo: r.Y.Lo >> u, Hi: r.Y.Hi >> u},
	}, true, nil
}

// ToEncodedId decomposes r's span on each axis into the minimal set of
// maximal dyadic segments and encodes each as a BitPath.
func (r RangeId) ToEncodedId() EncodedId {
	fsegs := segment.DecomposeF(r.Z, r.F.Lo, r.F.Hi)
	xsegs := segment.DecomposeXY(r.Z, r.X.Lo, r.X.Hi)
	ysegs := segment.DecomposeXY(r.Z, r.Y.Lo, r.Y.Hi)

	f := make([]bitpath.BitPath, len(fsegs))
	for i, s := range fsegs {
		f[i] = segment.FToBitPath(s)
	}
	x := make([]bitpath.BitPath, len(xsegs))
	for i, s := range xsegs {
		x[i] = segment.XYToBitPath(s)
	}
	y := make([]bitpath.BitPath, len(ysegs))
	for i, s := range ysegs {
		y[i] = segment.XYToBitPath(s)
	}
	return EncodedId{F: f, X: x, Y: y}
}

// Center returns the physical center of r's lower-corner voxel via proj.
// For a range spanning more than one voxel this is not the center of the
// whole box.
func (r RangeId) Center(proj geo.Projector) (geo.Point, error) {
	if proj == nil {
		return geo.Point{}, geo.ErrNoProjector{}
	}
	return proj.Center(r.Z, r.F.Lo, r.X.Lo, r.Y.Lo)
}

// Vertices returns the eight corners of r's lower-corner voxel via proj.
// Callers wanting the outer corners of the whole box should call Vertices
// on the lower and upper SingleId corners (via AsSingle or direct
// construction) and take the bounding set themselves.
func (r RangeId) Vertices(proj geo.Projector) ([8]geo.Point, error) {
	if proj == nil {
		return [8]geo.Point{}, geo.ErrNoProjector{}
	}
	return proj.Vertices(r.Z, r.F.Lo, r.X.Lo, r.Y.Lo)
}
