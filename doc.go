// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

// Package voxtree provides spatio-temporal identifiers over a hierarchical
// voxelization of the earth and its altitude band.
//
// An identifier names an axis-aligned cuboid in a 3D tiling scheme
// (Web-Mercator-like X/Y tile indices plus a signed altitude axis F) at a
// chosen integer zoom level. The package is organized around three
// tightly-coupled layers:
//
//   - internal/bitpath: a variable-length, two-bits-per-level byte encoding
//     of a per-axis tree prefix, with ancestor/descendant/upper-bound and
//     subtraction operations whose ordering coincides with raw byte order.
//   - internal/segment: decomposition of an integer axis range into the
//     smallest set of maximal dyadic cells ("segments") at a given zoom,
//     and the segment <-> BitPath conversion (including the signed-F
//     offset trick).
//   - EncodedIdSet: a three-axis hierarchical set of cuboids with automatic
//     deduplication, containment normalization and set algebra (union,
//     intersection, difference) built on top of the two layers above.
//
// SingleId and RangeId are the public-facing identifier types; EncodedId is
// their canonical internal encoding as the Cartesian product of per-axis
// BitPath vectors.
//
// The package is a single-threaded, synchronous data structure library: no
// operation blocks, spawns goroutines, or owns global state. Mutating an
// EncodedIdSet concurrently from multiple goroutines without external
// synchronization is not supported, mirroring the concurrency model of the
// routing tables this package's internals are modeled on.
package voxtree
