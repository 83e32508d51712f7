// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import "github.com/bits-and-blooms/bitset"

// EntryId identifies one live entry within an EncodedIdSet. It is assigned
// by the set when the entry is created; an entry trimmed by a later Insert
// or Remove is replaced by new entries with fresh ids. Clone (and so Union
// and Difference) keeps the operand's ids; Intersection builds a new set
// with its own ids.
type EntryId uint64

// LayerInfo is the value stored at each BitPath node of a per-axis radix
// tree: which entries own this exact node (as a leaf of their own
// decomposition, not merely an ancestor) and how many live entries have
// their component at this node or below it, so the insert/remove/get
// algorithms can pick the axis with the smallest count as pivot without
// re-counting on every call.
type LayerInfo struct {
	owners *bitset.BitSet
	count  uint32
}

func newLayerInfo() *LayerInfo {
	return &LayerInfo{owners: bitset.New(64)}
}

// clone returns a deep copy of l, since the radix tree is persistent and
// node values must not be mutated in place once published.
func (l *LayerInfo) clone() *LayerInfo {
	return &LayerInfo{owners: l.owners.Clone(), count: l.count}
}

// add and remove only ever touch the owners bitset. count is the
// descendant-or-equal live-entry count for this node and is owned
// entirely by the ancestor-walk in uncheckInsertEncoded/uncheckDelete,
// which already increments/decrements it once per entry at every
// ancestor node including this one.
func (l *LayerInfo) add(id EntryId) {
	l.owners.Set(uint(id))
}

func (l *LayerInfo) remove(id EntryId) {
	l.owners.Clear(uint(id))
}

func (l *LayerInfo) has(id EntryId) bool {
	return l.owners.Test(uint(id))
}

func (l *LayerInfo) empty() bool {
	return l.count == 0
}

// entryIDsFromOwners enumerates the entry ids set in l's owners bitset.
func entryIDsFromOwners(l *LayerInfo) []EntryId {
	var out []EntryId
	for i, ok := l.owners.NextSet(0); ok; i, ok = l.owners.NextSet(i + 1) {
		out = append(out, EntryId(i))
	}
	return out
}
