// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

// Package bitpath implements the variable-length, two-bits-per-level byte
// encoding of a single axis prefix described in the core specification: an
// ordered sequence of levels, each occupying exactly two bits packed
// MSB-first, four levels per byte. The high bit of a level pair is the
// "valid" flag (always 1 for a present level); the low bit is the branch
// (0 = left child, 1 = right child). No general-purpose bit-vector type is
// used here on purpose: ordering is raw byte-slice comparison, and that
// property does not survive a substitution for a library whose internal
// bit order differs from ours.
package bitpath

import "bytes"

// BitPath is a canonical, immutable tree-prefix value. The zero value is
// the empty path — the root of the hierarchy, denoting the whole universe.
type BitPath struct {
	b []byte
	n int // number of levels
}

// byteLen returns the number of bytes needed to hold n levels, four levels
// per byte.
func byteLen(n int) int {
	return (n + 3) / 4
}

// Empty returns the zero-level path (the whole universe).
func Empty() BitPath {
	return BitPath{}
}

// FromLevels builds a BitPath from a sequence of branch bits (0 or 1), one
// per level, in root-to-leaf order.
func FromLevels(branches []uint8) BitPath {
	n := len(branches)
	if n == 0 {
		return Empty()
	}
	buf := make([]byte, byteLen(n))
	for k, branch := range branches {
		byteIdx, shift := levelPos(k)
		buf[byteIdx] |= 1 << (shift + 1) // valid bit
		if branch != 0 {
			buf[byteIdx] |= 1 << shift
		}
	}
	return BitPath{b: buf, n: n}
}

// FromBytes wraps a raw, already-canonical byte slice holding n levels. It
// does not validate canonicality; callers that did not produce b via this
// package's own operations must be certain it has no trailing zero byte and
// no set bits beyond level n.
func FromBytes(b []byte, n int) BitPath {
	if n == 0 {
		return Empty()
	}
	return BitPath{b: append([]byte(nil), b...), n: n}
}

// levelPos returns the byte index and the bit shift of the branch bit for
// level k (the valid bit sits one position higher, at shift+1).
func levelPos(k int) (byteIdx int, shift uint) {
	byteIdx = k / 4
	slot := k % 4
	shift = uint(6 - 2*slot)
	return
}

// Len returns the number of levels in p. Len() == 0 means p is the root.
func (p BitPath) Len() int { return p.n }

// Bytes returns the raw canonical byte encoding of p. Callers must treat
// the returned slice as read-only.
func (p BitPath) Bytes() []byte { return p.b }

// Level returns the branch bit (0 or 1) at level k. k must be in
// [0, p.Len()).
func (p BitPath) Level(k int) uint8 {
	byteIdx, shift := levelPos(k)
	return (p.b[byteIdx] >> shift) & 1
}

// WithBranch returns a copy of p with the branch bit at level k forced to
// branch (0 or 1), leaving the valid bit set. Used to fold a sign flag into
// the top level of a BitPath (see internal/segment for the signed-F
// encoding).
func (p BitPath) WithBranch(k int, branch uint8) BitPath {
	buf := append([]byte(nil), p.b...)
	byteIdx, shift := levelPos(k)
	buf[byteIdx] |= 1 << (shift + 1)
	if branch != 0 {
		buf[byteIdx] |= 1 << shift
	} else {
		buf[byteIdx] &^= 1 << shift
	}
	return BitPath{b: buf, n: p.n}
}

// Prefix returns the ancestor of p with exactly l levels (0 <= l <= p.Len()).
// Prefix(0) is the root.
func (p BitPath) Prefix(l int) BitPath {
	if l <= 0 {
		return Empty()
	}
	if l >= p.n {
		return p
	}
	bl := byteLen(l)
	buf := append([]byte(nil), p.b[:bl]...)
	// zero out any level slots in the last byte at or beyond l
	last := bl - 1
	for lvl := last * 4; lvl < last*4+4; lvl++ {
		if lvl < l {
			continue
		}
		_, shift := levelPos(lvl)
		buf[last] &^= 0b11 << shift
	}
	return BitPath{b: buf, n: l}
}

// Ancestors enumerates every ancestor of p in strict root-to-leaf order,
// excluding the empty root but including p itself as the last element.
func (p BitPath) Ancestors() []BitPath {
	if p.n == 0 {
		return nil
	}
	out := make([]BitPath, p.n)
	for l := 1; l <= p.n; l++ {
		out[l-1] = p.Prefix(l)
	}
	return out
}

// Equal reports whether p and q denote the same prefix.
func (p BitPath) Equal(q BitPath) bool {
	return p.n == q.n && bytes.Equal(p.b, q.b)
}

// Compare orders p and q the way the tree's pre-order traversal does: raw
// byte-slice comparison, which coincides with tree order for any two valid
// canonical prefixes.
func (p BitPath) Compare(q BitPath) int {
	return bytes.Compare(p.b, q.b)
}

// FlipLowest toggles the branch bit of the deepest level (10<->11),
// returning the sibling subtree. Calling it on the root is a no-op.
func (p BitPath) FlipLowest() BitPath {
	if p.n == 0 {
		return p
	}
	buf := append([]byte(nil), p.b...)
	byteIdx, shift := levelPos(p.n - 1)
	buf[byteIdx] ^= 1 << shift
	return BitPath{b: buf, n: p.n}
}

// RemoveLowest drops the deepest level pair, shrinking the byte array if
// that level was the only one in its byte. Calling it on the root is a
// no-op.
func (p BitPath) RemoveLowest() BitPath {
	if p.n == 0 {
		return p
	}
	buf := append([]byte(nil), p.b...)
	byteIdx, shift := levelPos(p.n - 1)
	buf[byteIdx] &^= 0b11 << shift
	newN := p.n - 1
	buf = buf[:byteLen(newN)]
	return BitPath{b: buf, n: newN}
}

// Upper returns the exclusive upper bound of p's subtree: the smallest
// BitPath strictly greater than p that is not a descendant of p. ok is
// false when p is the rightmost path reachable from the root (every level
// branches right), in which case no such successor exists and every
// BitPath compares less than it.
func (p BitPath) Upper() (up BitPath, ok bool) {
	if p.n == 0 {
		return BitPath{}, false
	}
	buf := append([]byte(nil), p.b...)
	n := p.n
	for n > 0 {
		byteIdx, shift := levelPos(n - 1)
		if (buf[byteIdx]>>shift)&1 == 0 {
			buf[byteIdx] |= 1 << shift // 10 -> 11, done
			buf = buf[:byteLen(n)]
			for len(buf) > 0 && buf[len(buf)-1] == 0 {
				buf = buf[:len(buf)-1]
			}
			return BitPath{b: buf, n: n}, true
		}
		// 11 -> drop this level and carry on
		buf[byteIdx] &^= 0b11 << shift
		n--
	}
	return BitPath{}, false
}

// Relation classifies how p relates to other, defined purely in terms of
// Compare and Upper:
//
//   - Equal:      p == other
//   - Descendant: p contains other (p <= other < upper(p))
//   - Ancestor:   other contains p (other <= p < upper(other))
//   - Unrelated:  neither
func (p BitPath) Relation(other BitPath) Relation {
	if p.Equal(other) {
		return Equal
	}
	if p.Compare(other) < 0 {
		if up, ok := p.Upper(); !ok || other.Compare(up) < 0 {
			return Descendant
		}
	}
	if other.Compare(p) < 0 {
		if up, ok := other.Upper(); !ok || p.Compare(up) < 0 {
			return Ancestor
		}
	}
	return Unrelated
}

// Relation is the result of comparing two BitPaths' tree positions.
type Relation uint8

const (
	Unrelated Relation = iota
	Equal
	// Ancestor means other contains self (other is the bigger subtree).
	Ancestor
	// Descendant means self contains other (self is the bigger subtree).
	Descendant
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "Equal"
	case Ancestor:
		return "Ancestor"
	case Descendant:
		return "Descendant"
	default:
		return "Unrelated"
	}
}

// withinOrEqual reports whether div lies inside container's subtree (or is
// equal to it): container <= div < upper(container), or container == div.
func withinOrEqual(container, div BitPath) bool {
	if container.Equal(div) {
		return true
	}
	if container.Compare(div) >= 0 {
		return false
	}
	up, ok := container.Upper()
	return !ok || div.Compare(up) < 0
}

// SubtractRange returns the maximal dyadic subtrees of container \ inner,
// where inner is container itself or a descendant of it. Starting from
// inner, it repeatedly flips the lowest level to emit the sibling subtree
// and removes the lowest level, stopping once the climbed-to prefix equals
// container.
func SubtractRange(container, inner BitPath) []BitPath {
	var out []BitPath
	cur := inner
	for !cur.Equal(container) {
		out = append(out, cur.FlipLowest())
		cur = cur.RemoveLowest()
	}
	return out
}

// SubtractRanges sequentially subtracts each divisor that falls inside
// container from the current remainder, splitting pieces with
// SubtractRange where necessary and carrying forward pieces the divisor
// does not intersect.
func SubtractRanges(container BitPath, divisors []BitPath) []BitPath {
	result := []BitPath{container}
	for _, div := range divisors {
		next := make([]BitPath, 0, len(result))
		for _, now := range result {
			if withinOrEqual(now, div) {
				next = append(next, SubtractRange(now, div)...)
			} else if withinOrEqual(div, now) {
				// now lies wholly inside div: nothing of it remains
			} else {
				next = append(next, now)
			}
		}
		result = next
	}
	return result
}

// String renders p as a sequence of 0/1 branch bits, one per level, purely
// for debugging and test failure messages.
func (p BitPath) String() string {
	if p.n == 0 {
		return "<root>"
	}
	out := make([]byte, p.n)
	for k := 0; k < p.n; k++ {
		if p.Level(k) == 0 {
			out[k] = '0'
		} else {
			out[k] = '1'
		}
	}
	return string(out)
}
