package interval

import (
	"github.com/biogo/store/llrb"
)

// PosType is Union's coordinate type.  Protein and genome references both
// fit comfortably.
type PosType int64

// span is a single disjoint run [start, end) stored in the tree, keyed by
// start.
type span struct {
	start, end PosType
}

// Compare compares two spans by start position for use in llrb.
func (s span) Compare(c llrb.Comparable) int {
	s2 := c.(span)
	switch {
	case s.start < s2.start:
		return -1
	case s.start > s2.start:
		return 1
	}
	return 0
}

// Union is a set of reference positions represented as a collection of
// disjoint, non-abutting [start, end) runs held in a left-leaning red-black
// tree.  Insertion merges the new interval with every run it overlaps or
// touches, so the tree never holds two runs that could be combined.
//
// The zero value is an empty union.
type Union struct {
	tree llrb.Tree
	// size is the total number of positions covered, maintained on insertion
	// so that Len() is O(1).
	size PosType
}

// Insert adds [start, end) to the union.  Empty intervals (end <= start) are
// ignored.
func (u *Union) Insert(start, end PosType) {
	if end <= start {
		return
	}
	// The run beginning at or before start may overlap or abut the new
	// interval; if so absorb it.
	if c := u.tree.Floor(span{start: start}); c != nil {
		prev := c.(span)
		if prev.end >= start {
			if prev.end >= end {
				return
			}
			start = prev.start
			u.remove(prev)
		}
	}
	// Absorb every following run that begins no later than end.
	for {
		c := u.tree.Ceil(span{start: start})
		if c == nil {
			break
		}
		next := c.(span)
		if next.start > end {
			break
		}
		if next.end > end {
			end = next.end
		}
		u.remove(next)
	}
	u.tree.Insert(span{start: start, end: end})
	u.size += end - start
}

func (u *Union) remove(s span) {
	u.tree.Delete(s)
	u.size -= s.end - s.start
}

// Len returns the number of distinct positions covered by the union.
func (u *Union) Len() PosType { return u.size }

// LenBelow returns the number of covered positions in [0, limit).
func (u *Union) LenBelow(limit PosType) PosType {
	var n PosType
	u.tree.Do(func(c llrb.Comparable) (done bool) {
		s := c.(span)
		if s.start >= limit {
			return true
		}
		end := s.end
		if end > limit {
			end = limit
		}
		n += end - s.start
		return false
	})
	return n
}
