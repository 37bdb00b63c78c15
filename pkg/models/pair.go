package models

import (
	"fmt"
	"sort"
)

// PairKey identifies one unordered graph pair. Construction through
// NewPairKey guarantees A < B.
type PairKey struct {
	A int `json:"a"`
	B int `json:"b"`
}

// NewPairKey normalizes (a, b) so that A < B
func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// Less orders pair keys lexicographically on (A, B)
func (p PairKey) Less(q PairKey) bool {
	if p.A != q.A {
		return p.A < q.A
	}
	return p.B < q.B
}

func (p PairKey) String() string {
	return fmt.Sprintf("(%d, %d)", p.A, p.B)
}

// SortPairKeys sorts pair keys lexicographically in place
func SortPairKeys(pairs []PairKey) {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Less(pairs[j]) })
}
