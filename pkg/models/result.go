package models

// MappingResult is one computed node correspondence between a graph pair,
// together with the distance value and its bounds.
//
// ForwardMap[i] is the target node assigned to source node i. A value
// >= Nodes(target) means the source node is deleted; deleted node i is
// encoded as Nodes(target) + i so that sentinel values never collide and a
// valid mapping always has pairwise distinct entries. BackwardMap mirrors
// this for target nodes (inserted node j is encoded as Nodes(source) + j).
type MappingResult struct {
	Pair           PairKey   `json:"pair"`
	Distance       float64   `json:"distance"`
	LowerBound     float64   `json:"lower_bound"`
	UpperBound     float64   `json:"upper_bound"`
	ForwardMap     []int     `json:"forward_map"`
	BackwardMap    []int     `json:"backward_map"`
	RuntimeSeconds float64   `json:"runtime_seconds"`
}

// Corrupt reports whether either map assigns the same value twice. Corrupt
// results must not be used to derive edit paths.
func (r *MappingResult) Corrupt() bool {
	return hasDuplicates(r.ForwardMap) || hasDuplicates(r.BackwardMap)
}

// TargetOf returns the target node mapped to source node i, or false if the
// source node is deleted. nTarget is the node count of the target graph.
func (r *MappingResult) TargetOf(i, nTarget int) (int, bool) {
	t := r.ForwardMap[i]
	if t >= nTarget {
		return -1, false
	}
	return t, true
}

// SourceOf returns the source node mapped to target node j, or false if the
// target node is inserted. nSource is the node count of the source graph.
func (r *MappingResult) SourceOf(j, nSource int) (int, bool) {
	s := r.BackwardMap[j]
	if s >= nSource {
		return -1, false
	}
	return s, true
}

func hasDuplicates(m []int) bool {
	seen := make(map[int]struct{}, len(m))
	for _, v := range m {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
