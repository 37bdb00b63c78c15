package mapping

import (
	"sort"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// Resume removes pairs already present in an existing canonical result set
// from the pending set. Pure function: both inputs are left unmodified and
// need not be sorted. The returned slice is sorted.
func Resume(pending, existing []models.PairKey) []models.PairKey {
	done := make([]models.PairKey, len(existing))
	copy(done, existing)
	models.SortPairKeys(done)

	remaining := make([]models.PairKey, 0, len(pending))
	for _, p := range pending {
		idx := sort.Search(len(done), func(i int) bool { return !done[i].Less(p) })
		if idx < len(done) && done[idx] == p {
			continue
		}
		remaining = append(remaining, p)
	}
	models.SortPairKeys(remaining)
	return remaining
}

// PairsOf extracts the pair keys of a result collection
func PairsOf(results []models.MappingResult) []models.PairKey {
	pairs := make([]models.PairKey, len(results))
	for i, r := range results {
		pairs[i] = r.Pair
	}
	return pairs
}
