package mapping

import "github.com/mlai-bonn/GEDPaths/pkg/models"

// CheckValidity returns the indices of corrupt results: entries whose
// forward or backward map assigns the same value twice (a non-bijective
// correspondence). Pure and side-effect-free; an empty return means all
// mappings are valid.
func CheckValidity(results []models.MappingResult) []int {
	var invalid []int
	for i := range results {
		if results[i].Corrupt() {
			invalid = append(invalid, i)
		}
	}
	return invalid
}
