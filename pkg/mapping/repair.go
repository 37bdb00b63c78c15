package mapping

import (
	"fmt"
	"log/slog"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

// Repair recomputes every flagged result individually, bypassing chunk
// dispatch, and substitutes only recomputed results that pass re-validation.
// Exactly one retry pass per call; entries still invalid afterwards are
// returned and reported, never silently dropped. results is modified in
// place.
func Repair(results []models.MappingResult, invalid []int, factory solver.Factory, logger *slog.Logger) ([]int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(invalid) == 0 {
		logger.Info("all mappings valid")
		return nil, nil
	}
	logger.Warn("invalid mappings found, recomputing", "count", len(invalid))

	env, err := factory()
	if err != nil {
		return invalid, fmt.Errorf("build solver environment for repair: %w", err)
	}

	var still []int
	for _, idx := range invalid {
		if idx < 0 || idx >= len(results) {
			return still, fmt.Errorf("invalid result index out of range: %d", idx)
		}
		pair := results[idx].Pair
		fixed, err := env.Solve(pair)
		if err != nil {
			logger.Error("repair recomputation failed", "pair", pair.String(), "error", err)
			still = append(still, idx)
			continue
		}
		if fixed.Corrupt() {
			logger.Error("mapping still invalid after recomputation", "pair", pair.String())
			still = append(still, idx)
			continue
		}
		results[idx] = fixed
		logger.Info("fixed invalid mapping", "index", idx, "pair", pair.String())
	}
	return still, nil
}
