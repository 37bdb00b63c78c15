// Package solver defines the distance-solver boundary used by the mapping
// pipeline and ships a baseline greedy assignment environment. The pipeline
// makes no assumption about the algorithm behind the Environment interface;
// only the contract matters.
package solver

import (
	"fmt"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// CostModel selects the edit cost function
type CostModel string

const (
	// CostConstant charges 1 for every elementary edit
	CostConstant CostModel = "CONSTANT"
)

// Method names a solver algorithm
type Method string

const (
	// MethodGreedy is the built-in label-greedy assignment baseline
	MethodGreedy Method = "GREEDY"
)

// Config selects the cost model and method for an environment
type Config struct {
	CostModel CostModel
	Method    Method
	// Options carries method-specific option strings, passed through opaque
	Options string
}

// DefaultConfig returns the baseline solver configuration
func DefaultConfig() Config {
	return Config{CostModel: CostConstant, Method: MethodGreedy}
}

// Environment computes node correspondences for graph pairs of one dataset.
// An environment may carry per-dataset state and is not safe for concurrent
// use: each worker owns exactly one instance.
type Environment interface {
	// Solve computes distance, bounds and both node maps for one pair.
	Solve(pair models.PairKey) (models.MappingResult, error)
}

// Factory constructs a fresh environment. Construction is assumed expensive;
// callers create lazily and reuse per worker.
type Factory func() (Environment, error)

// NewEnvironment builds an environment for the dataset under the given
// configuration
func NewEnvironment(ds *models.GraphDataset, cfg Config) (Environment, error) {
	if cfg.CostModel != CostConstant {
		return nil, fmt.Errorf("unknown cost model: %q", cfg.CostModel)
	}
	switch cfg.Method {
	case MethodGreedy:
		return newGreedyEnvironment(ds), nil
	default:
		return nil, fmt.Errorf("unknown solver method: %q", cfg.Method)
	}
}

// NewFactory returns a Factory binding the dataset and configuration
func NewFactory(ds *models.GraphDataset, cfg Config) Factory {
	return func() (Environment, error) {
		return NewEnvironment(ds, cfg)
	}
}
