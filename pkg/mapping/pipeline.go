package mapping

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

// PipelineConfig configures one batch mapping run
type PipelineConfig struct {
	Dataset   *models.GraphDataset
	OutputDir string // results land under <OutputDir>/<method>/<dataset>/
	Solver    solver.Config
	Threads   int
	Seed      int64
	// NumPairs > 0 samples that many pairs instead of enumerating all
	NumPairs int
	// IDFile optionally restricts pairs to ids listed in a file
	IDFile string
	// KeepShards leaves the shard tree in place after merging
	KeepShards bool
	Logger     *slog.Logger
}

// DefaultPipelineConfig returns a single-threaded all-pairs configuration
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Solver:   solver.DefaultConfig(),
		Threads:  1,
		Seed:     42,
		NumPairs: -1,
		Logger:   slog.Default(),
	}
}

// ResultDir returns the per-method, per-dataset output directory
func ResultDir(outputDir string, method solver.Method, dataset string) string {
	return filepath.Join(outputDir, string(method), dataset)
}

// CanonicalPath returns the canonical mapping file location
func CanonicalPath(outputDir string, method solver.Method, dataset string) string {
	return filepath.Join(ResultDir(outputDir, method, dataset), dataset+MappingFileSuffix)
}

// csvSibling derives the tabular export path from a canonical binary path
func csvSibling(canonicalPath string) string {
	return canonicalPath[:len(canonicalPath)-len(".bin")] + ".csv"
}

// Run executes the full batch mapping pipeline: resume against an existing
// canonical set (repairing it first), enumerate and partition the pending
// pairs, execute chunks in parallel into shards, merge, validate and repair.
// Idempotent: re-running with unchanged inputs recomputes nothing and leaves
// existing results untouched.
func Run(cfg PipelineConfig) ([]models.MappingResult, *RunReport, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ds := cfg.Dataset
	if ds == nil || ds.Size() < 2 {
		return nil, nil, fmt.Errorf("pipeline needs a dataset with at least two graphs")
	}

	dir := ResultDir(cfg.OutputDir, cfg.Solver.Method, ds.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	canonical := CanonicalPath(cfg.OutputDir, cfg.Solver.Method, ds.Name)
	factory := solver.NewFactory(ds, cfg.Solver)

	existing, err := loadExisting(canonical, factory, logger)
	if err != nil {
		return nil, nil, err
	}

	pending, err := pendingPairs(cfg, dir)
	if err != nil {
		return nil, nil, err
	}
	pending = Resume(pending, PairsOf(existing))
	logger.Info("pairs to compute", "pending", len(pending), "existing", len(existing))

	store, err := NewShardStore(filepath.Join(dir, "tmp"))
	if err != nil {
		return nil, nil, err
	}
	// existing results join the merge as a pre-filled shard
	if len(existing) > 0 {
		if err := WriteResults(filepath.Join(store.Root(), "existing"+MappingFileSuffix), existing); err != nil {
			return nil, nil, err
		}
	}

	chunks := Partition(pending, cfg.Threads)
	report, err := RunChunks(chunks, store, factory, ExecutorConfig{Threads: cfg.Threads, Logger: logger})
	if err != nil {
		return nil, report, err
	}
	for _, failure := range report.Failures {
		logger.Error("chunk left pending", "chunk", failure.Chunk, "pairs", len(failure.Pairs), "error", failure.Err)
	}

	mergeCfg := DefaultMergeConfig()
	mergeCfg.RemoveShards = !cfg.KeepShards
	mergeCfg.Logger = logger
	merged, err := MergeShards(store.Root(), canonical, csvSibling(canonical), mergeCfg)
	if err != nil {
		return nil, report, err
	}

	invalid := CheckValidity(merged)
	still, err := Repair(merged, invalid, factory, logger)
	if err != nil {
		return merged, report, err
	}
	if len(invalid) > 0 {
		if err := WriteResults(canonical, merged); err != nil {
			return merged, report, err
		}
		if err := WriteResultsCSV(csvSibling(canonical), merged); err != nil {
			return merged, report, err
		}
	}
	for _, idx := range still {
		logger.Error("mapping remains invalid after repair", "pair", merged[idx].Pair.String())
	}
	return merged, report, nil
}

// loadExisting reads a previously written canonical set, repairing invalid
// entries before they are reused. Missing file means a fresh run.
func loadExisting(canonical string, factory solver.Factory, logger *slog.Logger) ([]models.MappingResult, error) {
	if _, err := os.Stat(canonical); os.IsNotExist(err) {
		return nil, nil
	}
	existing, err := ReadResults(canonical)
	if err != nil {
		return nil, err
	}
	invalid := CheckValidity(existing)
	if len(invalid) > 0 {
		if _, err := Repair(existing, invalid, factory, logger); err != nil {
			return nil, err
		}
		if err := WriteResults(canonical, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// pendingPairs enumerates the requested pair set: file-provided ids, a
// seeded sample, or all pairs
func pendingPairs(cfg PipelineConfig, dir string) ([]models.PairKey, error) {
	n := cfg.Dataset.Size()
	switch {
	case cfg.IDFile != "":
		ids, err := ReadIDFile(cfg.IDFile)
		if err != nil {
			return nil, err
		}
		return PairsFromIDs(ids, n)
	case cfg.NumPairs > 0:
		pairs, err := SamplePairs(n, cfg.NumPairs, cfg.Seed)
		if err != nil {
			return nil, err
		}
		// persist the sample so the run stays reproducible and resumable
		if err := WritePairFile(filepath.Join(dir, "graph_ids.txt"), pairs); err != nil {
			return nil, err
		}
		return pairs, nil
	default:
		return AllPairs(n), nil
	}
}

// SolveSingle computes one mapping directly, bypassing chunking. Used for
// the single-pair override and by debugging tools.
func SolveSingle(ds *models.GraphDataset, cfg solver.Config, source, target int) (models.MappingResult, error) {
	if source < 0 || source >= ds.Size() || target < 0 || target >= ds.Size() {
		return models.MappingResult{}, fmt.Errorf("single source/target ids out of range: %d, %d (dataset has %d graphs)", source, target, ds.Size())
	}
	if source == target {
		return models.MappingResult{}, fmt.Errorf("source and target must differ: %d", source)
	}
	env, err := solver.NewEnvironment(ds, cfg)
	if err != nil {
		return models.MappingResult{}, err
	}
	return env.Solve(models.NewPairKey(source, target))
}
