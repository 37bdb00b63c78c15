package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlai-bonn/GEDPaths/pkg/dataset"
	"github.com/mlai-bonn/GEDPaths/pkg/mapping"
	"github.com/mlai-bonn/GEDPaths/pkg/models"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

func testDataset(t *testing.T) *models.GraphDataset {
	t.Helper()
	return dataset.Random("SYNTH", dataset.RandomConfig{
		NumGraphs:  6,
		MinNodes:   4,
		MaxNodes:   7,
		EdgeProb:   0.3,
		LabelCount: 3,
		Seed:       7,
	})
}

func TestPipelineRunAllPairs(t *testing.T) {
	ds := testDataset(t)
	out := t.TempDir()

	cfg := mapping.DefaultPipelineConfig()
	cfg.Dataset = ds
	cfg.OutputDir = out
	cfg.Threads = 2
	cfg.Logger = discardLogger()

	results, report, err := mapping.Run(cfg)
	require.NoError(t, err)
	require.Len(t, results, ds.MaxPairs())
	assert.Empty(t, report.Failures)
	assert.Equal(t, report.TotalChunks, report.CompletedChunks)

	assert.Equal(t, mapping.AllPairs(ds.Size()), mapping.PairsOf(results))
	assert.Empty(t, mapping.CheckValidity(results))

	canonical := mapping.CanonicalPath(out, cfg.Solver.Method, ds.Name)
	_, err = os.Stat(canonical)
	require.NoError(t, err)
	_, err = os.Stat(canonical[:len(canonical)-len(".bin")] + ".csv")
	require.NoError(t, err)
}

func TestPipelineRunIsIdempotent(t *testing.T) {
	ds := testDataset(t)
	out := t.TempDir()

	cfg := mapping.DefaultPipelineConfig()
	cfg.Dataset = ds
	cfg.OutputDir = out
	cfg.Threads = 2
	cfg.Logger = discardLogger()

	first, _, err := mapping.Run(cfg)
	require.NoError(t, err)

	second, report, err := mapping.Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalChunks, "everything resumed, nothing recomputed")

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rerun changed existing results (-first +second):\n%s", diff)
	}
}

func TestPipelineRunResumesPartialResults(t *testing.T) {
	ds := testDataset(t)
	out := t.TempDir()

	cfg := mapping.DefaultPipelineConfig()
	cfg.Dataset = ds
	cfg.OutputDir = out
	cfg.Logger = discardLogger()

	full, _, err := mapping.Run(cfg)
	require.NoError(t, err)

	// keep only a prefix of the canonical set, the rest must be recomputed
	canonical := mapping.CanonicalPath(out, cfg.Solver.Method, ds.Name)
	require.NoError(t, mapping.WriteResults(canonical, full[:4]))

	resumed, report, err := mapping.Run(cfg)
	require.NoError(t, err)
	assert.Greater(t, report.TotalChunks, 0)
	if diff := cmp.Diff(mapping.PairsOf(full), mapping.PairsOf(resumed)); diff != "" {
		t.Errorf("resumed run lost pairs (-want +got):\n%s", diff)
	}
}

func TestPipelineRunSampledPairs(t *testing.T) {
	ds := testDataset(t)
	out := t.TempDir()

	cfg := mapping.DefaultPipelineConfig()
	cfg.Dataset = ds
	cfg.OutputDir = out
	cfg.NumPairs = 5
	cfg.Logger = discardLogger()

	results, _, err := mapping.Run(cfg)
	require.NoError(t, err)
	assert.Len(t, results, 5)

	// the sample is persisted for reproducibility
	dir := mapping.ResultDir(out, cfg.Solver.Method, ds.Name)
	_, err = os.Stat(filepath.Join(dir, "graph_ids.txt"))
	assert.NoError(t, err)
}

func TestPipelineRunKeepShards(t *testing.T) {
	ds := testDataset(t)
	out := t.TempDir()

	cfg := mapping.DefaultPipelineConfig()
	cfg.Dataset = ds
	cfg.OutputDir = out
	cfg.KeepShards = true
	cfg.Logger = discardLogger()

	_, _, err := mapping.Run(cfg)
	require.NoError(t, err)

	shardRoot := filepath.Join(mapping.ResultDir(out, cfg.Solver.Method, ds.Name), "tmp")
	entries, err := os.ReadDir(shardRoot)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestPipelineRunRejectsTinyDataset(t *testing.T) {
	cfg := mapping.DefaultPipelineConfig()
	cfg.Dataset = &models.GraphDataset{Name: "tiny", Graphs: []models.Graph{*models.NewGraph("g", 2)}}
	cfg.OutputDir = t.TempDir()
	cfg.Logger = discardLogger()

	_, _, err := mapping.Run(cfg)
	assert.Error(t, err)
}

func TestSolveSingle(t *testing.T) {
	ds := testDataset(t)

	result, err := mapping.SolveSingle(ds, solver.DefaultConfig(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, models.PairKey{A: 0, B: 2}, result.Pair)
	assert.False(t, result.Corrupt())

	_, err = mapping.SolveSingle(ds, solver.DefaultConfig(), 0, 0)
	assert.Error(t, err)
	_, err = mapping.SolveSingle(ds, solver.DefaultConfig(), 0, ds.Size())
	assert.Error(t, err)
}
