package mapping_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlai-bonn/GEDPaths/pkg/mapping"
	"github.com/mlai-bonn/GEDPaths/pkg/models"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubEnv returns a fixed valid mapping per pair and fails on demand.
type stubEnv struct {
	fail map[models.PairKey]bool
}

func (e *stubEnv) Solve(pair models.PairKey) (models.MappingResult, error) {
	if e.fail[pair] {
		return models.MappingResult{}, fmt.Errorf("no mapping for %v", pair)
	}
	return models.MappingResult{
		Pair:        pair,
		Distance:    float64(pair.A + pair.B),
		UpperBound:  float64(pair.A + pair.B),
		ForwardMap:  []int{0, 1},
		BackwardMap: []int{0, 1},
	}, nil
}

func stubFactory(env solver.Environment) solver.Factory {
	return func() (solver.Environment, error) { return env, nil }
}

func TestRunChunksWritesOneShardPerChunk(t *testing.T) {
	store, err := mapping.NewShardStore(t.TempDir())
	require.NoError(t, err)

	pairs := []models.PairKey{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 2}}
	chunks := mapping.Partition(pairs, 2)
	require.Len(t, chunks, 3)

	report, err := mapping.RunChunks(chunks, store, stubFactory(&stubEnv{}), mapping.ExecutorConfig{
		Threads: 2,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalChunks)
	assert.Equal(t, 3, report.CompletedChunks)
	assert.Empty(t, report.Failures)
	assert.NotEmpty(t, report.RunID)

	dir := t.TempDir()
	merged, err := mapping.MergeShards(store.Root(),
		filepath.Join(dir, "out"+mapping.MappingFileSuffix),
		filepath.Join(dir, "out.csv"),
		mapping.MergeConfig{Logger: discardLogger()},
	)
	require.NoError(t, err)
	assert.Equal(t, pairs, mapping.PairsOf(merged))
}

func TestRunChunksFailedChunkLeavesSiblingsIntact(t *testing.T) {
	store, err := mapping.NewShardStore(t.TempDir())
	require.NoError(t, err)

	chunks := [][]models.PairKey{
		{{A: 0, B: 1}},
		{{A: 0, B: 2}},
	}
	env := &stubEnv{fail: map[models.PairKey]bool{{A: 0, B: 1}: true}}

	report, err := mapping.RunChunks(chunks, store, stubFactory(env), mapping.ExecutorConfig{
		Threads: 1,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.CompletedChunks)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 0, report.Failures[0].Chunk)
	assert.Equal(t, []models.PairKey{{A: 0, B: 1}}, report.Failures[0].Pairs)

	dir := t.TempDir()
	merged, err := mapping.MergeShards(store.Root(),
		filepath.Join(dir, "out"+mapping.MappingFileSuffix),
		filepath.Join(dir, "out.csv"),
		mapping.MergeConfig{Logger: discardLogger()},
	)
	require.NoError(t, err)
	// the failed chunk wrote nothing; its pair stays pending
	assert.Equal(t, []models.PairKey{{A: 0, B: 2}}, mapping.PairsOf(merged))
}

func TestRunChunksReturnsWhenEnvironmentConstructionFails(t *testing.T) {
	store, err := mapping.NewShardStore(t.TempDir())
	require.NoError(t, err)

	// more chunks than workers, so the feeder still has sends pending when
	// the only worker exits on the construction error
	chunks := mapping.Partition(mapping.AllPairs(4), 2)
	require.Greater(t, len(chunks), 1)
	factory := func() (solver.Environment, error) {
		return nil, errors.New("unknown solver method")
	}

	done := make(chan error, 1)
	go func() {
		_, err := mapping.RunChunks(chunks, store, factory, mapping.ExecutorConfig{
			Threads: 1,
			Logger:  discardLogger(),
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown solver method")
	case <-time.After(5 * time.Second):
		t.Fatal("RunChunks did not return after environment construction failed")
	}
}

func TestRunChunksEmpty(t *testing.T) {
	store, err := mapping.NewShardStore(t.TempDir())
	require.NoError(t, err)

	report, err := mapping.RunChunks(nil, store, stubFactory(&stubEnv{}), mapping.ExecutorConfig{Logger: discardLogger()})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalChunks)
	assert.Equal(t, 0, report.CompletedChunks)
}

func TestMergeShardsDeduplicatesFirstWriterWins(t *testing.T) {
	store, err := mapping.NewShardStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.ChunkWriter(0, 0)
	require.NoError(t, err)
	require.NoError(t, first.Write([]models.MappingResult{
		{Pair: models.PairKey{A: 0, B: 1}, Distance: 1, ForwardMap: []int{0}, BackwardMap: []int{0}},
	}))

	second, err := store.ChunkWriter(1, 0)
	require.NoError(t, err)
	require.NoError(t, second.Write([]models.MappingResult{
		{Pair: models.PairKey{A: 0, B: 1}, Distance: 9, ForwardMap: []int{0}, BackwardMap: []int{0}},
		{Pair: models.PairKey{A: 0, B: 2}, Distance: 2, ForwardMap: []int{0}, BackwardMap: []int{0}},
	}))

	dir := t.TempDir()
	merged, err := mapping.MergeShards(store.Root(),
		filepath.Join(dir, "out"+mapping.MappingFileSuffix),
		filepath.Join(dir, "out.csv"),
		mapping.MergeConfig{Logger: discardLogger()},
	)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, float64(1), merged[0].Distance, "worker_0 sorts before worker_1 and must win")
	assert.Equal(t, models.PairKey{A: 0, B: 2}, merged[1].Pair)
}

func TestMergeShardsEmptyTree(t *testing.T) {
	dir := t.TempDir()
	merged, err := mapping.MergeShards(filepath.Join(dir, "does-not-exist"),
		filepath.Join(dir, "out"+mapping.MappingFileSuffix),
		filepath.Join(dir, "out.csv"),
		mapping.MergeConfig{Logger: discardLogger()},
	)
	require.NoError(t, err)
	assert.Empty(t, merged)

	// the canonical files are still written
	_, err = os.Stat(filepath.Join(dir, "out"+mapping.MappingFileSuffix))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "out.csv"))
	assert.NoError(t, err)
}

func TestMergeShardsRemovesShards(t *testing.T) {
	store, err := mapping.NewShardStore(t.TempDir())
	require.NoError(t, err)

	writer, err := store.ChunkWriter(0, 0)
	require.NoError(t, err)
	require.NoError(t, writer.Write([]models.MappingResult{
		{Pair: models.PairKey{A: 0, B: 1}, ForwardMap: []int{0}, BackwardMap: []int{0}},
	}))

	dir := t.TempDir()
	_, err = mapping.MergeShards(store.Root(),
		filepath.Join(dir, "out"+mapping.MappingFileSuffix),
		filepath.Join(dir, "out.csv"),
		mapping.MergeConfig{RemoveShards: true, Logger: discardLogger()},
	)
	require.NoError(t, err)

	_, err = os.Stat(writer.Path())
	assert.True(t, os.IsNotExist(err), "merged shard file should be removed")
}

func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r"+mapping.MappingFileSuffix)
	results := []models.MappingResult{
		{
			Pair:           models.PairKey{A: 0, B: 1},
			Distance:       3,
			LowerBound:     1,
			UpperBound:     3,
			ForwardMap:     []int{1, 0, 5},
			BackwardMap:    []int{1, 0, 5},
			RuntimeSeconds: 0.25,
		},
	}
	require.NoError(t, mapping.WriteResults(path, results))

	loaded, err := mapping.ReadResults(path)
	require.NoError(t, err)
	if diff := cmp.Diff(results, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
