package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
	"github.com/mlai-bonn/GEDPaths/pkg/solver"
)

// ExecutorConfig controls parallel chunk execution
type ExecutorConfig struct {
	// Threads is the worker pool size; values < 1 are treated as 1
	Threads int
	Logger  *slog.Logger
}

// DefaultExecutorConfig returns a single-threaded configuration with the
// default logger
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{Threads: 1, Logger: slog.Default()}
}

// ChunkFailure records one failed chunk: its index, the pairs left
// uncomputed, and the cause. Failed pairs stay pending for a future resumed
// run.
type ChunkFailure struct {
	Chunk int
	Pairs []models.PairKey
	Err   error
}

func (f ChunkFailure) Error() string {
	return fmt.Sprintf("chunk %d (%d pairs): %v", f.Chunk, len(f.Pairs), f.Err)
}

// RunReport summarizes one executor run
type RunReport struct {
	RunID           string
	TotalChunks     int
	CompletedChunks int
	Failures        []ChunkFailure
	Elapsed         time.Duration
}

// RunChunks processes chunks across a bounded worker pool. Each worker
// lazily constructs one solver environment on its first chunk and reuses it
// for every later chunk it picks up. Every chunk writes into its own shard
// location obtained from store. A failing chunk is recorded and skipped; it
// never aborts sibling chunks. The returned error is reserved for setup
// failures, not per-chunk ones.
func RunChunks(chunks [][]models.PairKey, store *ShardStore, factory solver.Factory, cfg ExecutorConfig) (*RunReport, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}

	report := &RunReport{
		RunID:       uuid.NewString(),
		TotalChunks: len(chunks),
	}
	if len(chunks) == 0 {
		return report, nil
	}

	type job struct {
		index int
		pairs []models.PairKey
	}
	jobs := make(chan job)

	start := time.Now()
	var completed atomic.Int64
	var mu sync.Mutex // guards report.Failures and progress emission

	reportEvery := len(chunks) / 100
	if reportEvery < 1 {
		reportEvery = 1
	}

	group, ctx := errgroup.WithContext(context.Background())
	for worker := 0; worker < threads; worker++ {
		worker := worker
		group.Go(func() error {
			var env solver.Environment
			for j := range jobs {
				if env == nil {
					built, err := factory()
					if err != nil {
						return fmt.Errorf("worker %d: build solver environment: %w", worker, err)
					}
					env = built
				}
				if err := runChunk(env, store, worker, j.index, j.pairs); err != nil {
					mu.Lock()
					report.Failures = append(report.Failures, ChunkFailure{Chunk: j.index, Pairs: j.pairs, Err: err})
					mu.Unlock()
					logger.Error("chunk failed", "run", report.RunID, "chunk", j.index, "pairs", len(j.pairs), "error", err)
					continue
				}
				done := completed.Add(1)
				if int(done)%reportEvery == 0 || int(done) == len(chunks) {
					elapsed := time.Since(start)
					rate := float64(done) / elapsed.Seconds()
					eta := time.Duration(-1)
					if rate > 0 {
						eta = time.Duration(float64(len(chunks)-int(done))/rate) * time.Second
					}
					mu.Lock()
					logger.Info("progress",
						"run", report.RunID,
						"chunks", fmt.Sprintf("%d/%d", done, len(chunks)),
						"percent", fmt.Sprintf("%.1f", 100*float64(done)/float64(len(chunks))),
						"elapsed", elapsed.Round(time.Second),
						"chunks_per_sec", fmt.Sprintf("%.2f", rate),
						"eta", eta.Round(time.Second),
					)
					mu.Unlock()
				}
			}
			return nil
		})
	}

	// stop feeding once a worker fails setup, otherwise the send would block
	// forever after every worker has exited
feed:
	for i, pairs := range chunks {
		select {
		case jobs <- job{index: i, pairs: pairs}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	err := group.Wait()
	report.CompletedChunks = int(completed.Load())
	report.Elapsed = time.Since(start)
	if err != nil {
		return report, err
	}
	return report, nil
}

// runChunk solves every pair of one chunk and writes a single shard file.
// Nothing is written when any pair fails, leaving the whole chunk pending.
func runChunk(env solver.Environment, store *ShardStore, worker, chunk int, pairs []models.PairKey) error {
	writer, err := store.ChunkWriter(worker, chunk)
	if err != nil {
		return err
	}
	results := make([]models.MappingResult, 0, len(pairs))
	for _, pair := range pairs {
		result, err := env.Solve(pair)
		if err != nil {
			return fmt.Errorf("solve pair %v: %w", pair, err)
		}
		results = append(results, result)
	}
	return writer.Write(results)
}
