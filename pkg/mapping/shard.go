package mapping

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// ShardStore hands out disjoint per-worker, per-chunk output locations under
// one root directory. No two chunks ever share a file, so workers need no
// locking on the output path.
type ShardStore struct {
	root string
}

// NewShardStore creates (if needed) the shard root directory
func NewShardStore(root string) (*ShardStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create shard root %s: %w", root, err)
	}
	return &ShardStore{root: root}, nil
}

// Root returns the shard root directory
func (s *ShardStore) Root() string { return s.root }

// ChunkWriter returns the output handle for one chunk processed by one
// worker
func (s *ShardStore) ChunkWriter(worker, chunk int) (*ShardWriter, error) {
	dir := filepath.Join(s.root, fmt.Sprintf("worker_%d", worker), fmt.Sprintf("chunk_%d", chunk))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create shard directory %s: %w", dir, err)
	}
	return &ShardWriter{path: filepath.Join(dir, "part"+MappingFileSuffix)}, nil
}

// ShardWriter writes the results of exactly one chunk
type ShardWriter struct {
	path string
}

// Path returns the shard file location
func (w *ShardWriter) Path() string { return w.path }

// Write persists the chunk's results as one shard file
func (w *ShardWriter) Write(results []models.MappingResult) error {
	return WriteResults(w.path, results)
}
