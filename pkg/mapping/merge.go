package mapping

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// MergeConfig controls shard merging
type MergeConfig struct {
	// Suffix identifies shard result files below the shard root
	Suffix string
	// RemoveShards deletes merged shard files afterwards
	RemoveShards bool
	Logger       *slog.Logger
}

// DefaultMergeConfig matches the shard files written by the executor
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{Suffix: MappingFileSuffix, Logger: slog.Default()}
}

// MergeShards scans the shard tree, deduplicates entries by pair key
// (first-writer-wins, duplicates are warned about since the shard layout
// rules them out by construction), and writes the canonical binary file plus
// its CSV sibling in deterministic pair order. An empty or missing shard
// tree yields an empty canonical set, not an error.
func MergeShards(shardRoot, canonicalPath, csvPath string, cfg MergeConfig) ([]models.MappingResult, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	suffix := cfg.Suffix
	if suffix == "" {
		suffix = MappingFileSuffix
	}

	var shardFiles []string
	err := filepath.WalkDir(shardRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			shardFiles = append(shardFiles, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("scan shard root %s: %w", shardRoot, err)
	}
	sort.Strings(shardFiles)

	seen := make(map[models.PairKey]struct{})
	var merged []models.MappingResult
	for _, path := range shardFiles {
		results, err := ReadResults(path)
		if err != nil {
			return nil, fmt.Errorf("read shard %s: %w", path, err)
		}
		for _, r := range results {
			if _, ok := seen[r.Pair]; ok {
				logger.Warn("duplicate pair across shards, keeping first", "pair", r.Pair.String(), "shard", path)
				continue
			}
			seen[r.Pair] = struct{}{}
			merged = append(merged, r)
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Pair.Less(merged[j].Pair) })

	if err := WriteResults(canonicalPath, merged); err != nil {
		return nil, err
	}
	if err := WriteResultsCSV(csvPath, merged); err != nil {
		return nil, err
	}

	if cfg.RemoveShards {
		for _, path := range shardFiles {
			if err := os.Remove(path); err != nil {
				logger.Warn("could not remove merged shard", "shard", path, "error", err)
			}
		}
	}

	logger.Info("merged shards", "shards", len(shardFiles), "results", len(merged), "canonical", canonicalPath)
	return merged, nil
}
