// Package mapping implements the batch mapping pipeline: pair enumeration,
// resume filtering, work partitioning, parallel execution into shards,
// shard merging, validity checking and the repair loop.
package mapping

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// AllPairs enumerates every unordered pair over n graph ids, sorted
func AllPairs(n int) []models.PairKey {
	pairs := make([]models.PairKey, 0, n*(n-1)/2)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			pairs = append(pairs, models.PairKey{A: a, B: b})
		}
	}
	return pairs
}

// PairsFromIDs builds all unordered pairs over the listed graph ids. Ids are
// deduplicated and must lie in [0, n).
func PairsFromIDs(ids []int, n int) ([]models.PairKey, error) {
	unique := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("graph id out of range: %d (dataset has %d graphs)", id, n)
		}
		unique[id] = struct{}{}
	}
	sorted := make([]int, 0, len(unique))
	for id := range unique {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)

	var pairs []models.PairKey
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			pairs = append(pairs, models.PairKey{A: a, B: b})
		}
	}
	return pairs, nil
}

// ReadIDFile reads a graph id list, one id per line
func ReadIDFile(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph id file %s: %w", path, err)
	}
	defer file.Close()

	var ids []int
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		id, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("graph id file %s line %d: %w", path, line, err)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read graph id file %s: %w", path, err)
	}
	return ids, nil
}

// SamplePairs draws count distinct unordered pairs over n graph ids by seeded
// rejection sampling and returns them sorted. Same seed, same sample.
func SamplePairs(n, count int, seed int64) ([]models.PairKey, error) {
	maxPairs := n * (n - 1) / 2
	if count > maxPairs {
		return nil, fmt.Errorf("cannot sample %d pairs from %d graphs (max %d)", count, n, maxPairs)
	}
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[models.PairKey]struct{}, count)
	pairs := make([]models.PairKey, 0, count)
	for len(pairs) < count {
		a, b := rng.Intn(n), rng.Intn(n)
		if a == b {
			continue
		}
		pair := models.NewPairKey(a, b)
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	models.SortPairKeys(pairs)
	return pairs, nil
}

// WritePairFile persists a pair list, "a b" per line, so that sampled runs
// stay reproducible
func WritePairFile(path string, pairs []models.PairKey) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pair file %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, p := range pairs {
		fmt.Fprintf(writer, "%d %d\n", p.A, p.B)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("write pair file %s: %w", path, err)
	}
	return nil
}
