package analysis

import (
	"fmt"
	"math"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// DefaultBucketCount is the number of equal-width position buckets used to
// histogram where in a path each operation kind occurs.
const DefaultBucketCount = 10

// PathStatistics aggregates metrics over a collection of edit paths. Global
// value lists feed ValueStatistics; positional lists are kept per path for
// fine-grained downstream analysis.
type PathStatistics struct {
	BucketCount int
	Pairs       []models.PairKey

	NodesPerSnapshot     []float64
	EdgesPerSnapshot     []float64
	ConnectedPerSnapshot []float64 // 1 connected, 0 not
	PathLengths          []float64

	// per category: one count per path
	CategoryCounts [models.NumCategories][]float64
	// per category: operation totals per position bucket
	BucketCounts [models.NumCategories][]float64
	// per category, per path: step indices at which the category occurred
	Positions [models.NumCategories][][]int
}

// BucketIndex assigns a step to one of bucketCount equal-width position
// buckets by normalized step index, clamped to the last bucket.
func BucketIndex(step, pathLength, bucketCount int) int {
	if pathLength <= 0 || bucketCount <= 0 {
		return 0
	}
	width := float64(pathLength) / float64(bucketCount)
	idx := int(math.Floor(float64(step) / width))
	if idx >= bucketCount {
		idx = bucketCount - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Aggregate computes all path statistics over the given edit paths.
// bucketCount <= 0 selects DefaultBucketCount.
func Aggregate(paths []*models.EditPath, bucketCount int) (*PathStatistics, error) {
	if bucketCount <= 0 {
		bucketCount = DefaultBucketCount
	}
	s := &PathStatistics{BucketCount: bucketCount}
	for c := 0; c < models.NumCategories; c++ {
		s.BucketCounts[c] = make([]float64, bucketCount)
	}

	for _, p := range paths {
		if len(p.Snapshots) != len(p.Operations)+1 {
			return nil, fmt.Errorf("path %v has %d snapshots for %d operations", p.Pair, len(p.Snapshots), len(p.Operations))
		}
		s.Pairs = append(s.Pairs, p.Pair)
		s.PathLengths = append(s.PathLengths, float64(p.Length()))

		for i := range p.Snapshots {
			g := &p.Snapshots[i]
			s.NodesPerSnapshot = append(s.NodesPerSnapshot, float64(g.Nodes()))
			s.EdgesPerSnapshot = append(s.EdgesPerSnapshot, float64(g.NumEdges()))
			if IsConnected(g) {
				s.ConnectedPerSnapshot = append(s.ConnectedPerSnapshot, 1)
			} else {
				s.ConnectedPerSnapshot = append(s.ConnectedPerSnapshot, 0)
			}
		}

		var counts [models.NumCategories]float64
		var positions [models.NumCategories][]int
		for _, op := range p.Operations {
			c := op.Category()
			counts[c]++
			positions[c] = append(positions[c], op.Step)
			s.BucketCounts[c][BucketIndex(op.Step, p.Length(), bucketCount)]++
		}
		for c := 0; c < models.NumCategories; c++ {
			s.CategoryCounts[c] = append(s.CategoryCounts[c], counts[c])
			s.Positions[c] = append(s.Positions[c], positions[c])
		}
	}
	return s, nil
}

// ValueStats derives one ValueStatistics per metric: snapshot node/edge
// counts, connectivity, path lengths, per-category operation counts, and
// per-category bucket totals.
func (s *PathStatistics) ValueStats() []ValueStatistics {
	stats := []ValueStatistics{
		NewValueStatistics("Nodes", s.NodesPerSnapshot),
		NewValueStatistics("Edges", s.EdgesPerSnapshot),
		NewValueStatistics("Connected", s.ConnectedPerSnapshot),
		NewValueStatistics("PathLength", s.PathLengths),
	}
	for c := 0; c < models.NumCategories; c++ {
		stats = append(stats, NewValueStatistics(models.CategoryNames[c], s.CategoryCounts[c]))
	}
	for c := 0; c < models.NumCategories; c++ {
		stats = append(stats, NewValueStatistics(models.CategoryNames[c]+"_Buckets", s.BucketCounts[c]))
	}
	return stats
}

// MappingStatistics summarizes a canonical mapping result set: distances,
// bounds and solver runtimes.
func MappingStatistics(results []models.MappingResult) []ValueStatistics {
	n := len(results)
	distances := make([]float64, 0, n)
	lower := make([]float64, 0, n)
	upper := make([]float64, 0, n)
	runtimes := make([]float64, 0, n)
	for _, r := range results {
		distances = append(distances, r.Distance)
		lower = append(lower, r.LowerBound)
		upper = append(upper, r.UpperBound)
		runtimes = append(runtimes, r.RuntimeSeconds)
	}
	return []ValueStatistics{
		NewValueStatistics("Distance", distances),
		NewValueStatistics("LowerBound", lower),
		NewValueStatistics("UpperBound", upper),
		NewValueStatistics("Runtime", runtimes),
	}
}
