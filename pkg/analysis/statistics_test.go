package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlai-bonn/GEDPaths/pkg/analysis"
	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

func TestNewValueStatistics(t *testing.T) {
	s := analysis.NewValueStatistics("metric", []float64{1, 2, 3, 4})

	assert.Equal(t, "metric", s.Name)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.StdDev, 1e-12)
	assert.Equal(t, float64(1), s.Min)
	assert.Equal(t, float64(4), s.Max)
}

func TestNewValueStatisticsSingleValue(t *testing.T) {
	s := analysis.NewValueStatistics("metric", []float64{7})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, float64(7), s.Mean)
	assert.Equal(t, float64(0), s.StdDev)
	assert.Equal(t, float64(7), s.Min)
	assert.Equal(t, float64(7), s.Max)
}

func TestNewValueStatisticsEmpty(t *testing.T) {
	s := analysis.NewValueStatistics("metric", nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Min))
}

func TestMappingStatistics(t *testing.T) {
	results := []models.MappingResult{
		{Distance: 2, LowerBound: 1, UpperBound: 2, RuntimeSeconds: 0.5},
		{Distance: 4, LowerBound: 3, UpperBound: 4, RuntimeSeconds: 1.5},
	}
	stats := analysis.MappingStatistics(results)

	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Distance", "LowerBound", "UpperBound", "Runtime"}, names)

	assert.Equal(t, []float64{2, 4}, stats[0].Values)
	assert.InDelta(t, 3.0, stats[0].Mean, 1e-12)
	assert.Equal(t, []float64{0.5, 1.5}, stats[3].Values)
}
