// Package analysis computes statistics over mapping results and edit paths:
// per-metric value summaries, positional bucketing of operations, and the
// tabular exports consumed by downstream plotting.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ValueStatistics is an immutable summary of one scalar metric. Derived
// once from the samples, recomputed rather than mutated.
type ValueStatistics struct {
	Name   string
	Values []float64
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// NewValueStatistics summarizes a sample sequence. An empty sequence yields
// NaN moments and zero count.
func NewValueStatistics(name string, values []float64) ValueStatistics {
	s := ValueStatistics{
		Name:   name,
		Values: values,
		Count:  len(values),
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(values) == 0 {
		return s
	}
	s.Mean = stat.Mean(values, nil)
	s.StdDev = stat.StdDev(values, nil)
	if len(values) == 1 {
		s.StdDev = 0
	}
	s.Min, s.Max = values[0], values[0]
	for _, v := range values[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s
}
