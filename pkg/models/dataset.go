package models

import "fmt"

// GraphDataset is an ordered, immutable collection of graphs. Graph ids are
// indices into Graphs. The dataset is shared read-only across all workers.
type GraphDataset struct {
	Name   string  `json:"name"`
	Graphs []Graph `json:"graphs"`
}

// Size returns the number of graphs in the dataset
func (d *GraphDataset) Size() int { return len(d.Graphs) }

// Graph returns the graph with the given id
func (d *GraphDataset) Graph(id int) (*Graph, error) {
	if id < 0 || id >= len(d.Graphs) {
		return nil, fmt.Errorf("graph id out of range: %d (dataset %s has %d graphs)", id, d.Name, len(d.Graphs))
	}
	return &d.Graphs[id], nil
}

// MaxPairs returns the number of unordered graph pairs in the dataset
func (d *GraphDataset) MaxPairs() int {
	n := len(d.Graphs)
	return n * (n - 1) / 2
}
