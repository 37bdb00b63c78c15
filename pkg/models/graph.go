package models

import "fmt"

// Graph represents an undirected labeled graph. Node ids are contiguous
// indices into NodeLabels; edges are stored normalized with U < V.
type Graph struct {
	Name       string      `json:"name"`
	NodeLabels []int       `json:"node_labels"` // NodeLabels[i] = label of node i
	Edges      []GraphEdge `json:"edges"`
}

// GraphEdge is a single undirected edge with an integer label.
type GraphEdge struct {
	U     int `json:"u"`
	V     int `json:"v"`
	Label int `json:"label"`
}

// NewGraph creates a new graph with numNodes unlabeled nodes
func NewGraph(name string, numNodes int) *Graph {
	return &Graph{
		Name:       name,
		NodeLabels: make([]int, numNodes),
	}
}

// Nodes returns the number of nodes
func (g *Graph) Nodes() int { return len(g.NodeLabels) }

// NumEdges returns the number of edges
func (g *Graph) NumEdges() int { return len(g.Edges) }

// AddNode appends a node with the given label and returns its id
func (g *Graph) AddNode(label int) int {
	g.NodeLabels = append(g.NodeLabels, label)
	return len(g.NodeLabels) - 1
}

// SetLabel sets the label of an existing node
func (g *Graph) SetLabel(node, label int) error {
	if node < 0 || node >= len(g.NodeLabels) {
		return fmt.Errorf("node index out of range: %d (nodes=%d)", node, len(g.NodeLabels))
	}
	g.NodeLabels[node] = label
	return nil
}

// AddEdge adds an undirected edge between two distinct nodes
func (g *Graph) AddEdge(u, v, label int) error {
	if u < 0 || u >= len(g.NodeLabels) || v < 0 || v >= len(g.NodeLabels) {
		return fmt.Errorf("node index out of range: u=%d, v=%d, nodes=%d", u, v, len(g.NodeLabels))
	}
	if u == v {
		return fmt.Errorf("self loops are not supported: node %d", u)
	}
	if u > v {
		u, v = v, u
	}
	for _, e := range g.Edges {
		if e.U == u && e.V == v {
			return fmt.Errorf("edge (%d,%d) already exists", u, v)
		}
	}
	g.Edges = append(g.Edges, GraphEdge{U: u, V: v, Label: label})
	return nil
}

// HasEdge reports whether an edge between u and v exists
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.EdgeLabel(u, v)
	return ok
}

// EdgeLabel returns the label of the edge between u and v, if present
func (g *Graph) EdgeLabel(u, v int) (int, bool) {
	if u > v {
		u, v = v, u
	}
	for _, e := range g.Edges {
		if e.U == u && e.V == v {
			return e.Label, true
		}
	}
	return 0, false
}

// EdgeIndex builds a lookup map from normalized endpoint pairs to edge labels.
// The map is a snapshot; later mutations are not reflected.
func (g *Graph) EdgeIndex() map[[2]int]int {
	index := make(map[[2]int]int, len(g.Edges))
	for _, e := range g.Edges {
		index[[2]int{e.U, e.V}] = e.Label
	}
	return index
}

// Degree returns the number of edges incident to a node
func (g *Graph) Degree(node int) int {
	degree := 0
	for _, e := range g.Edges {
		if e.U == node || e.V == node {
			degree++
		}
	}
	return degree
}

// Clone creates a deep copy of the graph
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Name:       g.Name,
		NodeLabels: make([]int, len(g.NodeLabels)),
		Edges:      make([]GraphEdge, len(g.Edges)),
	}
	copy(clone.NodeLabels, g.NodeLabels)
	copy(clone.Edges, g.Edges)
	return clone
}

// Equal reports whether two graphs have identical node labels and edge sets
// (names are ignored)
func (g *Graph) Equal(other *Graph) bool {
	if len(g.NodeLabels) != len(other.NodeLabels) || len(g.Edges) != len(other.Edges) {
		return false
	}
	for i, l := range g.NodeLabels {
		if other.NodeLabels[i] != l {
			return false
		}
	}
	otherIndex := other.EdgeIndex()
	for _, e := range g.Edges {
		label, ok := otherIndex[[2]int{e.U, e.V}]
		if !ok || label != e.Label {
			return false
		}
	}
	return true
}
