package analysis

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// IsConnected reports whether the graph consists of a single connected
// component. Graphs with at most one node count as connected.
func IsConnected(g *models.Graph) bool {
	if g.Nodes() <= 1 {
		return true
	}
	und := simple.NewUndirectedGraph()
	for i := 0; i < g.Nodes(); i++ {
		und.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		und.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	return len(topo.ConnectedComponents(und)) == 1
}
