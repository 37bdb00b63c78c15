package editpath

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mlai-bonn/GEDPaths/pkg/analysis"
	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// BuildConfig configures edit path construction
type BuildConfig struct {
	Strategy Strategy
	// Prefix names intermediate snapshots, usually the dataset name
	Prefix string
}

// workingGraph tracks the intermediate graph over stable working node ids.
type workingGraph struct {
	labels map[int]int
	edges  map[[2]int]int
}

func newWorkingGraph(source *models.Graph) *workingGraph {
	w := &workingGraph{
		labels: make(map[int]int, source.Nodes()),
		edges:  make(map[[2]int]int, source.NumEdges()),
	}
	for i, label := range source.NodeLabels {
		w.labels[i] = label
	}
	for _, e := range source.Edges {
		w.edges[[2]int{e.U, e.V}] = e.Label
	}
	return w
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

// legal reports whether an edit can be applied to the current graph: node
// deletions need an isolated node, edge insertions need both endpoints.
func (w *workingGraph) legal(e Edit) bool {
	switch {
	case e.Kind == models.NodeObject && e.Type == models.EditDelete:
		for key := range w.edges {
			if key[0] == e.Node || key[1] == e.Node {
				return false
			}
		}
		return true
	case e.Kind == models.EdgeObject && e.Type == models.EditInsert:
		_, okU := w.labels[e.U]
		_, okV := w.labels[e.V]
		return okU && okV
	default:
		return true
	}
}

func (w *workingGraph) apply(e Edit) {
	switch e.Kind {
	case models.NodeObject:
		switch e.Type {
		case models.EditDelete:
			delete(w.labels, e.Node)
		default: // insert, relabel
			w.labels[e.Node] = e.Label
		}
	case models.EdgeObject:
		key := edgeKey(e.U, e.V)
		switch e.Type {
		case models.EditDelete:
			delete(w.edges, key)
		default:
			w.edges[key] = e.Label
		}
	}
}

// snapshot materializes the working graph as a compact models.Graph with
// node ids renumbered in working-id order.
func (w *workingGraph) snapshot(name string) models.Graph {
	ids := make([]int, 0, len(w.labels))
	for id := range w.labels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	compact := make(map[int]int, len(ids))
	g := models.NewGraph(name, 0)
	for i, id := range ids {
		compact[id] = i
		g.AddNode(w.labels[id])
	}
	keys := make([][2]int, 0, len(w.edges))
	for key := range w.edges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, key := range keys {
		if err := g.AddEdge(compact[key[0]], compact[key[1]], w.edges[key]); err != nil {
			// keys come from a consistent working graph
			panic(fmt.Sprintf("editpath: snapshot edge %v: %v", key, err))
		}
	}
	return *g
}

// Build derives the edit path transforming source into a graph isomorphic to
// target, consistent with the node correspondence of the mapping result.
// Fails with ErrInvalidCorrespondence when the result is corrupt; run the
// validity check first.
func Build(result *models.MappingResult, source, target *models.Graph, cfg BuildConfig) (*models.EditPath, error) {
	if result.Corrupt() {
		return nil, fmt.Errorf("%w: duplicate assignments in mapping for pair %v", ErrInvalidCorrespondence, result.Pair)
	}
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = CanonicalStrategy{}
	}

	remaining, err := enumerateEdits(result, source, target)
	if err != nil {
		return nil, err
	}

	working := newWorkingGraph(source)
	path := &models.EditPath{Pair: result.Pair}
	path.Snapshots = append(path.Snapshots, *source.Clone())

	step := 0
	for len(remaining) > 0 {
		legalIdx := make([]int, 0, len(remaining))
		legal := make([]Edit, 0, len(remaining))
		for i, e := range remaining {
			if working.legal(e) {
				legalIdx = append(legalIdx, i)
				legal = append(legal, e)
			}
		}
		if len(legal) == 0 {
			return nil, fmt.Errorf("%w: no legal edit among %d remaining for pair %v", ErrInvalidCorrespondence, len(remaining), result.Pair)
		}

		current := &path.Snapshots[len(path.Snapshots)-1]
		picked := legalIdx[strategy.Pick(legal, current)]
		edit := remaining[picked]
		remaining = append(remaining[:picked], remaining[picked+1:]...)

		working.apply(edit)
		path.Operations = append(path.Operations, models.EditOperation{
			Kind:     edit.Kind,
			Type:     edit.Type,
			SourceID: result.Pair.A,
			Step:     step,
			TargetID: result.Pair.B,
		})
		step++
		name := fmt.Sprintf("%s_%d_%d_%d", cfg.Prefix, result.Pair.A, result.Pair.B, step)
		path.Snapshots = append(path.Snapshots, working.snapshot(name))
	}

	final := &path.Snapshots[len(path.Snapshots)-1]
	if final.Nodes() != target.Nodes() || final.NumEdges() != target.NumEdges() {
		return nil, fmt.Errorf("%w: path for pair %v ends at %d nodes/%d edges, target has %d/%d",
			ErrInvalidCorrespondence, result.Pair, final.Nodes(), final.NumEdges(), target.Nodes(), target.NumEdges())
	}
	final.Name = target.Name
	return path, nil
}

// BuildAllConfig configures batch edit path construction
type BuildAllConfig struct {
	Strategy Strategy
	// ConnectedOnly skips pairs whose source or target graph is disconnected
	ConnectedOnly bool
	Logger        *slog.Logger
}

// BuildAll derives edit paths for a validated result collection. Corrupt
// results are skipped with a warning and named in the log, never silently
// dropped.
func BuildAll(results []models.MappingResult, ds *models.GraphDataset, cfg BuildAllConfig) ([]*models.EditPath, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths := make([]*models.EditPath, 0, len(results))
	for i := range results {
		result := &results[i]
		source, err := ds.Graph(result.Pair.A)
		if err != nil {
			return nil, err
		}
		target, err := ds.Graph(result.Pair.B)
		if err != nil {
			return nil, err
		}
		if cfg.ConnectedOnly && (!analysis.IsConnected(source) || !analysis.IsConnected(target)) {
			logger.Info("skipping disconnected pair", "pair", result.Pair.String())
			continue
		}
		path, err := Build(result, source, target, BuildConfig{Strategy: cfg.Strategy, Prefix: ds.Name})
		if err != nil {
			logger.Warn("skipping pair", "pair", result.Pair.String(), "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
