package editpath_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlai-bonn/GEDPaths/pkg/editpath"
	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func categories(path *models.EditPath) []string {
	names := make([]string, 0, path.Length())
	for _, op := range path.Operations {
		names = append(names, op.String())
	}
	return names
}

func requirePathShape(t *testing.T, path *models.EditPath, source, target *models.Graph) {
	t.Helper()
	require.Equal(t, path.Length()+1, len(path.Snapshots))
	require.True(t, path.Snapshots[0].Equal(source), "path must start at the source graph")

	final := &path.Snapshots[len(path.Snapshots)-1]
	assert.Equal(t, target.Nodes(), final.Nodes())
	assert.Equal(t, target.NumEdges(), final.NumEdges())
	assert.Equal(t, target.Name, final.Name)

	for i, op := range path.Operations {
		assert.Equal(t, i, op.Step)
		assert.Equal(t, path.Pair.A, op.SourceID)
		assert.Equal(t, path.Pair.B, op.TargetID)
	}
}

func TestBuildCanonicalOrdering(t *testing.T) {
	// one deletion, two insertions, one relabel; no edges involved
	source := models.NewGraph("s", 2)
	source.NodeLabels = []int{0, 5}
	target := models.NewGraph("t", 3)
	target.NodeLabels = []int{1, 7, 8}

	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 3 + 1}, // node 1 deleted
		BackwardMap: []int{0, 2 + 1, 2 + 2},
	}

	path, err := editpath.Build(&result, source, target, editpath.BuildConfig{Prefix: "test"})
	require.NoError(t, err)
	requirePathShape(t, path, source, target)

	want := []string{"NodeDelete", "NodeInsert", "NodeInsert", "NodeRelabel"}
	if diff := cmp.Diff(want, categories(path)); diff != "" {
		t.Errorf("canonical operation order mismatch (-want +got):\n%s", diff)
	}

	final := &path.Snapshots[len(path.Snapshots)-1]
	assert.True(t, final.Equal(target))
}

func TestBuildEdgeDeleteBeforeNodeDelete(t *testing.T) {
	// chain 0-1-2 shrinks to a single node; incident edges must go first
	source := models.NewGraph("s", 3)
	require.NoError(t, source.AddEdge(0, 1, 0))
	require.NoError(t, source.AddEdge(1, 2, 0))
	target := models.NewGraph("t", 1)

	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 1 + 1, 1 + 2},
		BackwardMap: []int{0},
	}

	path, err := editpath.Build(&result, source, target, editpath.BuildConfig{Prefix: "test"})
	require.NoError(t, err)
	requirePathShape(t, path, source, target)

	want := []string{"EdgeDelete", "EdgeDelete", "NodeDelete", "NodeDelete"}
	assert.Equal(t, want, categories(path))
}

func TestBuildNodeInsertBeforeEdgeInsert(t *testing.T) {
	// the inserted edge touches the inserted node, so the node must exist first
	source := models.NewGraph("s", 2)
	require.NoError(t, source.AddEdge(0, 1, 0))
	target := models.NewGraph("t", 3)
	require.NoError(t, target.AddEdge(0, 1, 0))
	require.NoError(t, target.AddEdge(1, 2, 0))

	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 1},
		BackwardMap: []int{0, 1, 2 + 2},
	}

	path, err := editpath.Build(&result, source, target, editpath.BuildConfig{Prefix: "test"})
	require.NoError(t, err)
	requirePathShape(t, path, source, target)

	assert.Equal(t, []string{"NodeInsert", "EdgeInsert"}, categories(path))
	final := &path.Snapshots[len(path.Snapshots)-1]
	assert.True(t, final.Equal(target))
}

func TestBuildEmptyPathForIdenticalGraphs(t *testing.T) {
	g := models.NewGraph("g", 3)
	g.NodeLabels = []int{0, 1, 2}
	require.NoError(t, g.AddEdge(0, 1, 0))

	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 1, 2},
		BackwardMap: []int{0, 1, 2},
	}

	path, err := editpath.Build(&result, g, g.Clone(), editpath.BuildConfig{Prefix: "test"})
	require.NoError(t, err)
	assert.Equal(t, 0, path.Length())
	require.Len(t, path.Snapshots, 1)
}

func TestBuildLengthMatchesCategoryCounts(t *testing.T) {
	source := models.NewGraph("s", 3)
	source.NodeLabels = []int{0, 1, 2}
	require.NoError(t, source.AddEdge(0, 1, 0))
	target := models.NewGraph("t", 3)
	target.NodeLabels = []int{0, 2, 2}
	require.NoError(t, target.AddEdge(0, 1, 3))
	require.NoError(t, target.AddEdge(0, 2, 0))

	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 1, 2},
		BackwardMap: []int{0, 1, 2},
	}

	path, err := editpath.Build(&result, source, target, editpath.BuildConfig{Prefix: "test"})
	require.NoError(t, err)
	requirePathShape(t, path, source, target)

	total := 0
	for _, c := range path.CategoryCounts() {
		total += c
	}
	assert.Equal(t, path.Length(), total)
}

func TestBuildRejectsCorruptMapping(t *testing.T) {
	g := models.NewGraph("g", 2)
	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 0},
		BackwardMap: []int{0, 1},
	}

	_, err := editpath.Build(&result, g, g.Clone(), editpath.BuildConfig{})
	assert.True(t, errors.Is(err, editpath.ErrInvalidCorrespondence))
}

func TestBuildRejectsMapLengthMismatch(t *testing.T) {
	source := models.NewGraph("s", 3)
	target := models.NewGraph("t", 2)
	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 1}, // source has 3 nodes
		BackwardMap: []int{0, 1},
	}

	_, err := editpath.Build(&result, source, target, editpath.BuildConfig{})
	assert.True(t, errors.Is(err, editpath.ErrInvalidCorrespondence))
}

func TestBuildRandomStrategyIsSeeded(t *testing.T) {
	source := models.NewGraph("s", 3)
	source.NodeLabels = []int{0, 1, 2}
	require.NoError(t, source.AddEdge(0, 1, 0))
	require.NoError(t, source.AddEdge(1, 2, 0))
	target := models.NewGraph("t", 4)
	target.NodeLabels = []int{0, 1, 3, 4}
	require.NoError(t, target.AddEdge(0, 1, 1))
	require.NoError(t, target.AddEdge(2, 3, 0))

	result := models.MappingResult{
		Pair:        models.PairKey{A: 0, B: 1},
		ForwardMap:  []int{0, 1, 2},
		BackwardMap: []int{0, 1, 2, 3 + 3},
	}

	build := func(seed int64) *models.EditPath {
		path, err := editpath.Build(&result, source, target,
			editpath.BuildConfig{Strategy: editpath.NewRandomStrategy(seed), Prefix: "test"})
		require.NoError(t, err)
		return path
	}
	canonical, err := editpath.Build(&result, source, target, editpath.BuildConfig{Prefix: "test"})
	require.NoError(t, err)

	first, second := build(11), build(11)
	if diff := cmp.Diff(first.Operations, second.Operations); diff != "" {
		t.Errorf("same seed produced different paths (-first +second):\n%s", diff)
	}
	requirePathShape(t, first, source, target)

	// ordering may differ, the edit multiset may not
	assert.Equal(t, canonical.CategoryCounts(), first.CategoryCounts())
	assert.Equal(t, canonical.Length(), first.Length())
}

func TestStrategyFromString(t *testing.T) {
	for _, name := range []string{"canonical", "deterministic", "CANONICAL"} {
		s, err := editpath.StrategyFromString(name, 1)
		require.NoError(t, err)
		assert.Equal(t, "canonical", s.Name())
	}

	s, err := editpath.StrategyFromString("random", 1)
	require.NoError(t, err)
	assert.Equal(t, "random", s.Name())

	_, err = editpath.StrategyFromString("greedy", 1)
	assert.Error(t, err)
}

func TestBuildAllSkipsCorruptResults(t *testing.T) {
	g0 := models.NewGraph("g0", 2)
	g1 := models.NewGraph("g1", 2)
	g1.NodeLabels = []int{1, 1}
	ds := &models.GraphDataset{Name: "d", Graphs: []models.Graph{*g0, *g1}}

	results := []models.MappingResult{
		{
			Pair:        models.PairKey{A: 0, B: 1},
			ForwardMap:  []int{0, 0}, // corrupt, must be skipped
			BackwardMap: []int{0, 1},
		},
	}
	paths, err := editpath.BuildAll(results, ds, editpath.BuildAllConfig{Logger: discardLogger()})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestBuildAllConnectedOnly(t *testing.T) {
	connected := models.NewGraph("c", 2)
	require.NoError(t, connected.AddEdge(0, 1, 0))
	disconnected := models.NewGraph("d", 2) // two isolated nodes
	ds := &models.GraphDataset{Name: "d", Graphs: []models.Graph{*connected, *disconnected}}

	results := []models.MappingResult{
		{
			Pair:        models.PairKey{A: 0, B: 1},
			ForwardMap:  []int{0, 1},
			BackwardMap: []int{0, 1},
		},
	}

	paths, err := editpath.BuildAll(results, ds, editpath.BuildAllConfig{ConnectedOnly: true, Logger: discardLogger()})
	require.NoError(t, err)
	assert.Empty(t, paths)

	paths, err = editpath.BuildAll(results, ds, editpath.BuildAllConfig{Logger: discardLogger()})
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}
