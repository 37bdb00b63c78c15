// Package editpath derives ordered edit-path sequences from validated
// mapping results: for one graph pair it enumerates the elementary edits
// implied by the node correspondence and materializes every intermediate
// graph under a selectable ordering strategy.
package editpath

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// ErrInvalidCorrespondence is returned when an edit path is requested for a
// corrupt mapping result. Callers must run the validity check first.
var ErrInvalidCorrespondence = errors.New("invalid correspondence")

// Edit is one pending elementary edit expressed in working node ids: source
// nodes keep their ids, the inserted target node j gets id nSource + j.
type Edit struct {
	Kind models.ObjectKind
	Type models.EditType
	// Node is set for node edits, U/V for edge edits
	Node int
	U, V int
	// Label is the label applied by insert and relabel edits
	Label int
}

// canonicalClass orders edit classes: deletions before insertions before
// relabels, edge deletions before the node deletions they unblock, node
// insertions before the edge insertions that need them.
func (e Edit) canonicalClass() int {
	switch {
	case e.Kind == models.EdgeObject && e.Type == models.EditDelete:
		return 0
	case e.Kind == models.NodeObject && e.Type == models.EditDelete:
		return 1
	case e.Kind == models.NodeObject && e.Type == models.EditInsert:
		return 2
	case e.Kind == models.EdgeObject && e.Type == models.EditInsert:
		return 3
	case e.Kind == models.NodeObject && e.Type == models.EditRelabel:
		return 4
	default:
		return 5
	}
}

// canonicalLess orders edits by class, then by node/edge ids
func canonicalLess(a, b Edit) bool {
	if ca, cb := a.canonicalClass(), b.canonicalClass(); ca != cb {
		return ca < cb
	}
	if a.Kind == models.NodeObject {
		return a.Node < b.Node
	}
	if a.U != b.U {
		return a.U < b.U
	}
	return a.V < b.V
}

// enumerateEdits derives the full edit set implied by a mapping result.
func enumerateEdits(result *models.MappingResult, source, target *models.Graph) ([]Edit, error) {
	nSource, nTarget := source.Nodes(), target.Nodes()
	if len(result.ForwardMap) != nSource || len(result.BackwardMap) != nTarget {
		return nil, fmt.Errorf("%w: map lengths (%d, %d) do not match graph sizes (%d, %d) for pair %v",
			ErrInvalidCorrespondence, len(result.ForwardMap), len(result.BackwardMap), nSource, nTarget, result.Pair)
	}

	// workingOf[j] = working id of target node j
	workingOf := make([]int, nTarget)
	for j := 0; j < nTarget; j++ {
		if s, ok := result.SourceOf(j, nSource); ok {
			workingOf[j] = s
		} else {
			workingOf[j] = nSource + j
		}
	}

	var edits []Edit

	for i := 0; i < nSource; i++ {
		t, mapped := result.TargetOf(i, nTarget)
		switch {
		case !mapped:
			edits = append(edits, Edit{Kind: models.NodeObject, Type: models.EditDelete, Node: i})
		case source.NodeLabels[i] != target.NodeLabels[t]:
			edits = append(edits, Edit{Kind: models.NodeObject, Type: models.EditRelabel, Node: i, Label: target.NodeLabels[t]})
		}
	}
	for j := 0; j < nTarget; j++ {
		if _, mapped := result.SourceOf(j, nSource); !mapped {
			edits = append(edits, Edit{Kind: models.NodeObject, Type: models.EditInsert, Node: nSource + j, Label: target.NodeLabels[j]})
		}
	}

	targetEdges := target.EdgeIndex()
	for _, e := range source.Edges {
		fu, okU := result.TargetOf(e.U, nTarget)
		fv, okV := result.TargetOf(e.V, nTarget)
		if !okU || !okV {
			edits = append(edits, Edit{Kind: models.EdgeObject, Type: models.EditDelete, U: e.U, V: e.V})
			continue
		}
		if fu > fv {
			fu, fv = fv, fu
		}
		label, exists := targetEdges[[2]int{fu, fv}]
		switch {
		case !exists:
			edits = append(edits, Edit{Kind: models.EdgeObject, Type: models.EditDelete, U: e.U, V: e.V})
		case label != e.Label:
			edits = append(edits, Edit{Kind: models.EdgeObject, Type: models.EditRelabel, U: e.U, V: e.V, Label: label})
		}
	}

	sourceEdges := source.EdgeIndex()
	for _, e := range target.Edges {
		su, okU := result.SourceOf(e.U, nSource)
		sv, okV := result.SourceOf(e.V, nSource)
		if okU && okV {
			if su > sv {
				su, sv = sv, su
			}
			if _, exists := sourceEdges[[2]int{su, sv}]; exists {
				continue // kept or relabeled via the source side
			}
		}
		u, v := workingOf[e.U], workingOf[e.V]
		if u > v {
			u, v = v, u
		}
		edits = append(edits, Edit{Kind: models.EdgeObject, Type: models.EditInsert, U: u, V: v, Label: e.Label})
	}

	sort.Slice(edits, func(i, j int) bool { return canonicalLess(edits[i], edits[j]) })
	return edits, nil
}
