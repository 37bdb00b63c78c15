package editpath

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mlai-bonn/GEDPaths/pkg/models"
)

// Strategy picks the next edit to apply given the currently legal edits and
// the current intermediate graph.
type Strategy interface {
	Name() string
	// Pick returns an index into legal. legal is never empty.
	Pick(legal []Edit, current *models.Graph) int
}

// CanonicalStrategy applies edits in a fixed precedence: edge deletions,
// node deletions, node insertions, edge insertions, node relabels, edge
// relabels, each ordered by id. Reproducible baseline.
type CanonicalStrategy struct{}

func (CanonicalStrategy) Name() string { return "canonical" }

func (CanonicalStrategy) Pick(legal []Edit, _ *models.Graph) int {
	best := 0
	for i := 1; i < len(legal); i++ {
		if canonicalLess(legal[i], legal[best]) {
			best = i
		}
	}
	return best
}

// RandomStrategy picks uniformly among the legal edits at every step, for
// diversity sampling. Seeded: same seed, same path.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy creates a seeded random ordering strategy
func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (*RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Pick(legal []Edit, _ *models.Graph) int {
	return s.rng.Intn(len(legal))
}

// StrategyFromString resolves a strategy name from the CLI surface
func StrategyFromString(name string, seed int64) (Strategy, error) {
	switch strings.ToLower(name) {
	case "canonical", "deterministic":
		return CanonicalStrategy{}, nil
	case "random":
		return NewRandomStrategy(seed), nil
	default:
		return nil, fmt.Errorf("unknown edit path strategy: %q", name)
	}
}
