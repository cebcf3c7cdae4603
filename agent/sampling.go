package agent

import (
	"fmt"
	"math"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"golang.org/x/exp/rand"
)

type samplingAgent[A comparable, P comparable] struct {
	mcts        *searcher.MCTS[A, P]
	temperature float64
	rand        *rand.Rand
}

// NewSamplingAgent returns an agent that samples root actions in proportion to
// visits^(1/temperature). A temperature of 0 always plays the most visited action.
func NewSamplingAgent[A comparable, P comparable](mcts *searcher.MCTS[A, P], temperature float64, r *rand.Rand) Agent[A, P] {
	return samplingAgent[A, P]{mcts: mcts, temperature: max(temperature, 0), rand: r}
}

func (a samplingAgent[A, P]) FindMove(state game.Game[A, P]) (A, metrics.SearchMetric, error) {
	var none A
	tree, metric, err := a.mcts.Simulate(state)
	if err != nil {
		return none, metrics.SearchMetric{}, err
	}

	root := tree.Root()
	actions := make([]A, 0, len(root.Children))
	visits := make([]float64, 0, len(root.Children))
	for _, edge := range root.Children {
		child, err := tree.Node(edge.Node)
		if err != nil {
			return none, metrics.SearchMetric{}, err
		}
		actions = append(actions, edge.Action)
		visits = append(visits, float64(child.Visits))
	}
	if len(actions) == 0 {
		return none, metrics.SearchMetric{}, fmt.Errorf("%w: root has no children", searcher.ErrInvariant)
	}

	return actions[sample(adjustTemperature(visits, a.temperature), a.rand)], metric, nil
}

// adjustTemperature turns visit counts into probabilities.
func adjustTemperature(visits []float64, temperature float64) []float64 {
	probs := make([]float64, len(visits))
	if temperature == 0 {
		best := 0
		for i, v := range visits {
			if v > visits[best] {
				best = i
			}
		}
		probs[best] = 1
		return probs
	}

	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	for i, v := range visits {
		probs[i] = math.Pow(v, exponent)
		sum += probs[i]
	}
	// Normalize
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample(probs []float64, r *rand.Rand) int {
	sampled := r.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
