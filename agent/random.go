package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent[A comparable, P comparable] struct {
	rand *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal actions.
func NewRandomAgent[A comparable, P comparable](r *rand.Rand) Agent[A, P] {
	return randomAgent[A, P]{rand: r}
}

func (a randomAgent[A, P]) FindMove(state game.Game[A, P]) (A, metrics.SearchMetric, error) {
	actions := state.LegalActions()
	if state.Done() || len(actions) == 0 {
		var none A
		return none, metrics.SearchMetric{}, searcher.ErrTerminalState
	}
	return actions[a.rand.Intn(len(actions))], metrics.SearchMetric{}, nil
}
