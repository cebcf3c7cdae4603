package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
)

type searchAgent[A comparable, P comparable] struct {
	mcts *searcher.MCTS[A, P]
}

// NewSearchAgent returns an agent that plays the action with the best win rate.
func NewSearchAgent[A comparable, P comparable](mcts *searcher.MCTS[A, P]) Agent[A, P] {
	return searchAgent[A, P]{mcts: mcts}
}

func (a searchAgent[A, P]) FindMove(state game.Game[A, P]) (A, metrics.SearchMetric, error) {
	tree, metric, err := a.mcts.Simulate(state)
	if err != nil {
		var none A
		return none, metrics.SearchMetric{}, err
	}
	action, err := tree.BestAction()
	return action, metric, err
}
