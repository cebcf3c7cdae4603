package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
)

type Agent[A comparable, P comparable] interface {
	// FindMove returns the action to play in state and the search metrics (if collected)
	FindMove(state game.Game[A, P]) (A, metrics.SearchMetric, error)
}
