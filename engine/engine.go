package engine

import (
	"context"
	"errors"
	"mcts/experiments/metrics"
	"mcts/game"
)

// ErrIllegalAgentMove is returned when an agent picks an action that is not legal.
var ErrIllegalAgentMove = errors.New("agent played an illegal move")

type Engine[P comparable] interface {
	// Run plays a game until it is over or a max number of turns is reached
	Run(ctx context.Context) (Result[P], error)
}

type Result[P comparable] struct {
	Outcome game.Outcome[P]
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}
