package searcher

import (
	"fmt"
	"mcts/game"
)

// Rand is the source of random choices during rollouts. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Rollout plays uniformly random legal actions on state until the game has a winner or
// runs out of actions. It returns the outcome and the number of actions played.
func Rollout[A comparable, P comparable](state game.Game[A, P], r Rand) (game.Outcome[P], int, error) {
	plies := 0
	for {
		if winner, ok := state.Winner(); ok {
			return game.Outcome[P]{Winner: winner, Decisive: true}, plies, nil
		}

		actions := state.LegalActions()
		if len(actions) == 0 {
			return game.Outcome[P]{}, plies, nil
		}

		action := actions[r.Intn(len(actions))] // Random rollout policy
		if _, err := state.Step(action); err != nil {
			return game.Outcome[P]{}, plies, fmt.Errorf("%w: rollout played %v: %w", ErrInvariant, action, err)
		}
		plies++
	}
}
