package engine

import (
	"context"
	"fmt"
	"mcts/agent"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/meta"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Local plays a game between two agents in process. The first agent plays for the player to
// move in the initial state, the second for the other player.
type Local[A comparable, P comparable] struct {
	newGame func() game.Game[A, P]
	agents  []agent.Agent[A, P]
	// OnMove is called after every move with the updated state
	OnMove func(step int, player P, action A, state game.Game[A, P])
	Logger zerolog.Logger
}

func NewLocal[A comparable, P comparable](newGame func() game.Game[A, P], agents ...agent.Agent[A, P]) (*Local[A, P], error) {
	if len(agents) != 2 {
		return nil, fmt.Errorf("need two agents, got %d", len(agents))
	}
	return &Local[A, P]{
		newGame: newGame,
		agents:  agents,
		Logger:  log.Logger,
	}, nil
}

// Run executes the entire game loop until the game is over.
func (e *Local[A, P]) Run(ctx context.Context) (Result[P], error) {
	state := e.newGame()
	gameID := uuid.NewString()
	logger := e.Logger.With().Str("game", gameID).Logger()

	// Agents are assigned to players in order of their first turn
	seats := make(map[P]agent.Agent[A, P], len(e.agents))
	seat := func(player P) agent.Agent[A, P] {
		a, ok := seats[player]
		if !ok && len(seats) < len(e.agents) {
			a = e.agents[len(seats)]
			seats[player] = a
		}
		return a
	}

	starting := state.CurrentPlayer()
	gameMetric := metrics.GameMetric{
		GameID:         gameID,
		StartingPlayer: fmt.Sprint(starting),
		StartTime:      time.Now(),
	}
	logger.Info().Msgf("player %v is starting", starting)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for ; !state.Done() && step <= meta.MAX_TURNS; step++ {
		if err := ctx.Err(); err != nil {
			return Result[P]{}, err
		}

		player := state.CurrentPlayer()
		a := seat(player)
		if a == nil {
			return Result[P]{}, fmt.Errorf("no agent left for player %v", player)
		}

		action, searchMetric, err := a.FindMove(state.Clone())
		if err != nil {
			return Result[P]{}, fmt.Errorf("step %d: %w", step, err)
		}
		if !slices.Contains(state.LegalActions(), action) {
			return Result[P]{}, fmt.Errorf("%w: %v by player %v at step %d", ErrIllegalAgentMove, action, player, step)
		}
		if _, err := state.Step(action); err != nil {
			return Result[P]{}, fmt.Errorf("step %d: %w", step, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       fmt.Sprint(player),
			Move:         fmt.Sprint(action),
			SearchMetric: searchMetric,
		})
		logger.Debug().Int("step", step).Msgf("player %v played %v", player, action)
		if e.OnMove != nil {
			e.OnMove(step, player, action, state)
		}
	}

	outcome := game.OutcomeOf(state)
	if !state.Done() {
		logger.Warn().Msgf("stopped after %d turns without a result", meta.MAX_TURNS)
	}
	if outcome.Decisive {
		gameMetric.Winner = fmt.Sprint(outcome.Winner)
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	logger.Info().Int("moves", gameMetric.TotalMoves).Msgf("game ended: %v", outcome)

	return Result[P]{Outcome: outcome, Game: gameMetric, Moves: moveMetrics}, nil
}
