package searcher

import (
	"mcts/game"
	"mcts/game/tictactoe"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRollout(t *testing.T) {
	t.Run("stopping at an existing winner", func(t *testing.T) {
		board := mustRows(t, "XXX", "OO.", "...")

		outcome, plies, err := Rollout[Move, Player](board, firstRand{})

		require.NoError(t, err)
		require.Equal(t, game.Outcome[Player]{Winner: tictactoe.X, Decisive: true}, outcome)
		require.Zero(t, plies, "No action should be played on a won game")
	})

	t.Run("stopping at a draw", func(t *testing.T) {
		board := mustRows(t, "XOX", "XOO", "OXX")

		outcome, plies, err := Rollout[Move, Player](board, firstRand{})

		require.NoError(t, err)
		require.True(t, outcome.Draw())
		require.Zero(t, plies)
	})

	t.Run("playing the first candidate until terminal", func(t *testing.T) {
		// First empty spots in order: X 0 0, O 0 1, X 0 2, O 1 0, X 1 1, O 1 2, X 2 0 wins the anti-diagonal
		board := tictactoe.New()

		outcome, plies, err := Rollout[Move, Player](board, firstRand{})

		require.NoError(t, err)
		require.Equal(t, game.Outcome[Player]{Winner: tictactoe.X, Decisive: true}, outcome)
		require.Equal(t, 7, plies)
		require.True(t, board.Done(), "Rollout should play on the given state")
	})

	t.Run("finishing random games", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 100; i++ {
			board := tictactoe.New()

			_, plies, err := Rollout[Move, Player](board, r)

			require.NoError(t, err)
			require.True(t, board.Done())
			require.GreaterOrEqual(t, plies, 5, "No game ends before the fifth mark")
			require.LessOrEqual(t, plies, 9)
		}
	})

	t.Run("reporting a rejected legal action", func(t *testing.T) {
		state := brokenGame{Game: tictactoe.New()}

		_, _, err := Rollout[Move, Player](state, firstRand{})

		require.ErrorIs(t, err, ErrInvariant)
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})
}
