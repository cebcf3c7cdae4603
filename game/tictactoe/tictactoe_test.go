package tictactoe

import (
	"bytes"
	"mcts/game"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [Size]string) *Board {
	t.Helper()
	b, err := FromRows(rows)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	b := New()

	require.Equal(t, X, b.CurrentPlayer(), "X should move first")
	require.Len(t, b.LegalActions(), 9, "Every spot should be legal on an empty board")
	require.False(t, b.Done(), "Empty board should not be terminal")
	_, won := b.Winner()
	require.False(t, won, "Empty board should have no winner")
}

func TestStep(t *testing.T) {
	t.Run("placing marks alternates the turn", func(t *testing.T) {
		b := New()

		_, err := b.Step(Move{0, 0})
		require.NoError(t, err)
		require.Equal(t, X, b.At(0, 0))
		require.Equal(t, O, b.CurrentPlayer())

		_, err = b.Step(Move{0, 1})
		require.NoError(t, err)
		require.Equal(t, O, b.At(0, 1))
		require.Equal(t, X, b.CurrentPlayer())
	})

	t.Run("rejecting a filled spot", func(t *testing.T) {
		b := New()
		_, err := b.Step(Move{0, 0})
		require.NoError(t, err)

		_, err = b.Step(Move{0, 0})

		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Equal(t, X, b.At(0, 0), "Board should not change")
		require.Equal(t, O, b.CurrentPlayer(), "Turn should not change")
	})

	t.Run("rejecting a spot off the board", func(t *testing.T) {
		_, err := New().Step(Move{3, 0})

		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("rejecting moves after a win", func(t *testing.T) {
		b := mustRows(t, [Size]string{"XXX", "OO.", "..."})

		_, err := b.Step(Move{1, 2})

		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Empty(t, b.LegalActions(), "Won game should have no legal actions")
	})

	t.Run("rewarding the winning move", func(t *testing.T) {
		b := mustRows(t, [Size]string{"XX.", "OO.", "..."})

		reward, err := b.Step(Move{0, 2})

		require.NoError(t, err)
		require.Equal(t, 1.0, reward)
	})
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		rows   [Size]string
		winner Player
		won    bool
	}{
		{"row", [Size]string{"XXX", "OO.", "..."}, X, true},
		{"column", [Size]string{"OX.", "OX.", "O.X"}, O, true},
		{"diagonal", [Size]string{"X.O", ".XO", "..X"}, X, true},
		{"anti-diagonal", [Size]string{"XXO", ".O.", "OX."}, O, true},
		{"ongoing", [Size]string{"XO.", ".X.", "O.."}, 0, false},
		{"draw", [Size]string{"XOX", "XOO", "OXX"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, won := mustRows(t, tt.rows).Winner()

			require.Equal(t, tt.won, won)
			require.Equal(t, tt.winner, winner)
		})
	}
}

func TestDone(t *testing.T) {
	require.True(t, mustRows(t, [Size]string{"XOX", "XOO", "OXX"}).Done(), "Full board should be terminal")
	require.True(t, mustRows(t, [Size]string{"XXX", "OO.", "..."}).Done(), "Won board should be terminal")
	require.False(t, mustRows(t, [Size]string{"XO.", "...", "..."}).Done())
}

func TestFromRows(t *testing.T) {
	t.Run("deriving the player to move", func(t *testing.T) {
		require.Equal(t, O, mustRows(t, [Size]string{"X..", "...", "..."}).CurrentPlayer())
		require.Equal(t, X, mustRows(t, [Size]string{"XO.", "...", "..."}).CurrentPlayer())
	})

	t.Run("rejecting unreachable positions", func(t *testing.T) {
		_, err := FromRows([Size]string{"XX.", "...", "..."})
		require.Error(t, err)

		_, err = FromRows([Size]string{"OO.", "X..", "..."})
		require.Error(t, err)
	})

	t.Run("rejecting malformed rows", func(t *testing.T) {
		_, err := FromRows([Size]string{"X", "...", "..."})
		require.Error(t, err)

		_, err = FromRows([Size]string{"X?.", "...", "..."})
		require.Error(t, err)
	})
}

func TestClone(t *testing.T) {
	b := New()
	clone := b.Clone()

	_, err := clone.Step(Move{1, 1})
	require.NoError(t, err)

	require.Equal(t, Player(0), b.At(1, 1), "Original should not change")
	require.Equal(t, X, b.CurrentPlayer(), "Original turn should not change")
	require.Equal(t, O, clone.CurrentPlayer())
}

func TestParseMove(t *testing.T) {
	move, err := ParseMove(" 1  2\n")
	require.NoError(t, err)
	require.Equal(t, Move{Row: 1, Col: 2}, move)

	_, err = ParseMove("1")
	require.Error(t, err)

	_, err = ParseMove("a 2")
	require.Error(t, err)
}

func TestString(t *testing.T) {
	b := mustRows(t, [Size]string{"XO.", ".X.", "..O"})

	require.Equal(t, "X O .\n. X .\n. . O\n", b.String())
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	b := mustRows(t, [Size]string{"XO.", "...", "..."})

	got := b.Render(out)

	require.Equal(t, "   0 1 2\n0  X O .\n1  . . .\n2  . . .\n", got, "Ascii profile should render plain marks")
}
