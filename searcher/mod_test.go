package searcher

import (
	"fmt"
	"mcts/game"
	"mcts/game/tictactoe"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

type (
	Move   = tictactoe.Move
	Player = tictactoe.Player
)

// firstRand always picks the first candidate.
type firstRand struct{}

func (firstRand) Intn(n int) int { return 0 }

// strictGame records every step given an action that is not currently legal.
type strictGame struct {
	game.Game[Move, Player]
	violations *int
}

func newStrictGame(board *tictactoe.Board) strictGame {
	return strictGame{Game: board, violations: new(int)}
}

func (g strictGame) Step(action Move) (float64, error) {
	if !slices.Contains(g.LegalActions(), action) {
		*g.violations++
	}
	return g.Game.Step(action)
}

func (g strictGame) Clone() game.Game[Move, Player] {
	return strictGame{Game: g.Game.Clone(), violations: g.violations}
}

// brokenGame lists actions it then refuses to play.
type brokenGame struct {
	game.Game[Move, Player]
}

func (g brokenGame) Step(action Move) (float64, error) {
	return 0, fmt.Errorf("spot %v rejected: %w", action, game.ErrIllegalMove)
}

func (g brokenGame) Clone() game.Game[Move, Player] {
	return brokenGame{Game: g.Game.Clone()}
}

// lyingGame claims to be over while still listing actions.
type lyingGame struct {
	game.Game[Move, Player]
}

func (g lyingGame) Done() bool {
	return true
}

func mustRows(t *testing.T, rows ...string) *tictactoe.Board {
	t.Helper()
	b, err := tictactoe.FromRows([3]string(rows))
	require.NoError(t, err)
	return b
}

func quietMCTS(options ...Option) *MCTS[Move, Player] {
	return NewMCTS[Move, Player](append([]Option{WithLogger(zerolog.Nop())}, options...)...)
}

// visitTree calls fn for every node with the game state it represents.
func visitTree(t *testing.T, tree *Tree[Move, Player], id NodeID, state game.Game[Move, Player], fn func(node *Node[Move, Player], state game.Game[Move, Player])) {
	t.Helper()
	node, err := tree.Node(id)
	require.NoError(t, err)
	fn(node, state)
	for _, edge := range node.Children {
		child := state.Clone()
		_, err := child.Step(edge.Action)
		require.NoError(t, err)
		visitTree(t, tree, edge.Node, child, fn)
	}
}
