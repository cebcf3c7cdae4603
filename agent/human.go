package agent

import (
	"bufio"
	"fmt"
	"io"
	"mcts/experiments/metrics"
	"mcts/game"

	"golang.org/x/exp/slices"
)

type humanAgent[A comparable, P comparable] struct {
	in    *bufio.Scanner
	out   io.Writer
	parse func(string) (A, error)
}

// NewHumanAgent returns an agent that asks for moves on out and reads them from in, one per
// line. Unparsable or illegal input is asked for again. FindMove returns io.EOF once in is
// exhausted.
func NewHumanAgent[A comparable, P comparable](in io.Reader, out io.Writer, parse func(string) (A, error)) Agent[A, P] {
	return &humanAgent[A, P]{in: bufio.NewScanner(in), out: out, parse: parse}
}

func (a *humanAgent[A, P]) FindMove(state game.Game[A, P]) (A, metrics.SearchMetric, error) {
	var none A
	legal := state.LegalActions()
	for {
		fmt.Fprintf(a.out, "Player %v, enter your move: ", state.CurrentPlayer())
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return none, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
			}
			return none, metrics.SearchMetric{}, io.EOF
		}

		action, err := a.parse(a.in.Text())
		if err != nil {
			fmt.Fprintf(a.out, "Invalid input: %v\n", err)
			continue
		}
		if !slices.Contains(legal, action) {
			fmt.Fprintf(a.out, "Illegal move %v, try again\n", action)
			continue
		}
		return action, metrics.SearchMetric{}, nil
	}
}
