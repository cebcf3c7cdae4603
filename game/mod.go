package game

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by Step when the action is not legal in the current state.
var ErrIllegalMove = errors.New("illegal move")

// Game is a deterministic, perfect-information, turn-based game with two alternating
// players. Step mutates the game in place; use Clone to branch off a private copy.
type Game[A comparable, P comparable] interface {
	fmt.Stringer
	// Step applies action for the current player and returns an informational reward
	Step(action A) (float64, error)
	// LegalActions returns every action valid from the current state, empty once no moves remain
	LegalActions() []A
	CurrentPlayer() P
	// Done reports whether the game has a winner or no legal actions remain
	Done() bool
	// Winner returns the winner once the game is decisively over; false when ongoing or drawn
	Winner() (P, bool)
	Clone() Game[A, P]
}

// Outcome is the result of a finished game. Decisive is false for a draw.
type Outcome[P comparable] struct {
	Winner   P
	Decisive bool
}

// Draw reports whether the outcome has no winner.
func (o Outcome[P]) Draw() bool {
	return !o.Decisive
}

// WonBy reports whether player won the game.
func (o Outcome[P]) WonBy(player P) bool {
	return o.Decisive && o.Winner == player
}

func (o Outcome[P]) String() string {
	if !o.Decisive {
		return "draw"
	}
	return fmt.Sprint(o.Winner)
}

// OutcomeOf reads the outcome of a finished game. State must be Done.
func OutcomeOf[A comparable, P comparable](state Game[A, P]) Outcome[P] {
	winner, ok := state.Winner()
	return Outcome[P]{Winner: winner, Decisive: ok}
}
