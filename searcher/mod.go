package searcher

import "errors"

var (
	// ErrTerminalState is returned when searching a state that has no legal actions
	ErrTerminalState = errors.New("cannot search a terminal state")
	// ErrInvalidIterations is returned when the iteration budget is not positive
	ErrInvalidIterations = errors.New("iterations must be positive")
	// ErrInvariant marks a broken tree invariant or a game rejecting an action it listed as legal
	ErrInvariant = errors.New("search invariant violated")
)
