// meta/meta.go
package meta

// ITERATIONS is the default search budget per move.
const ITERATIONS = 1000

// EXPLORATION is the default UCB1 exploration constant.
const EXPLORATION = 1.0

// GAMES is the default number of games per experiment matchup.
const GAMES = 30

// WORKERS is the default number of games played at once in experiments.
const WORKERS = 4

// MAX_TURNS stops a game loop that never reaches a terminal state.
const MAX_TURNS = 300
