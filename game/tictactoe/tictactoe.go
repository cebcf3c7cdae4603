package tictactoe

import (
	"fmt"
	"mcts/game"
	"strconv"
	"strings"
)

const Size = 3

type Player int

const (
	X Player = iota + 1
	O
)

// Opponent returns the other player
func (p Player) Opponent() Player {
	if p == X {
		return O
	}
	return X
}

func (p Player) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

type Move struct {
	Row int
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("%d %d", m.Row, m.Col)
}

// ParseMove reads a move written as "row col", e.g. "1 2".
func ParseMove(input string) (Move, error) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return Move{}, fmt.Errorf("expected \"row col\", got %q", input)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return Move{}, fmt.Errorf("invalid row %q: %w", parts[0], err)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid column %q: %w", parts[1], err)
	}
	return Move{Row: row, Col: col}, nil
}

// Board is a 3x3 tic-tac-toe position. The zero value is not ready to play, use New.
type Board struct {
	spots   [Size][Size]Player // 0 marks an empty spot
	current Player
}

// New returns an empty board with X to move.
func New() *Board {
	return &Board{current: X}
}

// FromRows builds a position from three rows of 'X', 'O' and '.', e.g. "XX.". The player to
// move is X when both players placed the same number of marks, O otherwise.
func FromRows(rows [Size]string) (*Board, error) {
	b := New()
	var xs, os int
	for i, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("row %d: expected %d spots, got %q", i, Size, row)
		}
		for j, c := range row {
			switch c {
			case 'X', 'x':
				b.spots[i][j] = X
				xs++
			case 'O', 'o':
				b.spots[i][j] = O
				os++
			case '.', ' ', '_':
			default:
				return nil, fmt.Errorf("row %d: unexpected spot %q", i, c)
			}
		}
	}
	switch xs - os {
	case 0:
		b.current = X
	case 1:
		b.current = O
	default:
		return nil, fmt.Errorf("unreachable position: %d X against %d O", xs, os)
	}
	return b, nil
}

func (b *Board) Step(move Move) (float64, error) {
	if move.Row < 0 || move.Row >= Size || move.Col < 0 || move.Col >= Size {
		return 0, fmt.Errorf("spot %v is off the board: %w", move, game.ErrIllegalMove)
	}
	if b.spots[move.Row][move.Col] != 0 {
		return 0, fmt.Errorf("spot %v is already filled: %w", move, game.ErrIllegalMove)
	}
	if _, over := b.Winner(); over {
		return 0, fmt.Errorf("game is already won: %w", game.ErrIllegalMove)
	}

	b.spots[move.Row][move.Col] = b.current
	b.current = b.current.Opponent()

	if _, won := b.Winner(); won {
		return 1, nil
	}
	return 0, nil
}

func (b *Board) LegalActions() []Move {
	if _, over := b.Winner(); over {
		return nil
	}
	moves := make([]Move, 0, Size*Size)
	for i, row := range b.spots {
		for j, spot := range row {
			if spot == 0 {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}
	return moves
}

func (b *Board) CurrentPlayer() Player {
	return b.current
}

func (b *Board) Done() bool {
	if _, won := b.Winner(); won {
		return true
	}
	for _, row := range b.spots {
		for _, spot := range row {
			if spot == 0 {
				return false
			}
		}
	}
	return true
}

var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (b *Board) Winner() (Player, bool) {
	for _, line := range lines {
		first := b.spots[line[0].Row][line[0].Col]
		if first == 0 {
			continue
		}
		if b.spots[line[1].Row][line[1].Col] == first && b.spots[line[2].Row][line[2].Col] == first {
			return first, true
		}
	}
	return 0, false
}

// At returns the mark on a spot, 0 when empty.
func (b *Board) At(row, col int) Player {
	return b.spots[row][col]
}

func (b *Board) Clone() game.Game[Move, Player] {
	clone := *b
	return &clone
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.spots {
		for j, spot := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(spot.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
