package tictactoe

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Render draws the board with row and column indices, coloring X and O marks for the
// terminal behind out. Profiles without color support get the plain marks.
func (b *Board) Render(out *termenv.Output) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for j := 0; j < Size; j++ {
		sb.WriteString(" " + strconv.Itoa(j))
	}
	sb.WriteByte('\n')

	for i, row := range b.spots {
		sb.WriteString(strconv.Itoa(i) + " ")
		for _, spot := range row {
			sb.WriteByte(' ')
			sb.WriteString(styleSpot(out, spot))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func styleSpot(out *termenv.Output, spot Player) string {
	style := out.String(spot.String())
	switch spot {
	case X:
		style = style.Foreground(out.Color("9")).Bold()
	case O:
		style = style.Foreground(out.Color("12")).Bold()
	default:
		style = style.Faint()
	}
	return style.String()
}
