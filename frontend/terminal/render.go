package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell"

	"github.com/plus3/pong/pong"
)

const (
	ballRune    = 0x25CF
	paddleRune  = 0x2588
	dividerRune = 0x2590
)

var style = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// grid maps simulation coordinates onto a cols x rows character grid.
type grid struct {
	cols, rows int
	field      pong.Playfield
}

func (g grid) col(x float64) int {
	c := int(math.Round(x / g.field.Width * float64(g.cols-1)))
	return min(max(c, 0), g.cols-1)
}

func (g grid) row(y float64) int {
	r := int(math.Round((g.field.Height - y) / g.field.Height * float64(g.rows-1)))
	return min(max(r, 0), g.rows-1)
}

func draw(screen tcell.Screen, st pong.State) {
	screen.Clear()
	cols, rows := screen.Size()
	if cols < 2 || rows < 2 {
		screen.Show()
		return
	}
	g := grid{cols: cols, rows: rows, field: st.Field}

	mid := g.col(st.Field.Width / 2)
	for r := 0; r < rows; r++ {
		screen.SetContent(mid, r, dividerRune, nil, style)
	}

	for _, p := range st.Paddles {
		c := g.col(p.Position.X)
		top, bottom := g.row(p.Position.Y+p.HalfHeight), g.row(p.Position.Y-p.HalfHeight)
		for r := top; r <= bottom; r++ {
			screen.SetContent(c, r, paddleRune, nil, style)
		}
	}

	screen.SetContent(g.col(st.Ball.Position.X), g.row(st.Ball.Position.Y), ballRune, nil, style)

	drawText(screen, cols/4, 1, fmt.Sprint(st.Score.Left))
	drawText(screen, cols*3/4, 1, fmt.Sprint(st.Score.Right))

	switch {
	case !st.Started:
		drawText(screen, cols/2, rows/2, "Press Enter to Start")
	case st.Over:
		drawText(screen, cols/2, rows/2, fmt.Sprintf("%s player wins", st.Winner))
	}

	screen.Show()
}

// drawText centres text on column x.
func drawText(screen tcell.Screen, x, y int, text string) {
	runes := []rune(text)
	start := x - len(runes)/2
	for i, r := range runes {
		screen.SetContent(start+i, y, r, nil, style)
	}
}
