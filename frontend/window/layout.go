package window

import (
	"fmt"

	"github.com/plus3/pong/pong"
)

// rect is a screen rectangle, y-down, top-left origin.
type rect struct {
	X, Y, W, H float64
}

type textAt struct {
	Text string
	X, Y int
}

// frameLayout is everything Draw puts on screen for one State.
type frameLayout struct {
	Ball    rect
	Paddles [2]rect
	Divider [2][2]float64
	Scores  [2]textAt
	Banner  *textAt
}

// flipY converts a y-up simulation coordinate to a y-down screen one.
func flipY(y, height float64) float64 {
	return height - y
}

// layoutFrame places the ball, paddles, divider, scores and banner. Score
// text sits at (170, 350) and (W-260, 350) in simulation coordinates.
func layoutFrame(st pong.State) frameLayout {
	w, h := st.Field.Width, st.Field.Height
	var l frameLayout

	b := st.Ball
	l.Ball = rect{
		X: b.Position.X - b.Radius,
		Y: flipY(b.Position.Y+b.Radius, h),
		W: 2 * b.Radius,
		H: 2 * b.Radius,
	}

	for i, p := range st.Paddles {
		l.Paddles[i] = rect{
			X: p.Position.X - p.HalfWidth,
			Y: flipY(p.Position.Y+p.HalfHeight, h),
			W: 2 * p.HalfWidth,
			H: 2 * p.HalfHeight,
		}
	}

	l.Divider = [2][2]float64{{w / 2, 0}, {w / 2, h}}

	l.Scores[pong.Left] = textAt{Text: fmt.Sprint(st.Score.Left), X: 170, Y: int(flipY(350, h))}
	l.Scores[pong.Right] = textAt{Text: fmt.Sprint(st.Score.Right), X: int(w - 260), Y: int(flipY(350, h))}

	switch {
	case !st.Started:
		l.Banner = centred("Press Enter to Start", w, h)
	case st.Over:
		l.Banner = centred(fmt.Sprintf("%s player wins %d-%d", st.Winner, st.Score.Left, st.Score.Right), w, h)
	}
	return l
}

// centred places text roughly in the middle of the field using the 6x16
// debug font cell.
func centred(text string, w, h float64) *textAt {
	return &textAt{Text: text, X: int(w/2) - 3*len(text), Y: int(h/2) - 8}
}
