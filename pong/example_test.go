package pong_test

import (
	"fmt"

	"github.com/plus3/pong/pong"
)

func ExampleSession() {
	rules := pong.DefaultRules()
	rules.RampFactor = 1

	s := pong.NewSession(rules, pong.DefaultPlayfield())
	s.OnScore(func(e pong.ScoreEvent) {
		fmt.Printf("%s scores, %d-%d\n", e.Scorer, e.Score.Left, e.Score.Right)
	})

	s.Press(pong.ActionStart)
	s.Press(pong.ActionRightUp)
	for range 3 {
		s.Update(1)
	}

	st := s.Snapshot()
	fmt.Printf("right paddle at %.0f\n", st.Paddle(pong.Right).Position.Y)
	// Output:
	// left scores, 1-0
	// right paddle at 360
}
