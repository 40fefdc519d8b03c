package pong

import (
	"github.com/plus3/pong/ecs"
)

// InputSystem drains the InputQueue. The start action moves the session to
// Started; paddle actions set paddle velocities. A release of either key of
// a paddle stops it.
type InputSystem struct {
	Queue   ecs.Singleton[InputQueue]
	State   ecs.Singleton[SessionState]
	Rules   ecs.Singleton[Rules]
	Paddles ecs.Query[struct {
		Paddle   *Paddle
		Velocity *Velocity
	}]

	bus *eventBus
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()
	if len(queue.Events) == 0 {
		return
	}
	state := s.State.Get()
	speed := s.Rules.Get().PaddleSpeed

	for _, ev := range queue.Events {
		if ev.Action == ActionStart {
			if ev.Pressed && !state.Started {
				state.Started = true
				if s.bus != nil {
					frame.Commands.Defer(s.bus.started)
				}
			}
			continue
		}

		side, dir, ok := paddleAction(ev.Action)
		if !ok {
			continue
		}
		for p := range s.Paddles.Iter() {
			if p.Paddle.Side != side {
				continue
			}
			if ev.Pressed {
				p.Velocity.Y = dir * speed
			} else {
				p.Velocity.Y = 0
			}
		}
	}
	queue.Events = queue.Events[:0]
}

// PaddleSystem moves paddles by their velocity and clamps them to the field.
type PaddleSystem struct {
	State   ecs.Singleton[SessionState]
	Field   ecs.Singleton[Playfield]
	Paddles ecs.Query[struct {
		Paddle   *Paddle
		Position *Position
		Velocity *Velocity
	}]
}

func (s *PaddleSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.State.Get().Running() {
		return
	}
	height := s.Field.Get().Height
	for p := range s.Paddles.Iter() {
		p.Position.Y = ClampPaddle(p.Position.Y, p.Velocity.Y, frame.DeltaTime, p.Paddle.HalfHeight, height)
	}
}

// BallSystem steps every ball against the paddles' current positions.
type BallSystem struct {
	State ecs.Singleton[SessionState]
	Field ecs.Singleton[Playfield]
	Rules ecs.Singleton[Rules]
	Score ecs.Singleton[Score]
	Balls ecs.Query[struct {
		Ball     *Ball
		Position *Position
		Velocity *Velocity
	}]
	Paddles ecs.Query[struct {
		Paddle   *Paddle
		Position *Position
	}]

	bus   *eventBus
	boxes []PaddleBox
}

func (s *BallSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if !state.Running() {
		return
	}

	s.boxes = s.boxes[:0]
	for p := range s.Paddles.Iter() {
		s.boxes = append(s.boxes, PaddleBox{
			Side:       p.Paddle.Side,
			X:          p.Position.X,
			Y:          p.Position.Y,
			HalfWidth:  p.Paddle.HalfWidth,
			HalfHeight: p.Paddle.HalfHeight,
		})
	}

	field := *s.Field.Get()
	rules := *s.Rules.Get()
	score := s.Score.Get()

	for b := range s.Balls.Iter() {
		out := StepBall(b.Position, b.Velocity, b.Ball.Radius, s.boxes, field, rules, frame.DeltaTime)
		if !out.Scored {
			continue
		}
		score.Add(out.Scorer)
		if s.bus != nil {
			ev := ScoreEvent{Scorer: out.Scorer, Score: *score, Frame: state.Frame + 1}
			frame.Commands.Defer(func() { s.bus.scored(ev) })
		}
	}
}

// MatchSystem advances the match clock and ends the match once a side
// reaches Rules.WinScore.
type MatchSystem struct {
	State ecs.Singleton[SessionState]
	Rules ecs.Singleton[Rules]
	Score ecs.Singleton[Score]

	bus *eventBus
}

func (s *MatchSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if !state.Running() {
		return
	}
	state.Frame++
	state.Elapsed += frame.DeltaTime

	win := s.Rules.Get().WinScore
	if win <= 0 {
		return
	}
	score := s.Score.Get()
	for _, side := range []Side{Left, Right} {
		if score.Of(side) >= win {
			state.Over = true
			state.Winner = side
			if s.bus != nil {
				frame.Commands.Defer(func() { s.bus.gameOver(side) })
			}
			return
		}
	}
}
