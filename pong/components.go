package pong

import (
	"errors"
	"fmt"

	"github.com/plus3/pong/ecs"
)

// Side identifies a paddle and the player behind it.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

// Ball marks the ball entity.
type Ball struct {
	Radius float64
}

// Paddle marks a paddle entity. X is fixed per side; only Y moves.
type Paddle struct {
	Side       Side
	HalfWidth  float64
	HalfHeight float64
}

// Playfield is the simulated rectangle [0,Width]x[0,Height].
type Playfield struct {
	Width  float64
	Height float64
}

// Center returns the middle of the playfield.
func (f Playfield) Center() Position {
	return Position{X: f.Width / 2, Y: f.Height / 2}
}

// Score counts points per side. Counters only ever go up.
type Score struct {
	Left  int
	Right int
}

// Add gives side one point.
func (s *Score) Add(side Side) {
	if side == Left {
		s.Left++
	} else {
		s.Right++
	}
}

// Of returns side's points.
func (s Score) Of(side Side) int {
	if side == Left {
		return s.Left
	}
	return s.Right
}

// Rules are the fixed tunables of a session.
type Rules struct {
	BallRadius   float64
	PaddleWidth  float64
	PaddleHeight float64
	// PaddleSpeed is the magnitude of paddle velocity while a key is held.
	PaddleSpeed float64
	// ServeVelocity is given to the ball at kick-off and after every point.
	ServeVelocity Velocity
	// RampFactor multiplies the ball velocity once per frame.
	RampFactor float64
	// MaxBallSpeed caps the ramp. Zero leaves it unbounded.
	MaxBallSpeed float64
	// PaddleTolerance widens the vertical hit band of each paddle.
	PaddleTolerance float64
	// WinScore ends the match when either side reaches it. Zero never ends it.
	WinScore int
}

// DefaultRules returns the classic tuning: 20 unit ball, 20x80 paddles
// moving at 80 units/s, a (100,100) serve and a 0.1% per-frame ramp.
func DefaultRules() Rules {
	return Rules{
		BallRadius:    20,
		PaddleWidth:   20,
		PaddleHeight:  80,
		PaddleSpeed:   80,
		ServeVelocity: Velocity{X: 100, Y: 100},
		RampFactor:    1.001,
	}
}

// DefaultPlayfield is 600x400.
func DefaultPlayfield() Playfield {
	return Playfield{Width: 600, Height: 400}
}

// Validate reports every rule that cannot produce a sensible game.
func (r Rules) Validate() error {
	var errs []error
	if r.BallRadius <= 0 {
		errs = append(errs, fmt.Errorf("ball radius must be positive, got %v", r.BallRadius))
	}
	if r.PaddleWidth <= 0 || r.PaddleHeight <= 0 {
		errs = append(errs, fmt.Errorf("paddle size must be positive, got %vx%v", r.PaddleWidth, r.PaddleHeight))
	}
	if r.PaddleSpeed < 0 {
		errs = append(errs, fmt.Errorf("paddle speed must not be negative, got %v", r.PaddleSpeed))
	}
	if r.RampFactor < 1 {
		errs = append(errs, fmt.Errorf("ramp factor must be at least 1, got %v", r.RampFactor))
	}
	if r.MaxBallSpeed < 0 {
		errs = append(errs, fmt.Errorf("max ball speed must not be negative, got %v", r.MaxBallSpeed))
	}
	if r.PaddleTolerance < 0 {
		errs = append(errs, fmt.Errorf("paddle tolerance must not be negative, got %v", r.PaddleTolerance))
	}
	if r.WinScore < 0 {
		errs = append(errs, fmt.Errorf("win score must not be negative, got %d", r.WinScore))
	}
	return errors.Join(errs...)
}

// Validate checks the playfield can hold the ball and paddles of r.
func (f Playfield) Validate(r Rules) error {
	var errs []error
	if f.Width <= 0 || f.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield size must be positive, got %vx%v", f.Width, f.Height))
	}
	if f.Height < 2*r.BallRadius || f.Width < 2*r.BallRadius {
		errs = append(errs, fmt.Errorf("playfield %vx%v is smaller than the ball", f.Width, f.Height))
	}
	if f.Height < r.PaddleHeight {
		errs = append(errs, fmt.Errorf("playfield height %v is shorter than a paddle", f.Height))
	}
	return errors.Join(errs...)
}

// SessionState is the NotStarted -> Started machine plus match bookkeeping.
type SessionState struct {
	Started bool
	Over    bool
	Winner  Side
	// Frame counts simulated frames since the start key.
	Frame uint64
	// Elapsed is simulated seconds since the start key.
	Elapsed float64
}

// Running reports whether the simulation should advance.
func (s SessionState) Running() bool {
	return s.Started && !s.Over
}

// InputQueue buffers key events until the next frame's InputSystem.
type InputQueue struct {
	Events []KeyEvent
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Ball](registry)
	ecs.RegisterComponent[Paddle](registry)
}
