package pong

import "math"

// PaddleBox is the collision shape of a paddle: a rectangle centred at (X, Y).
type PaddleBox struct {
	Side       Side
	X, Y       float64
	HalfWidth  float64
	HalfHeight float64
}

// Face returns the x coordinate of the paddle edge facing the field.
func (p PaddleBox) Face() float64 {
	if p.Side == Left {
		return p.X + p.HalfWidth
	}
	return p.X - p.HalfWidth
}

// Covers reports whether y lies in the paddle's vertical band, widened by tol.
func (p PaddleBox) Covers(y, tol float64) bool {
	return y >= p.Y-p.HalfHeight-tol && y <= p.Y+p.HalfHeight+tol
}

// Outcome describes what happened to the ball during one step.
type Outcome struct {
	WallBounce   bool
	PaddleBounce bool
	// PaddleSide is only meaningful when PaddleBounce is set.
	PaddleSide Side
	Scored     bool
	// Scorer is only meaningful when Scored is set.
	Scorer Side
}

// ClampPaddle advances a paddle centre by vy*dt and keeps the whole paddle
// inside [0, height]. A field shorter than the paddle pins it to the middle.
func ClampPaddle(y, vy, dt, halfHeight, height float64) float64 {
	lo, hi := halfHeight, height-halfHeight
	if lo > hi {
		return height / 2
	}
	return math.Min(hi, math.Max(lo, y+vy*dt))
}

// Speed is the magnitude of v.
func (v Velocity) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}

// Integrate moves pos by vel over dt.
func Integrate(pos *Position, vel Velocity, dt float64) {
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

// ReflectWalls flips vel.Y when the ball touches the bottom or top wall while
// still moving into it. It reports whether a flip happened.
func ReflectWalls(pos Position, vel *Velocity, radius float64, field Playfield) bool {
	if (pos.Y <= radius && vel.Y < 0) || (pos.Y >= field.Height-radius && vel.Y > 0) {
		vel.Y = -vel.Y
		return true
	}
	return false
}

// ReflectPaddle flips vel.X when the ball is within one radius of the
// paddle's face, inside its band, and moving towards it.
func ReflectPaddle(pos Position, vel *Velocity, radius, tolerance float64, paddle PaddleBox) bool {
	if !paddle.Covers(pos.Y, tolerance) {
		return false
	}
	switch paddle.Side {
	case Left:
		if vel.X < 0 && pos.X <= paddle.Face()+radius {
			vel.X = -vel.X
			return true
		}
	case Right:
		if vel.X > 0 && pos.X >= paddle.Face()-radius {
			vel.X = -vel.X
			return true
		}
	}
	return false
}

// CheckScore reports which side scored when the ball has passed a side wall.
func CheckScore(pos Position, radius float64, field Playfield) (Side, bool) {
	switch {
	case pos.X < radius:
		return Right, true
	case pos.X > field.Width-radius:
		return Left, true
	}
	return Left, false
}

// Serve puts the ball back in the centre with the serve velocity.
func Serve(pos *Position, vel *Velocity, field Playfield, rules Rules) {
	*pos = field.Center()
	*vel = rules.ServeVelocity
}

// Ramp multiplies vel by factor, then scales it down to max if max is
// positive and the speed exceeds it. Component signs never change.
func Ramp(vel *Velocity, factor, max float64) {
	vel.X *= factor
	vel.Y *= factor
	if max <= 0 {
		return
	}
	if speed := vel.Speed(); speed > max {
		k := max / speed
		vel.X *= k
		vel.Y *= k
	}
}

// StepBall advances the ball by one frame: integrate, bounce off the walls,
// bounce off the paddles, score and serve, then ramp the speed.
func StepBall(pos *Position, vel *Velocity, radius float64, paddles []PaddleBox, field Playfield, rules Rules, dt float64) Outcome {
	var out Outcome

	Integrate(pos, *vel, dt)
	out.WallBounce = ReflectWalls(*pos, vel, radius, field)

	for _, p := range paddles {
		if ReflectPaddle(*pos, vel, radius, rules.PaddleTolerance, p) {
			out.PaddleBounce = true
			out.PaddleSide = p.Side
			break
		}
	}

	if scorer, ok := CheckScore(*pos, radius, field); ok {
		out.Scored = true
		out.Scorer = scorer
		Serve(pos, vel, field, rules)
	}

	Ramp(vel, rules.RampFactor, rules.MaxBallSpeed)
	return out
}
