package pong_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/pong/pong"
)

var field = pong.Playfield{Width: 600, Height: 400}

func flatRules() pong.Rules {
	r := pong.DefaultRules()
	r.RampFactor = 1
	return r
}

func leftPaddle(y float64) pong.PaddleBox {
	return pong.PaddleBox{Side: pong.Left, X: 10, Y: y, HalfWidth: 10, HalfHeight: 40}
}

func rightPaddle(y float64) pong.PaddleBox {
	return pong.PaddleBox{Side: pong.Right, X: 590, Y: y, HalfWidth: 10, HalfHeight: 40}
}

func TestClampPaddle(t *testing.T) {
	tests := []struct {
		name   string
		y, vy  float64
		dt     float64
		half   float64
		height float64
		want   float64
	}{
		{"moves up", 200, 80, 0.5, 20, 400, 240},
		{"moves down", 200, -80, 0.5, 20, 400, 160},
		{"stops at top", 370, 80, 1, 20, 400, 380},
		{"stops at bottom", 30, -80, 1, 20, 400, 20},
		{"idle", 123, 0, 1, 40, 400, 123},
		{"field shorter than paddle", 10, 80, 1, 60, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pong.ClampPaddle(tt.y, tt.vy, tt.dt, tt.half, tt.height))
		})
	}
}

func TestClampPaddleStaysInBounds(t *testing.T) {
	const half, height = 40.0, 400.0
	for y := half; y <= height-half; y += 17 {
		for vy := -500.0; vy <= 500; vy += 125 {
			for _, dt := range []float64{0, 1.0 / 60, 0.5, 3} {
				got := pong.ClampPaddle(y, vy, dt, half, height)
				if got < half || got > height-half {
					t.Errorf("ClampPaddle(%v, %v, %v) = %v, outside [%v, %v]", y, vy, dt, got, half, height-half)
				}
			}
		}
	}
}

func TestReflectWalls(t *testing.T) {
	tests := []struct {
		name  string
		y, vy float64
		flip  bool
	}{
		{"bottom moving in", 15, -50, true},
		{"bottom moving out", 15, 50, false},
		{"top moving in", 385, 50, true},
		{"top moving out", 385, -50, false},
		{"middle", 200, -50, false},
		{"touching bottom", 20, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel := pong.Velocity{X: 30, Y: tt.vy}
			got := pong.ReflectWalls(pong.Position{X: 300, Y: tt.y}, &vel, 20, field)
			assert.Equal(t, tt.flip, got)
			if tt.flip {
				assert.Equal(t, -tt.vy, vel.Y)
			} else {
				assert.Equal(t, tt.vy, vel.Y)
			}
			assert.Equal(t, 30.0, vel.X)
		})
	}
}

func TestReflectPaddle(t *testing.T) {
	tests := []struct {
		name   string
		pos    pong.Position
		vx     float64
		tol    float64
		paddle pong.PaddleBox
		flip   bool
	}{
		{"left face", pong.Position{X: 35, Y: 200}, -50, 0, leftPaddle(200), true},
		{"left band edge", pong.Position{X: 35, Y: 240}, -50, 0, leftPaddle(200), true},
		{"left above band", pong.Position{X: 35, Y: 260}, -50, 0, leftPaddle(200), false},
		{"left tolerance", pong.Position{X: 35, Y: 260}, -50, 25, leftPaddle(200), true},
		{"left moving away", pong.Position{X: 35, Y: 200}, 50, 0, leftPaddle(200), false},
		{"left too far", pong.Position{X: 41, Y: 200}, -50, 0, leftPaddle(200), false},
		{"right face", pong.Position{X: 565, Y: 180}, 50, 0, rightPaddle(200), true},
		{"right below band", pong.Position{X: 565, Y: 150}, 50, 0, rightPaddle(200), false},
		{"right moving away", pong.Position{X: 565, Y: 200}, -50, 0, rightPaddle(200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel := pong.Velocity{X: tt.vx, Y: 10}
			got := pong.ReflectPaddle(tt.pos, &vel, 20, tt.tol, tt.paddle)
			assert.Equal(t, tt.flip, got)
			if tt.flip {
				assert.Equal(t, -tt.vx, vel.X)
			} else {
				assert.Equal(t, tt.vx, vel.X)
			}
		})
	}
}

func TestStepBallScoresForRight(t *testing.T) {
	pos := pong.Position{X: 10, Y: 200}
	vel := pong.Velocity{X: -50, Y: 0}

	out := pong.StepBall(&pos, &vel, 20, []pong.PaddleBox{leftPaddle(200), rightPaddle(200)}, field, flatRules(), 1)

	assert.True(t, out.Scored)
	assert.Equal(t, pong.Right, out.Scorer)
	assert.Equal(t, pong.Position{X: 300, Y: 200}, pos)
	assert.Equal(t, pong.Velocity{X: 100, Y: 100}, vel)
}

func TestStepBallScoresForLeft(t *testing.T) {
	pos := pong.Position{X: 590, Y: 50}
	vel := pong.Velocity{X: 50, Y: 0}

	out := pong.StepBall(&pos, &vel, 20, []pong.PaddleBox{leftPaddle(200), rightPaddle(300)}, field, flatRules(), 1)

	assert.True(t, out.Scored)
	assert.Equal(t, pong.Left, out.Scorer)
	assert.Equal(t, pong.Position{X: 300, Y: 200}, pos)
}

func TestStepBallBouncesOffPaddle(t *testing.T) {
	pos := pong.Position{X: 45, Y: 210}
	vel := pong.Velocity{X: -60, Y: 0}

	out := pong.StepBall(&pos, &vel, 20, []pong.PaddleBox{leftPaddle(200), rightPaddle(200)}, field, flatRules(), 0.1)

	assert.True(t, out.PaddleBounce)
	assert.Equal(t, pong.Left, out.PaddleSide)
	assert.False(t, out.Scored)
	assert.InDelta(t, 39, pos.X, 1e-9)
	assert.Equal(t, 60.0, vel.X)
}

func TestStepBallWallFlip(t *testing.T) {
	pos := pong.Position{X: 300, Y: 15}
	vel := pong.Velocity{X: 10, Y: -50}

	out := pong.StepBall(&pos, &vel, 20, nil, field, pong.DefaultRules(), 0.01)

	assert.True(t, out.WallBounce)
	assert.Greater(t, vel.Y, 0.0)
	assert.InDelta(t, 14.5, pos.Y, 1e-9)
}

func TestStepBallIntegratesAndRamps(t *testing.T) {
	pos := pong.Position{X: 300, Y: 200}
	vel := pong.Velocity{X: 100, Y: 100}

	out := pong.StepBall(&pos, &vel, 20, []pong.PaddleBox{leftPaddle(200), rightPaddle(200)}, field, pong.DefaultRules(), 0.5)

	assert.Equal(t, pong.Outcome{}, out)
	assert.Equal(t, pong.Position{X: 350, Y: 250}, pos)
	assert.InDelta(t, 100.1, vel.X, 1e-9)
	assert.InDelta(t, 100.1, vel.Y, 1e-9)
}

func TestRampPreservesSign(t *testing.T) {
	for _, v := range []pong.Velocity{{X: 100, Y: 100}, {X: -100, Y: 40}, {X: 3, Y: -7}, {X: -0.5, Y: -0.25}, {X: 0, Y: 9}} {
		got := v
		for range 1000 {
			pong.Ramp(&got, 1.001, 0)
		}
		if math.Signbit(got.X) != math.Signbit(v.X) || math.Signbit(got.Y) != math.Signbit(v.Y) {
			t.Errorf("Ramp changed the sign of %+v: %+v", v, got)
		}
		if got.Speed() < v.Speed() {
			t.Errorf("Ramp slowed %+v down to %+v", v, got)
		}
	}
}

func TestRampCap(t *testing.T) {
	vel := pong.Velocity{X: -300, Y: 400}
	pong.Ramp(&vel, 1.001, 250)

	assert.InDelta(t, 250, vel.Speed(), 1e-9)
	assert.InDelta(t, -150, vel.X, 1e-9)
	assert.InDelta(t, 200, vel.Y, 1e-9)

	slow := pong.Velocity{X: 10, Y: 10}
	pong.Ramp(&slow, 1, 250)
	assert.Equal(t, pong.Velocity{X: 10, Y: 10}, slow)
}
