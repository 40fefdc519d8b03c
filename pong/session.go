package pong

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plus3/pong/ecs"
)

// Session is one match: the world, its systems and the observers watching it.
// It is not safe for concurrent use; frontends drive it from one goroutine.
type Session struct {
	id  uuid.UUID
	log logrus.FieldLogger

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	bus       *eventBus
	extra     []ecs.System

	state *ecs.Singleton[SessionState]
	score *ecs.Singleton[Score]
	queue *ecs.Singleton[InputQueue]
	field *ecs.Singleton[Playfield]
	rules *ecs.Singleton[Rules]

	ball    ecs.EntityId
	paddles [2]ecs.EntityId
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithID fixes the session ID instead of generating a random one.
func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithSystems registers extra systems after the built-in ones, for example a
// debug overlay that inspects the world once the frame has been simulated.
func WithSystems(systems ...ecs.System) Option {
	return func(s *Session) {
		s.extra = append(s.extra, systems...)
	}
}

// NewSession builds a world holding one ball at the centre of field and one
// paddle per side at mid-height. The match does not advance until Start.
func NewSession(rules Rules, field Playfield, opts ...Option) *Session {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Session{
		log: discard,
		bus: &eventBus{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}
	s.log = s.log.WithField("session", s.id.String())

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	s.storage = ecs.NewStorage(registry)

	s.rules = ecs.NewSingleton(s.storage, rules)
	s.field = ecs.NewSingleton(s.storage, field)
	s.state = ecs.NewSingleton(s.storage, SessionState{})
	s.score = ecs.NewSingleton(s.storage, Score{})
	s.queue = ecs.NewSingleton(s.storage, InputQueue{})

	center := field.Center()
	s.ball = s.storage.Spawn(
		Ball{Radius: rules.BallRadius},
		center,
		rules.ServeVelocity,
	)

	half := rules.PaddleWidth / 2
	for _, side := range []Side{Left, Right} {
		x := half
		if side == Right {
			x = field.Width - half
		}
		s.paddles[side] = s.storage.Spawn(
			Paddle{Side: side, HalfWidth: half, HalfHeight: rules.PaddleHeight / 2},
			Position{X: x, Y: ClampPaddle(center.Y, 0, 0, rules.PaddleHeight/2, field.Height)},
			Velocity{},
		)
	}

	s.scheduler = ecs.NewScheduler(s.storage)
	s.scheduler.Register(&InputSystem{bus: s.bus})
	s.scheduler.Register(&PaddleSystem{})
	s.scheduler.Register(&BallSystem{bus: s.bus})
	s.scheduler.Register(&MatchSystem{bus: s.bus})
	for _, system := range s.extra {
		s.scheduler.Register(system)
	}

	s.OnStart(func() {
		s.log.Info("match started")
	})
	s.OnScore(func(e ScoreEvent) {
		s.log.WithFields(logrus.Fields{
			"scorer": e.Scorer.String(),
			"left":   e.Score.Left,
			"right":  e.Score.Right,
			"frame":  e.Frame,
		}).Info("point scored")
	})
	s.OnGameOver(func(winner Side) {
		score := s.score.Get()
		s.log.WithFields(logrus.Fields{
			"winner": winner.String(),
			"left":   score.Left,
			"right":  score.Right,
		}).Info("match over")
	})

	s.log.WithFields(logrus.Fields{
		"width":  field.Width,
		"height": field.Height,
	}).Debug("session created")
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Logger returns the session logger, already carrying the session field.
func (s *Session) Logger() logrus.FieldLogger {
	return s.log
}

// Storage exposes the world for inspection tools.
func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

// Scheduler exposes the frame scheduler for inspection tools.
func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

// Update simulates one frame of dt seconds.
func (s *Session) Update(dt float64) {
	s.scheduler.Once(dt)
	s.log.WithField("frame", s.scheduler.Frames()).Trace("frame simulated")
}

// Run updates the session every interval until ctx is done.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	return s.scheduler.Run(ctx, interval)
}

// Press queues a key press for the next frame.
func (s *Session) Press(a Action) {
	q := s.queue.Get()
	q.Events = append(q.Events, KeyEvent{Action: a, Pressed: true})
}

// Release queues a key release for the next frame.
func (s *Session) Release(a Action) {
	q := s.queue.Get()
	q.Events = append(q.Events, KeyEvent{Action: a, Pressed: false})
}

// Start moves the session to Started. Calling it again has no effect.
func (s *Session) Start() {
	state := s.state.Get()
	if state.Started {
		return
	}
	state.Started = true
	s.bus.started()
}

// Started reports whether the start key has been pressed.
func (s *Session) Started() bool {
	return s.state.Get().Started
}

// Over reports whether a side has reached the win score.
func (s *Session) Over() bool {
	return s.state.Get().Over
}

// SetPaddleVelocity sets the vertical velocity of side's paddle directly,
// bypassing the input queue.
func (s *Session) SetPaddleVelocity(side Side, vy float64) {
	if v := ecs.ReadComponent[Velocity](s.storage, s.paddles[side]); v != nil {
		v.Y = vy
	}
}

// OnStart registers fn to run after the frame in which the match started.
func (s *Session) OnStart(fn func()) {
	s.bus.onStart = append(s.bus.onStart, fn)
}

// OnScore registers fn to run after every frame in which a point was scored.
func (s *Session) OnScore(fn func(ScoreEvent)) {
	s.bus.onScore = append(s.bus.onScore, fn)
}

// OnGameOver registers fn to run after the frame that ended the match.
func (s *Session) OnGameOver(fn func(winner Side)) {
	s.bus.onGameOver = append(s.bus.onGameOver, fn)
}

// BallState is the read-only view of the ball.
type BallState struct {
	Position Position
	Velocity Velocity
	Radius   float64
}

// Speed is the magnitude of the ball velocity.
func (b BallState) Speed() float64 {
	return b.Velocity.Speed()
}

// PaddleState is the read-only view of a paddle.
type PaddleState struct {
	Side       Side
	Position   Position
	Velocity   Velocity
	HalfWidth  float64
	HalfHeight float64
}

// Box returns the paddle's collision shape.
func (p PaddleState) Box() PaddleBox {
	return PaddleBox{
		Side:       p.Side,
		X:          p.Position.X,
		Y:          p.Position.Y,
		HalfWidth:  p.HalfWidth,
		HalfHeight: p.HalfHeight,
	}
}

// State is a copy of everything a renderer needs for one frame.
type State struct {
	Field   Playfield
	Ball    BallState
	Paddles [2]PaddleState
	Score   Score
	Started bool
	Over    bool
	Winner  Side
	Frame   uint64
	Elapsed float64
}

// Paddle returns side's paddle.
func (st State) Paddle(side Side) PaddleState {
	return st.Paddles[side]
}

// Snapshot copies the current world into a State.
func (s *Session) Snapshot() State {
	state := s.state.Get()
	st := State{
		Field:   *s.field.Get(),
		Score:   *s.score.Get(),
		Started: state.Started,
		Over:    state.Over,
		Winner:  state.Winner,
		Frame:   state.Frame,
		Elapsed: state.Elapsed,
	}

	st.Ball = BallState{
		Position: *ecs.ReadComponent[Position](s.storage, s.ball),
		Velocity: *ecs.ReadComponent[Velocity](s.storage, s.ball),
		Radius:   ecs.ReadComponent[Ball](s.storage, s.ball).Radius,
	}
	for side, id := range s.paddles {
		p := ecs.ReadComponent[Paddle](s.storage, id)
		st.Paddles[side] = PaddleState{
			Side:       p.Side,
			Position:   *ecs.ReadComponent[Position](s.storage, id),
			Velocity:   *ecs.ReadComponent[Velocity](s.storage, id),
			HalfWidth:  p.HalfWidth,
			HalfHeight: p.HalfHeight,
		}
	}
	return st
}

// Stats reports engine statistics: scheduler timings and storage layout.
type Stats struct {
	Scheduler *ecs.SchedulerStats
	Storage   *ecs.StorageStats
}

// Stats collects the current engine statistics.
func (s *Session) Stats() Stats {
	return Stats{
		Scheduler: s.scheduler.GetStats(),
		Storage:   s.storage.CollectStats(),
	}
}
