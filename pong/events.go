package pong

// ScoreEvent is delivered after a point has been added.
type ScoreEvent struct {
	Scorer Side
	Score  Score
	Frame  uint64
}

// eventBus fans session events out to observers. Systems never call
// observers directly; they defer the notification to the end of the frame.
type eventBus struct {
	onStart    []func()
	onScore    []func(ScoreEvent)
	onGameOver []func(winner Side)
}

func (b *eventBus) started() {
	for _, fn := range b.onStart {
		fn()
	}
}

func (b *eventBus) scored(e ScoreEvent) {
	for _, fn := range b.onScore {
		fn(e)
	}
}

func (b *eventBus) gameOver(winner Side) {
	for _, fn := range b.onGameOver {
		fn(winner)
	}
}
