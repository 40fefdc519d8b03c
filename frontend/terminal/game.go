// Package terminal plays a pong.Session in a text terminal using tcell.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell"
	"github.com/sirupsen/logrus"

	"github.com/plus3/pong/pong"
)

type Options struct {
	TPS int
	// Hold is how long a paddle key stays pressed after the last key event.
	Hold     time.Duration
	Bindings pong.Bindings
	Log      logrus.FieldLogger
	// Screen defaults to the controlling terminal.
	Screen tcell.Screen
}

// Game drives a session from terminal key events.
type Game struct {
	session *pong.Session
	log     logrus.FieldLogger
	screen  tcell.Screen
	keys    map[termKey]pong.Action
	holds   *holdTracker
	tick    time.Duration
	dt      float64
}

func New(session *pong.Session, opts Options) (*Game, error) {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.Hold <= 0 {
		opts.Hold = 150 * time.Millisecond
	}
	log := opts.Log
	if log == nil {
		log = session.Logger()
	}

	keys, err := keymap(opts.Bindings)
	if err != nil {
		return nil, fmt.Errorf("terminal bindings: %w", err)
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
	}

	return &Game{
		session: session,
		log:     log,
		screen:  screen,
		keys:    keys,
		holds:   newHoldTracker(opts.Hold),
		tick:    time.Second / time.Duration(opts.TPS),
		dt:      1 / float64(opts.TPS),
	}, nil
}

// Run takes over the terminal until quit is pressed or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	if err := g.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer g.screen.Fini()
	g.screen.SetStyle(style)
	g.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)
	events := make(chan *tcell.EventKey)
	go g.poll(events, done)

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	g.log.WithField("tick", g.tick).Info("terminal opened")
	draw(g.screen, g.session.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if g.handleKey(ev, time.Now()) {
				g.log.Info("quit requested")
				return nil
			}
		case now := <-ticker.C:
			g.step(now)
		}
	}
}

// poll forwards key events. tcell's PollEvent blocks and returns nil once
// the screen is finalised.
func (g *Game) poll(events chan<- *tcell.EventKey, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			select {
			case events <- ev:
			case <-done:
				return
			}
		case *tcell.EventResize:
			g.screen.Sync()
		}
	}
}

// handleKey applies one key press and reports whether it asked to quit.
func (g *Game) handleKey(ev *tcell.EventKey, now time.Time) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	action, ok := g.keys[eventKey(ev)]
	if !ok {
		return false
	}

	switch action {
	case pong.ActionQuit:
		return true
	case pong.ActionStart:
		g.session.Press(action)
		g.session.Release(action)
	default:
		if g.holds.press(action, now) {
			g.session.Press(action)
		}
	}
	return false
}

// step releases expired holds, simulates one frame and redraws.
func (g *Game) step(now time.Time) {
	for _, a := range g.holds.expired(now) {
		g.session.Release(a)
	}
	g.session.Update(g.dt)
	draw(g.screen, g.session.Snapshot())
}
