// Package window plays a pong.Session in a desktop window using Ebiten.
package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/plus3/pong/pong"
)

type Options struct {
	Title string
	// TPS is both Ebiten's tick rate and the inverse of the frame dt.
	TPS          int
	BallSprite   string
	PaddleSprite string
	Bindings     pong.Bindings
	// Debug adds the Dear ImGui overlay.
	Debug bool
	Log   logrus.FieldLogger
}

// Game implements ebiten.Game for one session.
type Game struct {
	session *pong.Session
	log     logrus.FieldLogger
	title   string
	tps     int
	dt      float64
	keys    []keyBinding
	sprites *sprites
	overlay *overlay
}

// New prepares a window for session. Sprite files are loaded here, so a
// missing or corrupt sprite fails before the window opens.
func New(session *pong.Session, opts Options) (*Game, error) {
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	log := opts.Log
	if log == nil {
		log = session.Logger()
	}

	keys, err := resolveBindings(opts.Bindings)
	if err != nil {
		return nil, fmt.Errorf("window bindings: %w", err)
	}

	st := session.Snapshot()
	p := st.Paddle(pong.Left)
	spr, err := loadSprites(opts.BallSprite, opts.PaddleSprite, st.Ball.Radius, 2*p.HalfWidth, 2*p.HalfHeight)
	if err != nil {
		return nil, err
	}

	g := &Game{
		session: session,
		log:     log,
		title:   opts.Title,
		tps:     opts.TPS,
		dt:      1 / float64(opts.TPS),
		keys:    keys,
		sprites: spr,
	}
	if opts.Debug {
		g.overlay = attachOverlay(session, opts.Title, int(st.Field.Width), int(st.Field.Height))
	}
	return g, nil
}

// Run opens the window and blocks until it is closed or quit is pressed.
func (g *Game) Run() error {
	field := g.session.Snapshot().Field
	ebiten.SetWindowSize(int(field.Width), int(field.Height))
	ebiten.SetWindowTitle(g.title)
	ebiten.SetTPS(g.tps)

	g.log.WithField("tps", g.tps).Info("window opened")
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	if g.overlay == nil || !g.overlay.capturingKeyboard() {
		edges := pollKeys(g.keys)
		for _, a := range edges.pressed {
			if a == pong.ActionQuit {
				g.log.Info("quit requested")
				return ebiten.Termination
			}
			g.session.Press(a)
		}
		for _, a := range edges.released {
			g.session.Release(a)
		}
	}

	if g.overlay != nil {
		g.overlay.frame(func() { g.session.Update(g.dt) })
	} else {
		g.session.Update(g.dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	l := layoutFrame(g.session.Snapshot())

	d := l.Divider
	vector.StrokeLine(screen, float32(d[0][0]), float32(d[0][1]), float32(d[1][0]), float32(d[1][1]), 1, foreground, false)

	for _, r := range l.Paddles {
		drawStretched(screen, g.sprites.paddle, r)
	}
	drawStretched(screen, g.sprites.ball, l.Ball)

	for _, s := range l.Scores {
		ebitenutil.DebugPrintAt(screen, s.Text, s.X, s.Y)
	}
	if l.Banner != nil {
		ebitenutil.DebugPrintAt(screen, l.Banner.Text, l.Banner.X, l.Banner.Y)
	}

	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.layout(outsideWidth, outsideHeight)
	}
	field := g.session.Snapshot().Field
	return int(field.Width), int(field.Height)
}
