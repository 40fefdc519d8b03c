// Command pong plays two-player Pong in a window, in a terminal, or headless.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/plus3/pong/frontend/terminal"
	"github.com/plus3/pong/frontend/window"
	"github.com/plus3/pong/internal/config"
	"github.com/plus3/pong/internal/logging"
	"github.com/plus3/pong/pong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "pong:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, fs afero.Fs, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("pong", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	loader := config.NewLoader(fs)
	if err := loader.BindFlags(flags); err != nil {
		return err
	}
	path, _ := flags.GetString("config")
	cfg, err := loader.Load(path)
	if err != nil {
		return err
	}

	if show, _ := flags.GetBool("print-config"); show {
		out, err := cfg.Dump()
		if err != nil {
			return fmt.Errorf("dump config: %w", err)
		}
		_, err = stdout.Write(out)
		return err
	}

	log, closer, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	loader.Watch(func(next *config.Config, err error) {
		if err != nil {
			log.WithError(err).Warn("config reload rejected")
			return
		}
		if err := logging.SetLevel(log, next.Log.Level); err != nil {
			log.WithError(err).Warn("config reload rejected")
		}
	})

	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}

	session := pong.NewSession(cfg.PongRules(), cfg.Playfield(),
		pong.WithLogger(log.WithField("mode", cfg.Mode)))
	entry := session.Logger()
	entry.WithField("config", loader.File()).Info("session ready")

	switch cfg.Mode {
	case config.ModeWindow:
		g, err := window.New(session, window.Options{
			Title:        cfg.Window.Title,
			TPS:          cfg.TPS,
			BallSprite:   cfg.Window.BallSprite,
			PaddleSprite: cfg.Window.PaddleSprite,
			Bindings:     bindings,
			Debug:        cfg.Debug,
		})
		if err != nil {
			return err
		}
		err = g.Run()
		logFinal(entry, session)
		return err

	case config.ModeTerminal:
		g, err := terminal.New(session, terminal.Options{
			TPS:      cfg.TPS,
			Hold:     cfg.Terminal.Hold,
			Bindings: bindings,
		})
		if err != nil {
			return err
		}
		err = g.Run(ctx)
		logFinal(entry, session)
		return err

	default:
		return runHeadless(ctx, session, cfg, stdout)
	}
}

// runHeadless starts the match at once and simulates it in real time until
// ctx is done, the configured duration passes or a side wins.
func runHeadless(ctx context.Context, session *pong.Session, cfg *config.Config, stdout io.Writer) error {
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	session.OnGameOver(func(pong.Side) { cancel() })

	session.Start()
	err := session.Run(ctx, time.Second/time.Duration(cfg.TPS))
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	logFinal(session.Logger(), session)
	st := session.Snapshot()
	_, err = fmt.Fprintf(stdout, "final score %d-%d after %d frames\n", st.Score.Left, st.Score.Right, st.Frame)
	return err
}

func logFinal(log logrus.FieldLogger, session *pong.Session) {
	st := session.Snapshot()
	log.WithFields(logrus.Fields{
		"left":   st.Score.Left,
		"right":  st.Score.Right,
		"frames": st.Frame,
	}).Info("session ended")
}
