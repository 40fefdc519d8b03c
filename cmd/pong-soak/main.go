package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/plus3/pong/internal/logging"
)

func main() {
	duration := pflag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	sessions := pflag.Int("sessions", 4, "The number of concurrent matches to simulate.")
	dt := pflag.Float64("dt", 1.0/60, "Seconds simulated per frame.")
	maxSpeed := pflag.Float64("max-speed", 0, "Ball speed cap; 0 leaves the ramp unbounded.")
	level := pflag.String("log-level", "info", "Log level.")
	pflag.Parse()

	log, closer, err := logging.New(logging.Options{Level: *level}, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closer.Close()

	cfg := soakConfig{Duration: *duration, Sessions: *sessions, DeltaT: *dt, MaxSpeed: *maxSpeed}
	if err := cfg.validate(); err != nil {
		log.WithError(err).Fatal("invalid flags")
	}

	// Session logs stay at warn unless debug logging is on.
	sessionLog := log.WithField("mode", "soak")
	if log.GetLevel() < logrus.DebugLevel {
		quiet := logrus.New()
		quiet.SetLevel(logrus.WarnLevel)
		quiet.SetOutput(os.Stderr)
		sessionLog = quiet.WithField("mode", "soak")
	}

	log.WithField("duration", cfg.Duration).Info("starting soak")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	report := runSoak(ctx, cfg, sessionLog)
	log.WithField("updates", report.TotalUpdates).Info("soak finished")

	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
}
