package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plus3/pong/pong"
)

type soakConfig struct {
	Duration time.Duration
	Sessions int
	DeltaT   float64
	MaxSpeed float64
}

// soakMatch is one session plus the bookkeeping its callbacks fill in.
type soakMatch struct {
	session *pong.Session
	points  int
	peak    float64
	// swing is how many frames each paddle holds a direction.
	swing int
}

// script moves both paddles in opposite directions, reversing every swing
// frames, so rallies and points both happen.
func (m *soakMatch) script(frame uint64) {
	if frame%uint64(m.swing) != 0 {
		return
	}
	dir := 1.0
	if (frame/uint64(m.swing))%2 == 1 {
		dir = -1
	}
	speed := pong.DefaultRules().PaddleSpeed
	m.session.SetPaddleVelocity(pong.Left, dir*speed)
	m.session.SetPaddleVelocity(pong.Right, -dir*speed)
}

// runSoak updates every session round-robin until ctx is done.
func runSoak(ctx context.Context, cfg soakConfig, log logrus.FieldLogger) *Report {
	report := &Report{
		Duration: cfg.Duration,
		Sessions: cfg.Sessions,
		DeltaT:   cfg.DeltaT,
		MaxSpeed: cfg.MaxSpeed,
	}

	rules := pong.DefaultRules()
	rules.MaxBallSpeed = cfg.MaxSpeed

	matches := make([]*soakMatch, cfg.Sessions)
	for i := range matches {
		m := &soakMatch{swing: 30 + 17*i}
		m.session = pong.NewSession(rules, pong.DefaultPlayfield(), pong.WithLogger(log))
		m.session.OnScore(func(pong.ScoreEvent) { m.points++ })
		m.session.Start()
		matches[i] = m
	}
	log.WithField("sessions", len(matches)).Info("sessions ready")

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		for _, m := range matches {
			m.script(m.session.Snapshot().Frame)

			updateStart := time.Now()
			m.session.Update(cfg.DeltaT)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++

			if speed := m.session.Snapshot().Ball.Speed(); speed > m.peak {
				m.peak = speed
			}
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	for _, m := range matches {
		st := m.session.Snapshot()
		report.Matches = append(report.Matches, MatchResult{
			ID:        m.session.ID().String(),
			Frames:    st.Frame,
			Simulated: time.Duration(st.Elapsed * float64(time.Second)),
			Score:     st.Score,
			Points:    m.points,
			PeakSpeed: m.peak,
		})
	}
	if len(matches) > 0 {
		report.Systems = matches[0].session.Stats().Scheduler.Systems
	}
	return report
}

func (c soakConfig) validate() error {
	if c.Sessions < 1 {
		return fmt.Errorf("sessions must be at least 1, got %d", c.Sessions)
	}
	if c.DeltaT <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.DeltaT)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("max speed must not be negative, got %v", c.MaxSpeed)
	}
	return nil
}
