package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemTimer struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *systemTimer) record(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	if t.count == 1 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// binder is implemented by Query and Singleton fields.
type binder interface {
	Init(storage *Storage)
}

type executor interface {
	Execute()
}

// Scheduler runs registered systems in registration order, one frame per Once.
type Scheduler struct {
	storage *Storage
	systems []System
	timers  []*systemTimer
	queries []executor
	frames  uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the world the scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system to the frame and binds its Query and Singleton
// fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.timers = append(s.timers, &systemTimer{name: t.Name()})
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		b, ok := field.Addr().Interface().(binder)
		if !ok {
			continue
		}
		b.Init(s.storage)

		if e, ok := b.(executor); ok {
			s.queries = append(s.queries, e)
		}
	}
}

// Once runs a single frame covering dt seconds: refresh every query, execute
// every system, then flush deferred commands.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := newUpdateFrame(dt, s.frames, s.storage)

	for _, q := range s.queries {
		q.Execute()
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timers[i].record(time.Since(start))
	}

	frame.Commands.Flush()
}

// Run executes frames every interval until ctx is done, passing the measured
// wall-clock time since the previous frame as dt. It returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// Frames returns how many frames have run.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.timers)),
	}

	for i, t := range s.timers {
		var avg time.Duration
		if t.count > 0 {
			avg = t.total / time.Duration(t.count)
		}
		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.count,
			MinDuration:    t.min,
			MaxDuration:    t.max,
			AvgDuration:    avg,
			LastDuration:   t.last,
			TotalDuration:  t.total,
		}
		stats.TotalExecutions += t.count
	}
	return stats
}
