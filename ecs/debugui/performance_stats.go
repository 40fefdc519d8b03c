package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pong/ecs"
)

// PerformancePanel shows frame times, per-system timings and storage layout.
type PerformancePanel struct {
	history []float32
	next    int
	filled  int
}

// NewPerformancePanel keeps the last historyFrames frame times.
func NewPerformancePanel(historyFrames int) *PerformancePanel {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformancePanel{history: make([]float32, historyFrames)}
}

// Record adds a frame time in seconds.
func (p *PerformancePanel) Record(dt float32) {
	p.history[p.next] = dt * 1000
	p.next = (p.next + 1) % len(p.history)
	if p.filled < len(p.history) {
		p.filled++
	}
}

// AverageMillis is the mean recorded frame time, or 0 before any Record.
func (p *PerformancePanel) AverageMillis() float32 {
	if p.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range p.history[:p.filled] {
		sum += ms
	}
	return sum / float32(p.filled)
}

// Render records dt and draws the panel for scheduler and its storage.
func (p *PerformancePanel) Render(scheduler *ecs.Scheduler, dt float32) {
	p.Record(dt)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scheduler.Storage().CollectStats()
	sched := scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	avg := p.AverageMillis()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)  Frames: %d", avg, 1000/avg, sched.Frames))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.history[0], int32(len(p.history)))

	imgui.Separator()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		for _, s := range sched.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%08X %v: %d", arch.ID, arch.ComponentTypes, arch.EntityCount))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between calls to Tick.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Tick returns the seconds elapsed since the previous Tick.
func (ft *FrameTimer) Tick() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.last).Seconds())
	ft.last = now
	return delta
}
