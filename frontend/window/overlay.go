package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/ecs/debugui"
	debugui_ebiten "github.com/plus3/pong/ecs/debugui/ebiten"
	"github.com/plus3/pong/pong"
)

// overlay draws Dear ImGui debug panels over the game.
type overlay struct {
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input   *ecs.Singleton[debugui.ImguiInputState]
}

// attachOverlay adds the ImGui backend, panels and ImguiSystem to session's
// world. Panels render after the session's own systems each frame.
func attachOverlay(session *pong.Session, title string, width, height int) *overlay {
	storage := session.Storage()
	scheduler := session.Scheduler()
	debugui.RegisterComponents(storage.Registry())

	o := &overlay{
		backend: ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(title, width, height)),
		input:   ecs.NewSingleton(storage, debugui.ImguiInputState{}),
	}

	match := newMatchInspector(session, 240)
	world := debugui.NewWorldInspector()
	perf := debugui.NewPerformancePanel(120)
	timer := debugui.NewFrameTimer()

	storage.Spawn(debugui.ImguiItem{Render: match.Render})
	storage.Spawn(debugui.ImguiItem{Render: func() { world.Render(storage) }})
	storage.Spawn(debugui.ImguiItem{Render: func() { perf.Render(scheduler, timer.Tick()) }})
	scheduler.Register(&debugui.ImguiSystem{})
	return o
}

func (o *overlay) frame(update func()) {
	o.backend.Get().Frame(update)
}

func (o *overlay) draw(screen *ebiten.Image) {
	o.backend.Get().Overlay(screen)
}

func (o *overlay) layout(w, h int) {
	o.backend.Get().Layout(w, h)
}

func (o *overlay) capturingKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}

// matchInspector shows the session state and a ball speed history.
type matchInspector struct {
	session *pong.Session
	speeds  []float32
	next    int
}

func newMatchInspector(session *pong.Session, history int) *matchInspector {
	return &matchInspector{session: session, speeds: make([]float32, history)}
}

func (m *matchInspector) sample(st pong.State) {
	m.speeds[m.next] = float32(st.Ball.Speed())
	m.next = (m.next + 1) % len(m.speeds)
}

func (m *matchInspector) Render() {
	st := m.session.Snapshot()
	m.sample(st)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Match", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Session %s", m.session.ID()))
	switch {
	case st.Over:
		imgui.Text(fmt.Sprintf("Over, %s wins", st.Winner))
	case st.Started:
		imgui.Text("Running")
	default:
		imgui.Text("Waiting for start")
		if imgui.Button("Start") {
			m.session.Start()
		}
	}
	imgui.Text(fmt.Sprintf("Frame %d  %.1fs", st.Frame, st.Elapsed))
	imgui.Text(fmt.Sprintf("Score %d - %d", st.Score.Left, st.Score.Right))

	imgui.Separator()
	b := st.Ball
	imgui.Text(fmt.Sprintf("Ball (%.1f, %.1f) v=(%.1f, %.1f) |v|=%.1f",
		b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y, b.Speed()))
	imgui.PlotLinesFloatPtr("speed", &m.speeds[0], int32(len(m.speeds)))

	for _, p := range st.Paddles {
		imgui.Text(fmt.Sprintf("%s paddle y=%.1f vy=%.1f", p.Side, p.Position.Y, p.Velocity.Y))
	}

	imgui.End()
}
