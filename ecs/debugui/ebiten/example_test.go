package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/ecs/debugui"
	debugui_ebiten "github.com/plus3/pong/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and draws ECS-driven ImGui panels on top.
type Game struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	g.backend.Get().Frame(func() {
		g.scheduler.Once(1.0 / 60.0)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Get().Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	backend := ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720))
	ecs.NewSingleton(storage, debugui.ImguiInputState{})

	scheduler := ecs.NewScheduler(storage)
	perf := debugui.NewPerformancePanel(120)
	timer := debugui.NewFrameTimer()
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
			perf.Render(scheduler, timer.Tick())
		},
	})
	scheduler.Register(&debugui.ImguiSystem{})

	game := &Game{scheduler: scheduler, backend: backend}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
