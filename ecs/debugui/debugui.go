// Package debugui renders Dear ImGui panels from inside an ECS frame.
//
// Panels are ImguiItem entities. ImguiSystem defers their render functions
// so they run after every other system of the frame has finished mutating
// the world, between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pong/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a singleton recording whether ImGui wants the mouse or
// keyboard this frame. Game input handlers should skip events ImGui captured.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// RegisterComponents registers ImguiItem with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem's Render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ Item *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]

	// Capture reads the input capture flags. Nil reads them from the current
	// ImGui context.
	Capture func() ImguiInputState
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	capture := i.Capture
	if capture == nil {
		capture = currentCapture
	}
	if state := i.InputState.Get(); state != nil {
		*state = capture()
	}

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Item.Render)
	}
}

func currentCapture() ImguiInputState {
	io := imgui.CurrentIO()
	return ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
