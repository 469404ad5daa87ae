package snowfall

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// PlatformWindowModule creates the single fixed-size GLFW window and provides it as
// a WindowState resource. It requires a stateful app: closing the window or pressing
// Escape moves the app to StateShutdown, whose exit phase destroys the window.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow fills in defaults for zero values.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	if title == "" {
		title = "Snowflakes"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if Resource[WindowState](app) != nil {
		// Already created by another module; keep a single window.
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		app.Logger().Errorf("Failed to create window: %v", err)
		panic(fmt.Errorf("platform window: %w", err))
	}
	ws.windowGlfw.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)

	cmd.AddResources(ws)
	app.UseSystem(
		System(windowEventsSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(windowTeardownSystem).
			InStage(Finale).
			InState(OnExit(StateShutdown)),
	)
}

func windowEventsSystem(ws *WindowState, cmd *Commands) {
	glfw.PollEvents()
	if ws.windowGlfw.ShouldClose() {
		cmd.ChangeState(StateShutdown)
	}
}

func windowTeardownSystem(ws *WindowState, cmd *Commands) {
	cmd.Logger().Infof("Shutting down...")
	ws.destroy()
}
