package mithril

import (
	"reflect"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowModule owns the GLFW window and the wgpu device behind it. The
// WindowState and GpuState resources it provides are shared by the renderer
// and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type WindowModule struct {
	Width  int
	Height int
	Title  string
	Vsync  bool
}

// NewWindowModule creates a module that provides the shared WindowState and
// GpuState resources. Zero width/height/title fall back to defaults.
func NewWindowModule(cfg WindowConfig) *WindowModule {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "MithrilEngine"
	}
	return &WindowModule{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
		Vsync:  cfg.Vsync,
	}
}

func (m WindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf(WindowState{})
	if _, ok := app.resources[t]; ok {
		// Already created by another module; no-op to preserve the single-window invariant.
		return
	}

	windowState := createWindowState(m.Width, m.Height, m.Title)
	gpuState := createGpuState(windowState, m.Vsync)
	cmd.AddResources(windowState, gpuState)

	app.UseSystem(
		System(windowEventsSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

// windowEventsSystem pumps the platform event queue once per frame, tracks
// resizes, and turns the window close button into a quit request.
func windowEventsSystem(s *WindowState, gpuState *GpuState, cmd *Commands) {
	glfw.PollEvents()

	width, height := s.windowGlfw.GetFramebufferSize()
	if width != s.WindowWidth || height != s.WindowHeight {
		s.WindowWidth = width
		s.WindowHeight = height
		gpuState.reconfigure(width, height)
	}

	if s.windowGlfw.ShouldClose() {
		cmd.Quit()
	}
}
