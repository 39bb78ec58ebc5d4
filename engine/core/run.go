package core

import (
	"fmt"
	"runtime"

	"github.com/mashenka/mashenka/engine/logging"
)

// Host supplies the platform pieces for Run. NewRenderer and NewImGui may be
// nil; both run after the window exists so they can use its GPU context.
type Host struct {
	NewWindow   WindowFactory
	NewRenderer func(Window) (Renderer, error)
	NewImGui    func(Window) (ImGuiLayer, error)
}

// ClientFactory builds the client application on top of app, typically by
// pushing its layers.
type ClientFactory func(app *Application) error

// Run wires the platform window + renderer, lets the client set itself up and
// executes the main loop until the application stops.
func Run(cfg Config, host Host, client ClientFactory) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetLevel(lvl)

	win, err := host.NewWindow(cfg.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	var opts []Option
	if host.NewRenderer != nil {
		rend, err := host.NewRenderer(win)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		if err := rend.Init(); err != nil {
			return fmt.Errorf("init renderer: %w", err)
		}
		defer rend.Shutdown()
		rend.OnWindowResize(win.Width(), win.Height())
		opts = append(opts, WithRenderer(rend))
	}
	if cfg.ImGui && host.NewImGui != nil {
		gui, err := host.NewImGui(win)
		if err != nil {
			return fmt.Errorf("create imgui layer: %w", err)
		}
		opts = append(opts, WithImGui(gui))
	}

	app := NewApplication(cfg, win, opts...)
	if err := client(app); err != nil {
		app.shutdown()
		return fmt.Errorf("create application: %w", err)
	}
	return app.Run()
}
