// Package platform provides the GLFW desktop window with an OpenGL 3.3 core
// context.
package platform

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/logging"
)

var glfwWindows int

// GLFWWindow implements core.Window and pushes translated events to the
// registered callback.
type GLFWWindow struct {
	w      *glfw.Window
	props  core.WindowProps
	width  int
	height int
	vsync  bool
	onEv   core.EventCallback
	log    *slog.Logger
}

var _ core.Window = (*GLFWWindow)(nil)

// NewWindow is a core.WindowFactory.
func NewWindow(props core.WindowProps) (core.Window, error) {
	return NewGLFWWindow(props)
}

// NewGLFWWindow must be called on the main thread before any GL calls. The
// GL context is current on return.
func NewGLFWWindow(props core.WindowProps) (*GLFWWindow, error) {
	lg := logging.Core()
	lg.Info("creating window", "title", props.Title, "width", props.Width, "height", props.Height)

	if glfwWindows == 0 {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("glfw init: %w", err)
		}
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(props.Width, props.Height, props.Title, nil, nil)
	if err != nil {
		if glfwWindows == 0 {
			glfw.Terminate()
		}
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	glfwWindows++
	win.MakeContextCurrent()

	gw := &GLFWWindow{w: win, props: props, log: lg}
	gw.width, gw.height = win.GetFramebufferSize()
	gw.SetVSync(props.VSync)

	win.SetCloseCallback(func(*glfw.Window) {
		gw.emit(core.WindowCloseEvent{})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.width, gw.height = w, h
		gw.emit(core.WindowResizeEvent{Width: w, Height: h})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press:
			gw.emit(core.KeyPressedEvent{Key: k, Mods: translateMods(mods)})
		case glfw.Repeat:
			gw.emit(core.KeyPressedEvent{Key: k, Mods: translateMods(mods), RepeatCount: 1})
		case glfw.Release:
			gw.emit(core.KeyReleasedEvent{Key: k, Mods: translateMods(mods)})
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		gw.emit(core.KeyTypedEvent{Char: char})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b := core.MouseButton(button)
		switch action {
		case glfw.Press:
			gw.emit(core.MouseButtonPressedEvent{Button: b})
		case glfw.Release:
			gw.emit(core.MouseButtonReleasedEvent{Button: b})
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.MouseScrolledEvent{XOffset: float32(xoff), YOffset: float32(yoff)})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(core.MouseMovedEvent{X: float32(x), Y: float32(y)})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(p core.Payload) {
	if g.onEv != nil {
		g.onEv(core.NewEvent(p))
	}
}

// OnUpdate polls events then presents the back buffer.
func (g *GLFWWindow) OnUpdate() {
	glfw.PollEvents()
	if g.w != nil {
		g.w.SwapBuffers()
	}
}

func (g *GLFWWindow) Width() int                             { return g.width }
func (g *GLFWWindow) Height() int                            { return g.height }
func (g *GLFWWindow) SetEventCallback(cb core.EventCallback) { g.onEv = cb }
func (g *GLFWWindow) IsVSync() bool                          { return g.vsync }
func (g *GLFWWindow) SetTitle(t string)                      { g.w.SetTitle(t) }

func (g *GLFWWindow) SetVSync(enabled bool) {
	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	g.vsync = enabled
}

// Close destroys the window and terminates GLFW with the last one.
func (g *GLFWWindow) Close() {
	if g.w == nil {
		return
	}
	g.w.Destroy()
	g.w = nil
	glfwWindows--
	if glfwWindows == 0 {
		glfw.Terminate()
	}
	g.log.Debug("window closed", "title", g.props.Title)
}

// translateKey relies on core.Key sharing GLFW's key values.
func translateKey(k glfw.Key) core.Key {
	if k < glfw.KeySpace || k > glfw.KeyLast {
		return core.KeyUnknown
	}
	return core.Key(k)
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
