package sandbox

import (
	"log/slog"

	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/profiler"
	"github.com/mashenka/mashenka/engine/scene"
	"github.com/mashenka/mashenka/engine/scratch"
	"github.com/mashenka/mashenka/engine/text"
	"github.com/mashenka/mashenka/engine/ui"
)

// StatsOverlay draws frame, batch, memory and GPU stats in screen pixels.
// F3 toggles it; Ctrl+P dumps the profiler graph.
type StatsOverlay struct {
	core.BaseLayer
	r2d    *renderer2d.Renderer2D
	info   gfx.DeviceInfo
	font   *text.Font
	camera *scene.OrthographicCamera
	width  float32
	height float32

	arena   *scratch.Arena
	frame   int
	frameMs float32
	Visible bool
	log     *slog.Logger
}

func NewStatsOverlay(app *core.Application, dev gfx.Device, r2d *renderer2d.Renderer2D, font *text.Font) *StatsOverlay {
	w, h := float32(app.Window().Width()), float32(app.Window().Height())
	return &StatsOverlay{
		BaseLayer: core.NewBaseLayer("Stats"),
		r2d:       r2d,
		info:      dev.Info(),
		font:      font,
		arena:     scratch.New(1024),
		camera:    scene.NewOrthographicCamera(0, w, 0, h),
		width:     w,
		height:    h,
		Visible:   true,
		log:       logging.Client(),
	}
}

func (l *StatsOverlay) OnDetach() { l.font.Close() }

func (l *StatsOverlay) OnUpdate(ts core.Timestep) {
	l.frame++
	l.frameMs = ts.Milliseconds()
	if !l.Visible {
		return
	}
	defer profiler.Start("StatsOverlay.OnUpdate")()

	l.arena.Reset()
	view := l.view(l.r2d.Stats())
	if err := l.r2d.BeginScene(l.camera); err != nil {
		return
	}
	view.Draw(&ui.Context{
		Viewport:    [4]float32{0, 0, l.width, l.height},
		DefaultFont: l.font,
		Renderer:    l.r2d,
	})
	l.r2d.EndScene()
}

func (l *StatsOverlay) view(s renderer2d.Statistics) *ui.View {
	fps := float32(0)
	if l.frameMs > 0 {
		fps = 1000 / l.frameMs
	}
	header := func(title string) *ui.Label {
		return ui.NewLabel(title).Padding4(0, 12, 0, 0).Color(colors.Yellow)
	}
	line := func(format string, args ...any) *ui.Label {
		return ui.NewLabel(l.arena.Sprintf(format, args...)).Padding4(16, 0, 0, 0)
	}
	return ui.NewView(
		ui.NewView(
			header(l.arena.Sprintf("Frame: %d", l.frame)),
			line("%2.3f ms (%.2f FPS)", l.frameMs, fps),
			header("2D Renderer"),
			line("Draw Calls: %d", s.DrawCalls),
			line("Quads: %d", s.QuadCount),
			line("Vertices: %d", s.TotalVertexCount()),
			line("Indices: %d", s.TotalIndexCount()),
			header("Memory"),
			line("Usage: %.3f MB", float32(profiler.MemoryUsage())/(1<<20)),
			line("Allocs: %d", profiler.MemoryAllocs()),
			line("Goroutines: %d", profiler.NumGoroutine()),
			header("GPU"),
			line("Vendor: %s", l.info.Vendor),
			line("Renderer: %s", l.info.Renderer),
			line("Version: %s", l.info.Version),
		).
			FlowDirection(ui.LayoutVertical).
			Gap(4).
			Padding(16).
			BgColor(colors.Black.WithAlpha(0.5)),
	).Padding(16)
}

func (l *StatsOverlay) OnEvent(ev *core.Event) {
	d := core.NewEventDispatcher(ev)
	core.Dispatch(d, l.onKeyPressed)
	core.Dispatch(d, l.onWindowResize)
}

func (l *StatsOverlay) onKeyPressed(e core.KeyPressedEvent) bool {
	switch {
	case e.RepeatCount > 0:
		return false
	case e.Key == core.KeyF3:
		l.Visible = !l.Visible
		return true
	case e.Key == core.KeyP && e.Mods&core.ModCtrl != 0:
		path, err := profiler.OpenProfilerGraph()
		if err != nil {
			l.log.Error("profiler dump failed", "err", err)
		} else if path != "" {
			l.log.Info("speedscope dump", "path", path)
		}
		return true
	}
	return false
}

func (l *StatsOverlay) onWindowResize(e core.WindowResizeEvent) bool {
	if e.Width <= 0 || e.Height <= 0 {
		return false
	}
	l.width, l.height = float32(e.Width), float32(e.Height)
	l.camera.SetProjection(0, l.width, 0, l.height)
	return false
}
