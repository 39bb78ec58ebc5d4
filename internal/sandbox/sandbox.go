// Package sandbox is the demo client of the engine: the ExampleLayer
// submitting raw meshes, a Renderer2D playground and a stats overlay.
package sandbox

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/mashenka/mashenka/engine/assets"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/profiler"
	"github.com/mashenka/mashenka/engine/text"
)

//go:embed assets
var embedded embed.FS

// Assets returns the embedded shaders and textures.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	checkerboardPath = "textures/Checkerboard.png"
	renderer2DShader = "shaders/Renderer2D.glsl"
)

type Options struct {
	// Example pushes the mesh-submission layer below the 2D layer.
	Example bool
	// Stats pushes the text stats overlay.
	Stats bool
	// Assets overrides the embedded asset tree.
	Assets fs.FS
}

// Setup pushes the sandbox layers onto app. r must already be initialized.
func Setup(app *core.Application, r *gfx.Renderer, opts Options) error {
	profiler.Init(1 << 10)

	fsys := opts.Assets
	if fsys == nil {
		fsys = Assets()
	}
	dev := r.Device()

	checker, err := assets.LoadTexture2D(dev, fsys, checkerboardPath, gfx.FilterNearest)
	if err != nil {
		return err
	}
	src, err := assets.LoadShaderSource(fsys, renderer2DShader)
	if err != nil {
		checker.Release()
		return err
	}
	r2d, err := renderer2d.New(dev, src, app.Config().Renderer2D.MaxQuads)
	if err != nil {
		checker.Release()
		return fmt.Errorf("renderer2d: %w", err)
	}

	if opts.Example {
		example, err := NewExampleLayer(app, r, fsys, checker)
		if err != nil {
			r2d.Shutdown()
			checker.Release()
			return err
		}
		app.PushLayer(example)
	}

	s2d := NewSandbox2D(app, r2d, checker)
	s2d.Clear = !opts.Example
	app.PushLayer(s2d)

	if opts.Stats {
		font, err := text.LoadDefault(dev, 32)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		app.PushOverlay(NewStatsOverlay(app, dev, r2d, font))
	}
	return nil
}
