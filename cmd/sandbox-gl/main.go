// Command sandbox-gl runs the sandbox client on GLFW and OpenGL 3.3. It has
// no ImGui overlay; the stats overlay is drawn with the engine's text.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	glbackend "github.com/mashenka/mashenka/engine/gfx/gl"
	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/platform"
	"github.com/mashenka/mashenka/internal/sandbox"
)

func main() {
	cfg, opts, err := sandbox.ParseFlags("sandbox-gl", os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}
	cfg.ImGui = false

	var renderer *gfx.Renderer
	host := core.Host{
		NewWindow: platform.NewWindow,
		NewRenderer: func(core.Window) (core.Renderer, error) {
			renderer = gfx.NewRenderer(glbackend.NewDevice())
			return renderer, nil
		},
	}

	err = core.Run(cfg, host, func(app *core.Application) error {
		return sandbox.Setup(app, renderer, opts)
	})
	if err != nil {
		logging.Client().Error("sandbox-gl exited", "err", err)
		os.Exit(1)
	}
}
