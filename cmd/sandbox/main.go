// Command sandbox runs the sandbox client on the ebiten host with the Dear
// ImGui overlay.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/ebitengfx"
	"github.com/mashenka/mashenka/engine/gui"
	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/platform/ebitenwin"
	"github.com/mashenka/mashenka/internal/sandbox"
)

func main() {
	cfg, opts, err := sandbox.ParseFlags("sandbox", os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	var renderer *gfx.Renderer
	host := core.Host{
		NewWindow: ebitenwin.NewWindow,
		NewRenderer: func(w core.Window) (core.Renderer, error) {
			win, ok := w.(*ebitenwin.Window)
			if !ok {
				return nil, fmt.Errorf("unexpected window %T", w)
			}
			dev := ebitengfx.NewDevice()
			win.AddDrawer(dev.Present)
			renderer = gfx.NewRenderer(dev)
			return renderer, nil
		},
		NewImGui: gui.NewLayer,
	}

	err = core.Run(cfg, host, func(app *core.Application) error {
		return sandbox.Setup(app, renderer, opts)
	})
	if err != nil {
		logging.Client().Error("sandbox exited", "err", err)
		os.Exit(1)
	}
}
