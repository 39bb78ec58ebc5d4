package sandbox

import (
	"flag"
	"io"

	"github.com/mashenka/mashenka/engine/core"
)

// ParseFlags reads the sandbox command line. -config loads a TOML file over
// the defaults; the remaining flags override it.
func ParseFlags(name string, args []string, output io.Writer) (core.Config, Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	configPath := fs.String("config", "", "TOML config `file`")
	example := fs.Bool("example", true, "push the mesh submission layer")
	stats := fs.Bool("stats", true, "show the stats overlay")
	noImGui := fs.Bool("no-imgui", false, "disable the ImGui overlay")
	logLevel := fs.String("log", "", "log `level` (trace, debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return core.Config{}, Options{}, err
	}

	cfg := core.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(*configPath); err != nil {
			return core.Config{}, Options{}, err
		}
	}
	if *noImGui {
		cfg.ImGui = false
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.Window.Title = "Mashenka Sandbox (" + name + ")"
	return cfg, Options{Example: *example, Stats: *stats}, cfg.Validate()
}
