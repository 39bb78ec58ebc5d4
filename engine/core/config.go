package core

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/logging"
)

// Config for the engine run.
type Config struct {
	Window     WindowProps      `toml:"window"`
	ClearColor colors.Color     `toml:"clear_color"`
	LogLevel   string           `toml:"log_level"`
	ImGui      bool             `toml:"imgui"`
	Renderer2D Renderer2DConfig `toml:"renderer2d"`
}

type Renderer2DConfig struct {
	// MaxQuads is the batch capacity; reaching it forces a flush.
	MaxQuads int `toml:"max_quads"`
}

func DefaultConfig() Config {
	return Config{
		Window:     DefaultWindowProps(),
		ClearColor: colors.DarkGray,
		LogLevel:   "info",
		ImGui:      true,
		Renderer2D: Renderer2DConfig{MaxQuads: 10000},
	}
}

// DecodeConfig reads TOML from r over the defaults. Unknown keys are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Renderer2D.MaxQuads <= 0 {
		return fmt.Errorf("config: renderer2d.max_quads must be positive, got %d", c.Renderer2D.MaxQuads)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
