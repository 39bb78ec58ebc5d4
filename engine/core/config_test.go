package core_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfigOverridesDefaults(t *testing.T) {
	src := `
log_level = "debug"
clear_color = [0.1, 0.2, 0.3, 1.0]

[window]
title = "Sandbox"
width = 800

[renderer2d]
max_quads = 256
`
	cfg, err := core.DecodeConfig(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "Sandbox", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep their defaults")
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, colors.Color{0.1, 0.2, 0.3, 1}, cfg.ClearColor)
	assert.Equal(t, 256, cfg.Renderer2D.MaxQuads)
	assert.True(t, cfg.ImGui)
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	_, err := core.DecodeConfig(strings.NewReader("[window]\nfullscreen = true\n"))
	assert.Error(t, err)
}

func TestDecodeConfigValidates(t *testing.T) {
	_, err := core.DecodeConfig(strings.NewReader("[window]\nwidth = 0\n"))
	assert.ErrorContains(t, err, "window size")

	_, err = core.DecodeConfig(strings.NewReader("[renderer2d]\nmax_quads = -1\n"))
	assert.ErrorContains(t, err, "max_quads")

	_, err = core.DecodeConfig(strings.NewReader("log_level = \"loud\"\n"))
	assert.ErrorContains(t, err, "unknown log level")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mashenka.toml")
	require.NoError(t, os.WriteFile(path, []byte("imgui = false\n"), 0o644))

	cfg, err := core.LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.ImGui)

	_, err = core.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
