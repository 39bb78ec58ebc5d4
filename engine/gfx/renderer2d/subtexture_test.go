package renderer2d_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/gfx/gfxtest"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/stretchr/testify/assert"
)

func TestSubTextureFromPixels(t *testing.T) {
	tex := newTexture(t, gfxtest.NewDevice(), 128, 64)
	sub := renderer2d.FromPixels(tex, 32, 16, 32, 16)

	assert.Equal(t, mgl32.Vec2{0.25, 0.25}, sub.Min)
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, sub.Max)
	assert.Equal(t, [4]mgl32.Vec2{
		{0.25, 0.25}, {0.5, 0.25}, {0.5, 0.5}, {0.25, 0.5},
	}, sub.UVs())
}

func TestSubTextureFromGridSpan(t *testing.T) {
	tex := newTexture(t, gfxtest.NewDevice(), 128, 128)
	sub := renderer2d.FromGrid(tex, 0, 1, 32, 32, 2, 1)

	assert.Equal(t, mgl32.Vec2{0, 0.25}, sub.Min)
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, sub.Max)
}
