package core_test

import (
	"testing"

	"github.com/mashenka/mashenka/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestInputReset(t *testing.T) {
	in := core.NewInput()
	in.Handle(core.NewEvent(core.KeyPressedEvent{Key: core.KeyA}))
	in.Handle(core.NewEvent(core.KeyPressedEvent{Key: core.KeyA, RepeatCount: 1}))
	in.Handle(core.NewEvent(core.MouseButtonPressedEvent{Button: core.MouseButtonMiddle}))
	assert.True(t, in.IsKeyPressed(core.KeyA))
	assert.True(t, in.IsMouseButtonPressed(core.MouseButtonMiddle))

	in.Reset()
	assert.False(t, in.IsKeyPressed(core.KeyA))
	assert.False(t, in.IsMouseButtonPressed(core.MouseButtonMiddle))
}

func TestInputIgnoresNonInputEvents(t *testing.T) {
	in := core.NewInput()
	in.Handle(core.NewEvent(core.WindowResizeEvent{Width: 5, Height: 5}))
	in.Handle(core.NewEvent(core.KeyTypedEvent{Char: 'w'}))
	assert.False(t, in.IsKeyPressed(core.KeyW))
	x, y := in.MousePosition()
	assert.Zero(t, x)
	assert.Zero(t, y)
}
