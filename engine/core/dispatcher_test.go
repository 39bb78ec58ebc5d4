package core_test

import (
	"testing"

	"github.com/mashenka/mashenka/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestDispatchMatchingType(t *testing.T) {
	ev := core.NewEvent(core.WindowResizeEvent{Width: 640, Height: 480})
	d := core.NewEventDispatcher(ev)

	var got core.WindowResizeEvent
	ok := core.Dispatch(d, func(e core.WindowResizeEvent) bool {
		got = e
		return true
	})

	assert.True(t, ok)
	assert.True(t, ev.Handled())
	assert.Equal(t, 640, got.Width)
	assert.Equal(t, 480, got.Height)
}

func TestDispatchHandlerDeclines(t *testing.T) {
	ev := core.NewEvent(core.KeyTypedEvent{Char: 'x'})
	d := core.NewEventDispatcher(ev)

	ok := core.Dispatch(d, func(core.KeyTypedEvent) bool { return false })
	assert.True(t, ok)
	assert.False(t, ev.Handled())
}

func TestDispatchMismatchNeverCallsHandler(t *testing.T) {
	for _, handled := range []bool{false, true} {
		ev := core.NewEvent(core.KeyPressedEvent{Key: core.KeySpace})
		if handled {
			ev.MarkHandled()
		}
		d := core.NewEventDispatcher(ev)

		called := false
		ok := core.Dispatch(d, func(core.KeyReleasedEvent) bool {
			called = true
			return !handled
		})

		assert.False(t, ok)
		assert.False(t, called)
		assert.Equal(t, handled, ev.Handled())
	}
}

func TestDispatchChain(t *testing.T) {
	ev := core.NewEvent(core.MouseScrolledEvent{YOffset: 1})
	d := core.NewEventDispatcher(ev)

	var hits []string
	core.Dispatch(d, func(core.MouseMovedEvent) bool { hits = append(hits, "moved"); return true })
	core.Dispatch(d, func(core.MouseScrolledEvent) bool { hits = append(hits, "scrolled"); return false })
	core.Dispatch(d, func(core.WindowCloseEvent) bool { hits = append(hits, "close"); return true })

	assert.Equal(t, []string{"scrolled"}, hits)
	assert.False(t, ev.Handled())
	assert.Same(t, ev, d.Event())
}

func TestDispatchDoesNotUnsetHandled(t *testing.T) {
	ev := core.NewEvent(core.AppRenderEvent{})
	ev.MarkHandled()
	d := core.NewEventDispatcher(ev)

	ok := core.Dispatch(d, func(core.AppRenderEvent) bool { return false })
	assert.True(t, ok)
	assert.True(t, ev.Handled())
}
