package gui

import (
	"testing"

	"github.com/mashenka/mashenka/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestCaptures(t *testing.T) {
	tests := []struct {
		name          string
		payload       core.Payload
		mouse, keybrd bool
		want          bool
	}{
		{"mouse wanted", core.MouseMovedEvent{X: 1, Y: 2}, true, false, true},
		{"button wanted", core.MouseButtonPressedEvent{Button: core.MouseButtonLeft}, true, false, true},
		{"mouse not wanted", core.MouseScrolledEvent{YOffset: 1}, false, true, false},
		{"key wanted", core.KeyPressedEvent{Key: core.KeyW}, false, true, true},
		{"typed wanted", core.KeyTypedEvent{Char: 'a'}, false, true, true},
		{"key not wanted", core.KeyReleasedEvent{Key: core.KeyW}, true, false, false},
		{"resize never", core.WindowResizeEvent{Width: 1, Height: 1}, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, captures(core.NewEvent(tt.payload), tt.mouse, tt.keybrd))
		})
	}
}

func TestNewLayerRejectsForeignWindow(t *testing.T) {
	_, err := NewLayer(nil)
	assert.ErrorIs(t, err, ErrUnsupportedWindow)
}
