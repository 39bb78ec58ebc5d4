package scratch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSprintfMatchesFmt(t *testing.T) {
	tests := []struct {
		format string
		args   []any
	}{
		{"Frame: %d", []any{42}},
		{"%2.3f ms (%.2f FPS)", []any{float32(16.6667), float32(60)}},
		{"Allocs: %d", []any{uint64(1 << 40)}},
		{"Vendor: %s", []any{"mesa"}},
		{"%5d|", []any{7}},
		{"100%%", nil},
		{"%c%t", []any{'é', true}},
		{"%8.1f", []any{3.14159}},
	}
	for _, tt := range tests {
		a := New(8)
		assert.Equal(t, fmt.Sprintf(tt.format, tt.args...), a.Sprintf(tt.format, tt.args...), tt.format)
	}
}

func TestSprintfMissingArgument(t *testing.T) {
	a := New(0)
	assert.Equal(t, "x=%!d", a.Sprintf("x=%d"))
}

func TestViewsSurviveGrowthUntilReset(t *testing.T) {
	a := New(4)
	first := a.Sprintf("%s", "abcd")
	second := a.Sprintf("%s", "efghijkl")
	assert.Equal(t, "abcd", first)
	assert.Equal(t, "efghijkl", second)
	assert.Equal(t, 12, a.Len())
	assert.GreaterOrEqual(t, a.Cap(), 12)

	c := a.Cap()
	a.Reset()
	assert.Zero(t, a.Len())
	assert.Equal(t, c, a.Cap())
	assert.Equal(t, "xy", a.Sprintf("xy"))
}
