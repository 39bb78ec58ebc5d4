package core_test

import (
	"slices"
	"testing"

	"github.com/mashenka/mashenka/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(seq func(func(core.Layer) bool)) []string {
	var out []string
	for l := range seq {
		out = append(out, l.Name())
	}
	return out
}

func TestLayerStackOrdering(t *testing.T) {
	rec := &recorder{}
	var ls core.LayerStack

	ls.PushOverlay(newTestLayer("o1", rec))
	ls.PushLayer(newTestLayer("l1", rec))
	ls.PushOverlay(newTestLayer("o2", rec))
	ls.PushLayer(newTestLayer("l2", rec))
	ls.PushLayer(newTestLayer("l3", rec))

	forward := names(ls.Layers())
	assert.Equal(t, []string{"l1", "l2", "l3", "o1", "o2"}, forward)

	reverse := names(ls.Reverse())
	want := slices.Clone(forward)
	slices.Reverse(want)
	assert.Equal(t, want, reverse)

	assert.Equal(t, []string{"o1.attach", "l1.attach", "o2.attach", "l2.attach", "l3.attach"}, rec.calls)
	assert.Equal(t, 5, ls.Len())
}

func TestLayerStackInterleavedPushesKeepSegments(t *testing.T) {
	// Every push sequence keeps layers before overlays, each in push order.
	seqs := [][]bool{
		{true, true, true},
		{false, false, false},
		{true, false, true, false},
		{false, true, false, true, false, true},
	}
	for _, seq := range seqs {
		rec := &recorder{}
		var ls core.LayerStack
		var wantLayers, wantOverlays []string
		for i, overlay := range seq {
			name := string(rune('a' + i))
			if overlay {
				ls.PushOverlay(newTestLayer(name, rec))
				wantOverlays = append(wantOverlays, name)
			} else {
				ls.PushLayer(newTestLayer(name, rec))
				wantLayers = append(wantLayers, name)
			}
		}
		want := append(wantLayers, wantOverlays...)
		assert.Equal(t, want, names(ls.Layers()))
		slices.Reverse(want)
		assert.Equal(t, want, names(ls.Reverse()))
	}
}

func TestLayerStackPop(t *testing.T) {
	rec := &recorder{}
	var ls core.LayerStack
	l1, l2 := newTestLayer("l1", rec), newTestLayer("l2", rec)
	o1 := newTestLayer("o1", rec)
	ls.PushLayer(l1)
	ls.PushLayer(l2)
	ls.PushOverlay(o1)
	rec.calls = nil

	require.NoError(t, ls.PopLayer(l1))
	assert.Equal(t, []string{"l2", "o1"}, names(ls.Layers()))

	// The boundary moved back, so a new layer still lands before the overlay.
	l3 := newTestLayer("l3", rec)
	ls.PushLayer(l3)
	assert.Equal(t, []string{"l2", "l3", "o1"}, names(ls.Layers()))

	require.NoError(t, ls.PopOverlay(o1))
	assert.Equal(t, []string{"l2", "l3"}, names(ls.Layers()))
	assert.Equal(t, []string{"l1.detach", "l3.attach", "o1.detach"}, rec.calls)
}

func TestLayerStackPopNonMember(t *testing.T) {
	rec := &recorder{}
	var ls core.LayerStack
	l1, o1 := newTestLayer("l1", rec), newTestLayer("o1", rec)
	stranger := newTestLayer("stranger", rec)
	ls.PushLayer(l1)
	ls.PushOverlay(o1)
	rec.calls = nil

	assert.ErrorIs(t, ls.PopLayer(stranger), core.ErrLayerNotFound)
	assert.ErrorIs(t, ls.PopOverlay(stranger), core.ErrLayerNotFound)
	// Segments are not interchangeable.
	assert.ErrorIs(t, ls.PopLayer(o1), core.ErrLayerNotFound)
	assert.ErrorIs(t, ls.PopOverlay(l1), core.ErrLayerNotFound)

	assert.Empty(t, rec.calls)
	assert.Equal(t, []string{"l1", "o1"}, names(ls.Layers()))
}

func TestLayerStackCloseDetachesOnce(t *testing.T) {
	rec := &recorder{}
	var ls core.LayerStack
	ls.PushOverlay(newTestLayer("o1", rec))
	ls.PushLayer(newTestLayer("l1", rec))
	ls.PushLayer(newTestLayer("l2", rec))
	rec.calls = nil

	ls.Close()
	ls.Close()

	assert.Equal(t, []string{"l1.detach", "l2.detach", "o1.detach"}, rec.calls)
	assert.Zero(t, ls.Len())
}

func TestReverseStopsEarly(t *testing.T) {
	rec := &recorder{}
	var ls core.LayerStack
	ls.PushLayer(newTestLayer("l1", rec))
	ls.PushLayer(newTestLayer("l2", rec))
	ls.PushOverlay(newTestLayer("o1", rec))

	var seen []string
	for l := range ls.Reverse() {
		seen = append(seen, l.Name())
		if l.Name() == "l2" {
			break
		}
	}
	assert.Equal(t, []string{"o1", "l2"}, seen)
}
