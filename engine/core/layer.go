package core

import (
	"iter"
	"slices"

	"github.com/mashenka/mashenka/engine/logging"
)

// Layer is a slice of application behaviour composed in a LayerStack.
type Layer interface {
	Name() string
	OnAttach()
	OnDetach()
	OnUpdate(ts Timestep)
	OnImGuiRender()
	OnEvent(ev *Event)
}

// BaseLayer gives embedders a debug name and no-op hooks.
type BaseLayer struct {
	DebugName string
}

func NewBaseLayer(name string) BaseLayer { return BaseLayer{DebugName: name} }

func (l BaseLayer) Name() string    { return l.DebugName }
func (BaseLayer) OnAttach()         {}
func (BaseLayer) OnDetach()         {}
func (BaseLayer) OnUpdate(Timestep) {}
func (BaseLayer) OnImGuiRender()    {}
func (BaseLayer) OnEvent(*Event)    {}

// LayerStack owns an ordered list of layers split in two segments: regular
// layers in front of insert, overlays behind it. Forward iteration visits
// layers before overlays, each in push order.
type LayerStack struct {
	list   []Layer
	insert int
}

// PushLayer attaches l at the end of the regular segment.
func (ls *LayerStack) PushLayer(l Layer) {
	ls.list = slices.Insert(ls.list, ls.insert, l)
	ls.insert++
	l.OnAttach()
}

// PushOverlay attaches l at the very end of the stack.
func (ls *LayerStack) PushOverlay(l Layer) {
	ls.list = append(ls.list, l)
	l.OnAttach()
}

// PopLayer detaches l from the regular segment.
func (ls *LayerStack) PopLayer(l Layer) error {
	i := slices.Index(ls.list[:ls.insert], l)
	if i < 0 {
		logging.Core().Warn("PopLayer: layer not in stack", "layer", l.Name())
		return ErrLayerNotFound
	}
	ls.list = slices.Delete(ls.list, i, i+1)
	ls.insert--
	l.OnDetach()
	return nil
}

// PopOverlay detaches l from the overlay segment.
func (ls *LayerStack) PopOverlay(l Layer) error {
	i := slices.Index(ls.list[ls.insert:], l)
	if i < 0 {
		logging.Core().Warn("PopOverlay: overlay not in stack", "layer", l.Name())
		return ErrLayerNotFound
	}
	i += ls.insert
	ls.list = slices.Delete(ls.list, i, i+1)
	l.OnDetach()
	return nil
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// Layers iterates front to back: layers, then overlays.
//
// Iteration walks a snapshot, so hooks may push and pop freely. Layers pushed
// mid-pass are visited from the next pass on; layers popped mid-pass are
// skipped.
func (ls *LayerStack) Layers() iter.Seq[Layer] {
	return func(yield func(Layer) bool) {
		for _, l := range slices.Clone(ls.list) {
			if ls.contains(l) && !yield(l) {
				return
			}
		}
	}
}

// Reverse iterates back to front; the newest overlay comes first. It shares
// the snapshot rules of Layers.
func (ls *LayerStack) Reverse() iter.Seq[Layer] {
	return func(yield func(Layer) bool) {
		list := slices.Clone(ls.list)
		for i := len(list) - 1; i >= 0; i-- {
			if ls.contains(list[i]) && !yield(list[i]) {
				return
			}
		}
	}
}

func (ls *LayerStack) contains(l Layer) bool { return slices.Contains(ls.list, l) }

// Close detaches every layer once, front to back, and empties the stack.
func (ls *LayerStack) Close() {
	list := ls.list
	ls.list, ls.insert = nil, 0
	for _, l := range list {
		l.OnDetach()
	}
}
