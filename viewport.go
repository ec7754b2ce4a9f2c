package frames

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/frames/stream"
)

// RenderFunc draws a state onto a canvas image.
type RenderFunc func(dst *ebiten.Image, s Snapshot)

// Hook runs against the canvas before a render.
type Hook func(c *Canvas)

// Viewport couples a canvas with a render function and the application
// state. Each commit runs the lifecycle hooks in order, then renders if
// the canvas is mounted: Insert hooks on the first commit, PostPatch hooks
// on every later one.
type Viewport struct {
	Canvas    *Canvas
	Insert    []Hook
	PostPatch []Hook

	inserted bool
	renders  int
}

// NewViewport returns a viewport drawing onto c.
func NewViewport(c *Canvas) *Viewport {
	return &Viewport{Canvas: c}
}

// Renders returns how many times the viewport has drawn.
func (v *Viewport) Renders() int {
	return v.renders
}

// Commit runs the hooks for this commit and renders s with render.
func (v *Viewport) Commit(render RenderFunc, s Snapshot) {
	hooks := v.PostPatch
	if !v.inserted {
		hooks = v.Insert
		v.inserted = true
	}
	for _, h := range hooks {
		h(v.Canvas)
	}
	if render == nil || !v.Canvas.Mounted() {
		return
	}
	render(v.Canvas.Image(), s)
	v.renders++
}

// Bind commits on every change of either the render function or the
// state, once both have emitted. A nil render function is skipped.
func (v *Viewport) Bind(renders *stream.Stream[RenderFunc], states *stream.Stream[Snapshot]) *stream.Subscription {
	pairs := stream.Filter(stream.Combine(renders, states), func(p stream.Pair[RenderFunc, Snapshot]) bool {
		return p.First != nil
	})
	return pairs.Subscribe(stream.Listener[stream.Pair[RenderFunc, Snapshot]]{
		Next: func(p stream.Pair[RenderFunc, Snapshot]) { v.Commit(p.First, p.Second) },
	})
}

// Driver returns a sink that renders every snapshot it is given onto c.
// A snapshot with a positive Width and Height resizes the canvas first.
// Unmounted canvases are resized but not drawn.
func Driver(c *Canvas, render RenderFunc) func(states *stream.Stream[Snapshot]) *stream.Subscription {
	return func(states *stream.Stream[Snapshot]) *stream.Subscription {
		return states.Subscribe(stream.Listener[Snapshot]{
			Next: func(s Snapshot) {
				if s.Width > 0 && s.Height > 0 {
					c.Resize(s.Width, s.Height)
				}
				if c.Mounted() {
					render(c.Image(), s)
				}
			},
		})
	}
}
