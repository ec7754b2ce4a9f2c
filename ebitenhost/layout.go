package ebitenhost

import (
	"math"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/stream"
)

// Size is a screen size in layout pixels.
type Size struct {
	W, H int
}

// Sizes returns the screen size as reported by Layout: the current size on
// subscribe, once known, then every change. Repeated sizes are dropped.
func (g *Game) Sizes() *stream.Stream[Size] {
	return stream.Create(func(em stream.Emitter[Size]) func() {
		if g.size != (Size{}) {
			em.Next(g.size)
		}
		sub := g.sizes.Subscribe(stream.Listener[Size]{Next: em.Next})
		return sub.Unsubscribe
	})
}

func (g *Game) setSize(s Size) {
	if s == g.size {
		return
	}
	g.size = s
	g.logger.Debug("screen resized", "w", s.W, "h", s.H)
	g.sizes.Next(s)
}

// Tile lays canvases out left to right in equal slots across s. Each
// canvas keeps its aspect ratio and is centered in its slot.
func Tile(canvases []*frames.Canvas, s Size) {
	if len(canvases) == 0 || s.W <= 0 || s.H <= 0 {
		return
	}
	slotW := float64(s.W) / float64(len(canvases))
	slotH := float64(s.H)
	for i, c := range canvases {
		cw, ch := float64(c.Width()), float64(c.Height())
		k := math.Min(slotW/cw, slotH/ch)
		w, h := cw*k, ch*k
		left := float64(i)*slotW + (slotW-w)/2
		top := (slotH - h) / 2
		c.SetBounds(frames.Rect{Left: left, Top: top, Right: left + w, Bottom: top + h})
	}
}
