package frames

import "github.com/hajimehoshi/ebiten/v2"

// Canvas is an offscreen ebiten image with a place on screen. It is the
// Element pointer events are measured against: BoundingClientRect is where
// the canvas is drawn, Width and Height its pixel size.
type Canvas struct {
	img     *ebiten.Image
	bounds  Rect
	layout  bool
	mounted bool
}

// NewCanvas allocates a w×h canvas. Until SetBounds is called it is laid
// out at the screen origin at its pixel size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: ebiten.NewImage(w, h)}
}

// Image returns the backing image.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

// BoundingClientRect implements Element.
func (c *Canvas) BoundingClientRect() Rect {
	if c.layout {
		return c.bounds
	}
	return Rect{Right: float64(c.Width()), Bottom: float64(c.Height())}
}

// SetBounds places the canvas on screen. The canvas is stretched to fill
// r when drawn with DrawTo.
func (c *Canvas) SetBounds(r Rect) {
	c.bounds = r
	c.layout = true
}

// Resize reallocates the backing image when the pixel size changes. The
// contents are discarded, as with an HTML canvas.
func (c *Canvas) Resize(w, h int) {
	if w == c.Width() && h == c.Height() {
		return
	}
	c.img.Deallocate()
	c.img = ebiten.NewImage(w, h)
}

// Mount marks the canvas as attached to the screen. Only mounted canvases
// are rendered to.
func (c *Canvas) Mount() { c.mounted = true }

// Unmount detaches the canvas.
func (c *Canvas) Unmount() { c.mounted = false }

// Mounted reports whether the canvas is attached.
func (c *Canvas) Mounted() bool { return c.mounted }

// DrawTo draws the canvas onto dst at its bounds.
func (c *Canvas) DrawTo(dst *ebiten.Image) {
	r := c.BoundingClientRect()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width()/float64(c.Width()), r.Height()/float64(c.Height()))
	op.GeoM.Translate(r.Left, r.Top)
	dst.DrawImage(c.img, &op)
}
