package frames

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Color is an RGBA color with components in [0, 1], not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Named colors used by the debug renderer.
var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorYellow = Color{1, 0.85, 0.1, 1}
	ColorBlue   = Color{0.2, 0.4, 1, 1}
)

func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// whitePixel is the 1x1 source image for solid triangle fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(3, 3)
	whitePixel.Fill(color.White)
}

// diskSegments is the polygon resolution used to draw disks.
const diskSegments = 48

// RegionPath returns the outline of f's region in world coordinates, or
// nil when f is not clickable.
func RegionPath(f *Frame) *vector.Path {
	if !f.Clickable() {
		return nil
	}
	m := *f.World
	var p vector.Path
	poly := func(pts ...Vec2) {
		for i, q := range pts {
			w := m.Apply(q)
			if i == 0 {
				p.MoveTo(float32(w.X), float32(w.Y))
			} else {
				p.LineTo(float32(w.X), float32(w.Y))
			}
		}
		p.Close()
	}
	box := func(b Box) {
		poly(Vec2{b.MinX, b.MinY}, Vec2{b.MaxX, b.MinY}, Vec2{b.MaxX, b.MaxY}, Vec2{b.MinX, b.MaxY})
	}
	disk := func(d Disk) {
		pts := make([]Vec2, diskSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / diskSegments
			pts[i] = Vec2{d.CX + d.R*math.Cos(a), d.CY + d.R*math.Sin(a)}
		}
		poly(pts...)
	}
	switch r := f.Region.(type) {
	case Box:
		box(r)
	case Boxes:
		for _, b := range r {
			box(b)
		}
	case Disk:
		disk(r)
	case Disks:
		for _, d := range r {
			disk(d)
		}
	}
	return &p
}

// FillRegion fills f's region onto dst. Frames that are not clickable
// draw nothing.
func FillRegion(dst *ebiten.Image, f *Frame, c Color) {
	p := RegionPath(f)
	if p == nil {
		return
	}
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	rgba := c.toRGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(rgba.R) / 255
		vs[i].ColorG = float32(rgba.G) / 255
		vs[i].ColorB = float32(rgba.B) / 255
		vs[i].ColorA = float32(rgba.A) / 255
	}
	src := whitePixel.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	dst.DrawTriangles(vs, is, src, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// DrawTree fills the region of every clickable frame in tree, parents
// before children. colorOf picks the color of each frame; nil draws
// everything white.
func DrawTree(dst *ebiten.Image, tree *Frame, colorOf func(*Frame) Color) {
	tree.Walk(func(n *Frame, _ int) bool {
		c := ColorWhite
		if colorOf != nil {
			c = colorOf(n)
		}
		FillRegion(dst, n, c)
		return true
	})
}
