package frames

import "math"

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity transform. It is the world matrix of the search
// root.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translation returns a matrix translating by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Rotation returns a counter-clockwise rotation by theta radians.
func Rotation(theta float64) Matrix {
	sin, cos := math.Sincos(theta)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// FromRows builds a matrix from the top two rows of a 3×3 matrix given in
// row-major order, the layout frame trees are usually written in.
func FromRows(rows [2][3]float64) Matrix {
	return Matrix{rows[0][0], rows[1][0], rows[0][1], rows[1][1], rows[0][2], rows[1][2]}
}

// Mul returns m * o: o is applied first.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Singular reports whether m collapses the plane (determinant ≈ 0).
func (m Matrix) Singular() bool {
	det := m.Det()
	return det > -1e-12 && det < 1e-12
}

// Invert returns the inverse of m.
// Returns Identity if m is singular.
func (m Matrix) Invert() Matrix {
	if m.Singular() {
		return Identity
	}
	det := m.Det()
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ApplyVector transforms a vector (translation is ignored).
func (m Matrix) ApplyVector(v Vec2) Vec2 {
	return Vec2{m[0]*v.X + m[2]*v.Y, m[1]*v.X + m[3]*v.Y}
}

// worldOf returns the world matrix of f, treating nil frames and
// non-positioned frames as the identity frame.
func worldOf(f *Frame) Matrix {
	if f == nil || f.World == nil {
		return Identity
	}
	return *f.World
}

// PointInFrame re-expresses p, given in from's coordinates, in to's
// coordinates. A nil frame stands for the identity frame.
func PointInFrame(p Vec2, from, to *Frame) Vec2 {
	return worldOf(to).Invert().Apply(worldOf(from).Apply(p))
}

// VectorInFrame re-expresses v, given in from's coordinates, in to's
// coordinates. A nil frame stands for the identity frame.
func VectorInFrame(v Vec2, from, to *Frame) Vec2 {
	return worldOf(to).Invert().ApplyVector(worldOf(from).ApplyVector(v))
}

// Transformed returns a copy of the subtree rooted at f with every world
// matrix pre-multiplied by t, so the whole subtree moves together. Nodes
// without a world matrix are copied as they are. f is not modified.
func Transformed(f *Frame, t Matrix) *Frame {
	if f == nil {
		return nil
	}
	out := *f
	if f.World != nil {
		w := t.Mul(*f.World)
		out.World = &w
	}
	if len(f.Children) > 0 {
		out.Children = make([]*Frame, len(f.Children))
		for i, c := range f.Children {
			out.Children[i] = Transformed(c, t)
		}
	}
	return &out
}

// Translated moves the subtree rooted at f by v, where v is expressed in
// the coordinates of frame in (nil for the identity frame).
func Translated(f *Frame, v Vec2, in *Frame) *Frame {
	w := VectorInFrame(v, in, nil)
	return Transformed(f, Translation(w.X, w.Y))
}

// Rotated rotates the subtree rooted at f by theta radians about f's own
// origin, measured in f's coordinates.
func Rotated(f *Frame, theta float64) *Frame {
	w := worldOf(f)
	return Transformed(f, w.Mul(Rotation(theta)).Mul(w.Invert()))
}

// Scaled scales the subtree rooted at f by (sx, sy) about f's own origin,
// along f's own axes.
func Scaled(f *Frame, sx, sy float64) *Frame {
	w := worldOf(f)
	return Transformed(f, w.Mul(Scaling(sx, sy)).Mul(w.Invert()))
}
