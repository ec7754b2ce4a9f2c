package frames

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MatrixTween interpolates the six entries of a Matrix independently.
// Call Update(dt) each frame; there is no global animation manager.
//
// Entry-wise interpolation is exact for translations and axis scalings.
// A rotation passes through sheared matrices in between; use a rotation
// angle tween instead when that matters.
type MatrixTween struct {
	tweens  [6]*gween.Tween
	current Matrix
	Done    bool
}

// TweenMatrix creates a tween from one matrix to another over duration
// seconds.
func TweenMatrix(from, to Matrix, duration float32, fn ease.TweenFunc) *MatrixTween {
	mt := &MatrixTween{current: from}
	for i := range mt.tweens {
		mt.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return mt
}

// Update advances the tween by dt seconds and returns the current matrix.
func (mt *MatrixTween) Update(dt float32) Matrix {
	if mt.Done {
		return mt.current
	}
	allDone := true
	for i, tw := range mt.tweens {
		val, finished := tw.Update(dt)
		mt.current[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	mt.Done = allDone
	return mt.current
}

// Current returns the matrix reached so far.
func (mt *MatrixTween) Current() Matrix {
	return mt.current
}

// FrameTween moves a frame subtree from its current world matrix to a
// target one. Every Update returns a new snapshot of the subtree; the
// original frame is never modified.
type FrameTween struct {
	frame *Frame
	inv   Matrix
	mt    *MatrixTween
}

// TweenFrame creates a tween carrying f's subtree to the world matrix to.
// Descendants keep their placement relative to f.
func TweenFrame(f *Frame, to Matrix, duration float32, fn ease.TweenFunc) *FrameTween {
	from := f.Matrix()
	return &FrameTween{
		frame: f,
		inv:   from.Invert(),
		mt:    TweenMatrix(from, to, duration, fn),
	}
}

// Update advances the tween by dt seconds and returns the subtree at its
// new position.
func (ft *FrameTween) Update(dt float32) *Frame {
	m := ft.mt.Update(dt)
	return Transformed(ft.frame, m.Mul(ft.inv))
}

// Done reports whether the tween has reached its target.
func (ft *FrameTween) Done() bool {
	return ft.mt.Done
}
