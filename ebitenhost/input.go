package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/frames"
)

var polledButtons = [...]struct {
	eb ebiten.MouseButton
	fr frames.MouseButton
}{
	{ebiten.MouseButtonLeft, frames.ButtonLeft},
	{ebiten.MouseButtonMiddle, frames.ButtonMiddle},
	{ebiten.MouseButtonRight, frames.ButtonRight},
}

// pointerSample is one tick of raw mouse state.
type pointerSample struct {
	x, y     float64
	pressed  [len(polledButtons)]bool
	released [len(polledButtons)]bool
	wheelX   float64
	wheelY   float64
}

// Input translates Ebitengine mouse state into document events.
type Input struct {
	doc    *frames.Document
	primed bool
	lastX  float64
	lastY  float64
}

// NewInput returns an Input feeding doc.
func NewInput(doc *frames.Document) *Input {
	return &Input{doc: doc}
}

// Poll reads the mouse and dispatches the events for this tick.
func (in *Input) Poll() {
	mx, my := ebiten.CursorPosition()
	s := pointerSample{x: float64(mx), y: float64(my)}
	for i, b := range polledButtons {
		s.pressed[i] = inpututil.IsMouseButtonJustPressed(b.eb)
		s.released[i] = inpututil.IsMouseButtonJustReleased(b.eb)
	}
	s.wheelX, s.wheelY = ebiten.Wheel()
	in.apply(s)
}

// apply dispatches one sample: the move first, then presses, releases and
// the wheel.
func (in *Input) apply(s pointerSample) {
	if !in.primed || s.x != in.lastX || s.y != in.lastY {
		in.doc.Move(s.x, s.y)
		in.lastX, in.lastY = s.x, s.y
		in.primed = true
	}
	for i, b := range polledButtons {
		if s.pressed[i] {
			in.doc.Press(s.x, s.y, b.fr)
		}
	}
	for i, b := range polledButtons {
		if s.released[i] {
			in.doc.Release(s.x, s.y, b.fr)
		}
	}
	if s.wheelX != 0 || s.wheelY != 0 {
		// Ebitengine's wheel offsets are positive upward; DOM deltas downward.
		in.doc.Wheel(s.x, s.y, -s.wheelX, -s.wheelY)
	}
}
