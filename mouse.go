package frames

import (
	"math"
	"time"

	"github.com/phanxgames/frames/stream"
)

const (
	// SingleClickWindow is how soon after its mousedown a click must arrive
	// to count as a single click.
	SingleClickWindow = 250 * time.Millisecond
	// SingleClickSlop is the largest per-axis pointer travel, in client
	// pixels, a single click may have.
	SingleClickSlop = 3.0
	// DoubleClickWindow is how long after a mousedown a second click still
	// counts as a double click.
	DoubleClickWindow = 350 * time.Millisecond
)

// Mouse derives pointer intents from an event source: raw events, button
// filtered presses, single and double clicks, and drags. Every method
// returns a fresh stream; the underlying source streams are shared.
//
// src is usually a FrameSource or a View, and doc the document that drags
// follow. The clock times the click windows.
type Mouse struct {
	src   EventSource
	doc   EventSource
	clock stream.Clock
	end   *stream.Stream[struct{}]
}

// NewMouse returns a Mouse over src. A nil doc disables drags; a nil src
// makes every stream empty.
func NewMouse(src, doc EventSource, clock stream.Clock) *Mouse {
	return &Mouse{src: src, doc: doc, clock: clock}
}

// Kill returns a Mouse whose streams, including live drag gestures, all
// end when end emits. Ends accumulate: a killed Mouse killed again ends
// on either stream.
func (m *Mouse) Kill(end *stream.Stream[struct{}]) *Mouse {
	out := *m
	if m.end == nil {
		out.end = end
	} else {
		out.end = stream.Merge(m.end, end)
	}
	return &out
}

func (m *Mouse) events(t EventType) *stream.Stream[*Event] {
	if m.src == nil {
		return stream.Empty[*Event]()
	}
	st := m.src.Events(t)
	if m.end != nil {
		st = stream.EndWhen(st, m.end)
	}
	return st
}

func (m *Mouse) button(t EventType, b MouseButton) *stream.Stream[*Event] {
	return stream.Filter(m.events(t), func(e *Event) bool { return e.Button == b })
}

func (m *Mouse) Click() *stream.Stream[*Event]      { return m.events(EventClick) }
func (m *Mouse) MouseMove() *stream.Stream[*Event]  { return m.events(EventMouseMove) }
func (m *Mouse) MouseLeave() *stream.Stream[*Event] { return m.events(EventMouseLeave) }
func (m *Mouse) Wheel() *stream.Stream[*Event]      { return m.events(EventWheel) }
func (m *Mouse) MouseDown() *stream.Stream[*Event]  { return m.events(EventMouseDown) }
func (m *Mouse) MouseUp() *stream.Stream[*Event]    { return m.events(EventMouseUp) }

func (m *Mouse) LeftDown() *stream.Stream[*Event]   { return m.button(EventMouseDown, ButtonLeft) }
func (m *Mouse) LeftUp() *stream.Stream[*Event]     { return m.button(EventMouseUp, ButtonLeft) }
func (m *Mouse) RightDown() *stream.Stream[*Event]  { return m.button(EventMouseDown, ButtonRight) }
func (m *Mouse) RightUp() *stream.Stream[*Event]    { return m.button(EventMouseUp, ButtonRight) }
func (m *Mouse) MiddleDown() *stream.Stream[*Event] { return m.button(EventMouseDown, ButtonMiddle) }
func (m *Mouse) MiddleUp() *stream.Stream[*Event]   { return m.button(EventMouseUp, ButtonMiddle) }

// SingleClick emits clicks that arrive within SingleClickWindow of the
// latest mousedown and that moved less than SingleClickSlop on both axes
// since it.
func (m *Mouse) SingleClick() *stream.Stream[*Event] {
	clicks := m.Click()
	return stream.Flatten(stream.Map(m.MouseDown(), func(down *Event) *stream.Stream[*Event] {
		window := stream.EndWhen(clicks, m.clock.After(SingleClickWindow))
		return stream.Filter(window, func(up *Event) bool {
			return math.Max(math.Abs(down.ClientX-up.ClientX), math.Abs(down.ClientY-up.ClientY)) < SingleClickSlop
		})
	}))
}

// DoubleClick emits every click after the first one inside a window of
// DoubleClickWindow. The window opens on a mousedown; mousedowns while it
// is open do not reopen it.
func (m *Mouse) DoubleClick() *stream.Stream[*Event] {
	window := stream.Drop(stream.EndWhen(m.Click(), m.clock.After(DoubleClickWindow)), 1)
	return stream.Flatten(stream.MapTo(m.MouseDown(), window))
}

// Drag returns the drag gestures started by mousedown on the source.
func (m *Mouse) Drag() *stream.Stream[*stream.Stream[*Event]] {
	var opts []DragOption
	if m.end != nil {
		opts = append(opts, withDragEnd(m.end))
	}
	return CreateDrag(m.doc, m.MouseDown(), opts...)
}
