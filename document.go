package frames

import "github.com/phanxgames/frames/stream"

// StaticElement is an Element with fixed screen bounds and pixel size.
type StaticElement struct {
	Bounds Rect
	W, H   int
}

// NewStaticElement returns an element at (x, y) whose layout size equals
// its pixel size w×h.
func NewStaticElement(x, y float64, w, h int) *StaticElement {
	return &StaticElement{
		Bounds: Rect{Left: x, Top: y, Right: x + float64(w), Bottom: y + float64(h)},
		W:      w,
		H:      h,
	}
}

func (e *StaticElement) BoundingClientRect() Rect { return e.Bounds }
func (e *StaticElement) Width() int               { return e.W }
func (e *StaticElement) Height() int              { return e.H }

// Contains reports whether (x, y) lies in r. Right and bottom edges are
// excluded.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Document is an in-memory stand-in for a DOM document. It fans events out
// by type to its listeners and routes pointer input to the topmost mounted
// element under the pointer.
//
// The injection helpers (Press, Move, Release, Click, Drag, Wheel) produce
// the same event sequences a browser would, so code written against a real
// host can be driven from tests and scripts.
type Document struct {
	subjects map[EventType]*stream.Subject[*Event]
	elements []*ElementSource

	x, y    float64
	hover   Element
	pressed MouseButton
	downAt  Element
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{subjects: make(map[EventType]*stream.Subject[*Event])}
}

func (d *Document) subject(t EventType) *stream.Subject[*Event] {
	s, ok := d.subjects[t]
	if !ok {
		s = stream.NewSubject[*Event]()
		d.subjects[t] = s
	}
	return s
}

// Events implements EventSource. The document sees every event, whatever
// its target.
func (d *Document) Events(t EventType) *stream.Stream[*Event] {
	return d.subject(t).Stream
}

// Listeners returns how many listeners are attached for t.
func (d *Document) Listeners(t EventType) int {
	if s, ok := d.subjects[t]; ok {
		return s.Listeners()
	}
	return 0
}

// Dispatch delivers e to every listener of e.Type.
func (d *Document) Dispatch(e *Event) {
	d.subject(e.Type).Next(e)
}

// Mount places el in the document, above previously mounted elements, and
// returns the source of events targeted at it.
func (d *Document) Mount(el Element) *ElementSource {
	src := &ElementSource{doc: d, el: el, cache: make(map[EventType]*stream.Stream[*Event])}
	d.elements = append(d.elements, src)
	return src
}

func (d *Document) unmount(src *ElementSource) {
	for i, e := range d.elements {
		if e == src {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			break
		}
	}
	if d.hover == src.el {
		d.hover = nil
	}
}

// Contains reports whether el is mounted.
func (d *Document) Contains(el Element) bool {
	for _, e := range d.elements {
		if e.el == el {
			return true
		}
	}
	return false
}

// elementAt returns the topmost mounted element containing (x, y).
func (d *Document) elementAt(x, y float64) Element {
	for i := len(d.elements) - 1; i >= 0; i-- {
		el := d.elements[i].el
		if el.BoundingClientRect().Contains(x, y) {
			return el
		}
	}
	return nil
}

func (d *Document) pointer(t EventType, x, y float64, b MouseButton) *Event {
	e := &Event{
		Type:      t,
		ClientX:   x,
		ClientY:   y,
		MovementX: x - d.x,
		MovementY: y - d.y,
		Button:    b,
		Target:    d.elementAt(x, y),
	}
	d.x, d.y = x, y
	return e
}

// Pointer returns the last pointer position.
func (d *Document) Pointer() (x, y float64) {
	return d.x, d.y
}

// Move moves the pointer to (x, y). Leaving an element dispatches a
// mouseleave targeted at it before the mousemove.
func (d *Document) Move(x, y float64) {
	e := d.pointer(EventMouseMove, x, y, ButtonNone)
	if d.hover != nil && d.hover != e.Target {
		d.Dispatch(&Event{Type: EventMouseLeave, ClientX: x, ClientY: y, Target: d.hover})
	}
	d.hover = e.Target
	d.Dispatch(e)
}

// Press presses button b at (x, y).
func (d *Document) Press(x, y float64, b MouseButton) {
	if d.x != x || d.y != y {
		d.Move(x, y)
	}
	e := d.pointer(EventMouseDown, x, y, b)
	d.pressed = b
	d.downAt = e.Target
	d.Dispatch(e)
}

// Release releases button b at (x, y). A release over the element that
// received the press also dispatches a click.
func (d *Document) Release(x, y float64, b MouseButton) {
	if d.x != x || d.y != y {
		d.Move(x, y)
	}
	e := d.pointer(EventMouseUp, x, y, b)
	d.Dispatch(e)
	if b == d.pressed && e.Target != nil && e.Target == d.downAt {
		d.Dispatch(&Event{Type: EventClick, ClientX: x, ClientY: y, Button: b, Target: e.Target})
	}
	d.pressed = ButtonNone
	d.downAt = nil
}

// Click presses and releases the left button at (x, y).
func (d *Document) Click(x, y float64) {
	d.Press(x, y, ButtonLeft)
	d.Release(x, y, ButtonLeft)
}

// Drag presses the left button at from, moves to to in steps evenly
// spaced moves, and releases there.
func (d *Document) Drag(from, to Vec2, steps int) {
	if steps < 1 {
		steps = 1
	}
	d.Press(from.X, from.Y, ButtonLeft)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d.Move(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	d.Release(to.X, to.Y, ButtonLeft)
}

// Wheel turns the wheel by (dx, dy) with the pointer at (x, y).
func (d *Document) Wheel(x, y, dx, dy float64) {
	e := d.pointer(EventWheel, x, y, ButtonNone)
	e.DeltaX, e.DeltaY = dx, dy
	d.Dispatch(e)
}

// ElementSource is the event source of one mounted element: the document's
// events whose target is the element.
type ElementSource struct {
	doc   *Document
	el    Element
	cache map[EventType]*stream.Stream[*Event]
}

// Element returns the mounted element.
func (s *ElementSource) Element() Element {
	return s.el
}

// Events implements EventSource.
func (s *ElementSource) Events(t EventType) *stream.Stream[*Event] {
	if st, ok := s.cache[t]; ok {
		return st
	}
	st := stream.Filter(s.doc.Events(t), func(e *Event) bool { return e.Target == s.el })
	s.cache[t] = st
	return st
}

// Unmount removes the element from the document. Its streams stay valid
// but no longer receive pointer input.
func (s *ElementSource) Unmount() {
	s.doc.unmount(s)
}
