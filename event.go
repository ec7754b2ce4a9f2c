package frames

import "github.com/phanxgames/frames/stream"

// EventType names a DOM-like pointer event.
type EventType string

const (
	EventMouseDown  EventType = "mousedown"  // a button was pressed over the target
	EventMouseUp    EventType = "mouseup"    // a button was released
	EventMouseMove  EventType = "mousemove"  // the pointer moved
	EventMouseLeave EventType = "mouseleave" // the pointer left the target
	EventClick      EventType = "click"      // press and release over the same target
	EventWheel      EventType = "wheel"      // the wheel turned; see Event.DeltaX/DeltaY
)

// MouseButton is the DOM `which` value of a mouse event.
type MouseButton uint8

const (
	ButtonNone   MouseButton = iota // no button (moves, wheel)
	ButtonLeft                      // primary button
	ButtonMiddle                    // middle button / wheel click
	ButtonRight                     // secondary button
)

// Rect is a bounding rectangle in client (screen) coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Element is the part of a DOM element the hit-testing layer needs: where
// it sits on screen and how many pixels it has.
type Element interface {
	BoundingClientRect() Rect
	Width() int
	Height() int
}

// Event is a DOM-like pointer event. Streams in this package emit
// annotated copies; a received Event is never modified.
type Event struct {
	Type EventType

	ClientX, ClientY     float64
	MovementX, MovementY float64
	DeltaX, DeltaY       float64 // wheel only

	Button MouseButton
	Target Element

	// IsDrag is the mousedown that started the gesture this event belongs
	// to. Set on events emitted by drag streams.
	IsDrag *Event

	// Frame and TreeKeys are the hit-search result, set by FrameSource.
	Frame    *Frame
	TreeKeys []string
}

// Clone returns a shallow copy of e.
func (e *Event) Clone() *Event {
	out := *e
	return &out
}

// EventSource produces event streams by type, like a DOM element or the
// document.
type EventSource interface {
	Events(t EventType) *stream.Stream[*Event]
}

// Scope is a hierarchical path of identifiers.
type Scope []string

// HasPrefix reports whether prefix is a leading sub-path of s. Every scope
// has the empty scope as prefix.
func (s Scope) HasPrefix(prefix Scope) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, seg := range prefix {
		if s[i] != seg {
			return false
		}
	}
	return true
}

// Equal reports whether s and o name the same path.
func (s Scope) Equal(o Scope) bool {
	return len(s) == len(o) && s.HasPrefix(o)
}

// Append returns a new scope with segs appended; s is not modified.
func (s Scope) Append(segs ...string) Scope {
	out := make(Scope, 0, len(s)+len(segs))
	out = append(out, s...)
	return append(out, segs...)
}
