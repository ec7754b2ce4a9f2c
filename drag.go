package frames

import (
	"math"

	"github.com/phanxgames/frames/stream"
)

type dragConfig struct {
	moveType EventType
	endType  EventType
	deadZone float64
	end      *stream.Stream[struct{}]
}

// DragOption configures CreateDrag.
type DragOption func(*dragConfig)

// WithDragTypes sets the document event types that continue and finish a
// gesture. The defaults are mousemove and mouseup.
func WithDragTypes(move, end EventType) DragOption {
	return func(c *dragConfig) {
		c.moveType = move
		c.endType = end
	}
}

// WithDeadZone makes moves that stay within px pixels (Euclidean, in client
// coordinates) of the gesture's start not count as movement. Once one move
// leaves the dead zone the gesture is a drag and every later move is
// emitted.
func WithDeadZone(px float64) DragOption {
	return func(c *dragConfig) {
		c.deadZone = px
	}
}

// withDragEnd ends the outer stream and every live gesture when end emits.
func withDragEnd(end *stream.Stream[struct{}]) DragOption {
	return func(c *dragConfig) {
		c.end = end
	}
}

// CreateDrag turns a stream of gesture starts (usually mousedown) into a
// stream of gestures. Each gesture is a stream of the document's move and
// end events that follow its start, tagged with IsDrag = start:
//
//	starts:  --d-----------------d-------->
//	moves:   -m---m--m-m---m-------------->
//	ends:    -----------e-----------e----->
//	output:  --d-----------------d-------->
//	            \                 \
//	             -m--m-m-e|        ----|
//
// A gesture stays silent until its first move, so a click (start then end
// with no move) yields an empty gesture; a non-empty gesture starts with a
// move and ends with the end event. Gestures that overlap run
// independently. The document listeners of a gesture are released when it
// ends or its subscriber leaves.
//
// A nil doc means there is no interactive document; the result is then an
// empty stream.
func CreateDrag(doc EventSource, starts *stream.Stream[*Event], opts ...DragOption) *stream.Stream[*stream.Stream[*Event]] {
	if doc == nil {
		return stream.Empty[*stream.Stream[*Event]]()
	}
	cfg := dragConfig{moveType: EventMouseMove, endType: EventMouseUp}
	for _, o := range opts {
		o(&cfg)
	}

	gestures := stream.Map(starts, func(start *Event) *stream.Stream[*Event] {
		g := gesture(doc, start, cfg)
		if cfg.end != nil {
			g = stream.EndWhen(g, cfg.end)
		}
		return g
	})
	if cfg.end != nil {
		gestures = stream.EndWhen(gestures, cfg.end)
	}
	return gestures
}

// gesture follows one start event. moved lives in the closure, so every
// gesture carries its own suppression state.
func gesture(doc EventSource, start *Event, cfg dragConfig) *stream.Stream[*Event] {
	moves := doc.Events(cfg.moveType)
	ends := doc.Events(cfg.endType)

	return stream.Create(func(em stream.Emitter[*Event]) func() {
		moved := false
		var moveSub, endSub *stream.Subscription

		moveSub = moves.Subscribe(stream.Listener[*Event]{
			Next: func(e *Event) {
				if !moved {
					if !outsideDeadZone(start, e, cfg.deadZone) {
						return
					}
					moved = true
				}
				em.Next(tagDrag(start, e))
			},
			Error: em.Error,
		})
		endSub = ends.Subscribe(stream.Listener[*Event]{
			Next: func(e *Event) {
				if moved {
					em.Next(tagDrag(start, e))
				}
				em.Complete()
			},
			Error:    em.Error,
			Complete: em.Complete,
		})
		return func() {
			moveSub.Unsubscribe()
			endSub.Unsubscribe()
		}
	})
}

func outsideDeadZone(start, e *Event, px float64) bool {
	if px <= 0 {
		return true
	}
	dx := e.ClientX - start.ClientX
	dy := e.ClientY - start.ClientY
	return math.Sqrt(dx*dx+dy*dy) > px
}

func tagDrag(start, e *Event) *Event {
	out := e.Clone()
	out.IsDrag = start
	return out
}
