package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/stream"
)

// HitEvent is the Donburi event published for every bridged pointer event.
type HitEvent struct {
	Type frames.EventType
	// FrameType and FrameKey describe the hit frame; both are empty when the
	// event hit nothing.
	FrameType string
	FrameKey  string
	TreeKeys  []string
	// X and Y are the pointer position in canvas pixels.
	X, Y     float64
	Button   frames.MouseButton
	Dragging bool
}

// HitEventType is the Donburi event type for bridged pointer events.
var HitEventType = events.NewEventType[HitEvent]()

// DefaultTypes are the event types NewBridge forwards when none are given.
var DefaultTypes = []frames.EventType{
	frames.EventMouseDown,
	frames.EventMouseUp,
	frames.EventClick,
	frames.EventWheel,
}

// Bridge forwards annotated events into a Donburi world until closed.
type Bridge struct {
	world donburi.World
	subs  []*stream.Subscription
}

// NewBridge subscribes to src for each of types (DefaultTypes when empty)
// and publishes every event to HitEventType in world.
func NewBridge(world donburi.World, src frames.EventSource, types ...frames.EventType) *Bridge {
	if len(types) == 0 {
		types = DefaultTypes
	}
	b := &Bridge{world: world}
	for _, t := range types {
		b.subs = append(b.subs, src.Events(t).Subscribe(stream.Listener[*frames.Event]{
			Next: b.Publish,
		}))
	}
	return b
}

// Publish queues e as a HitEvent.
func (b *Bridge) Publish(e *frames.Event) {
	HitEventType.Publish(b.world, ToHitEvent(e))
}

// Close stops forwarding.
func (b *Bridge) Close() {
	for _, s := range b.subs {
		s.Unsubscribe()
	}
	b.subs = nil
}

// ToHitEvent converts an annotated event.
func ToHitEvent(e *frames.Event) HitEvent {
	p := frames.RelativeMousePosition(e)
	h := HitEvent{
		Type:     e.Type,
		TreeKeys: e.TreeKeys,
		X:        p.X,
		Y:        p.Y,
		Button:   e.Button,
		Dragging: e.IsDrag != nil,
	}
	if e.Frame != nil {
		h.FrameType = e.Frame.Type
		h.FrameKey = e.Frame.Key
	}
	return h
}
