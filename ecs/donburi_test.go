package ecs

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/stream"
)

func testTree() *frames.Frame {
	dot := frames.NewFrame("circle", "dot", frames.Translation(50, 50).Mul(frames.Scaling(10, 10)), frames.Disk{R: 1})
	return frames.NewContainer("root", frames.NewFrame("panel", "panel", frames.Identity, nil, dot))
}

func TestBridgePublishesHits(t *testing.T) {
	world := donburi.NewWorld()
	doc := frames.NewDocument()
	es := doc.Mount(frames.NewStaticElement(0, 0, 100, 100))
	snaps := stream.NewSubject[frames.Snapshot]()
	src := frames.NewFrameSource(es, snaps.Stream, frames.WithLogger(log.New(io.Discard)))
	snaps.Next(frames.Snapshot{Tree: testTree()})

	var received []HitEvent
	HitEventType.Subscribe(world, func(_ donburi.World, e HitEvent) {
		received = append(received, e)
	})

	b := NewBridge(world, src)
	doc.Click(50, 50)
	doc.Wheel(5, 5, 0, 1)

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}
	HitEventType.ProcessEvents(world)

	if len(received) != 4 {
		t.Fatalf("expected 4 events, got %d", len(received))
	}
	down := received[0]
	if down.Type != frames.EventMouseDown || down.FrameKey != "dot" || down.FrameType != "circle" {
		t.Errorf("mousedown = %+v", down)
	}
	if len(down.TreeKeys) != 2 || down.TreeKeys[0] != "panel" || down.TreeKeys[1] != "dot" {
		t.Errorf("TreeKeys = %v", down.TreeKeys)
	}
	if down.X != 50 || down.Y != 50 || down.Button != frames.ButtonLeft {
		t.Errorf("position/button = %v,%v/%v", down.X, down.Y, down.Button)
	}
	if received[1].Type != frames.EventMouseUp || received[2].Type != frames.EventClick {
		t.Errorf("order = %s, %s", received[1].Type, received[2].Type)
	}
	if wheel := received[3]; wheel.Type != frames.EventWheel || wheel.FrameKey != "" {
		t.Errorf("wheel = %+v, want a miss", wheel)
	}

	b.Close()
	doc.Click(50, 50)
	HitEventType.ProcessEvents(world)
	if len(received) != 4 {
		t.Errorf("closed bridge still published: %d events", len(received))
	}
}

func TestBridgeCustomTypes(t *testing.T) {
	world := donburi.NewWorld()
	doc := frames.NewDocument()
	doc.Mount(frames.NewStaticElement(0, 0, 100, 100))

	var types []frames.EventType
	HitEventType.Subscribe(world, func(_ donburi.World, e HitEvent) {
		types = append(types, e.Type)
	})
	b := NewBridge(world, doc, frames.EventMouseMove)
	defer b.Close()

	doc.Click(20, 20)
	HitEventType.ProcessEvents(world)

	if len(types) != 1 || types[0] != frames.EventMouseMove {
		t.Errorf("types = %v, want [mousemove]", types)
	}
}

func TestToHitEventDragging(t *testing.T) {
	start := &frames.Event{Type: frames.EventMouseDown, Target: frames.NewStaticElement(0, 0, 10, 10)}
	e := &frames.Event{Type: frames.EventMouseMove, ClientX: 4, ClientY: 6, IsDrag: start}

	h := ToHitEvent(e)
	if !h.Dragging {
		t.Error("drag event not marked as dragging")
	}
	if h.X != 4 || h.Y != 6 {
		t.Errorf("position = %v,%v, want 4,6", h.X, h.Y)
	}
	if h.FrameType != "" || h.FrameKey != "" {
		t.Error("unannotated event reported a frame")
	}
}
