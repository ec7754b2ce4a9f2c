// Package frames hit-tests pointer input against frame trees drawn on a
// canvas.
//
// A frame tree is an immutable description of what is on screen: each
// [Frame] may carry a world matrix (its local→world transform) and a
// clickable [Region] expressed in its own coordinates. Applications emit a
// new tree, wrapped in a [Snapshot], whenever their state changes.
//
// A [FrameSource] correlates a DOM-like [EventSource] with the latest
// snapshot. Every event it hands out is a copy annotated with the frame
// under the pointer and the keys of that frame's keyed ancestors:
//
//	src := frames.NewFrameSource(canvasEvents, snapshots,
//		frames.WithDeep(true),
//		frames.WithDocument(doc),
//	)
//	circles := src.Select(func(f *frames.Frame) bool {
//		return f != nil && f.Type == "circle"
//	})
//	downs := circles.Events(frames.EventMouseDown)
//	moons := src.IsolateTree("sun", "moon").Events(frames.EventClick)
//
// Views ([View]) are cheap: they all share the source's per-type streams,
// so the underlying event source is subscribed once per event type.
//
// # Drags
//
// [CreateDrag] turns a stream of mousedown events into a stream of
// gestures, each following the document's mousemove and mouseup events
// until the button is released. Clicks produce empty gestures. Every event
// of a gesture carries the starting mousedown in [Event.IsDrag], which is
// how [RelativeMousePosition] keeps measuring against the canvas the drag
// began on.
//
// # Mouse intents
//
// [Mouse] derives single clicks, double clicks and button-filtered
// presses from any event source, timed by a [stream.Clock].
//
// # Rendering
//
// [Canvas] wraps an Ebitengine image and reports its on-screen bounds.
// [Viewport] runs insert and post-patch hooks and renders the latest state
// whenever the state or the render function changes; [Driver] is the
// plain state-to-canvas sink. The ebitenhost package runs canvases inside
// an Ebitengine game loop.
//
// # Testing
//
// [Document] is an in-memory document with Press, Move, Release, Click,
// Drag and Wheel helpers, and [LoadTestScript] replays JSON input scripts
// into it one event per frame.
//
// Everything in this package is single-threaded: events, snapshots and
// stream signals must all be delivered from one goroutine.
package frames
