// Package orbit is the demo application: a yellow disk carrying a blue
// moon on a 256×256 canvas.
//
// Dragging the yellow disk moves both; dragging the moon swings it around
// the yellow disk. The wheel over the yellow disk resizes it, and a double
// click eases everything back to where it started.
package orbit

import (
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/stream"
)

const (
	// Size is the canvas size, in pixels, the app asks for.
	Size = 256

	resetSeconds = 0.4
	wheelFactor  = 1.1
)

var background = color.RGBA{0x66, 0x66, 0x66, 0xff}

// Initial returns the starting tree: an unclickable window frame with a
// y-up coordinate system, then the yellow disk and its blue moon.
func Initial() *frames.Frame {
	window := &frames.Frame{Type: "window"}
	w := frames.FromRows([2][3]float64{{128, 0, 128}, {0, -128, 128}})
	window.World = &w

	blue := frames.NewFrame("circle", "blue",
		frames.FromRows([2][3]float64{{10, 0, 128}, {0, -10, 26}}),
		frames.Disk{R: 1})
	yellow := frames.NewFrame("circle", "yellow",
		frames.FromRows([2][3]float64{{25, 0, 128}, {0, -25, 128}}),
		frames.Disk{R: 1}, blue)
	return frames.NewContainer("root", window, yellow)
}

// Shift moves the yellow subtree by the event's pointer movement.
func Shift(state *frames.Frame, e *frames.Event) *frames.Frame {
	return state.UpdateChild("yellow", func(y *frames.Frame) *frames.Frame {
		return frames.Translated(y, frames.Vec2{X: e.MovementX, Y: e.MovementY}, nil)
	})
}

// Swing rotates the yellow subtree about the yellow origin so that the
// moon points at the event position.
func Swing(state *frames.Frame, e *frames.Event) *frames.Frame {
	yellow := state.ChildByKey("yellow")
	blue := yellow.ChildByKey("blue")
	if blue == nil {
		return state
	}
	from := frames.PointInFrame(frames.Vec2{}, blue, yellow)
	to := frames.PointInFrame(frames.RelativeMousePosition(e), nil, yellow)
	theta := signedAngle(from, to)
	if theta == 0 {
		return state
	}
	return state.UpdateChild("yellow", func(y *frames.Frame) *frames.Frame {
		return frames.Rotated(y, theta)
	})
}

// Zoom scales the yellow subtree up for wheel deltas that scroll up and
// down for deltas that scroll down.
func Zoom(state *frames.Frame, e *frames.Event) *frames.Frame {
	if e.DeltaY == 0 {
		return state
	}
	k := wheelFactor
	if e.DeltaY > 0 {
		k = 1 / wheelFactor
	}
	return state.UpdateChild("yellow", func(y *frames.Frame) *frames.Frame {
		return frames.Scaled(y, k, k)
	})
}

// signedAngle returns the angle that rotates a onto b, or 0 when either
// is degenerate.
func signedAngle(a, b frames.Vec2) float64 {
	na, nb := math.Hypot(a.X, a.Y), math.Hypot(b.X, b.Y)
	if na == 0 || nb == 0 {
		return 0
	}
	cos := (a.X*b.X + a.Y*b.Y) / (na * nb)
	theta := math.Acos(math.Max(-1, math.Min(1, cos)))
	if a.X*b.Y-a.Y*b.X < 0 {
		theta = -theta
	}
	return theta
}

// Render draws a snapshot of the app.
func Render(dst *ebiten.Image, s frames.Snapshot) {
	dst.Fill(background)
	frames.DrawTree(dst, s.Tree, func(f *frames.Frame) frames.Color {
		switch f.Key {
		case "yellow":
			return frames.ColorYellow
		case "blue":
			return frames.ColorBlue
		}
		return frames.ColorWhite
	})
}

// Stats counts what the app has reacted to.
type Stats struct {
	Shifts       int
	Swings       int
	Zooms        int
	DoubleClicks int
	Resets       int
}

// Options configures an App.
type Options struct {
	// Scope identifies this app instance among viewports sharing a
	// document.
	Scope string
	// Events is the canvas event source; Doc is the document drags follow.
	Events frames.EventSource
	Doc    frames.EventSource
	Clock  stream.Clock

	// Bus, when set, is a snapshot stream shared with other instances. Each
	// instance only hit-tests and renders its own snapshots.
	Bus *stream.Subject[frames.Snapshot]

	Deep     bool
	DeadZone float64
	Debug    bool
	Logger   *log.Logger
}

// App wires a FrameSource to the state loop: annotated events become
// reducers, reducers fold into trees, trees become snapshots that the
// source hit-tests the next events against.
type App struct {
	Source *frames.FrameSource
	Mouse  *frames.Mouse

	opts    Options
	states  *stream.Subject[frames.Snapshot]
	manual  *stream.Subject[frames.Reducer]
	state   *frames.Frame
	tween   *frames.FrameTween
	subs    []*stream.Subscription
	stats   Stats
	logger  *log.Logger
	started bool
}

// New builds an app. Nothing is subscribed until Start.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	bus := opts.Bus
	if bus == nil {
		bus = stream.NewSubject[frames.Snapshot]()
	}
	a := &App{
		opts:   opts,
		states: bus,
		manual: stream.NewSubject[frames.Reducer](),
		logger: logger.With("app", opts.Scope),
	}
	a.Source = frames.NewFrameSource(opts.Events, a.states.Stream,
		frames.WithScope(opts.Scope),
		frames.WithDeep(opts.Deep),
		frames.WithDocument(opts.Doc),
		frames.WithDragOptions(frames.WithDeadZone(opts.DeadZone)),
		frames.WithLogger(a.logger),
		frames.WithDebug(opts.Debug),
	)
	a.Mouse = frames.NewMouse(a.Source, opts.Doc, opts.Clock)
	return a
}

// States returns the snapshots this instance produces.
func (a *App) States() *stream.Stream[frames.Snapshot] {
	scope := a.Source.Scope()
	return stream.Filter(a.states.Stream, func(s frames.Snapshot) bool {
		return s.Scope.Equal(scope)
	})
}

// State returns the current tree.
func (a *App) State() *frames.Frame {
	return a.state
}

// Stats returns the counters so far.
func (a *App) Stats() Stats {
	return a.stats
}

// Start subscribes the state loop and emits the initial snapshot.
func (a *App) Start() {
	if a.started {
		return
	}
	a.started = true

	circles := a.Source.Select(func(f *frames.Frame) bool {
		return f != nil && f.Type == "circle"
	})
	moves := stream.Filter(stream.Flatten(circles.Drag()), func(e *frames.Event) bool {
		return e.IsDrag != nil && e.IsDrag.Frame != nil
	})
	dragged := stream.Map(moves, func(e *frames.Event) frames.Reducer {
		if e.IsDrag.Frame.Key == "yellow" {
			a.stats.Shifts++
			return func(s *frames.Frame) *frames.Frame { return Shift(s, e) }
		}
		a.stats.Swings++
		return func(s *frames.Frame) *frames.Frame { return Swing(s, e) }
	})
	zoomed := stream.Map(a.Source.IsolateTree("yellow").Events(frames.EventWheel), func(e *frames.Event) frames.Reducer {
		a.stats.Zooms++
		return func(s *frames.Frame) *frames.Frame { return Zoom(s, e) }
	})

	reducers := stream.Merge(dragged, zoomed, a.manual.Stream)
	a.subs = append(a.subs, frames.Fold(Initial(), reducers).Subscribe(stream.Listener[*frames.Frame]{
		Next: a.commit,
		Error: func(err error) {
			a.logger.Error("state loop failed", "err", err)
		},
	}))
	a.subs = append(a.subs, a.Mouse.DoubleClick().Subscribe(stream.Listener[*frames.Event]{
		Next: func(*frames.Event) {
			a.stats.DoubleClicks++
			a.reset()
		},
	}))
}

func (a *App) commit(tree *frames.Frame) {
	a.state = tree
	a.states.Next(frames.Snapshot{
		Scope:  frames.Scope{a.opts.Scope},
		Tree:   tree,
		Width:  Size,
		Height: Size,
	})
}

// reset starts easing the yellow subtree back to its starting place.
func (a *App) reset() {
	yellow := a.state.ChildByKey("yellow")
	home := Initial().ChildByKey("yellow")
	if yellow == nil || home == nil {
		return
	}
	a.stats.Resets++
	a.tween = frames.TweenFrame(yellow, home.Matrix(), resetSeconds, ease.OutCubic)
	a.logger.Debug("reset started")
}

// Tick advances running animations by dt.
func (a *App) Tick(dt time.Duration) {
	if a.tween == nil {
		return
	}
	next := a.tween.Update(float32(dt.Seconds()))
	if a.tween.Done() {
		a.tween = nil
	}
	a.manual.Next(func(s *frames.Frame) *frames.Frame {
		return s.UpdateChild("yellow", func(*frames.Frame) *frames.Frame { return next })
	})
}

// Animating reports whether a reset is in progress.
func (a *App) Animating() bool {
	return a.tween != nil
}

// Stop releases every subscription and disposes the frame source.
func (a *App) Stop() {
	for _, s := range a.subs {
		s.Unsubscribe()
	}
	a.subs = nil
	a.Source.Dispose()
}
