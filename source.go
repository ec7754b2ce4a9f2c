package frames

import (
	"github.com/charmbracelet/log"

	"github.com/phanxgames/frames/stream"
)

// Snapshot is one application state update as seen by a FrameSource: the
// frame tree to hit-test against, plus the scope of the viewport instance
// that produced it.
type Snapshot struct {
	Scope Scope
	Tree  *Frame

	// Width and Height, when both positive, are the canvas size the state
	// asks for. See Driver.
	Width, Height int
}

// Predicate selects hit frames. It receives nil for events that hit
// nothing.
type Predicate func(f *Frame) bool

type sourceConfig struct {
	doc      EventSource
	deep     bool
	deepFeed *stream.Stream[bool]
	scope    Scope
	logger   *log.Logger
	debug    bool
	dragOpts []DragOption
}

// SourceOption configures a FrameSource.
type SourceOption func(*sourceConfig)

// WithDeep sets whether hit searches descend into the matched frame.
func WithDeep(deep bool) SourceOption {
	return func(c *sourceConfig) { c.deep = deep }
}

// WithDeepStream makes the deep flag follow the latest value of st.
func WithDeepStream(st *stream.Stream[bool]) SourceOption {
	return func(c *sourceConfig) { c.deepFeed = st }
}

// WithScope sets the viewport-instance scope. Snapshots with any other
// scope, including those of nested instances, are ignored.
func WithScope(scope ...string) SourceOption {
	return func(c *sourceConfig) { c.scope = Scope(scope).Append() }
}

// WithDocument sets the source of the global move and end events that
// drag gestures follow. It defaults to the event source itself.
func WithDocument(doc EventSource) SourceOption {
	return func(c *sourceConfig) { c.doc = doc }
}

// WithDragOptions sets the options Drag passes to CreateDrag.
func WithDragOptions(opts ...DragOption) SourceOption {
	return func(c *sourceConfig) { c.dragOpts = opts }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) SourceOption {
	return func(c *sourceConfig) { c.logger = l }
}

// WithDebug enables tree shape checks on every accepted snapshot.
func WithDebug(enabled bool) SourceOption {
	return func(c *sourceConfig) { c.debug = enabled }
}

// FrameSource correlates a DOM-like event source with the latest frame
// tree snapshot. Each event stream it hands out carries the hit frame and
// its ancestry keys.
//
// Streams are built once per event type and shared by every View, so the
// underlying source is subscribed at most once per type however many views
// ask for it.
type FrameSource struct {
	events EventSource
	trees  *stream.Stream[Snapshot]
	cfg    sourceConfig

	latest    Snapshot
	hasLatest bool
	deep      bool
	feeds     []*stream.Subscription

	err  error
	errs *stream.Subject[*Event]

	cache    map[EventType]*stream.Stream[*Event]
	disposed *stream.Subject[struct{}]
	dead     bool
}

// NewFrameSource binds events to the snapshot stream trees. The snapshot
// stream is subscribed immediately so that the latest tree is always
// known; call Dispose to release it. An error on trees fails every event
// stream of the source. A nil events source yields empty streams.
func NewFrameSource(events EventSource, trees *stream.Stream[Snapshot], opts ...SourceOption) *FrameSource {
	cfg := sourceConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	return newFrameSource(events, trees, cfg)
}

func newFrameSource(events EventSource, trees *stream.Stream[Snapshot], cfg sourceConfig) *FrameSource {
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	if cfg.doc == nil {
		cfg.doc = events
	}
	s := &FrameSource{
		events:   events,
		trees:    trees,
		cfg:      cfg,
		deep:     cfg.deep,
		cache:    make(map[EventType]*stream.Stream[*Event]),
		disposed: stream.NewSubject[struct{}](),
		errs:     stream.NewSubject[*Event](),
	}
	if trees != nil {
		s.feeds = append(s.feeds, trees.Subscribe(stream.Listener[Snapshot]{
			Next:  s.accept,
			Error: s.fail,
		}))
	}
	if cfg.deepFeed != nil {
		s.feeds = append(s.feeds, cfg.deepFeed.Subscribe(stream.Listener[bool]{
			Next: func(d bool) { s.deep = d },
		}))
	}
	return s
}

// accept records snap as the latest tree unless it belongs to another
// viewport instance or its keys are ambiguous.
func (s *FrameSource) accept(snap Snapshot) {
	if !snap.Scope.Equal(s.cfg.scope) {
		return
	}
	if err := ValidateTree(snap.Tree); err != nil {
		s.cfg.logger.Warn("snapshot rejected", "scope", snap.Scope, "err", err)
		return
	}
	if s.cfg.debug {
		debugCheckTree(s.cfg.logger, snap.Tree)
	}
	s.latest = snap
	s.hasLatest = true
}

func (s *FrameSource) fail(err error) {
	s.err = err
	s.cfg.logger.Error("snapshot stream failed", "scope", s.cfg.scope, "err", err)
	s.errs.Error(err)
}

// failing mirrors st and fails with the snapshot stream's error,
// immediately if it has already failed.
func (s *FrameSource) failing(st *stream.Stream[*Event]) *stream.Stream[*Event] {
	return stream.Create(func(em stream.Emitter[*Event]) func() {
		if s.err != nil {
			em.Error(s.err)
			return nil
		}
		errSub := s.errs.Subscribe(stream.Listener[*Event]{Error: em.Error})
		sub := st.Subscribe(stream.Listener[*Event]{
			Next:     em.Next,
			Error:    em.Error,
			Complete: em.Complete,
		})
		return func() {
			errSub.Unsubscribe()
			sub.Unsubscribe()
		}
	})
}

// Latest returns the most recent accepted snapshot.
func (s *FrameSource) Latest() (Snapshot, bool) {
	return s.latest, s.hasLatest
}

// Scope returns the viewport-instance scope of s.
func (s *FrameSource) Scope() Scope {
	return s.cfg.scope
}

// Events returns the annotated stream of events of type t. Events that
// arrive before the first snapshot are dropped.
func (s *FrameSource) Events(t EventType) *stream.Stream[*Event] {
	if s.dead || s.events == nil {
		return stream.Empty[*Event]()
	}
	if st, ok := s.cache[t]; ok {
		return st
	}
	raw := stream.Filter(s.events.Events(t), func(*Event) bool { return s.hasLatest })
	annotated := s.failing(stream.Map(raw, s.annotate))
	st := stream.EndWhen(annotated, s.disposed.Stream)
	s.cache[t] = st
	return st
}

func (s *FrameSource) annotate(e *Event) *Event {
	hit := GetOver(e, s.latest.Tree, s.deep)
	out := e.Clone()
	out.Frame = hit.Frame
	out.TreeKeys = hit.TreeKeys
	if hit.Frame != nil {
		s.cfg.logger.Debug("hit", "type", e.Type, "frame", hit.Frame.Type, "keys", hit.TreeKeys)
	}
	return out
}

// Drag returns the drag gestures started by mousedown events on s.
func (s *FrameSource) Drag() *stream.Stream[*stream.Stream[*Event]] {
	return s.drag(s.Events(EventMouseDown))
}

func (s *FrameSource) drag(starts *stream.Stream[*Event]) *stream.Stream[*stream.Stream[*Event]] {
	if s.dead {
		return stream.Empty[*stream.Stream[*Event]]()
	}
	opts := append([]DragOption{withDragEnd(s.disposed.Stream)}, s.cfg.dragOpts...)
	return CreateDrag(s.cfg.doc, starts, opts...)
}

// Select returns a view of s restricted to events whose hit frame
// satisfies pred. It panics if pred is nil.
func (s *FrameSource) Select(pred Predicate) *View {
	return (&View{src: s}).Select(pred)
}

// IsolateTree returns a view of s restricted to events whose ancestry keys
// start with keys. It panics on an empty key.
func (s *FrameSource) IsolateTree(keys ...string) *View {
	return (&View{src: s}).IsolateTree(keys...)
}

// Isolate returns a source for a nested viewport instance: same events,
// scope extended by segment. The child has its own stream cache and is
// disposed along with s.
func (s *FrameSource) Isolate(segment string) *FrameSource {
	if segment == "" {
		panic("frames: empty isolation scope segment")
	}
	cfg := s.cfg
	cfg.scope = s.cfg.scope.Append(segment)
	cfg.deepFeed = nil
	child := newFrameSource(s.events, s.trees, cfg)
	child.deep = s.deep
	if s.cfg.deepFeed != nil {
		child.feeds = append(child.feeds, s.cfg.deepFeed.Subscribe(stream.Listener[bool]{
			Next: func(d bool) { child.deep = d },
		}))
	}
	s.disposed.Subscribe(stream.Listener[struct{}]{Next: func(struct{}) { child.Dispose() }})
	return child
}

// Dispose ends every stream handed out by s and its views, including live
// drag gestures, and releases the snapshot subscription. Later calls to
// Events return empty streams.
func (s *FrameSource) Dispose() {
	if s.dead {
		return
	}
	s.dead = true
	for _, f := range s.feeds {
		f.Unsubscribe()
	}
	s.feeds = nil
	s.disposed.Next(struct{}{})
	s.cache = nil
}

// View is a filtered handle over a FrameSource. Views are immutable:
// Select and IsolateTree return new views that add to the existing
// restrictions.
type View struct {
	src   *FrameSource
	preds []Predicate
	keys  Scope
}

// Select returns a view that additionally requires pred. It panics if
// pred is nil.
func (v *View) Select(pred Predicate) *View {
	if pred == nil {
		panic("frames: Select requires a non-nil predicate")
	}
	preds := make([]Predicate, 0, len(v.preds)+1)
	preds = append(preds, v.preds...)
	return &View{src: v.src, preds: append(preds, pred), keys: v.keys}
}

// IsolateTree returns a view that additionally requires the ancestry keys
// to continue with keys. It panics on an empty key, since unkeyed frames
// never appear in ancestry paths.
func (v *View) IsolateTree(keys ...string) *View {
	for _, k := range keys {
		if k == "" {
			panic("frames: IsolateTree requires non-empty keys")
		}
	}
	return &View{src: v.src, preds: v.preds, keys: v.keys.Append(keys...)}
}

// Scope returns the ancestry-key prefix the view requires.
func (v *View) Scope() Scope {
	return v.keys
}

// Accepts reports whether an annotated event passes the view's filters.
func (v *View) Accepts(e *Event) bool {
	if !Scope(e.TreeKeys).HasPrefix(v.keys) {
		return false
	}
	for _, p := range v.preds {
		if !p(e.Frame) {
			return false
		}
	}
	return true
}

// Events returns the source's shared stream of type t, filtered by the
// view.
func (v *View) Events(t EventType) *stream.Stream[*Event] {
	return stream.Filter(v.src.Events(t), v.Accepts)
}

// Drag returns drag gestures started by mousedown events that pass the
// view. Follow-up events come from the document and are not filtered.
func (v *View) Drag() *stream.Stream[*stream.Stream[*Event]] {
	return v.src.drag(v.Events(EventMouseDown))
}
