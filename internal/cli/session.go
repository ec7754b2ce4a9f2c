package cli

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/ecs"
	"github.com/phanxgames/frames/internal/orbit"
	"github.com/phanxgames/frames/stream"
)

// session is a set of orbit apps sharing one document, plus the ECS world
// their clicks are bridged into.
type session struct {
	apps    []*orbit.App
	world   donburi.World
	bridges []*ecs.Bridge
	hits    map[string]int
	logger  *log.Logger
}

// mountFunc returns the event source for the i-th app's canvas.
type mountFunc func(i int) frames.EventSource

func newSession(cfg Config, doc *frames.Document, clock stream.Clock, mount mountFunc, logger *log.Logger) *session {
	s := &session{
		world:  donburi.NewWorld(),
		hits:   make(map[string]int),
		logger: logger,
	}
	ecs.HitEventType.Subscribe(s.world, func(_ donburi.World, e ecs.HitEvent) {
		key := e.FrameKey
		if key == "" {
			key = "(none)"
		}
		s.hits[key]++
	})
	bus := stream.NewSubject[frames.Snapshot]()
	for i := 0; i < cfg.Instances; i++ {
		events := mount(i)
		app := orbit.New(orbit.Options{
			Scope:    uuid.New().String(),
			Events:   events,
			Doc:      doc,
			Clock:    clock,
			Bus:      bus,
			Deep:     cfg.Deep,
			DeadZone: cfg.DeadZone,
			Debug:    cfg.Debug,
			Logger:   logger,
		})
		s.apps = append(s.apps, app)
		s.bridges = append(s.bridges, ecs.NewBridge(s.world, app.Source, frames.EventClick))
	}
	return s
}

func (s *session) start() {
	for _, a := range s.apps {
		a.Start()
	}
}

// tick advances animations and drains bridged events.
func (s *session) tick(dt time.Duration) {
	for _, a := range s.apps {
		a.Tick(dt)
	}
	ecs.HitEventType.ProcessEvents(s.world)
}

func (s *session) animating() bool {
	for _, a := range s.apps {
		if a.Animating() {
			return true
		}
	}
	return false
}

func (s *session) stop() {
	for _, b := range s.bridges {
		b.Close()
	}
	for _, a := range s.apps {
		a.Stop()
	}
}
