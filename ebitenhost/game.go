package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/stream"
)

// RunConfig configures the window and loop.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window; the layout then follows
	// the window size. See Sizes.
	Resizable bool
	// Background is the clear color; the zero value leaves the screen black.
	Background frames.Color
}

// Game is an ebiten.Game that drives a frames document.
type Game struct {
	Doc   *frames.Document
	Clock *stream.ManualClock

	// OnUpdate runs once per tick after input has been dispatched.
	OnUpdate func(dt time.Duration) error

	cfg      RunConfig
	input    *Input
	runner   *frames.TestRunner
	canvases []*frames.Canvas
	fps      *fpsOverlay
	logger   *log.Logger
	ticks    int
	size     Size
	sizes    *stream.Subject[Size]
}

// NewGame returns a game feeding doc from the real mouse.
func NewGame(doc *frames.Document, cfg RunConfig) *Game {
	g := &Game{
		Doc:    doc,
		Clock:  &stream.ManualClock{},
		cfg:    cfg,
		input:  NewInput(doc),
		logger: log.Default(),
		sizes:  stream.NewSubject[Size](),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// SetLogger replaces the default logger.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// SetTestRunner replaces real mouse input with a script. Real input
// resumes once the script is done.
func (g *Game) SetTestRunner(r *frames.TestRunner) {
	g.runner = r
}

// AddCanvas mounts c, composites it onto the screen every frame and
// returns the source of pointer events targeted at it.
func (g *Game) AddCanvas(c *frames.Canvas) *frames.ElementSource {
	c.Mount()
	g.canvases = append(g.canvases, c)
	return g.Doc.Mount(c)
}

// Ticks returns the number of updates run so far.
func (g *Game) Ticks() int {
	return g.ticks
}

func (g *Game) tick() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := g.tick()
	return g.Step(dt, g.input.Poll)
}

// Step runs one tick: time advances by dt, then either the script or
// poll feeds the document.
func (g *Game) Step(dt time.Duration, poll func()) error {
	g.ticks++
	g.Clock.Advance(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	if g.runner != nil && !g.runner.Done() {
		g.runner.Step(g.Doc)
		if g.runner.Done() {
			g.logger.Info("script finished", "ticks", g.ticks)
		}
	} else if poll != nil {
		poll()
	}
	if g.OnUpdate != nil {
		if err := g.OnUpdate(dt); err != nil {
			return fmt.Errorf("update tick %d: %w", g.ticks, err)
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != (frames.Color{}) {
		c := g.cfg.Background
		screen.Fill(color.RGBA{
			R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255),
		})
	}
	for _, c := range g.canvases {
		if c.Mounted() {
			c.DrawTo(screen)
		}
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if !g.cfg.Resizable && g.cfg.Width > 0 && g.cfg.Height > 0 {
		w, h = g.cfg.Width, g.cfg.Height
	}
	g.setSize(Size{W: w, H: h})
	return w, h
}

// Run opens the window and blocks until the game ends.
func Run(g *Game) error {
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	}
	if g.cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g.logger.Debug("starting game loop", "title", g.cfg.Title, "w", g.cfg.Width, "h", g.cfg.Height)
	return ebiten.RunGame(g)
}
