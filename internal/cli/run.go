package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/ebitenhost"
	"github.com/phanxgames/frames/internal/orbit"
	"github.com/phanxgames/frames/stream"
)

// newRunCmd opens a window with one orbit viewport per configured
// instance, laid out left to right.
func newRunCmd(opts *rootOpts) *cobra.Command {
	var (
		instances int
		script    string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the orbit demo in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("instances") {
				cfg.Instances = instances
			}
			if script != "" {
				cfg.Script = script
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if w := orbit.Size * cfg.Instances; cfg.Width < w {
				cfg.Width = w
			}
			if cfg.Height < orbit.Size {
				cfg.Height = orbit.Size
			}
			logger := loggerFromContext(cmd.Context())

			doc := frames.NewDocument()
			game := ebitenhost.NewGame(doc, ebitenhost.RunConfig{
				Title:      cfg.Title,
				Width:      cfg.Width,
				Height:     cfg.Height,
				ShowFPS:    cfg.ShowFPS,
				Resizable:  true,
				Background: frames.Color{R: 0.12, G: 0.12, B: 0.14, A: 1},
			})
			game.SetLogger(logger)
			if cfg.Script != "" {
				data, err := os.ReadFile(cfg.Script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := frames.LoadTestScript(data)
				if err != nil {
					return err
				}
				game.SetTestRunner(runner)
			}

			var (
				viewports []*frames.Viewport
				canvases  []*frames.Canvas
			)
			mount := func(i int) frames.EventSource {
				canvas := frames.NewCanvas(orbit.Size, orbit.Size)
				x := float64(i * orbit.Size)
				canvas.SetBounds(frames.Rect{Left: x, Top: 0, Right: x + orbit.Size, Bottom: orbit.Size})
				vp := frames.NewViewport(canvas)
				vp.Insert = append(vp.Insert, func(c *frames.Canvas) {
					logger.Debug("viewport inserted", "index", i, "w", c.Width(), "h", c.Height())
				})
				viewports = append(viewports, vp)
				canvases = append(canvases, canvas)
				return game.AddCanvas(canvas)
			}
			sess := newSession(cfg, doc, game.Clock, mount, logger)
			defer sess.stop()

			for i, app := range sess.apps {
				vp := viewports[i]
				sub := vp.Bind(stream.Of[frames.RenderFunc](orbit.Render), app.States())
				defer sub.Unsubscribe()
			}
			sess.start()

			resize := game.Sizes().Subscribe(stream.Listener[ebitenhost.Size]{
				Next: func(s ebitenhost.Size) { ebitenhost.Tile(canvases, s) },
			})
			defer resize.Unsubscribe()

			game.OnUpdate = func(dt time.Duration) error {
				sess.tick(dt)
				return nil
			}
			logger.Info("window open", "instances", cfg.Instances, "deep", cfg.Deep)
			return ebitenhost.Run(game)
		},
	}
	cmd.Flags().IntVarP(&instances, "instances", "n", 1, "number of orbit viewports")
	cmd.Flags().StringVar(&script, "script", "", "JSON input script to play before handing over to the mouse")
	return cmd
}
