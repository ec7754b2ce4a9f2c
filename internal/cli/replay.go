package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/frames"
	"github.com/phanxgames/frames/ebitenhost"
	"github.com/phanxgames/frames/internal/orbit"
)

const (
	replayTick     = time.Second / 60
	defaultMaxTick = 10000
)

// errNoScript is returned by replay when neither the flag nor the config
// names a script.
var errNoScript = errors.New("replay: no script given")

// newReplayCmd plays a script against the orbit apps without opening a
// window and prints what they did.
func newReplayCmd(opts *rootOpts) *cobra.Command {
	var maxTicks int
	cmd := &cobra.Command{
		Use:   "replay [script.json]",
		Short: "Play an input script headlessly and report the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Script = args[0]
			}
			if cfg.Script == "" {
				return errNoScript
			}
			data, err := os.ReadFile(cfg.Script)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := frames.LoadTestScript(data)
			if err != nil {
				return err
			}
			report, err := replay(cfg, runner, maxTicks, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxTicks, "max-ticks", defaultMaxTick, "give up after this many ticks")
	return cmd
}

// replay runs runner to completion against cfg.Instances apps laid out
// left to right, then lets running animations settle.
func replay(cfg Config, runner *frames.TestRunner, maxTicks int, logger *log.Logger) (replayReport, error) {
	doc := frames.NewDocument()
	game := ebitenhost.NewGame(doc, ebitenhost.RunConfig{Title: cfg.Title})
	game.SetLogger(logger)
	game.SetTestRunner(runner)

	mount := func(i int) frames.EventSource {
		el := frames.NewStaticElement(float64(i*orbit.Size), 0, orbit.Size, orbit.Size)
		return doc.Mount(el)
	}
	sess := newSession(cfg, doc, game.Clock, mount, logger)
	defer sess.stop()
	sess.start()
	game.OnUpdate = func(dt time.Duration) error {
		sess.tick(dt)
		return nil
	}

	for !runner.Done() || sess.animating() {
		if game.Ticks() >= maxTicks {
			return replayReport{}, fmt.Errorf("replay: still running after %d ticks", maxTicks)
		}
		if err := game.Step(replayTick, nil); err != nil {
			return replayReport{}, err
		}
	}

	report := replayReport{Ticks: game.Ticks(), Hits: sess.hits}
	for _, a := range sess.apps {
		report.Instances = append(report.Instances, a.Stats())
	}
	return report, nil
}
