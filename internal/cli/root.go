// Package cli implements the framedemo command-line interface.
//
// # Commands
//
//   - run: open the orbit demo in a window
//   - replay: play a JSON input script headlessly and print a report
//
// # Configuration
//
// Settings come from a TOML file (--config, default framedemo.toml in the
// working directory, ignored when absent) and can be overridden by flags.
// --verbose forces debug logging.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

const defaultConfigPath = "framedemo.toml"

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags shared by every command.
type rootOpts struct {
	configPath string
	verbose    bool
	deep       bool
	deadZone   float64
	debug      bool
	deepSet    bool
	zoneSet    bool
}

// config loads the config file and applies flag overrides.
func (o *rootOpts) config() (Config, error) {
	optional := o.configPath == defaultConfigPath
	cfg, err := LoadConfig(o.configPath, optional)
	if err != nil {
		return cfg, err
	}
	if o.deepSet {
		cfg.Deep = o.deep
	}
	if o.zoneSet {
		cfg.DeadZone = o.deadZone
	}
	if o.debug {
		cfg.Debug = true
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	root := &cobra.Command{
		Use:          "framedemo",
		Short:        "framedemo drives hit-tested canvas viewports",
		Long:         `framedemo runs the orbit demo: frame trees drawn on canvases, with pointer events hit-tested against the latest tree and turned into drags, clicks and wheel zooms.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.deepSet = cmd.Flags().Changed("deep")
			opts.zoneSet = cmd.Flags().Changed("dead-zone")
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			level, err := parseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := newLogger(os.Stderr, level)
			charmlog.SetDefault(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("framedemo %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "TOML config file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&opts.deep, "deep", true, "search inside the hit frame for the deepest hit")
	pf.Float64Var(&opts.deadZone, "dead-zone", 0, "pixels a drag must travel before it counts")
	pf.BoolVar(&opts.debug, "debug", false, "check frame tree shape on every snapshot")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newReplayCmd(opts))
	return root
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
