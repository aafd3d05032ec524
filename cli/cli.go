// Package cli implements the rmxpiano command-line interface.
//
// # Commands
//
//   - layout: print the geometry of every key as JSON or a table
//   - serve: answer layout requests over HTTP and websockets
//   - tui: play the keyboard in the terminal
//
// Every command reads the TOML config file first, see package config. Range flags
// override the file.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rapidmidiex/rmxpiano/config"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

// CLI holds the state shared by all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	errOut     io.Writer
	configPath string
	verbose    bool
	logLevel   string
}

// New creates a CLI printing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		Logger: newLogger(errOut, log.InfoLevel),
		out:    out,
		errOut: errOut,
	}
}

// Execute runs the rmxpiano CLI with the process arguments.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "rmxpiano",
		Short:        "rmxpiano lays out piano keyboards",
		Long:         `rmxpiano computes where every key of a piano keyboard goes, for any range of MIDI notes, and serves the result to browsers or draws it in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := c.level()
			if err != nil {
				return err
			}
			c.Logger = newLogger(c.errOut, level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/rmxpiano/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	return root
}

func (c *CLI) level() (log.Level, error) {
	if c.verbose {
		return log.DebugLevel, nil
	}
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return 0, rmxerr.Wrap(rmxerr.InvalidConfig, err, "log level %q", c.logLevel)
	}
	return level, nil
}

// rangeFlags override the configured range when set.
type rangeFlags struct {
	start string
	end   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", `first key, MIDI number or note name (ex: "C4", "60")`)
	cmd.Flags().StringVar(&f.end, "end", "", `last key, MIDI number or note name (ex: "C5", "72")`)
}

func (f *rangeFlags) changed() bool {
	return f.start != "" || f.end != ""
}

// loadConfig reads the config file and applies the range flags.
func (c *CLI) loadConfig(rf rangeFlags) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if rf.start != "" {
		if cfg.Range.Start, err = vpiano.ParseNote(rf.start); err != nil {
			return config.Config{}, err
		}
	}
	if rf.end != "" {
		if cfg.Range.End, err = vpiano.ParseNote(rf.end); err != nil {
			return config.Config{}, err
		}
	}
	c.Logger.Debug("config", "path", c.configPath, "start", cfg.Range.Start, "end", cfg.Range.End, "width", cfg.Width)
	return cfg, nil
}
