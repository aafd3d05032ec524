package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rapidmidiex/rmxpiano"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
)

func (c *CLI) tuiCommand() *cobra.Command {
	var (
		rf       rangeFlags
		logFile  string
		disabled bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play the keyboard in the terminal",
		Long: `Play the keyboard in the terminal.

Pick a preset size, or pass --start/--end to open that range directly. The home
row plays naturals and the row above plays accidentals. z and x shift the keys by
an octave, space releases every key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(rf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("disabled") {
				cfg.Disabled = disabled
			}

			// The alternate screen owns the terminal, so logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return rmxerr.Wrap(rmxerr.InvalidConfig, err, "open log file")
				}
				defer f.Close()
				w = f
			}
			logger := newLogger(w, c.Logger.GetLevel())

			return rmxpiano.Run(cmd.Context(), cfg, logger, rf.changed())
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "show the keyboard without labels and ignore playing keys")

	return cmd
}
