package cli

import (
	"github.com/spf13/cobra"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		rf      rangeFlags
		addr    string
		maxKeys int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP and websockets",
		Long: `Serve layouts over HTTP and websockets.

  GET /layout?start=C4&end=C5&width=800&pressed=60,64
  GET /ws      websocket, send press/release/reset messages and receive layouts
  GET /healthz

The configured range and width are used when a request leaves them out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(rf)
			if err != nil {
				return err
			}
			// Fail before listening rather than on the first request.
			if _, err := layout.New(cfg.Range, cfg.Sizing); err != nil {
				return err
			}
			if maxKeys > 0 && cfg.Range.Len() > maxKeys {
				return rmxerr.New(rmxerr.InvalidRange, "configured range of %d keys is above --max-keys %d", cfg.Range.Len(), maxKeys)
			}

			srv := server.New(server.Options{
				Range:   cfg.Range,
				Width:   cfg.Width,
				Sizing:  cfg.Sizing,
				MaxKeys: maxKeys,
				Logger:  loggerFromContext(cmd.Context()),
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxKeys, "max-keys", server.DefaultMaxKeys, "longest range a request may ask for")

	return cmd
}
