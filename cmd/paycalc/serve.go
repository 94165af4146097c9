package main

import (
	"github.com/spf13/cobra"

	"worktracker/internal/app/server"
)

func serveCmd(state *cliState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the earnings API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			app, err := server.New(cfg, state.logger)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from APP_ADDR)")
	return cmd
}
