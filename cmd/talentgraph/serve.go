package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/talentgraph/pkg/api"
	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and GraphQL API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel())
			logger.Info("talentgraph starting",
				logging.String("version", version),
				logging.String("addr", cfg.Server.Addr))

			srv, err := api.NewServer(cfg, api.WithLogger(logger), api.WithVersion(version))
			if err != nil {
				return err
			}
			srv.StartMaintenance()
			defer srv.StopMaintenance()

			gs := server.NewGracefulServer(srv.HTTPServer(), cfg.Server.ShutdownTimeout, logger)
			// only the log level is reloadable; listener and upstream settings need a restart
			gs.SetConfigReloadFunc(func() error {
				next, err := opts.load()
				if err != nil {
					return err
				}
				logger.SetLevel(next.LogLevel())
				logger.Info("log level reloaded", logging.String("level", next.Log.Level))
				return nil
			})

			if err := gs.Run(cmd.Context()); err != nil {
				return err
			}
			logger.Info("talentgraph stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
