package main

import (
	"github.com/spf13/cobra"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
	"github.com/dd0wney/talentgraph/pkg/session"
	"github.com/dd0wney/talentgraph/pkg/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore a network in the terminal",
		Long: "Starts on the demo network. Press / to search Torre, tab for the " +
			"people list and ? for all keys. Drag nodes with the mouse to pin them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			// stdout is the UI
			logger := logging.NewNopLogger()
			m := metrics.NewRegistry()
			sess := session.New(cfg.Torre.NewTorreClient(logger, m),
				session.WithGate(session.NewIntervalGate(cfg.Torre.FetchInterval)),
				session.WithMetrics(m),
			)
			if query != "" {
				if _, err := sess.Search(cmd.Context(), query); err != nil {
					return err
				}
			}
			return tui.Run(cmd.Context(), sess, cfg.Layout)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search before opening")
	return cmd
}
