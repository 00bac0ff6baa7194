package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/validation"
	"github.com/dd0wney/talentgraph/pkg/visualization"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var (
		filter filterFlags
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the demo network as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			f, err := filter.config()
			if err != nil {
				return err
			}
			return printGraph(cmd.OutOrStdout(), network.DemoGraph(), f, cfg.Layout, steps)
		},
	}
	filter.register(cmd)
	cmd.Flags().IntVar(&steps, "layout", 0, "run this many layout steps and print positioned nodes and links")
	return cmd
}

// printGraph writes the filtered graph, or its headless layout when steps is
// positive.
func printGraph(w io.Writer, g *network.Graph, f network.FilterConfig, layout visualization.LayoutConfig, steps int) error {
	view := g.Filter(f)
	if steps == 0 {
		return writeJSON(w, graphOutput{
			GraphID: g.ID,
			Origin:  g.Origin,
			Query:   g.Query,
			Filter:  f,
			Nodes:   view.Nodes,
			Edges:   view.Edges,
		})
	}

	if err := validation.ValidateLayoutSteps(steps); err != nil {
		return err
	}
	vis, err := visualization.RunHeadless(view, layout, steps)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	data, err := vis.ExportJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
