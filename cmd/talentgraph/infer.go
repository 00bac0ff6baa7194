package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/profile"
)

// profileRecord pairs a search entry with its fetched genome.
type profileRecord struct {
	Summary profile.Summary `json:"summary"`
	Genome  *profile.Genome `json:"genome"`
}

func newInferCmd(opts *rootOptions) *cobra.Command {
	var (
		filter filterFlags
		steps  int
		query  string
	)
	cmd := &cobra.Command{
		Use:   "infer <profiles.json>",
		Short: "Build a network from saved profiles and print it as JSON",
		Long: "Reads a JSON array of {summary, genome} records (\"-\" for stdin), " +
			"normalizes each profile, infers connections and prints the graph.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			f, err := filter.config()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}

			logger := logging.NewJSONLogger(cmd.ErrOrStderr(), cfg.LogLevel())
			g, err := inferGraph(in, query, logger)
			if err != nil {
				return err
			}
			return printGraph(cmd.OutOrStdout(), g, f, cfg.Layout, steps)
		},
	}
	filter.register(cmd)
	cmd.Flags().IntVar(&steps, "layout", 0, "run this many layout steps and print positioned nodes and links")
	cmd.Flags().StringVar(&query, "query", "", "query recorded on the graph")
	return cmd
}

// inferGraph runs the offline half of the search pipeline. Profiles without
// an identifier or person are skipped, as a live search would.
func inferGraph(r io.Reader, query string, logger logging.Logger) (*network.Graph, error) {
	var records []profileRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	nodes := make([]network.Node, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		node, err := profile.Normalize(rec.Summary, rec.Genome)
		if err != nil {
			if profile.IsSkip(err) {
				logger.Warn("profile skipped", logging.Int("index", i), logging.Error(err))
				continue
			}
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		if _, dup := seen[node.ID]; dup {
			logger.Warn("duplicate profile skipped", logging.Username(node.ID))
			continue
		}
		seen[node.ID] = struct{}{}
		nodes = append(nodes, node)
	}

	edges := network.InferEdges(nodes)
	if err := network.Sufficient(nodes, edges); err != nil {
		return nil, err
	}
	logger.Info("network inferred", logging.Count(len(nodes)), logging.Int("edges", len(edges)))
	return network.NewGraph(network.OriginSearch, query, nodes, edges)
}
