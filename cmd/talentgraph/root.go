package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/talentgraph/pkg/config"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/validation"
)

type rootOptions struct {
	configFile string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "talentgraph",
		Short:         "Visualize professional networks inferred from Torre profiles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", ".env file loaded before the environment (ignored when missing)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newDemoCmd(opts),
		newInferCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile, o.envFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// filterFlags are the filter controls shared by the offline commands.
type filterFlags struct {
	minStrength    int
	skill          string
	location       string
	connectionType string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minStrength, "min-strength", 1, "minimum connection strength")
	cmd.Flags().StringVar(&f.skill, "skill", "", "only people with a skill containing this text")
	cmd.Flags().StringVar(&f.location, "location", "", "only people whose location contains this text")
	cmd.Flags().StringVar(&f.connectionType, "type", "all", "connection type (all, skill, company, location)")
}

func (f *filterFlags) config() (network.FilterConfig, error) {
	t, err := network.ParseConnectionType(f.connectionType)
	if err != nil {
		return network.FilterConfig{}, err
	}
	cfg := network.FilterConfig{
		MinStrength:    f.minStrength,
		Skill:          f.skill,
		Location:       f.location,
		ConnectionType: t,
	}
	if err := validation.ValidateFilter(&cfg); err != nil {
		return network.FilterConfig{}, err
	}
	return cfg, nil
}

// graphOutput is the printed form of a (possibly filtered) graph.
type graphOutput struct {
	GraphID string               `json:"graphId"`
	Origin  network.Origin       `json:"origin"`
	Query   string               `json:"query"`
	Filter  network.FilterConfig `json:"filter"`
	Nodes   []network.Node       `json:"nodes"`
	Edges   []network.Edge       `json:"edges"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
