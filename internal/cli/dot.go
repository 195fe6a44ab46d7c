package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/camdiagram/internal/config"
	"github.com/matzehuels/camdiagram/pkg/diagram"
	"github.com/matzehuels/camdiagram/pkg/errors"
	"github.com/matzehuels/camdiagram/pkg/pipeline"
	"github.com/matzehuels/camdiagram/pkg/topology"
)

const (
	outputDOT  = "dot"
	outputJSON = "json"
	outputYAML = "yaml"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	config string // path to camdiagram.toml (default: discovered in the working directory)
	output string // dot, json, or yaml
	icons  string // icon directory (default: from the config file)
}

// dotCommand creates the dot command, which prints one declared diagram
// without invoking Graphviz.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{output: outputDOT}

	cmd := &cobra.Command{
		Use:   "dot <app|infra>",
		Short: "Print the Graphviz source or a description of a diagram",
		Example: `  camdiagram dot app | dot -Tsvg > app.svg
  camdiagram dot infra --output yaml`,
		ValidArgs: topologyModes(),
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDOT(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ./"+config.FileName+" if present)")
	cmd.Flags().StringVar(&opts.output, "output", opts.output, "output: dot (default), json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", completeList(outputDOT, outputJSON, outputYAML))
	cmd.Flags().StringVar(&opts.icons, "icons", "", "icon directory (default: "+pipeline.DefaultIconDir+")")

	return cmd
}

func (c *CLI) runDOT(w io.Writer, modeName string, opts dotOpts) error {
	mode, err := topology.ParseMode(modeName)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "dot")
	}

	iconDir := opts.icons
	if iconDir == "" {
		cfg, err := loadConfig(opts.config)
		if err != nil {
			return err
		}
		iconDir = cfg.ResolvedIconDir()
	}

	d, err := topology.Build(mode, topology.Options{IconDir: iconDir})
	if err != nil {
		return errors.Wrap(errors.ErrCodeBuild, err, "build %s diagram", mode)
	}
	c.Logger.Debug("declared diagram", "mode", mode, "nodes", d.NodeCount(), "edges", d.EdgeCount())

	switch opts.output {
	case outputDOT:
		_, err = io.WriteString(w, diagram.ToDOT(d))
	case outputJSON:
		err = diagram.Describe(d).WriteJSON(w)
	case outputYAML:
		err = diagram.Describe(d).WriteYAML(w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid output: %s (must be 'dot', 'json', or 'yaml')", opts.output)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	return nil
}
