package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/camdiagram/internal/config"
	"github.com/matzehuels/camdiagram/pkg/pipeline"
	"github.com/matzehuels/camdiagram/pkg/topology"
)

// generateOpts holds the command-line flags shared by the root and generate
// commands. Empty values fall back to the configuration file.
type generateOpts struct {
	config   string // path to camdiagram.toml (default: discovered in the working directory)
	output   string // output directory
	icons    string // icon directory
	formats  string // comma-separated output formats
	modes    string // comma-separated diagram modes
	noCache  bool   // bypass the render cache
	describe bool   // also write a JSON description per diagram
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the system diagrams into the output directory",
		Long: `Render the application (left-to-right) and infrastructure (top-to-bottom)
diagrams. Existing files are replaced atomically, so repeated runs are safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	addGenerateFlags(cmd, &opts)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOpts) {
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: ./"+config.FileName+" if present)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: "+pipeline.DefaultOutputDir+")")
	cmd.Flags().StringVar(&opts.icons, "icons", "", "icon directory (default: "+pipeline.DefaultIconDir+")")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), svg, jpg, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.modes, "mode", "m", "", "diagram(s): app, infra (default: both, comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.describe, "describe", false, "also write a JSON description of each diagram")

	_ = cmd.RegisterFlagCompletionFunc("format", completeList("png", "svg", "jpg", "dot"))
	_ = cmd.RegisterFlagCompletionFunc("mode", completeList(topologyModes()...))
}

func topologyModes() []string {
	modes := make([]string, 0, len(topology.Modes()))
	for _, m := range topology.Modes() {
		modes = append(modes, string(m))
	}
	return modes
}

// resolveOptions merges flags over the configuration file. Directories given
// as flags are relative to the working directory, not to the config file.
func resolveOptions(opts *generateOpts) (pipeline.Options, bool, error) {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return pipeline.Options{}, false, err
	}

	if list := splitList(opts.formats); len(list) > 0 {
		cfg.Formats = list
	}
	if list := splitList(opts.modes); len(list) > 0 {
		cfg.Modes = list
	}
	cfg.NoCache = cfg.NoCache || opts.noCache
	cfg.Describe = cfg.Describe || opts.describe

	if err := cfg.Validate(); err != nil {
		return pipeline.Options{}, false, err
	}
	popts, err := cfg.Options()
	if err != nil {
		return pipeline.Options{}, false, err
	}

	if opts.output != "" {
		popts.OutputDir = opts.output
	}
	if opts.icons != "" {
		popts.IconDir = opts.icons
	}
	return popts, cfg.NoCache, nil
}

func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	_, err := c.generate(ctx, opts)
	return err
}

// generate renders the diagrams behind a spinner and prints what was written.
func (c *CLI) generate(ctx context.Context, opts *generateOpts) (*pipeline.Result, error) {
	popts, noCache, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering diagrams...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	printSuccess("Generated %d %s", len(result.Artifacts), plural(len(result.Artifacts), "diagram"))
	for _, a := range result.Artifacts {
		printFile(a.Path)
		printStats(a.Nodes, a.Edges, a.Cached)
	}
	c.Logger.Debug("pipeline stats",
		"build", result.Stats.BuildTime,
		"render", result.Stats.RenderTime,
		"write", result.Stats.WriteTime,
		"bytes", result.Stats.Bytes)
	return result, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return fmt.Sprintf("%ss", word)
}
