// Package pipeline generates the system diagrams end to end.
//
// This package implements the build → render → write pipeline shared by every
// CLI command, so the one-shot generator and watch mode behave identically.
//
// # Architecture
//
// For each requested mode, in order:
//
//  1. Build: declare the diagram with [topology.Build]
//  2. Render: convert to DOT and lay it out with Graphviz, once per format,
//     going through the render cache
//  3. Write: atomically replace <OutputDir>/system_<mode>.<format>
//
// Modes run sequentially. A failure to create the output directory or to
// render aborts the run; there is no retry.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Modes:     []topology.Mode{topology.ModeApp, topology.ModeInfra},
//	    Formats:   []diagram.Format{diagram.FormatPNG},
//	    OutputDir: "imgs",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    fmt.Println(a.Path)
//	}
//
// [topology.Build]: github.com/matzehuels/camdiagram/pkg/topology.Build
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/camdiagram/pkg/diagram"
	"github.com/matzehuels/camdiagram/pkg/errors"
	"github.com/matzehuels/camdiagram/pkg/topology"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config
// =============================================================================

const (
	// DefaultOutputDir is where images are written, relative to the working directory.
	DefaultOutputDir = "imgs"

	// DefaultIconDir holds custom node icons.
	DefaultIconDir = "imgs/icons"

	// DefaultFormat is the default output format.
	DefaultFormat = diagram.FormatPNG
)

// DefaultModes returns the modes generated when none are requested.
func DefaultModes() []topology.Mode { return topology.Modes() }

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	Modes     []topology.Mode
	Formats   []diagram.Format
	OutputDir string
	IconDir   string

	// Describe also writes a JSON description next to each image.
	Describe bool

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts lists the written files in generation order.
	Artifacts []Artifact

	// Stats contains timing and size information.
	Stats Stats
}

// Artifact is one written file.
type Artifact struct {
	Mode   topology.Mode
	Format diagram.Format
	Path   string
	Size   int
	Cached bool // rendered bytes came from the cache
	Nodes  int
	Edges  int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BuildTime  time.Duration
	RenderTime time.Duration
	WriteTime  time.Duration
	Bytes      int
	CacheHits  int
}

// Paths returns the paths of all artifacts.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		paths[i] = a.Path
	}
	return paths
}

// =============================================================================
// Validation Functions
// =============================================================================

// ParseModes converts mode names to modes, dropping duplicates.
func ParseModes(names []string) ([]topology.Mode, error) {
	var modes []topology.Mode
	for _, name := range names {
		m, err := topology.ParseMode(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMode, err, "parse modes")
		}
		if !slices.Contains(modes, m) {
			modes = append(modes, m)
		}
	}
	return modes, nil
}

// ParseFormats converts format names to formats, dropping duplicates.
func ParseFormats(names []string) ([]diagram.Format, error) {
	var formats []diagram.Format
	for _, name := range names {
		f, err := diagram.ParseFormat(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse formats")
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Modes) == 0 {
		o.Modes = DefaultModes()
	}
	if len(o.Formats) == 0 {
		o.Formats = []diagram.Format{DefaultFormat}
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.IconDir == "" {
		o.IconDir = DefaultIconDir
	}

	for _, m := range o.Modes {
		if _, err := topology.ParseMode(string(m)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMode, err, "validate options")
		}
	}
	for _, f := range o.Formats {
		if !diagram.ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
		}
	}
	if err := errors.ValidatePath("output directory", o.OutputDir); err != nil {
		return err
	}
	if err := errors.ValidatePath("icon directory", o.IconDir); err != nil {
		return err
	}

	o.validated = true
	return nil
}
