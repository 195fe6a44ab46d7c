// Package config loads the camdiagram.toml project file.
//
// Every key is optional; missing keys keep their defaults and unknown keys
// are rejected so that typos surface instead of being silently ignored:
//
//	output_dir = "imgs"
//	icon_dir   = "imgs/icons"
//	formats    = ["png"]
//	modes      = ["app", "infra"]
//	no_cache   = false
//	describe   = false
//
// Command-line flags override values loaded here.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/camdiagram/pkg/errors"
	"github.com/matzehuels/camdiagram/pkg/pipeline"
)

// FileName is the configuration file looked up by Discover.
const FileName = "camdiagram.toml"

// Config mirrors the TOML file.
type Config struct {
	OutputDir string   `toml:"output_dir"`
	IconDir   string   `toml:"icon_dir"`
	Formats   []string `toml:"formats"`
	Modes     []string `toml:"modes"`
	NoCache   bool     `toml:"no_cache"`
	Describe  bool     `toml:"describe"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	modes := make([]string, 0, 2)
	for _, m := range pipeline.DefaultModes() {
		modes = append(modes, string(m))
	}
	return &Config{
		OutputDir: pipeline.DefaultOutputDir,
		IconDir:   pipeline.DefaultIconDir,
		Formats:   []string{string(pipeline.DefaultFormat)},
		Modes:     modes,
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file not found")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads FileName from dir, falling back to Default when the file
// does not exist.
func Discover(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := pipeline.ParseModes(c.Modes); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "modes")
	}
	if _, err := pipeline.ParseFormats(c.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
	}
	if err := errors.ValidatePath("output_dir", c.OutputDir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output_dir")
	}
	if err := errors.ValidatePath("icon_dir", c.IconDir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "icon_dir")
	}
	return nil
}

// Options converts the configuration into pipeline options. Relative
// directories in a loaded file are resolved against the file's directory.
func (c *Config) Options() (pipeline.Options, error) {
	modes, err := pipeline.ParseModes(c.Modes)
	if err != nil {
		return pipeline.Options{}, err
	}
	formats, err := pipeline.ParseFormats(c.Formats)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Modes:     modes,
		Formats:   formats,
		OutputDir: c.ResolvedOutputDir(),
		IconDir:   c.ResolvedIconDir(),
		Describe:  c.Describe,
	}, nil
}

// ResolvedOutputDir returns OutputDir relative to the config file.
func (c *Config) ResolvedOutputDir() string { return c.resolve(c.OutputDir) }

// ResolvedIconDir returns IconDir relative to the config file.
func (c *Config) ResolvedIconDir() string { return c.resolve(c.IconDir) }

func (c *Config) resolve(dir string) string {
	if c.Path == "" || dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(c.Path), dir)
}
