package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/camdiagram/pkg/cache"
	"github.com/matzehuels/camdiagram/pkg/diagram"
	"github.com/matzehuels/camdiagram/pkg/errors"
	"github.com/matzehuels/camdiagram/pkg/io"
	"github.com/matzehuels/camdiagram/pkg/observability"
	"github.com/matzehuels/camdiagram/pkg/topology"
)

// RenderFunc lays out DOT source and encodes it in format.
type RenderFunc func(ctx context.Context, dot string, format diagram.Format) ([]byte, error)

// renderKeyType labels render cache events for observability hooks.
const renderKeyType = "render"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// Render defaults to diagram.Render.
	Render RenderFunc

	// CacheTTL bounds the lifetime of cached renders; zero keeps them forever.
	CacheTTL time.Duration
}

// NewRunner creates a runner with the given cache and logger.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
		Render: diagram.Render,
	}
}

// Execute generates every requested mode and format and writes the files.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if err := io.EnsureDir(opts.OutputDir); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutput, err, "prepare output directory")
	}

	result := &Result{}
	for _, mode := range opts.Modes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := r.executeMode(ctx, mode, opts, result); err != nil {
			return result, err
		}
	}

	r.Logger.Debug("generated diagrams",
		"files", len(result.Artifacts),
		"bytes", result.Stats.Bytes,
		"cache_hits", result.Stats.CacheHits,
		"render", result.Stats.RenderTime.Round(time.Millisecond))

	return result, nil
}

func (r *Runner) executeMode(ctx context.Context, mode topology.Mode, opts Options, result *Result) error {
	buildStart := time.Now()
	d, err := r.Build(ctx, mode, opts)
	if err != nil {
		return err
	}
	result.Stats.BuildTime += time.Since(buildStart)

	dot := diagram.ToDOT(d)
	icons := d.Icons()
	r.Logger.Debug("declared diagram",
		"mode", mode,
		"nodes", d.NodeCount(),
		"clusters", d.ClusterCount(),
		"edges", d.EdgeCount(),
		"dot_bytes", len(dot))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}

		renderStart := time.Now()
		data, hit, err := r.RenderWithCacheInfo(ctx, mode, dot, icons, format)
		if err != nil {
			return err
		}
		result.Stats.RenderTime += time.Since(renderStart)

		path := filepath.Join(opts.OutputDir, d.Filename+"."+format.Ext())
		writeStart := time.Now()
		if err := io.WriteFileAtomic(path, data); err != nil {
			return errors.Wrap(errors.ErrCodeOutput, err, "write %s diagram", mode)
		}
		result.Stats.WriteTime += time.Since(writeStart)
		observability.Pipeline().OnWrite(ctx, path, len(data))

		result.Artifacts = append(result.Artifacts, Artifact{
			Mode:   mode,
			Format: format,
			Path:   path,
			Size:   len(data),
			Cached: hit,
			Nodes:  d.NodeCount(),
			Edges:  d.EdgeCount(),
		})
		result.Stats.Bytes += len(data)
		if hit {
			result.Stats.CacheHits++
		}

		r.Logger.Debug("wrote diagram", "mode", mode, "format", format, "path", path, "bytes", len(data), "cached", hit)
	}

	if opts.Describe {
		path := filepath.Join(opts.OutputDir, d.Filename+".json")
		if err := io.ExportDescription(diagram.Describe(d), path); err != nil {
			return errors.Wrap(errors.ErrCodeOutput, err, "write %s description", mode)
		}
		r.Logger.Debug("wrote description", "mode", mode, "path", path)
	}
	return nil
}

// Build declares the diagram of one mode.
func (r *Runner) Build(ctx context.Context, mode topology.Mode, opts Options) (*diagram.Diagram, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, string(mode))
	start := time.Now()

	d, err := topology.Build(mode, topology.Options{IconDir: opts.IconDir})
	if err != nil {
		hooks.OnBuildComplete(ctx, string(mode), 0, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeBuild, err, "build %s diagram", mode)
	}

	hooks.OnBuildComplete(ctx, string(mode), d.NodeCount(), d.EdgeCount(), time.Since(start), nil)
	return d, nil
}

// RenderWithCacheInfo renders dot in format, consulting the cache first, and
// reports whether the bytes came from the cache. icons are the image files
// the DOT references; their contents are part of the cache key. Cache
// failures are logged and never fail the render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, mode topology.Mode, dot string, icons []string, format diagram.Format) ([]byte, bool, error) {
	key := ""
	if assets, err := cache.HashFiles(icons); err != nil {
		r.Logger.Debug("icon digest failed, bypassing cache", "mode", mode, "err", err)
	} else {
		key = cache.RenderKey(dot, string(format), assets)
	}

	if key != "" {
		if data, ok, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Debug("cache read failed", "key", key, "err", err)
		} else if ok && len(data) > 0 {
			observability.Cache().OnCacheHit(ctx, renderKeyType)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, renderKeyType)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(mode), string(format))
	start := time.Now()

	render := r.Render
	if render == nil {
		render = diagram.Render
	}
	data, err := render(ctx, dot, format)
	hooks.OnRenderComplete(ctx, string(mode), string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "render %s diagram as %s", mode, format)
	}
	if len(data) == 0 {
		return nil, false, errors.New(errors.ErrCodeRender, "render %s diagram as %s: empty output", mode, format)
	}

	if key == "" {
		return data, false, nil
	}
	if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, renderKeyType, len(data))
	}

	return data, false, nil
}

// String describes the runner configuration for debug logs.
func (r *Runner) String() string {
	return fmt.Sprintf("Runner{cache=%T ttl=%s}", r.Cache, r.CacheTTL)
}
