package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/camdiagram/internal/config"
	"github.com/matzehuels/camdiagram/pkg/pipeline"
)

// defaultDebounce coalesces the burst of events editors produce on save.
const defaultDebounce = 250 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts     generateOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the diagrams when the config file or an icon changes",
		Long: `Generate once, then watch camdiagram.toml and the icon directory and regenerate
after every change. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), &opts, debounce)
		},
	}

	addGenerateFlags(cmd, &opts)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before regenerating")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts *generateOpts, debounce time.Duration) error {
	if err := c.runGenerate(ctx, opts); err != nil {
		printError("%v", err)
	}

	configPath := opts.config
	if configPath == "" {
		configPath = config.FileName
	}
	iconDir := opts.icons
	if iconDir == "" {
		iconDir = pipeline.DefaultIconDir
		if cfg, err := loadConfig(opts.config); err == nil {
			iconDir = cfg.ResolvedIconDir()
		}
	}

	w, err := newWatcher(configPath, iconDir, debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("Watching %s and %s", configPath, iconDir)
	return w.run(ctx, func(ctx context.Context) error {
		p := newProgress(loggerFromContext(ctx))
		result, err := c.generate(ctx, opts)
		if err != nil {
			return err
		}
		p.done("Regenerated", "files", len(result.Artifacts), "cached", result.Stats.CacheHits)
		return nil
	})
}

// watcher triggers a callback after relevant file changes settle.
type watcher struct {
	fs         *fsnotify.Watcher
	configPath string
	iconDir    string
	debounce   time.Duration
}

// newWatcher watches the directory holding configPath, so that editors that
// save by rename are seen, and iconDir when it exists.
func newWatcher(configPath, iconDir string, debounce time.Duration) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		fs:         fsw,
		configPath: filepath.Clean(configPath),
		iconDir:    filepath.Clean(iconDir),
		debounce:   debounce,
	}

	if err := fsw.Add(filepath.Dir(w.configPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	if info, err := os.Stat(w.iconDir); err == nil && info.IsDir() {
		if err := fsw.Add(w.iconDir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Close stops watching.
func (w *watcher) Close() error {
	return w.fs.Close()
}

// relevant reports whether ev should trigger a regeneration.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if name == w.configPath {
		return true
	}
	if filepath.Dir(name) != w.iconDir {
		return false
	}
	// Skip temp files and our own output when icons share the output directory.
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && !strings.HasPrefix(base, "system_")
}

// run calls regenerate once per settled burst of relevant events until ctx
// is done, and then returns ctx.Err(). Regeneration errors are reported and
// do not stop the loop.
func (w *watcher) run(ctx context.Context, regenerate func(context.Context) error) error {
	logger := loggerFromContext(ctx)

	// The debounced func only signals; regeneration stays on this goroutine.
	trigger := make(chan struct{}, 1)
	debounced := debounce.New(w.debounce)
	signal := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			debounced(signal)

		case <-trigger:
			if err := regenerate(ctx); err != nil {
				printError("%v", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			printWarning("watch: %v", err)
		}
	}
}
