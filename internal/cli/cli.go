// Package cli implements the kleinian command-line interface.
//
// # Commands
//
//   - grandma: evaluate Grandma's recipe once and write a .flame file
//   - atlas: sweep the recipe over a lattice of traces
//   - animate: render an animation description file
//   - classify: classify a Möbius transformation
//   - cline: move a circle with a Möbius transformation
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on the [CLI] and is handed to the pipeline runner and the API.
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/kleinian/config.toml when it
// exists, or from the file named by --config. Flags override file values.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kleinian/pkg/buildinfo"
	"github.com/matzehuels/kleinian/pkg/cache"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "kleinian"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out     printer   // command results (stdout)
	status  io.Writer // spinner (stderr)
	config  Config
	cfgPath string
	noCache bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    printer{w: os.Stdout},
		status: os.Stderr,
		config: defaultConfig(),
	}
}

// SetOutput redirects command output and the spinner.
func (c *CLI) SetOutput(out, status io.Writer) {
	c.out = printer{w: out}
	c.status = status
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Kleinian generates Kleinian group fractals as flame files",
		Long:         `Kleinian builds Möbius transformation groups with Grandma's recipe and writes them as .flame files for Apophysis and Chaotica.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/kleinian/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.grandmaCommand())
	root.AddCommand(c.atlasCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.clineCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one
// if it exists.
func (c *CLI) loadConfig() error {
	path, explicit := c.cfgPath, c.cfgPath != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	store, err := c.newCache()
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.config.Cache.KeyPrefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	if c.config.Cache.TTL > 0 {
		r.TTL = c.config.Cache.TTL
	}
	return r, nil
}

// newCache opens the configured cache backend.
func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.config.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(c.config.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case backendFile, "":
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
	return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "unknown cache backend %q", c.config.Cache.Backend)
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/kleinian/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/kleinian/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
