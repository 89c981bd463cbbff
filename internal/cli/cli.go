// Package cli implements the bowerassets command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/bower"
	"github.com/matzehuels/bowerassets/pkg/buildinfo"
	"github.com/matzehuels/bowerassets/pkg/cache"
	"github.com/matzehuels/bowerassets/pkg/config"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/formula"
	"github.com/matzehuels/bowerassets/pkg/naming"
	"github.com/matzehuels/bowerassets/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "bowerassets"

	// defaultAddr is the listen address of "serve".
	defaultAddr = "127.0.0.1:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool

	// runner replaces the bower binary in tests.
	runner bower.Runner
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bowerassets turns Bower dependencies into asset formulae",
		Long: `bowerassets reads the Bower dependencies of every configured bundle and
builds asset formulae from them: one stylesheet and one script formula per
package, with dependency references and filter chains applied.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := logHooks{logger: c.Logger}
			observability.SetBuildHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (default: ./bowerassets.{toml,yaml,yml,hcl})")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the dependency cache")

	root.AddCommand(c.installCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.formulaeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig loads the file given with --config, or the first configuration
// file found in the working directory.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get working directory")
		}
		found, ok := config.Find(wd)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"no configuration found: create %s or pass --config", config.DefaultFile)
		}
		path = found
	}
	c.Logger.Debug("loading configuration", "path", path)
	return config.Load(path)
}

// loadConfigOrDefault is loadConfig for commands that also work without a
// configuration file.
func (c *CLI) loadConfigOrDefault() (*config.Config, error) {
	if c.configPath == "" {
		if wd, err := os.Getwd(); err == nil {
			if _, ok := config.Find(wd); !ok {
				return config.Default(), nil
			}
		}
	}
	return c.loadConfig()
}

// =============================================================================
// App - Wired Components
// =============================================================================

// app holds the components built from the configuration.
type app struct {
	cfg      *config.Config
	cache    cache.Cache
	manager  *bower.Manager
	bower    *bower.Bower
	resource *formula.Resource
}

// openApp loads the configuration and wires the resolver, bundle manager and
// formula resource. Each mutate function may adjust the loaded configuration
// before it is used. The caller must Close the returned app.
func (c *CLI) openApp(mutate ...func(*config.Config)) (*app, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	for _, m := range mutate {
		m(cfg)
	}
	return c.wire(cfg)
}

// wire builds the app components from cfg.
func (c *CLI) wire(cfg *config.Config) (*app, error) {
	manager, err := cfg.Manager()
	if err != nil {
		return nil, err
	}
	store, err := cfg.OpenCache(c.noCache)
	if err != nil {
		return nil, err
	}

	opts := []bower.Option{
		bower.WithKeyer(cfg.Keyer()),
		bower.WithBin(cfg.Bin),
		bower.WithOffline(cfg.Offline),
		bower.WithTTL(cfg.Cache.TTL),
		bower.WithLogger(c.Logger),
	}
	if c.runner != nil {
		opts = append(opts, bower.WithRunner(c.runner))
	}
	b := bower.New(store, opts...)

	n := naming.PackageNamingStrategy{}
	return &app{
		cfg:      cfg,
		cache:    store,
		manager:  manager,
		bower:    b,
		resource: formula.NewResource(b, manager, n, cfg.Builder(n), c.Logger),
	}, nil
}

// Close releases the cache.
func (a *app) Close() error {
	return a.cache.Close()
}
