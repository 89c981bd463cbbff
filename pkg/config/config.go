// Package config loads the bowerassets configuration file.
//
// The format is chosen by file extension: TOML (.toml), YAML (.yaml, .yml) or
// HCL (.hcl). All three describe the same settings:
//
//	bin               = "bower"
//	offline           = true
//	nest_dependencies = true
//	css_filters       = ["cssrewrite"]
//	js_filters        = []
//
//	[cache]
//	backend   = "file"            # file, redis or none
//	dir       = ""                # defaults to $XDG_CACHE_HOME/bowerassets
//	redis_url = "redis://localhost:6379/0"
//	prefix    = "shop:"
//	ttl       = "168h"
//
//	[bundles.DemoBundle]
//	directory       = "src/DemoBundle/Resources/config/bower"
//	asset_directory = "web/components"
//
//	[packages.jquery]
//	js_filters        = ["uglify"]
//	nest_dependencies = false
//
// In HCL, bundles and packages are labelled blocks (bundle "DemoBundle" {...})
// and keep their declaration order. TOML and YAML tables are unordered, so
// bundles from those formats are sorted by name.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/bowerassets/pkg/errors"
)

const (
	// DefaultFile is the configuration file looked up when none is given.
	DefaultFile = "bowerassets.toml"

	appName = "bowerassets"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the loaded configuration.
type Config struct {
	Bin              string
	Offline          bool
	NestDependencies bool
	CSSFilters       []string
	JSFilters        []string
	Cache            Cache
	Bundles          []Bundle
	Packages         []Package
}

// Cache configures where dependency mappings are stored.
type Cache struct {
	Backend  string
	Dir      string
	RedisURL string
	Prefix   string
	TTL      time.Duration
}

// Bundle is one Bower scope.
type Bundle struct {
	Name           string
	Directory      string
	AssetDirectory string
	JSONFile       string
	Endpoint       string
}

// Package overrides filters and nesting for one package.
type Package struct {
	Name             string
	CSSFilters       []string
	JSFilters        []string
	NestDependencies *bool
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Bin:              "bower",
		NestDependencies: true,
		Cache:            Cache{Backend: CacheFile},
	}
}

// Load reads and validates the configuration at path. Relative bundle
// directories are resolved against the directory containing the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cfg, err = decodeTOML(data)
	case ".yaml", ".yml":
		cfg, err = decodeYAML(data)
	case ".hcl":
		cfg, err = decodeHCL(data, path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}

	seen := make(map[string]bool, len(c.Bundles))
	for _, b := range c.Bundles {
		if seen[b.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "bundle %q declared twice", b.Name)
		}
		seen[b.Name] = true
		if b.Directory == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "bundle %q has no directory", b.Name)
		}
		if b.JSONFile != "" {
			if err := errors.ValidateManifestFilename(b.JSONFile); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "bundle %q", b.Name)
			}
		}
		if b.Endpoint != "" {
			if err := errors.ValidateURL(b.Endpoint); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "bundle %q endpoint", b.Name)
			}
		}
	}

	for _, p := range c.Packages {
		if err := errors.ValidateBowerPackageName(p.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "package override")
		}
	}
	return nil
}

func (c *Config) resolvePaths(base string) {
	for i := range c.Bundles {
		b := &c.Bundles[i]
		if b.Directory != "" && !filepath.IsAbs(b.Directory) {
			b.Directory = filepath.Join(base, b.Directory)
		}
		if b.AssetDirectory != "" && !filepath.IsAbs(b.AssetDirectory) {
			b.AssetDirectory = filepath.Join(base, b.AssetDirectory)
		}
	}
	if c.Cache.Dir != "" && !filepath.IsAbs(c.Cache.Dir) {
		c.Cache.Dir = filepath.Join(base, c.Cache.Dir)
	}
}

// candidates are the file names Find looks for, in order.
var candidates = []string{DefaultFile, appName + ".yaml", appName + ".yml", appName + ".hcl"}

// Find returns the first configuration file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// DefaultCacheDir returns the cache directory using the XDG convention
// (~/.cache/bowerassets).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
