package config

import (
	"github.com/matzehuels/bowerassets/pkg/bower"
	"github.com/matzehuels/bowerassets/pkg/cache"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/formula"
	"github.com/matzehuels/bowerassets/pkg/naming"
)

// Manager registers every configured bundle, in configuration order.
func (c *Config) Manager() (*bower.Manager, error) {
	m := bower.NewManager()
	for _, b := range c.Bundles {
		err := m.AddBundle(b.Name, bower.Configuration{
			Directory:      b.Directory,
			AssetDirectory: b.AssetDirectory,
			JSONFile:       b.JSONFile,
			Endpoint:       b.Endpoint,
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Builder creates a formula builder carrying the global filters, the nest
// default and the package overrides. Override names are translated with n
// so that they match the names formulae are built under.
func (c *Config) Builder(n naming.Strategy) *formula.Builder {
	if n == nil {
		n = naming.PackageNamingStrategy{}
	}
	b := formula.NewBuilder(n)
	b.SetNestDependencies(c.NestDependencies)
	b.SetCSSFilters(c.CSSFilters)
	b.SetJSFilters(c.JSFilters)
	for _, p := range c.Packages {
		b.AddPackageResource(&formula.PackageResource{
			Name:       n.TranslateName(p.Name),
			CSSFilters: p.CSSFilters,
			JSFilters:  p.JSFilters,
			Nest:       formula.NestModeFromBool(p.NestDependencies),
		})
	}
	return b
}

// OpenCache opens the configured cache backend. When noCache is set, or the
// backend is "none", a NullCache is returned.
func (c *Config) OpenCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(c.Cache.RedisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open redis cache")
		}
		return rc, nil
	default:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "locate cache directory")
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "open file cache")
		}
		return fc, nil
	}
}

// CacheDir returns the file cache directory.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// Keyer returns the cache keyer, prefixed when a prefix is configured.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
	}
	return cache.NewDefaultKeyer()
}
