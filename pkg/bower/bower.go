package bower

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bowerassets/pkg/cache"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/observability"
)

// DefaultBin is the bower executable looked up on PATH.
const DefaultBin = "bower"

// Bower installs bundles and serves their cached dependency mappings.
type Bower struct {
	cache   cache.Cache
	keyer   cache.Keyer
	runner  Runner
	mapper  *DependencyMapper
	bin     string
	offline bool
	ttl     time.Duration
	logger  *log.Logger
}

// Option configures a Bower.
type Option func(*Bower)

// WithKeyer overrides the cache keyer.
func WithKeyer(k cache.Keyer) Option { return func(b *Bower) { b.keyer = k } }

// WithRunner overrides how the bower binary is executed.
func WithRunner(r Runner) Option { return func(b *Bower) { b.runner = r } }

// WithBin sets the bower executable.
func WithBin(bin string) Option { return func(b *Bower) { b.bin = bin } }

// WithOffline passes --offline to "bower list".
func WithOffline(offline bool) Option { return func(b *Bower) { b.offline = offline } }

// WithTTL sets the lifetime of cached mappings. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option { return func(b *Bower) { b.ttl = ttl } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(b *Bower) { b.logger = l } }

// New creates a Bower backed by c. A nil cache disables caching, which makes
// every GetDependencyMapping call report the resolution as not ready.
func New(c cache.Cache, opts ...Option) *Bower {
	if c == nil {
		c = cache.NewNullCache()
	}
	b := &Bower{
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		runner: ExecRunner{},
		mapper: NewDependencyMapper(),
		bin:    DefaultBin,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.Default()
	}
	return b
}

// Install writes the bundle's .bowerrc, runs "bower install" and caches the
// resulting dependency listing.
func (b *Bower) Install(ctx context.Context, cfg *Configuration) error {
	if _, err := b.readManifest(cfg); err != nil {
		return err
	}
	if err := cfg.WriteRC(); err != nil {
		return errors.Wrap(errors.ErrCodeInstallFailed, err, "write .bowerrc for %s", cfg.Name)
	}

	b.logger.Debug("installing bower dependencies", "bundle", cfg.Name, "dir", cfg.Directory)
	if _, err := b.runner.Run(ctx, cfg.Directory, b.bin, "install"); err != nil {
		return errors.Wrap(errors.ErrCodeInstallFailed, err, "bower install failed for %s", cfg.Name)
	}

	_, err := b.CreateDependencyMappingCache(ctx, cfg)
	return err
}

// CreateDependencyMappingCache runs "bower list --json" for an already
// installed bundle and caches the listing. It returns the raw listing.
func (b *Bower) CreateDependencyMappingCache(ctx context.Context, cfg *Configuration) ([]byte, error) {
	manifest, err := b.readManifest(cfg)
	if err != nil {
		return nil, err
	}

	args := []string{"list", "--json"}
	if b.offline {
		args = append(args, "--offline")
	}
	out, err := b.runner.Run(ctx, cfg.Directory, b.bin, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInstallFailed, err, "bower list failed for %s", cfg.Name)
	}

	// Reject listings we could not read back later.
	if _, err := b.mapper.Map(out, *cfg); err != nil {
		return nil, err
	}

	key := b.keyer.MappingKey(cfg.Directory, cache.Hash(manifest))
	if err := b.cache.Set(ctx, key, out, b.ttl); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "store dependency mapping for %s", cfg.Name)
	}
	observability.Cache().OnCacheSet(ctx, "mapping", len(out))
	b.logger.Debug("cached dependency mapping", "bundle", cfg.Name, "bytes", len(out))
	return out, nil
}

// GetDependencyMapping returns the packages of a previously installed bundle.
func (b *Bower) GetDependencyMapping(ctx context.Context, cfg *Configuration) ([]*Package, error) {
	manifest, err := b.readManifest(cfg)
	if err != nil {
		return nil, err
	}

	key := b.keyer.MappingKey(cfg.Directory, cache.Hash(manifest))
	data, hit, err := b.cache.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolutionNotReady, err, "read dependency mapping for %s", cfg.Name)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "mapping")
		return nil, errors.New(errors.ErrCodeResolutionNotReady, "no dependency mapping cached for %s", cfg.Name)
	}
	observability.Cache().OnCacheHit(ctx, "mapping")

	return b.mapper.Map(data, *cfg)
}

// ForgetDependencyMapping removes the cached mapping of the bundle's current
// manifest. Later builds report the resolution as not ready until the next
// install.
func (b *Bower) ForgetDependencyMapping(ctx context.Context, cfg *Configuration) error {
	manifest, err := b.readManifest(cfg)
	if err != nil {
		return err
	}
	key := b.keyer.MappingKey(cfg.Directory, cache.Hash(manifest))
	if err := b.cache.Delete(ctx, key); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove dependency mapping for %s", cfg.Name)
	}
	return nil
}

func (b *Bower) readManifest(cfg *Configuration) ([]byte, error) {
	path := cfg.ManifestPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "manifest %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %s", path)
	}
	return data, nil
}
