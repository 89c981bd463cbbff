package formula

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bowerassets/pkg/bower"
	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/naming"
	"github.com/matzehuels/bowerassets/pkg/observability"
)

// InstallCommand is the command named in resolution errors.
const InstallCommand = "bowerassets install"

// Resolver returns the packages of a bundle.
type Resolver interface {
	GetDependencyMapping(ctx context.Context, cfg *bower.Configuration) ([]*bower.Package, error)
}

// ScopeLister enumerates the configured bundles.
type ScopeLister interface {
	Bundles() []*bower.Configuration
}

// Resource aggregates the formulae of every configured bundle.
type Resource struct {
	resolver Resolver
	scopes   ScopeLister
	naming   naming.Strategy
	builder  *Builder
	logger   *log.Logger
}

// NewResource creates a resource. A nil naming strategy falls back to
// naming.PackageNamingStrategy, a nil builder to NewBuilder and a nil logger
// to log.Default().
func NewResource(resolver Resolver, scopes ScopeLister, n naming.Strategy, b *Builder, logger *log.Logger) *Resource {
	if n == nil {
		n = naming.PackageNamingStrategy{}
	}
	if b == nil {
		b = NewBuilder(n)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resource{
		resolver: resolver,
		scopes:   scopes,
		naming:   n,
		builder:  b,
		logger:   logger,
	}
}

// Builder returns the underlying formula builder.
func (r *Resource) Builder() *Builder { return r.builder }

// AddPackageResource registers an override on the underlying builder.
func (r *Resource) AddPackageResource(pr *PackageResource) *Resource {
	r.builder.AddPackageResource(pr)
	return r
}

// String identifies the resource to asset compilers.
func (r *Resource) String() string { return "bower" }

// Content builds the formulae of all bundles. It is recomputed on every call.
//
// A missing manifest aborts with the resolver's error unchanged. Any other
// resolver failure is reported as errors.ErrCodeResolutionNotReady with a
// hint to run the install command.
func (r *Resource) Content(ctx context.Context) (Formulae, error) {
	start := time.Now()
	formulae := Formulae{}

	for _, cfg := range r.scopes.Bundles() {
		pkgs, err := r.resolve(ctx, cfg)
		if err != nil {
			return nil, err
		}

		for _, pkg := range pkgs {
			name := r.naming.TranslateName(pkg.Name)
			for key, f := range r.builder.CreatePackageFormulae(pkg, name) {
				if _, exists := formulae[key]; exists {
					r.logger.Debug("formula replaced by later bundle", "formula", key, "bundle", cfg.Name)
				}
				formulae[key] = f
			}
		}
	}

	observability.Build().OnFormulaeBuilt(ctx, len(formulae), time.Since(start))
	r.logger.Debug("built formulae", "count", len(formulae), "elapsed", time.Since(start).Round(time.Millisecond))
	return formulae, nil
}

// Formula builds all formulae and returns the one called name.
func (r *Resource) Formula(ctx context.Context, name string) (Formula, error) {
	formulae, err := r.Content(ctx)
	if err != nil {
		return Formula{}, err
	}
	f, ok := formulae[name]
	if !ok {
		return Formula{}, errors.New(errors.ErrCodeFormulaNotFound, "formula %q does not exist", name)
	}
	return f, nil
}

func (r *Resource) resolve(ctx context.Context, cfg *bower.Configuration) ([]*bower.Package, error) {
	start := time.Now()
	observability.Build().OnResolveStart(ctx, cfg.Name)

	pkgs, err := r.resolver.GetDependencyMapping(ctx, cfg)
	observability.Build().OnResolveComplete(ctx, cfg.Name, len(pkgs), time.Since(start), err)

	switch {
	case err == nil:
		r.logger.Debug("resolved bundle", "bundle", cfg.Name, "packages", len(pkgs))
		return pkgs, nil
	case errors.Is(err, errors.ErrCodeManifestNotFound):
		return nil, err
	default:
		return nil, errors.Wrap(errors.ErrCodeResolutionNotReady, err,
			"dependency cache keys not yet generated, run %q to initiate the cache", InstallCommand)
	}
}

// MarshalBinary serializes the builder configuration.
func (r *Resource) MarshalBinary() ([]byte, error) {
	return json.Marshal(r.builder.State())
}

// UnmarshalBinary restores configuration written by MarshalBinary.
func (r *Resource) UnmarshalBinary(data []byte) error {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "restore formula resource")
	}
	r.builder.Restore(s)
	return nil
}
