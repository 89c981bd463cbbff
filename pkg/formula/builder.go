package formula

import (
	"maps"
	"slices"

	"github.com/matzehuels/bowerassets/pkg/bower"
	"github.com/matzehuels/bowerassets/pkg/naming"
)

// Builder creates the formulae of single packages.
//
// Configure it before the first build; Builder does no locking and must not
// be modified while CreatePackageFormulae runs on another goroutine.
type Builder struct {
	naming     naming.Strategy
	resources  map[string]*PackageResource
	nest       bool
	cssFilters []string
	jsFilters  []string
}

// NewBuilder creates a builder that nests dependencies and has no filters.
func NewBuilder(n naming.Strategy) *Builder {
	if n == nil {
		n = naming.PackageNamingStrategy{}
	}
	return &Builder{
		naming:    n,
		resources: make(map[string]*PackageResource),
		nest:      true,
	}
}

// AddPackageResource registers r under r.Name, replacing any previous
// override of the same name.
func (b *Builder) AddPackageResource(r *PackageResource) *Builder {
	b.resources[r.Name] = r.clone()
	return b
}

// PackageResource returns the override registered for name.
func (b *Builder) PackageResource(name string) (*PackageResource, bool) {
	r, ok := b.resources[name]
	return r, ok
}

// PackageResources returns all overrides sorted by name.
func (b *Builder) PackageResources() []*PackageResource {
	out := make([]*PackageResource, 0, len(b.resources))
	for _, name := range slices.Sorted(maps.Keys(b.resources)) {
		out = append(out, b.resources[name])
	}
	return out
}

// SetNestDependencies sets the default for dependency nesting.
func (b *Builder) SetNestDependencies(nest bool) { b.nest = nest }

// ShouldNestDependencies reports the default for dependency nesting.
func (b *Builder) ShouldNestDependencies() bool { return b.nest }

// SetCSSFilters sets the filters applied to every stylesheet formula.
func (b *Builder) SetCSSFilters(filters []string) { b.cssFilters = slices.Clone(filters) }

// CSSFilters returns the global stylesheet filters.
func (b *Builder) CSSFilters() []string { return slices.Clone(b.cssFilters) }

// SetJSFilters sets the filters applied to every script formula.
func (b *Builder) SetJSFilters(filters []string) { b.jsFilters = slices.Clone(filters) }

// JSFilters returns the global script filters.
func (b *Builder) JSFilters() []string { return slices.Clone(b.jsFilters) }

// CreatePackageFormulae returns the "<name>_css" and "<name>_js" formulae of
// pkg. name must already be translated by the naming strategy. pkg is not
// modified.
func (b *Builder) CreatePackageFormulae(pkg *bower.Package, name string) Formulae {
	res, hasOverride := b.PackageResource(name)

	css := append([]string{}, pkg.Styles...)
	js := append([]string{}, pkg.Scripts...)

	nest := b.nest
	if hasOverride {
		nest = res.Nest.Resolve(nest)
	}

	if nest {
		for _, dep := range pkg.Dependencies {
			depName := b.naming.TranslateName(dep.Name)
			js = slices.Insert(js, 0, Reference(JSName(depName)))
			css = slices.Insert(css, 0, Reference(CSSName(depName)))
		}
	}

	cssFilters := mergeFilters(b.cssFilters, nil)
	jsFilters := mergeFilters(b.jsFilters, nil)
	if hasOverride {
		cssFilters = mergeFilters(b.cssFilters, res.CSSFilters)
		jsFilters = mergeFilters(b.jsFilters, res.JSFilters)
	}

	return Formulae{
		CSSName(name): newFormula(CSSName(name), css, cssFilters),
		JSName(name):  newFormula(JSName(name), js, jsFilters),
	}
}

// mergeFilters returns global followed by override in a fresh slice.
func mergeFilters(global, override []string) []string {
	out := make([]string, 0, len(global)+len(override))
	out = append(out, global...)
	return append(out, override...)
}
