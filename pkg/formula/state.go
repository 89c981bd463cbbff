package formula

import "slices"

// State is the serializable configuration of a Builder.
type State struct {
	CSSFilters       []string          `json:"css_filters"`
	JSFilters        []string          `json:"js_filters"`
	NestDependencies bool              `json:"nest_dependencies"`
	PackageResources []PackageResource `json:"package_resources"`
}

// State captures the builder configuration. Overrides are sorted by name.
func (b *Builder) State() State {
	s := State{
		CSSFilters:       mergeFilters(b.cssFilters, nil),
		JSFilters:        mergeFilters(b.jsFilters, nil),
		NestDependencies: b.nest,
		PackageResources: make([]PackageResource, 0, len(b.resources)),
	}
	for _, r := range b.PackageResources() {
		s.PackageResources = append(s.PackageResources, *r.clone())
	}
	return s
}

// Restore replaces the builder configuration with s. The naming strategy is
// not part of the state and is kept.
func (b *Builder) Restore(s State) {
	b.cssFilters = slices.Clone(s.CSSFilters)
	b.jsFilters = slices.Clone(s.JSFilters)
	b.nest = s.NestDependencies
	b.resources = make(map[string]*PackageResource, len(s.PackageResources))
	for i := range s.PackageResources {
		b.AddPackageResource(&s.PackageResources[i])
	}
}
