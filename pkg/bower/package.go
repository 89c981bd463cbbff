package bower

// Package is an installed Bower component with its asset files and direct
// dependencies. Packages are shared: two dependents of the same component
// point at the same *Package.
type Package struct {
	Name         string     // Package name as declared in the registry
	Version      string     // Installed version, if known
	Dir          string     // Directory the package is installed in
	Styles       []string   // Stylesheet paths, in declaration order
	Scripts      []string   // Script paths, in declaration order
	Dependencies []*Package // Direct dependencies, in declaration order
}

// DependencyNames returns the names of the direct dependencies.
func (p *Package) DependencyNames() []string {
	names := make([]string, len(p.Dependencies))
	for i, d := range p.Dependencies {
		names[i] = d.Name
	}
	return names
}
