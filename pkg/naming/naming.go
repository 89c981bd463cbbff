// Package naming translates raw Bower package names into identifiers that are
// safe to use as formula name fragments.
package naming

import "strings"

// Strategy maps a raw package name to a sanitized identifier. Implementations
// must be pure and deterministic: the same input always yields the same output.
type Strategy interface {
	TranslateName(name string) string
}

// PackageNamingStrategy replaces every character outside [A-Za-z0-9_] with an
// underscore, so "invalid-package.name" becomes "invalid_package_name".
type PackageNamingStrategy struct{}

// TranslateName implements Strategy.
func (PackageNamingStrategy) TranslateName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(string) string

// TranslateName implements Strategy.
func (f StrategyFunc) TranslateName(name string) string { return f(name) }

var (
	_ Strategy = PackageNamingStrategy{}
	_ Strategy = StrategyFunc(nil)
)
