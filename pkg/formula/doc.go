// Package formula builds asset formulae from Bower dependency mappings.
//
// A formula is a named, ordered list of input files plus an ordered filter
// chain, the unit an asset compiler works with. Every package yields two
// formulae, "<name>_css" and "<name>_js", where name is the package name
// after translation by a [naming.Strategy].
//
// # Builder
//
// [Builder] turns one package into its two formulae. When dependency nesting
// is enabled, references to the dependencies' own formulae ("@<dep>_css",
// "@<dep>_js") are placed in front of the package's files, so that an asset
// compiler emits dependencies first. Each reference is inserted at the front
// as the dependencies are walked, which means that with dependencies [A, B]
// the list starts with @B, then @A.
//
// Filters are the builder's global filters followed by the filters of the
// package's [PackageResource] override, if one is registered.
//
// # Resource
//
// [Resource] walks every configured bundle, asks a [Resolver] for the bundle's
// packages and merges the formulae of all packages into one [Formulae] map.
// When two bundles produce the same formula name, the later bundle wins.
//
//	builder := formula.NewBuilder(naming.PackageNamingStrategy{})
//	builder.SetCSSFilters([]string{"cssrewrite"})
//	res := formula.NewResource(resolver, manager, naming.PackageNamingStrategy{}, builder, logger)
//	formulae, err := res.Content(ctx)
//
// # State
//
// The builder's configuration (global filters, nest flag and overrides) can
// be captured as a [State] and restored later; [Resource] exposes the same
// round trip through MarshalBinary and UnmarshalBinary for outer caching layers.
package formula
