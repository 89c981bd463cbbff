// Package bower talks to the Bower package manager on behalf of the formula
// builder.
//
// A [Configuration] describes one bundle: the directory holding its bower.json
// and where Bower installs components. The [Manager] keeps the ordered set of
// configured bundles.
//
// [Bower] is the resolver. Install runs "bower install" followed by
// "bower list --json" and stores the listing in a [cache.Cache], keyed by the
// manifest's content hash. GetDependencyMapping later reads that listing back
// and turns it into a [Package] graph through the [DependencyMapper]:
//
//	b := bower.New(c, bower.WithLogger(logger))
//	if err := b.Install(ctx, cfg); err != nil {
//	    return err
//	}
//	packages, err := b.GetDependencyMapping(ctx, cfg)
//
// A missing manifest is reported as [errors.ErrCodeManifestNotFound]; a
// manifest whose listing was never cached is reported as
// [errors.ErrCodeResolutionNotReady].
package bower
