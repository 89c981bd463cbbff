// Package graph exports Bower dependency mappings as graphs.
//
// A mapping produced by [bower.DependencyMapper] is a flat list of shared
// packages. [FromPackages] turns it into a [Graph] of nodes and edges that can
// be written as JSON ([WriteGraph]) or converted to Graphviz DOT ([ToDOT]) and
// rendered to SVG ([RenderSVG]).
//
// # Example
//
//	pkgs, _ := resolver.GetDependencyMapping(ctx, cfg)
//	g := graph.FromPackages("DemoBundle", pkgs)
//	svg, err := graph.RenderSVG(graph.ToDOT(g, graph.Options{Detailed: true}))
//
// The bundle becomes a root node pointing at every package no other package
// depends on, so each bundle renders as a single connected drawing.
//
// [bower.DependencyMapper]: github.com/matzehuels/bowerassets/pkg/bower.DependencyMapper
package graph
