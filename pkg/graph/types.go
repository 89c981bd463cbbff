package graph

import (
	"github.com/matzehuels/bowerassets/pkg/bower"
)

// Node kinds.
const (
	KindBundle  = "bundle"
	KindPackage = "package"
)

// Graph is the serialization format for a bundle's dependency mapping.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a bundle or a package.
type Node struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Version string `json:"version,omitempty"`
	Styles  int    `json:"styles,omitempty"`  // Number of stylesheets
	Scripts int    `json:"scripts,omitempty"` // Number of scripts
}

// IsBundle returns true if this is the bundle root.
func (n *Node) IsBundle() bool { return n.Kind == KindBundle }

// Edge points from a dependent to its dependency.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FromPackages converts a dependency mapping to a graph. Nodes keep the
// mapping order. When bundle is non-empty it is added as the first node with
// edges to every package nothing else depends on.
func FromPackages(bundle string, pkgs []*bower.Package) Graph {
	var out Graph
	if bundle != "" {
		out.Nodes = append(out.Nodes, Node{ID: bundle, Kind: KindBundle})
	}

	depended := make(map[string]bool)
	seen := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out.Nodes = append(out.Nodes, Node{
			ID:      p.Name,
			Kind:    KindPackage,
			Version: p.Version,
			Styles:  len(p.Styles),
			Scripts: len(p.Scripts),
		})
		for _, d := range p.Dependencies {
			depended[d.Name] = true
			out.Edges = append(out.Edges, Edge{From: p.Name, To: d.Name})
		}
	}

	if bundle == "" {
		return out
	}
	var roots []Edge
	for _, n := range out.Nodes {
		if n.Kind == KindPackage && !depended[n.ID] {
			roots = append(roots, Edge{From: bundle, To: n.ID})
		}
	}
	out.Edges = append(roots, out.Edges...)
	return out
}
