package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds the version and asset counts to package labels.
	Detailed bool
}

// dotHeader lays dependencies out top-down, bundle first.
const dotHeader = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.5;
  nodesep=0.3;
  node [shape=box, style="rounded,filled", fillcolor=white, fontname="Helvetica", fontsize=14];
  edge [color="#888888", arrowsize=0.7];
`

// ToDOT converts a graph to Graphviz DOT. The bundle root is drawn as a grey
// folder. Render the result with [RenderSVG].
func ToDOT(g Graph, opts Options) string {
	var sb strings.Builder
	sb.WriteString(dotHeader)

	sb.WriteByte('\n')
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "  %q [%s];\n", n.ID, nodeAttrs(n, opts))
	}

	sb.WriteByte('\n')
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "  %q -> %q;\n", e.From, e.To)
	}

	sb.WriteString("}\n")
	return sb.String()
}

func nodeAttrs(n Node, opts Options) string {
	if n.IsBundle() {
		return fmt.Sprintf("label=%q, shape=folder, style=filled, fillcolor=lightgrey", n.ID)
	}
	if !opts.Detailed {
		return fmt.Sprintf("label=%q", n.ID)
	}

	lines := []string{n.ID}
	if n.Version != "" {
		lines = append(lines, "version: "+n.Version)
	}
	lines = append(lines, "css: "+strconv.Itoa(n.Styles), "js: "+strconv.Itoa(n.Scripts))
	return fmt.Sprintf("label=%q", strings.Join(lines, "\n"))
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	return normalizeViewBox(out.Bytes()), nil
}

var (
	svgOpenTag  = regexp.MustCompile(`<svg[^>]*>`)
	svgViewBoxA = regexp.MustCompile(`viewBox="[0-9.]+\s+[0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element, which is sized in
// points, with one sized in pixels that scales with its container.
func normalizeViewBox(svg []byte) []byte {
	m := svgViewBoxA.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenTag.ReplaceAllLiteral(svg, []byte(root))
}
