package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/errors"
	"github.com/matzehuels/bowerassets/pkg/graph"
)

// Graph output formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <bundle>",
		Short: "Export the dependency graph of a bundle",
		Long: `Graph exports the installed dependency graph of a bundle as Graphviz DOT,
rendered SVG or JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			bundles, err := a.manager.Select(args[0])
			if err != nil {
				return err
			}
			pkgs, err := a.bower.GetDependencyMapping(cmd.Context(), bundles[0])
			if err != nil {
				return err
			}

			data, err := renderGraph(graph.FromPackages(args[0], pkgs), format, detailed)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			newPrinter(cmd.ErrOrStderr()).file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show versions and asset counts in node labels")

	return cmd
}

func renderGraph(g graph.Graph, format string, detailed bool) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(graph.ToDOT(g, graph.Options{Detailed: detailed})), nil
	case formatSVG:
		return graph.RenderSVG(graph.ToDOT(g, graph.Options{Detailed: detailed}))
	case formatJSON:
		return graph.MarshalGraph(g)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown graph format %q (want dot, svg or json)", format)
	}
}

