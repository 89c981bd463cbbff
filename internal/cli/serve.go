package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the formulae over HTTP",
		Long: `Serve exposes the formulae as JSON. Every request rebuilds them from the
dependency cache, so running "bowerassets install" takes effect immediately.

  GET /healthz
  GET /formulae
  GET /formulae/{name}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return server.New(a.resource, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}
