package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/config"
)

// installCommand creates the install command.
func (c *CLI) installCommand() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "install [bundle...]",
		Short: "Install bower dependencies and cache their mapping",
		Long: `Install runs "bower install" in every configured bundle (or only the named
ones) and caches the resulting dependency listing. Formulae can only be built
for bundles whose current manifest has been installed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.openApp(func(cfg *config.Config) {
				if cmd.Flags().Changed("offline") {
					cfg.Offline = offline
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			bundles, err := a.manager.Select(args...)
			if err != nil {
				return err
			}
			status := newPrinter(cmd.ErrOrStderr())
			if len(bundles) == 0 {
				status.warning("No bundles configured")
				return nil
			}

			prog := newProgress(c.Logger)
			for _, b := range bundles {
				spin := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Installing %s...", b.Name))
				spin.Start()
				if err := a.bower.Install(ctx, b); err != nil {
					spin.StopWithError(fmt.Sprintf("%s failed", b.Name))
					return err
				}

				pkgs, err := a.bower.GetDependencyMapping(ctx, b)
				if err != nil {
					spin.StopWithSuccess(b.Name)
					c.Logger.Debug("mapping not readable after install", "bundle", b.Name, "err", err)
					continue
				}
				spin.StopWithSuccess(fmt.Sprintf("%s: %d packages", b.Name, len(pkgs)))
			}
			prog.done(fmt.Sprintf("Installed %d bundles", len(bundles)))

			status.nextStep("Build the formulae", appName+" formulae")
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "pass --offline to \"bower list\" (overrides the config file)")

	return cmd
}
