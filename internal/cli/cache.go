package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bowerassets/pkg/cache"
	"github.com/matzehuels/bowerassets/pkg/config"
	"github.com/matzehuels/bowerassets/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the dependency mapping cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
//
// A file cache is wiped entirely. Other backends may be shared, so only the
// mappings of the configured bundles are removed from them.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove cached dependency mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfigOrDefault()
			if err != nil {
				return err
			}
			a, err := c.wire(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if fc, ok := a.cache.(*cache.FileCache); ok {
				count, err := fc.Clear()
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "clear %s", fc.Dir())
				}
				status := newPrinter(cmd.ErrOrStderr())
				status.success("Cleared %d cached entries", count)
				status.detail("Directory: %s", fc.Dir())
				return nil
			}

			count := 0
			for _, b := range a.manager.Bundles() {
				err := a.bower.ForgetDependencyMapping(cmd.Context(), b)
				switch {
				case errors.Is(err, errors.ErrCodeManifestNotFound):
					c.Logger.Debug("skipping bundle without manifest", "bundle", b.Name)
				case err != nil:
					return err
				default:
					count++
				}
			}
			newPrinter(cmd.ErrOrStderr()).success("Removed the mappings of %d bundles", count)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where dependency mappings are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfigOrDefault()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch cfg.Cache.Backend {
			case config.CacheRedis:
				fmt.Fprintln(out, cfg.Cache.RedisURL)
			case config.CacheNone:
				newPrinter(cmd.ErrOrStderr()).info("Caching is disabled")
			default:
				dir, err := cfg.CacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(out, dir)
			}
			return nil
		},
	}
}
