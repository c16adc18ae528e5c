package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestview/pkg/cache"
	"github.com/matzehuels/nestview/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Caching is disabled")
				return nil
			}

			cc, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			ok, err := cache.Clear(cmd.Context(), cc)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if !ok {
				printWarning("The %s backend cannot be cleared", cfg.Cache.Backend)
				return nil
			}

			printSuccess("Cleared %s cache", cfg.Cache.Backend)
			if cfg.Cache.Backend != config.CacheRedis {
				if dir, err := cacheDir(cfg.Cache); err == nil {
					printDetail("Directory: %s", dir)
				}
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir, err := cacheDir(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
