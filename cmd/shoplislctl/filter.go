package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dukerupert/shoplisl/internal/colorfilter"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter <hex>...",
	Short: "Solve the CSS filter that tints a black icon to each color",
	Long: `Solve the CSS filter chain that turns a black icon into each given color.
Results come from the shared redis cache when SHOPLISL_REDIS_URL is set and
are written back to it.

Examples:
  shoplislctl filter "#f44336" 9c27b0`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = colorfilter.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, solving locally", "error", err)
		} else {
			defer rdb.Close()
		}
	}
	cache := colorfilter.NewCache(len(args), cfg.FilterCacheTTL, rdb, logger, nil)
	svc := colorfilter.NewService(cache, logger, nil)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLOR\tLOSS\tQUALITY\tFILTER")
	for _, hex := range args {
		res, err := svc.Filter(ctx, hex)
		if err != nil {
			tw.Flush()
			return fmt.Errorf("%s: %w", hex, err)
		}
		target, _ := colorfilter.ParseHex(hex)
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", target.Hex(), res.Loss, res.Quality, res.Filter)
	}
	return tw.Flush()
}
