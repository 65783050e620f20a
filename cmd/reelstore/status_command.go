package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelstore/internal/config"
	"reelstore/internal/movies"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store locations, record counts, and disk usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(cfg *config.Config, svc *movies.Service) error {
				stats, err := svc.Stats(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Asset root:  %s\n", cfg.Store.RootDir)
				fmt.Fprintf(out, "Index dir:   %s\n", cfg.Store.IndexDir)
				fmt.Fprintf(out, "Movies:      %d\n", stats.Movies)
				fmt.Fprintf(out, "Assets:      %d\n", stats.Assets)

				usage, err := svc.Assets().DiskUsage()
				if err != nil {
					fmt.Fprintf(out, "Disk usage:  unavailable (%v)\n", err)
					return nil
				}
				fmt.Fprintf(out, "Disk usage:  %s used of %s (%s available)\n",
					formatBytes(usage.UsedBytes),
					formatBytes(usage.TotalBytes),
					formatBytes(usage.AvailableBytes),
				)
				return nil
			})
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
