package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/roomcraft/internal/cli"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage stored AI provider responses",
	}

	cmd.AddCommand(cachePruneCmd())
	cmd.AddCommand(cacheStatsCmd())

	return cmd
}

func cachePruneCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete stored responses older than a duration",
		Example: `  roomcraft cache prune
  roomcraft cache prune --older-than 1h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("older-than") {
				olderThan = settings.CacheTTL
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return fmt.Errorf("failed to open response store: %w", err)
			}
			defer func() { _ = store.Close() }()

			deleted, err := store.PruneResponses(ctx, time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			remaining, err := store.CountResponses(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Pruned %d responses older than %s; %d remain", deleted, olderThan, remaining)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "age cutoff (default: llm.cache_ttl)")

	return cmd
}

func cacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show where responses are stored and how many there are",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, settings)
			if err != nil {
				return fmt.Errorf("failed to open response store: %w", err)
			}
			defer func() { _ = store.Close() }()

			count, err := store.CountResponses(ctx)
			if err != nil {
				return err
			}

			content := fmt.Sprintf("Database: %s\nResponses: %d\nTTL: %s", store.Path(), count, settings.CacheTTL)
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Response Cache", content))
			return nil
		},
	}
}
