package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glean/internal/codec"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached tree files",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := codec.OpenDiskCache("glean")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
	return nil
}
