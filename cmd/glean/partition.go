package main

import (
	"github.com/spf13/cobra"

	"glean/internal/driver"
	"glean/internal/reportfmt"
)

var partitionCmd = &cobra.Command{
	Use:   "partition [flags] PATH...",
	Short: "Split patterns into an invariant prefix and a variant remainder",
	Long: `Partition prints one line per pattern: the invariant path prefix, then the
remaining pattern that must still be matched below it. The prefix never ends in
the middle of a path component.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPartition,
}

func runPartition(cmd *cobra.Command, args []string) error {
	reports, s, err := analyzePaths(cmd, args, "partition")
	if err != nil {
		return err
	}
	opts, err := renderOptions(cmd, s)
	if err != nil {
		return err
	}
	if s.Format == reportfmt.FormatJSON {
		err = reportfmt.JSON(cmd.OutOrStdout(), reports, opts)
	} else {
		err = reportfmt.Partitions(cmd.OutOrStdout(), reports, opts)
	}
	if err != nil {
		return err
	}
	if driver.Failed(reports) {
		return errAnalysisFailed
	}
	return nil
}
