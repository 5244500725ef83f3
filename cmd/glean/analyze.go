package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"glean/internal/driver"
	"glean/internal/reportfmt"
)

var errAnalysisFailed = errors.New("analysis failed")

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] PATH...",
	Short: "Report variance, depth, and prefixes of glob token trees",
	Long: `Analyze reads tree files (.toml, or .mp produced by "glean encode") and
reports, for every pattern, its text and size variance, depth, breadth, literal
components, and the split into an invariant prefix and a variant remainder.
Directories are searched recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("timings", false, "show per-file timing information")
	analyzeCmd.Flags().Int("width", 0, "truncate patterns to this many columns (0 = fit terminal)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	reports, s, err := analyzePaths(cmd, args, "analyze")
	if err != nil {
		return err
	}
	opts, err := renderOptions(cmd, s)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch s.Format {
	case reportfmt.FormatJSON:
		err = reportfmt.JSON(out, reports, opts)
	default:
		err = reportfmt.Pretty(out, reports, opts)
	}
	if err != nil {
		return err
	}
	if driver.Failed(reports) {
		return errAnalysisFailed
	}
	return nil
}

// analyzePaths expands args into tree files and analyzes them with the
// effective settings, drawing live progress when the UI is enabled.
func analyzePaths(cmd *cobra.Command, args []string, title string) (reports []driver.Report, s settings, err error) {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, s, err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, s, err
	}
	defer func() { cleanup(err, failedFiles(reports)) }()

	s, err = loadSettings(cmd)
	if err != nil {
		return nil, s, err
	}
	files, err := driver.ListTreeFiles(args)
	if err != nil {
		return nil, s, err
	}

	opts := driver.Options{
		Case:  s.Case,
		Jobs:  s.Jobs,
		Cache: openCache(cmd, s),
	}
	ctx := cmd.Context()
	if shouldUseTUI(s.UI, s.Format == reportfmt.FormatJSON) {
		reports, err = runAnalyzeWithUI(ctx, title, files, opts)
	} else {
		reports, err = driver.Analyze(ctx, files, opts)
	}
	if err != nil {
		return nil, s, fmt.Errorf("%s interrupted: %w", title, err)
	}
	if driver.Failed(reports) && s.Format != reportfmt.FormatJSON {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", len(failedFiles(reports)), len(reports))
	}
	return reports, s, nil
}

func failedFiles(reports []driver.Report) []string {
	var files []string
	for _, r := range reports {
		if r.Err != nil {
			files = append(files, r.File)
		}
	}
	return files
}
