package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"glean/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "glean",
	Short: "Variance analysis for glob token trees",
	Long: `glean reads glob patterns described as token trees and reports how much of
each pattern is fixed text, how deep it can reach, and where it splits into an
invariant prefix and a variant remainder.`,
	SilenceUsage: true,
}

// main registers subcommands and persistent flags, then runs the root command.
// Interrupts cancel the command context; any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(partitionCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "path to glean.toml (default: search upward from the working directory)")
	flags.String("case", "platform", "path case sensitivity (sensitive|insensitive|platform)")
	flags.String("format", "pretty", "output format (pretty|json)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Int("jobs", 0, "files analyzed concurrently (0 = GOMAXPROCS)")
	flags.Bool("no-cache", false, "do not read or write the tree cache")
	flags.String("ui", "auto", "progress UI (auto|on|off)")

	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for ring and both modes")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of f, or 80 when it is unknown.
func terminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
