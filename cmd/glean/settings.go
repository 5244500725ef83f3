package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glean/internal/codec"
	"glean/internal/pathcase"
	"glean/internal/reportfmt"
)

// settings is the effective configuration of one command: flags that were
// set explicitly win over glean.toml, which wins over flag defaults.
type settings struct {
	Case   pathcase.Sensitivity
	Format reportfmt.Format
	Color  colorMode
	UI     uiMode
	Jobs   int
	Cache  bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	manifest, err := discoverConfig(explicit, ".")
	if err != nil {
		return settings{}, err
	}
	return resolveSettings(cmd, manifest)
}

func resolveSettings(cmd *cobra.Command, manifest *projectManifest) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	pick := func(name, configured string, key ...string) (string, error) {
		value, err := flags.GetString(name)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		if flags.Changed(name) || !manifest.defines(key...) {
			return value, nil
		}
		return configured, nil
	}
	var cfg projectConfig
	if manifest != nil {
		cfg = manifest.Config
	}

	var (
		s   settings
		err error
		raw string
	)
	if raw, err = pick("case", cfg.Paths.Case, "paths", "case"); err != nil {
		return s, err
	}
	if s.Case, err = pathcase.Parse(raw); err != nil {
		return s, err
	}
	if raw, err = pick("format", cfg.Output.Format, "output", "format"); err != nil {
		return s, err
	}
	if s.Format, err = reportfmt.ParseFormat(raw); err != nil {
		return s, err
	}
	if raw, err = pick("color", cfg.Output.Color, "output", "color"); err != nil {
		return s, err
	}
	if s.Color, err = readColorMode(raw); err != nil {
		return s, err
	}

	uiRaw, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.UI, err = readUIMode(uiRaw); err != nil {
		return s, err
	}

	if s.Jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && manifest.defines("driver", "jobs") {
		s.Jobs = cfg.Driver.Jobs
	}
	if s.Jobs < 0 {
		return s, fmt.Errorf("invalid --jobs value %d", s.Jobs)
	}

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return s, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	s.Cache = !noCache
	if !flags.Changed("no-cache") && manifest.defines("driver", "cache") {
		s.Cache = cfg.Driver.Cache
	}
	return s, nil
}

// openCache returns nil when caching is off or the cache directory cannot be
// created; analysis then decodes every file from scratch.
func openCache(cmd *cobra.Command, s settings) *codec.DiskCache {
	if !s.Cache {
		return nil
	}
	cache, err := codec.OpenDiskCache("glean")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
		return nil
	}
	return cache
}

func renderOptions(cmd *cobra.Command, s settings) (reportfmt.Options, error) {
	opts := reportfmt.Options{Color: useColor(s.Color)}
	if f := cmd.Flags().Lookup("timings"); f != nil {
		timings, err := cmd.Flags().GetBool("timings")
		if err != nil {
			return opts, err
		}
		opts.Timings = timings
	}
	if f := cmd.Flags().Lookup("width"); f != nil {
		width, err := cmd.Flags().GetInt("width")
		if err != nil {
			return opts, err
		}
		opts.Width = width
	}
	if opts.Width == 0 && isTerminal(os.Stdout) {
		opts.Width = terminalWidth(os.Stdout) / 2
	}
	return opts, nil
}
