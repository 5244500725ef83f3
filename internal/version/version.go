// Package version holds build metadata for the glean CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Banner renders the version with each component colored.
func Banner(colored bool) string {
	major := color.New(color.FgYellow, color.Bold)
	minor := color.New(color.FgGreen, color.Bold)
	patch := color.New(color.FgBlue, color.Bold)
	for _, c := range []*color.Color{major, minor, patch} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := major.Sprint(parts[0]) + "." + minor.Sprint(parts[1]) + "." + patch.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Describe returns the banner followed by whatever commit and date are known.
// The commit falls back to the VCS revision stamped by the Go toolchain.
func Describe(colored bool) string {
	commit := GitCommit
	if commit == "" {
		commit = vcsRevision()
	}
	var b strings.Builder
	b.WriteString("glean " + Banner(colored))
	if commit != "" {
		fmt.Fprintf(&b, " (%s)", shortCommit(commit))
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, " built %s", BuildDate)
	}
	return b.String()
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
