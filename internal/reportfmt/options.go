// Package reportfmt renders analysis reports for people and for tools.
package reportfmt

import (
	"fmt"
	"strings"
)

// Format selects a renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
)

// ParseFormat converts a configuration value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatPretty, fmt.Errorf("invalid output format: %q (expected: pretty|json)", s)
	}
}

// String returns the string representation of Format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "pretty"
}

// Options configures rendering.
type Options struct {
	Color   bool
	Timings bool
	// Width caps the pattern column in pretty output; 0 means unlimited.
	Width int
}
