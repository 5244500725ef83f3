package reportfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"glean/internal/driver"
	"glean/internal/variance"
)

type palette struct {
	file, name, label  *color.Color
	invariant, closed  *color.Color
	open, failure, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		file:      color.New(color.Bold),
		name:      color.New(color.FgCyan, color.Bold),
		label:     color.New(color.FgWhite),
		invariant: color.New(color.FgGreen),
		closed:    color.New(color.FgYellow),
		open:      color.New(color.FgRed),
		failure:   color.New(color.FgRed, color.Bold),
		dim:       color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.file, p.name, p.label, p.invariant, p.closed, p.open, p.failure, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) boundedness(b variance.Boundedness) string {
	if b.IsOpen() {
		return p.open.Sprint(b.String())
	}
	return p.closed.Sprint(b.String())
}

func (p palette) variance(v interface {
	IsInvariant() bool
	IsOpen() bool
	String() string
}) string {
	switch {
	case v.IsInvariant():
		return p.invariant.Sprint(v.String())
	case v.IsOpen():
		return p.open.Sprint(v.String())
	default:
		return p.closed.Sprint(v.String())
	}
}

const labelWidth = 10

func (p palette) row(w io.Writer, label, value string) error {
	_, err := fmt.Fprintf(w, "    %s %s\n", p.label.Sprint(runewidth.FillRight(label, labelWidth)), value)
	return err
}

// Pretty writes a human-readable rendering of reports.
func Pretty(w io.Writer, reports []driver.Report, opts Options) error {
	p := newPalette(opts.Color)
	for i, r := range reports {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := prettyReport(w, p, r, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyReport(w io.Writer, p palette, r driver.Report, opts Options) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(w, "%s %s %v\n", p.file.Sprint(r.File), p.failure.Sprint("error:"), r.Err)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", p.file.Sprint(r.File), p.dim.Sprintf("(case: %s)", r.Case)); err != nil {
		return err
	}
	for _, pr := range r.Patterns {
		if _, err := fmt.Fprintf(w, "  %s  %s\n", p.name.Sprint(pr.Name), fit(pr.Pattern, opts.Width)); err != nil {
			return err
		}
		rows := [][2]string{
			{"text", p.variance(pr.Text)},
			{"size", p.variance(pr.Size)},
			{"depth", p.boundedness(pr.Depth)},
			{"breadth", p.boundedness(pr.Breadth)},
			{"rooted", yesNo(pr.HasRoot)},
			{"spans", yesNo(pr.HasComponentBoundary)},
			{"prefix", quoteEmpty(pr.Prefix)},
			{"rest", quoteEmpty(fit(pr.Rest, opts.Width))},
		}
		if len(pr.Literals) > 0 {
			rows = append(rows, [2]string{"literals", strings.Join(pr.Literals, ", ")})
		}
		for _, row := range rows {
			if err := p.row(w, row[0], row[1]); err != nil {
				return err
			}
		}
	}
	if opts.Timings {
		if _, err := io.WriteString(w, p.dim.Sprint(indent(r.Timing.String(), "  "))); err != nil {
			return err
		}
	}
	return nil
}

// Partitions writes one "prefix | rest" line per pattern.
func Partitions(w io.Writer, reports []driver.Report, opts Options) error {
	p := newPalette(opts.Color)
	for _, r := range reports {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s %s %v\n", p.file.Sprint(r.File), p.failure.Sprint("error:"), r.Err); err != nil {
				return err
			}
			continue
		}
		width := 0
		for _, pr := range r.Patterns {
			width = max(width, runewidth.StringWidth(pr.Name))
		}
		for _, pr := range r.Patterns {
			_, err := fmt.Fprintf(w, "%s  %s %s %s\n",
				p.name.Sprint(runewidth.FillRight(pr.Name, width)),
				p.invariant.Sprint(quoteEmpty(pr.Prefix)),
				p.dim.Sprint("|"),
				quoteEmpty(pr.Rest))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func fit(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func quoteEmpty(s string) string {
	if s == "" {
		return `""`
	}
	return s
}

func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}
