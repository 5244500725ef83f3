package reportfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"glean/internal/driver"
	"glean/internal/observ"
	"glean/internal/variance"
)

// VarianceJSON is the JSON form of a Variance.
type VarianceJSON struct {
	Invariant bool   `json:"invariant"`
	Value     string `json:"value,omitempty"`
	Bounds    string `json:"bounds,omitempty"`
}

// PatternJSON is the JSON form of a PatternReport.
type PatternJSON struct {
	Name                 string       `json:"name"`
	Expression           string       `json:"expression,omitempty"`
	Pattern              string       `json:"pattern"`
	Text                 VarianceJSON `json:"text"`
	Size                 VarianceJSON `json:"size"`
	Depth                string       `json:"depth"`
	Breadth              string       `json:"breadth"`
	HasRoot              bool         `json:"has_root"`
	HasComponentBoundary bool         `json:"has_component_boundary"`
	Components           int          `json:"components"`
	Literals             []string     `json:"literals,omitempty"`
	Prefix               string       `json:"prefix"`
	Rest                 string       `json:"rest"`
}

// ReportJSON is the JSON form of a Report.
type ReportJSON struct {
	File     string         `json:"file"`
	Case     string         `json:"case,omitempty"`
	Error    string         `json:"error,omitempty"`
	Patterns []PatternJSON  `json:"patterns,omitempty"`
	Timing   *observ.Report `json:"timing,omitempty"`
}

// Output is the root of the JSON document.
type Output struct {
	Reports []ReportJSON `json:"reports"`
	Failed  bool         `json:"failed"`
}

func varianceJSON[T variance.Invariance[T]](v variance.Variance[T]) VarianceJSON {
	if value, ok := v.Invariance(); ok {
		return VarianceJSON{Invariant: true, Value: fmt.Sprint(value)}
	}
	return VarianceJSON{Bounds: v.Boundedness().String()}
}

// BuildOutput converts reports into their JSON form.
func BuildOutput(reports []driver.Report, opts Options) Output {
	out := Output{Reports: make([]ReportJSON, len(reports)), Failed: driver.Failed(reports)}
	for i, r := range reports {
		rj := ReportJSON{File: r.File}
		if opts.Timings {
			timing := r.Timing
			rj.Timing = &timing
		}
		if r.Err != nil {
			rj.Error = r.Err.Error()
			out.Reports[i] = rj
			continue
		}
		rj.Case = r.Case.String()
		rj.Patterns = make([]PatternJSON, len(r.Patterns))
		for j, pr := range r.Patterns {
			rj.Patterns[j] = PatternJSON{
				Name:                 pr.Name,
				Expression:           pr.Expression,
				Pattern:              pr.Pattern,
				Text:                 varianceJSON(pr.Text),
				Size:                 varianceJSON(pr.Size),
				Depth:                pr.Depth.String(),
				Breadth:              pr.Breadth.String(),
				HasRoot:              pr.HasRoot,
				HasComponentBoundary: pr.HasComponentBoundary,
				Components:           pr.Components,
				Literals:             pr.Literals,
				Prefix:               pr.Prefix,
				Rest:                 pr.Rest,
			}
		}
		out.Reports[i] = rj
	}
	return out
}

// JSON writes reports as an indented JSON document.
func JSON(w io.Writer, reports []driver.Report, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(reports, opts))
}
