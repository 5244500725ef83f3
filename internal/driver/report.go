package driver

import (
	"glean/internal/observ"
	"glean/internal/pathcase"
	"glean/internal/token"
	"glean/internal/variance"
)

// Report is the analysis of one tree file.
type Report struct {
	File     string
	Case     pathcase.Sensitivity
	Patterns []PatternReport
	// Err is set when the file could not be loaded; Patterns is then empty.
	Err    error
	Timing observ.Report
}

// PatternReport holds every analysis of one pattern.
type PatternReport struct {
	Name       string
	Expression string
	// Pattern is the tree rendered back into glob syntax.
	Pattern              string
	Text                 variance.Variance[variance.InvariantText]
	Size                 variance.Variance[variance.InvariantSize]
	Depth                variance.Boundedness
	Breadth              variance.Boundedness
	HasRoot              bool
	HasComponentBoundary bool
	Components           int
	Literals             []string
	Prefix               string
	Rest                 string
}

// AnalyzePattern runs every analysis over p under cs.
func AnalyzePattern[A any](name string, p token.Tokenized[A], cs pathcase.Sensitivity) PatternReport {
	r := PatternReport{
		Name:                 name,
		Expression:           p.Expression(),
		Pattern:              p.String(),
		Text:                 p.TextVariance(cs),
		Size:                 p.SizeVariance(cs),
		Depth:                p.Depth(),
		Breadth:              p.Breadth(),
		HasRoot:              p.HasRoot(),
		HasComponentBoundary: p.HasComponentBoundary(),
	}
	for range p.Components() {
		r.Components++
	}
	for _, literal := range p.Literals() {
		r.Literals = append(r.Literals, literal.Text())
	}
	prefix, rest := p.Partition(cs)
	r.Prefix = prefix
	r.Rest = rest.String()
	return r
}

// Failed reports whether any file in reports failed to load.
func Failed(reports []Report) bool {
	for _, r := range reports {
		if r.Err != nil {
			return true
		}
	}
	return false
}
