package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"glean/internal/codec"
	"glean/internal/observ"
	"glean/internal/pathcase"
	"glean/internal/trace"
	"glean/internal/treefile"
)

// Options configures Analyze.
type Options struct {
	// Case is the policy for files that do not set their own.
	Case pathcase.Sensitivity
	// Jobs limits concurrent files; 0 uses GOMAXPROCS.
	Jobs int
	// Cache holds decoded TOML trees between runs; nil disables it.
	Cache *codec.DiskCache
	// Progress receives per-file events; nil discards them.
	Progress ProgressSink
}

// Analyze loads and analyzes every file concurrently. Reports are returned in
// the order of files. A file that fails to load yields a Report with Err set;
// the returned error is only non-nil when ctx is done.
func Analyze(ctx context.Context, files []string, opts Options) ([]Report, error) {
	ctx, run := trace.BeginContext(ctx, trace.ScopeDriver, "analyze")
	defer run.End("")
	run.WithExtra("files", strconv.Itoa(len(files)))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	reports := make([]Report, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = analyzeFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

func analyzeFile(ctx context.Context, path string, opts Options) Report {
	ctx, span := trace.BeginFile(ctx, path)
	tracer := trace.FromContext(ctx)
	timer := observ.NewTimer()
	report := Report{File: path, Case: opts.Case}

	var file *treefile.File
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	err := timer.Measure(string(StageLoad), func() error {
		var err error
		file, err = LoadFile(path, opts.Cache)
		return err
	})
	if err != nil {
		trace.Error(tracer, "load", err, span.ID())
		report.Err = err
		report.Timing = timer.Report()
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		span.End("load failed")
		return report
	}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusDone})

	if file.HasCase {
		report.Case = file.Case
	}
	emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
	idx := timer.Begin(string(StageAnalyze))
	report.Patterns = make([]PatternReport, len(file.Patterns))
	for i, p := range file.Patterns {
		report.Patterns[i] = AnalyzePattern(p.Name, p.Pattern, report.Case)
		trace.Point(tracer, trace.ScopePattern, p.Name, report.Patterns[i].Text.String(), span.ID())
	}
	timer.End(idx, strconv.Itoa(len(file.Patterns))+" patterns")
	report.Timing = timer.Report()
	emit(opts.Progress, Event{
		File:    path,
		Stage:   StageAnalyze,
		Status:  StatusDone,
		Elapsed: durationOf(report.Timing),
	})

	span.WithExtra("patterns", strconv.Itoa(len(file.Patterns))).End("")
	return report
}

func durationOf(r observ.Report) time.Duration {
	return time.Duration(r.TotalMS * float64(time.Millisecond))
}
