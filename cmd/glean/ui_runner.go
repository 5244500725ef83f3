package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"glean/internal/driver"
	"glean/internal/ui"
)

type analyzeOutcome struct {
	reports []driver.Report
	err     error
}

func runAnalyzeWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.Report, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		reports, err := driver.Analyze(ctx, files, opts)
		outcomeCh <- analyzeOutcome{reports: reports, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// The model may quit early; keep the producer from blocking.
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.reports, uiErr
	}
	return outcome.reports, outcome.err
}
