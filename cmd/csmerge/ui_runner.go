package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"csmerge/internal/buildpipeline"
	"csmerge/internal/config"
	"csmerge/internal/driver"
	"csmerge/internal/ui"
)

type mergeOutcome struct {
	result *driver.Result
	err    error
}

type batchOutcome struct {
	results []driver.JobResult
	err     error
}

func runMergeWithUI(ctx context.Context, title string, cfg config.Config, opts driver.Options) (*driver.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan mergeOutcome, 1)

	go func() {
		local := opts
		local.Sink = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Merge(ctx, cfg, local)
		outcomeCh <- mergeOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, cfg.InputDir, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func runBatchWithUI(ctx context.Context, title, baseDir string, batch []driver.Job, jobs int, opts driver.Options) ([]driver.JobResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		local := opts
		local.Sink = buildpipeline.ChannelSink{Ch: events}
		results, err := driver.MergeAll(ctx, batch, jobs, local)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, baseDir, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
