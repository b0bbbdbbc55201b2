package buildpipeline

import "time"

// Stage describes a high-level merge phase.
type Stage string

const (
	// StageDiscover walks the input directory.
	StageDiscover Stage = "discover"
	// StageClassify buckets discovered files.
	StageClassify Stage = "classify"
	// StageDecode reads and decodes a file.
	StageDecode Stage = "decode"
	// StageParse parses a code file.
	StageParse Stage = "parse"
	// StageRewrite applies the visibility rewrite.
	StageRewrite Stage = "rewrite"
	// StageReconcile reconciles imports and aggregates namespaces.
	StageReconcile Stage = "reconcile"
	// StageRender renders the output text.
	StageRender Stage = "render"
	// StageWrite encodes and writes the output file.
	StageWrite Stage = "write"
)

// Stages lists the stages in execution order.
var Stages = []Stage{
	StageDiscover, StageClassify, StageDecode, StageParse,
	StageRewrite, StageReconcile, StageRender, StageWrite,
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to be processed.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusSkipped indicates the file was classified away.
	StatusSkipped Status = "skipped"
	// StatusDone indicates the stage is done.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole merge when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Add accumulates a duration for the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
