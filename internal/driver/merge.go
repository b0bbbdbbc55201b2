package driver

import (
	"context"
	"fmt"
	"time"

	"csmerge/internal/ast"
	"csmerge/internal/buildpipeline"
	"csmerge/internal/config"
	"csmerge/internal/diag"
	"csmerge/internal/merge"
	"csmerge/internal/observ"
	"csmerge/internal/project"
	"csmerge/internal/source"
	"csmerge/internal/trace"
)

// Options tune a single Merge call.
type Options struct {
	// Sink receives per-file progress events; nil disables them.
	Sink buildpipeline.ProgressSink
	// Cache enables the up-to-date check; nil disables it.
	Cache *DiskCache
	Timer *observ.Timer
	// MaxDiagnostics caps diagnostics collected per file, 0 means no cap.
	MaxDiagnostics int
}

// FileReport records what happened to one input file.
type FileReport struct {
	Path     string
	Class    merge.Class
	Reason   string
	Encoding string
}

// Result summarises a finished merge.
type Result struct {
	OutputPath string
	Encoding   string
	Files      []FileReport
	Imports    int
	Groups     int
	// Bytes is the size of the rendered text before output encoding.
	Bytes      int
	OutputHash project.Digest
	// UpToDate is set when the cache proved the output current and
	// nothing was written.
	UpToDate bool
	// Diagnostics holds the non-fatal diagnostics of all code files.
	Diagnostics *diag.Bag
	FileSet     *source.FileSet
	Timings     buildpipeline.Timings
}

// Count returns the number of files classified as class.
func (r *Result) Count(class merge.Class) int {
	n := 0
	for _, f := range r.Files {
		if f.Class == class {
			n++
		}
	}
	return n
}

// ParseError aborts a merge on the first code file with error diagnostics.
type ParseError struct {
	Path    string
	Bag     *diag.Bag
	FileSet *source.FileSet
}

func (e *ParseError) Error() string {
	if d, ok := e.Bag.FirstError(); ok {
		return diag.FormatShort(d, e.FileSet)
	}
	return fmt.Sprintf("failed to parse %s", e.Path)
}

// input is one non-ignored file travelling through the stages.
type input struct {
	path   string
	class  merge.Class
	report int // индекс в Result.Files
	hash   project.Digest
	text   string // комментарий или источник версий
	file   *source.File
	unit   *ast.Unit
}

type merger struct {
	ctx    context.Context
	cfg    config.Config
	opts   Options
	tracer trace.Tracer
	spanID uint64
	timer  *observ.Timer
	res    *Result

	paths    []string
	inputs   []*input
	fs       *source.FileSet
	comments []string
	facts    []string
	imports  []string
	agg      *merge.Aggregator
	rendered []byte
	key      project.Digest
}

// Merge runs the consolidation pipeline for cfg: discover, classify,
// decode, parse, rewrite, reconcile, render and write. Files are handled
// one after another in discovery order, so the output depends only on
// the file tree and the configuration.
func Merge(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	if cfg.InputDir == "" || cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: input directory and output file are required", config.ErrUsage)
	}
	if cfg.Encoding.Name == "" {
		cfg.Encoding = source.DefaultOutput
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "merge", trace.SpanFrom(ctx))
	span.WithExtra("input", cfg.InputDir).WithExtra("output", cfg.OutputPath)

	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	m := &merger{
		ctx:    trace.WithSpan(ctx, span.ID()),
		cfg:    cfg,
		opts:   opts,
		tracer: tracer,
		spanID: span.ID(),
		timer:  timer,
		res: &Result{
			OutputPath:  cfg.OutputPath,
			Encoding:    cfg.Encoding.Name,
			Diagnostics: diag.NewBag(0),
		},
	}

	err := m.run()
	switch {
	case err != nil:
		span.End(err.Error())
		return nil, err
	case m.res.UpToDate:
		span.End("up to date")
	default:
		span.End(fmt.Sprintf("%d bytes", m.res.Bytes))
	}
	return m.res, nil
}

func (m *merger) run() error {
	if err := m.stage(buildpipeline.StageDiscover, m.discover); err != nil {
		return err
	}
	if err := m.stage(buildpipeline.StageClassify, m.classify); err != nil {
		return err
	}
	if err := m.stage(buildpipeline.StageDecode, m.decode); err != nil {
		return err
	}
	if m.upToDate() {
		m.res.UpToDate = true
		buildpipeline.Emit(m.opts.Sink, buildpipeline.Event{
			File:   m.cfg.OutputPath,
			Stage:  buildpipeline.StageWrite,
			Status: buildpipeline.StatusSkipped,
			Detail: "up to date",
		})
		return nil
	}
	steps := []struct {
		stage buildpipeline.Stage
		fn    func() (string, error)
	}{
		{buildpipeline.StageParse, m.parse},
		{buildpipeline.StageRewrite, m.rewrite},
		{buildpipeline.StageReconcile, m.reconcile},
		{buildpipeline.StageRender, m.render},
		{buildpipeline.StageWrite, m.write},
	}
	for _, s := range steps {
		if err := m.stage(s.stage, s.fn); err != nil {
			return err
		}
	}
	m.store()
	return nil
}

// stage runs fn as one timed, traced pipeline stage.
func (m *merger) stage(st buildpipeline.Stage, fn func() (string, error)) error {
	if err := m.ctx.Err(); err != nil {
		return err
	}
	span := trace.Begin(m.tracer, trace.ScopeStage, string(st), m.spanID)
	idx := m.timer.Begin(string(st))
	buildpipeline.EmitStage(m.opts.Sink, "", st, buildpipeline.StatusWorking, nil, 0)
	started := time.Now()

	note, err := fn()

	elapsed := time.Since(started)
	m.res.Timings.Add(st, elapsed)
	if err != nil {
		m.timer.End(idx, "failed")
		span.End(err.Error())
		buildpipeline.EmitStage(m.opts.Sink, "", st, buildpipeline.StatusError, err, elapsed)
		return err
	}
	m.timer.End(idx, note)
	span.End(note)
	buildpipeline.Emit(m.opts.Sink, buildpipeline.Event{
		Stage:   st,
		Status:  buildpipeline.StatusDone,
		Detail:  note,
		Elapsed: elapsed,
	})
	return nil
}

func (m *merger) emit(file string, st buildpipeline.Stage, status buildpipeline.Status, detail string) {
	buildpipeline.Emit(m.opts.Sink, buildpipeline.Event{File: file, Stage: st, Status: status, Detail: detail})
}

func (m *merger) codeInputs() []*input {
	out := make([]*input, 0, len(m.inputs))
	for _, in := range m.inputs {
		if in.class == merge.ClassCode {
			out = append(out, in)
		}
	}
	return out
}
