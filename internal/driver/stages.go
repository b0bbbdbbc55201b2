package driver

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"

	"csmerge/internal/buildpipeline"
	"csmerge/internal/diag"
	"csmerge/internal/format"
	"csmerge/internal/lexer"
	"csmerge/internal/merge"
	"csmerge/internal/parser"
	"csmerge/internal/project"
	"csmerge/internal/source"
	"csmerge/internal/trace"
)

func (m *merger) discover() (string, error) {
	paths, err := Discover(m.ctx, m.cfg.InputDir, m.cfg.TopOnly)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", m.cfg.InputDir, err)
	}
	m.paths = paths
	return fmt.Sprintf("%d files", len(paths)), nil
}

func (m *merger) classify() (string, error) {
	cl := merge.NewClassifier(merge.Rules{
		InputDir:            m.cfg.InputDir,
		OutputPath:          m.cfg.OutputPath,
		Comments:            m.cfg.Comments,
		Exclude:             m.cfg.Exclude,
		IncludeAssemblyInfo: m.cfg.IncludeAssemblyInfo,
		IncludeVersions:     m.cfg.IncludeVersions,
		IncludeSuppressions: m.cfg.IncludeSuppressions,
	})

	comments := make(map[string]struct{})
	for _, p := range m.paths {
		d := cl.Classify(merge.NewDiscoveredFile(p))
		if d.Class == merge.ClassIgnored {
			m.res.Files = append(m.res.Files, FileReport{Path: p, Class: d.Class, Reason: d.Reason})
			m.emit(p, buildpipeline.StageClassify, buildpipeline.StatusSkipped, d.Reason)
			continue
		}
		if d.Class == merge.ClassComment {
			comments[filepath.Clean(p)] = struct{}{}
		}
		m.addInput(p, d)
	}

	// Записи comments ищутся ещё и относительно входного каталога:
	// так находится ..\LICENSE, лежащий вне обходимого дерева.
	for _, entry := range m.cfg.Comments {
		entry = merge.NormalizeEntry(entry)
		if entry == "" {
			continue
		}
		p := entry
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.cfg.InputDir, entry)
		}
		p = filepath.Clean(p)
		if _, dup := comments[p]; dup {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		comments[p] = struct{}{}
		m.addInput(p, merge.Decision{Class: merge.ClassComment, Reason: "comment file"})
	}

	return fmt.Sprintf("%d code, %d comment, %d version, %d skipped",
		m.res.Count(merge.ClassCode), m.res.Count(merge.ClassComment),
		m.res.Count(merge.ClassVersion), m.res.Count(merge.ClassIgnored)), nil
}

func (m *merger) addInput(p string, d merge.Decision) {
	m.res.Files = append(m.res.Files, FileReport{Path: p, Class: d.Class, Reason: d.Reason})
	m.inputs = append(m.inputs, &input{path: p, class: d.Class, report: len(m.res.Files) - 1})
	// комментарии и версии дальше classify в прогрессе не участвуют
	status := buildpipeline.StatusQueued
	if d.Class != merge.ClassCode {
		status = buildpipeline.StatusDone
	}
	m.emit(p, buildpipeline.StageClassify, status, d.Class.String())
}

func (m *merger) decode() (string, error) {
	m.fs = source.NewFileSetWithBase(m.cfg.InputDir)
	m.res.FileSet = m.fs
	for _, in := range m.inputs {
		if err := m.ctx.Err(); err != nil {
			return "", err
		}
		encName, err := m.decodeInput(in)
		if err != nil {
			m.emit(in.path, buildpipeline.StageDecode, buildpipeline.StatusError, err.Error())
			return "", err
		}
		m.res.Files[in.report].Encoding = encName
		if in.class == merge.ClassCode {
			m.emit(in.path, buildpipeline.StageDecode, buildpipeline.StatusDone, encName)
		}
	}
	return fmt.Sprintf("%d files", len(m.inputs)), nil
}

func (m *merger) decodeInput(in *input) (string, error) {
	// #nosec G304 -- path comes from the walk of the input directory
	raw, err := os.ReadFile(in.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", in.path, err)
	}
	in.hash = project.Sum(raw)

	if in.class == merge.ClassCode {
		id, err := m.fs.LoadBytes(in.path, raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode %s: %w", in.path, err)
		}
		in.file = m.fs.Get(id)
		return in.file.Encoding, nil
	}

	enc := source.SniffEncoding(raw)
	text, err := enc.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", in.path, err)
	}
	in.text = string(text)
	switch in.class {
	case merge.ClassComment:
		m.comments = append(m.comments, in.text)
	case merge.ClassVersion:
		m.facts = append(m.facts, merge.ExtractVersionFacts(in.text)...)
	}
	return enc.Name, nil
}

func (m *merger) parse() (string, error) {
	maxErrors, err := safecast.Conv[uint](m.opts.MaxDiagnostics)
	if err != nil {
		return "", err
	}
	n := 0
	for _, in := range m.codeInputs() {
		if err := m.ctx.Err(); err != nil {
			return "", err
		}
		span := trace.Begin(m.tracer, trace.ScopeFile, "parse", m.spanID).WithExtra("file", in.path)

		bag := diag.NewBag(m.opts.MaxDiagnostics)
		rep := diag.BagReporter{Bag: bag}
		lx := lexer.New(in.file, lexer.Options{Reporter: rep, Symbols: m.cfg.Symbols})
		res := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: maxErrors})

		if bag.HasErrors() {
			span.End("error")
			perr := &ParseError{Path: in.path, Bag: bag, FileSet: m.fs}
			buildpipeline.Emit(m.opts.Sink, buildpipeline.Event{
				File:   in.path,
				Stage:  buildpipeline.StageParse,
				Status: buildpipeline.StatusError,
				Err:    perr,
			})
			return "", perr
		}
		span.End("")
		m.res.Diagnostics.Merge(bag)
		in.unit = res.Unit
		n++
		m.emit(in.path, buildpipeline.StageParse, buildpipeline.StatusDone,
			fmt.Sprintf("%d namespaces", len(res.Unit.Namespaces)))
	}
	return fmt.Sprintf("%d files", n), nil
}

func (m *merger) rewrite() (string, error) {
	if !m.cfg.Internalize {
		return "off", nil
	}
	changed := 0
	for _, in := range m.codeInputs() {
		out := merge.Internalize(in.unit)
		if out == in.unit {
			continue
		}
		in.unit = out
		changed++
		m.emit(in.path, buildpipeline.StageRewrite, buildpipeline.StatusDone, "internalized")
	}
	return fmt.Sprintf("%d files rewritten", changed), nil
}

func (m *merger) reconcile() (string, error) {
	set := merge.NewImportSet()
	m.agg = merge.NewAggregator()
	m.agg.ExcludeNamespaces(m.cfg.ExcludeNs)
	for _, in := range m.codeInputs() {
		for _, d := range in.unit.Imports {
			set.Add(d.Text)
		}
		m.agg.Add(in.unit)
	}
	m.imports = merge.Reconcile(set, m.cfg.ExcludeNs)
	m.res.Imports = len(m.imports)
	m.res.Groups = len(m.agg.Groups())
	return fmt.Sprintf("%d imports, %d namespaces", m.res.Imports, m.res.Groups), nil
}

func (m *merger) render() (string, error) {
	nl, err := format.NewlineFor(m.cfg.Newline)
	if err != nil {
		return "", err
	}
	doc := format.Document{
		NoSonar:      m.cfg.NoSonar,
		Nullable:     m.cfg.Nullable,
		Comments:     m.comments,
		VersionFacts: m.facts,
		Imports:      m.imports,
		Attributes:   m.agg.Attributes(),
		NoWarn:       m.cfg.NoWarn,
		Groups:       m.agg.Groups(),
	}
	m.rendered = format.RenderBytes(doc, format.Options{UseTabs: m.cfg.Tabs, Newline: nl})
	m.res.Bytes = len(m.rendered)
	return fmt.Sprintf("%d bytes", m.res.Bytes), nil
}

// write encodes the rendered text straight into the output file. A failure
// midway may leave a partial file behind.
func (m *merger) write() (note string, err error) {
	// #nosec G304 -- output path is the user's choice
	f, err := os.Create(m.cfg.OutputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", m.cfg.OutputPath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", m.cfg.OutputPath, closeErr)
		}
	}()

	h := sha256.New()
	w := m.cfg.Encoding.NewWriter(io.MultiWriter(f, h))
	if _, err = w.Write(m.rendered); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", m.cfg.OutputPath, err)
	}
	if err = w.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", m.cfg.OutputPath, err)
	}
	copy(m.res.OutputHash[:], h.Sum(nil))
	m.emit(m.cfg.OutputPath, buildpipeline.StageWrite, buildpipeline.StatusDone, m.cfg.Encoding.Name)
	return m.cfg.Encoding.Name, nil
}
