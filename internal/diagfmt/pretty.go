package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"csmerge/internal/diag"
	"csmerge/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	p.initColors()
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts

	errC, warnC, infoC, noteC, locC, gutterC *color.Color
}

func (p *prettyPrinter) initColors() {
	p.errC = color.New(color.FgRed, color.Bold)
	p.warnC = color.New(color.FgYellow, color.Bold)
	p.infoC = color.New(color.FgCyan, color.Bold)
	p.noteC = color.New(color.FgBlue, color.Bold)
	p.locC = color.New(color.Bold)
	p.gutterC = color.New(color.FgBlue)
	for _, c := range []*color.Color{p.errC, p.warnC, p.infoC, p.noteC, p.locC, p.gutterC} {
		if p.opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p *prettyPrinter) severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.errC
	case diag.SevWarning:
		return p.warnC
	default:
		return p.infoC
	}
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sevC := p.severityColor(d.Severity)
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.locC.Sprint(p.location(d.Primary)),
		sevC.Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)
	p.snippet(d.Primary, sevC)

	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(p.w, "  %s %s: %s\n", p.noteC.Sprint("note:"), p.location(n.Span), n.Msg)
	}
}

func (p *prettyPrinter) location(sp source.Span) string {
	f := p.fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(p.fs, f, p.opts.PathMode), start.Line, start.Col)
}

// snippet печатает строку с ошибкой (и Context строк до неё) и подчёркивание.
func (p *prettyPrinter) snippet(sp source.Span, markC *color.Color) {
	f := p.fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := p.fs.Resolve(sp)
	first := start.Line
	if ctx := uint32(max(p.opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(p.w, "%s %s\n", p.gutterC.Sprintf("%*d |", width, ln), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	mark := max(runewidth.StringWidth(expandTabs(line[col:max(stop, col)])), 1)
	underline := "^" + strings.Repeat("~", mark-1)
	fmt.Fprintf(p.w, "%s %s%s\n", p.gutterC.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), markC.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
