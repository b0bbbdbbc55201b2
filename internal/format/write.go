package format

import (
	"strings"

	"csmerge/internal/ast"
)

// Writer accumulates rendered output. Every '\n' written through it is
// emitted as the configured newline and '\r' is dropped.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new rendering writer.
func NewWriter(opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes s, indenting every non-empty line at the current level.
func (w *Writer) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\r':
		case '\n':
			w.newline()
		default:
			w.writeIndent()
			w.buf = append(w.buf, c)
		}
	}
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	w.WriteString(s)
	w.newline()
}

// BlankLine terminates the current line, if any, and writes an empty one.
func (w *Writer) BlankLine() {
	w.Newline()
	w.newline()
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if !w.atLineStart {
		w.newline()
	}
}

func (w *Writer) newline() {
	w.buf = append(w.buf, w.opt.Newline...)
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteFragment writes f line by line. Lines that begin inside a frozen
// literal and preprocessor lines at column 0 are written without indent.
func (w *Writer) WriteFragment(f ast.Fragment) {
	off := 0
	for {
		end := strings.IndexByte(f.Text[off:], '\n')
		last := end < 0
		if last {
			end = len(f.Text)
		} else {
			end += off
		}
		line := f.Text[off:end]
		if f.IsFrozenLine(off) || strings.HasPrefix(line, "#") {
			w.raw(line)
		} else {
			w.WriteString(line)
		}
		w.newline()
		if last {
			return
		}
		off = end + 1
	}
}

// raw пишет строку без отступа.
func (w *Writer) raw(s string) {
	w.atLineStart = false
	w.buf = append(w.buf, strings.ReplaceAll(s, "\r", "")...)
}
