package merge

import (
	"strings"

	"csmerge/internal/ast"
)

type line struct {
	off  int
	text string
}

func splitLines(s string) []line {
	var lines []line
	off := 0
	for {
		i := strings.IndexByte(s[off:], '\n')
		if i < 0 {
			lines = append(lines, line{off: off, text: s[off:]})
			return lines
		}
		lines = append(lines, line{off: off, text: s[off : off+i]})
		off += i + 1
	}
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

// TrimBlankLines drops whitespace-only lines at the start of f and
// trailing whitespace at its end.
func TrimBlankLines(f ast.Fragment) ast.Fragment {
	cut := 0
	for _, ln := range splitLines(f.Text) {
		if strings.TrimSpace(ln.text) != "" || f.IsFrozenLine(ln.off) {
			cut = ln.off
			break
		}
		cut = ln.off + len(ln.text)
	}
	text := strings.TrimRight(f.Text[cut:], " \t\n")
	out := ast.Fragment{Text: text}
	for _, r := range f.Frozen {
		out.Frozen = append(out.Frozen, ast.Range{Start: r.Start - cut, End: r.End - cut})
	}
	return out
}

// Dedent removes the common indentation of f. Blank lines, preprocessor
// lines and lines that begin inside a frozen literal do not take part in
// the common indent; frozen lines are copied unchanged.
func Dedent(f ast.Fragment) ast.Fragment {
	lines := splitLines(f.Text)
	common := -1
	for _, ln := range lines {
		if f.IsFrozenLine(ln.off) {
			continue
		}
		body := strings.TrimLeft(ln.text, " \t")
		if body == "" || body[0] == '#' {
			continue
		}
		if n := len(ln.text) - len(body); common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return f
	}

	// removed[i] - сколько байт вырезано до конца отступа строки i включительно
	removed := make([]int, len(lines))
	total := 0
	var sb strings.Builder
	sb.Grow(len(f.Text))
	for i, ln := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		text := ln.text
		if !f.IsFrozenLine(ln.off) {
			n := min(leadingSpace(text), common)
			text = text[n:]
			total += n
		}
		removed[i] = total
		sb.WriteString(text)
	}

	out := ast.Fragment{Text: sb.String()}
	for _, r := range f.Frozen {
		shift := 0
		for i, ln := range lines {
			if ln.off > r.Start {
				break
			}
			shift = removed[i]
		}
		out.Frozen = append(out.Frozen, ast.Range{Start: r.Start - shift, End: r.End - shift})
	}
	return out
}
