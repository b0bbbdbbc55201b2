package ast

// Range is a half-open byte range [Start, End) inside a text.
type Range struct {
	Start, End int
}

// Fragment is a piece of verbatim source text. Frozen lists the ranges of
// multi-line literals whose inner lines must never be re-indented.
type Fragment struct {
	Text   string
	Frozen []Range
}

// IsFrozenLine reports whether a line starting at offset off begins inside
// a frozen literal.
func (f Fragment) IsFrozenLine(off int) bool {
	for _, r := range f.Frozen {
		if r.Start < off && off < r.End {
			return true
		}
	}
	return false
}

// Append concatenates other onto f, shifting its frozen ranges.
func (f Fragment) Append(other Fragment) Fragment {
	base := len(f.Text)
	out := Fragment{
		Text:   f.Text + other.Text,
		Frozen: make([]Range, 0, len(f.Frozen)+len(other.Frozen)),
	}
	out.Frozen = append(out.Frozen, f.Frozen...)
	for _, r := range other.Frozen {
		out.Frozen = append(out.Frozen, Range{Start: r.Start + base, End: r.End + base})
	}
	return out
}

// AppendText appends plain text that contains no literals.
func (f Fragment) AppendText(s string) Fragment {
	return f.Append(Fragment{Text: s})
}
