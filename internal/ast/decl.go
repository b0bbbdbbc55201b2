package ast

import (
	"slices"

	"csmerge/internal/source"
)

// DeclKind классифицирует объявление верхнего уровня.
type DeclKind uint8

const (
	DeclClass DeclKind = iota
	DeclStruct
	DeclInterface
	DeclEnum
	DeclDelegate
	DeclRecord
	// DeclNamespace is a namespace nested in a block namespace, kept opaque.
	DeclNamespace
)

var declKindNames = [...]string{
	DeclClass:     "class",
	DeclStruct:    "struct",
	DeclInterface: "interface",
	DeclEnum:      "enum",
	DeclDelegate:  "delegate",
	DeclRecord:    "record",
	DeclNamespace: "namespace",
}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "decl"
}

// Modifier is one modifier keyword; Off is its byte offset in the Decl text.
type Modifier struct {
	Text string
	Off  int
}

// IsAccess reports whether the modifier controls accessibility.
func (m Modifier) IsAccess() bool {
	switch m.Text {
	case "public", "internal", "private", "protected", "file":
		return true
	}
	return false
}

// Decl is a top-level declaration directly owned by a namespace.
// Its text runs from the start of its leading trivia to its last token.
type Decl struct {
	Kind      DeclKind
	Name      string
	Span      source.Span
	Modifiers []Modifier
	// KeywordOff is the offset of the first modifier or, without
	// modifiers, of the declaration keyword (after attributes).
	KeywordOff int
	text       Fragment
}

// NewDecl builds a declaration from its verbatim source fragment.
func NewDecl(kind DeclKind, name string, sp source.Span, text Fragment, mods []Modifier, keywordOff int) *Decl {
	return &Decl{
		Kind:       kind,
		Name:       name,
		Span:       sp,
		Modifiers:  mods,
		KeywordOff: keywordOff,
		text:       text,
	}
}

// Visibility returns the leading access modifier keyword, or "" if none.
func (d *Decl) Visibility() string {
	for _, m := range d.Modifiers {
		if m.IsAccess() {
			return m.Text
		}
	}
	return ""
}

// Text re-serializes the declaration including its leading trivia.
func (d *Decl) Text() string {
	return d.text.Text
}

// AppendLine adds line after the declaration text on a line of its own.
func (d *Decl) AppendLine(line string) {
	d.text = d.text.AppendText("\n" + line)
}

// Fragment returns the text with its frozen literal ranges.
func (d *Decl) Fragment() Fragment {
	return d.text
}

// WithVisibility returns a copy of d whose leading access modifier is
// replaced by keyword. Without an access modifier keyword is inserted
// before the first modifier. d itself is left unchanged.
func (d *Decl) WithVisibility(keyword string) *Decl {
	at, oldLen, insert := d.KeywordOff, 0, true
	for _, m := range d.Modifiers {
		if m.IsAccess() {
			at, oldLen, insert = m.Off, len(m.Text), false
			break
		}
	}

	repl := keyword
	if insert {
		repl += " "
	}
	delta := len(repl) - oldLen

	shift := func(off int) int {
		if off > at || (off == at && insert) {
			return off + delta
		}
		return off
	}

	src := d.text.Text
	out := &Decl{
		Kind:       d.Kind,
		Name:       d.Name,
		Span:       d.Span,
		KeywordOff: d.KeywordOff,
		text:       Fragment{Text: src[:at] + repl + src[at+oldLen:]},
	}
	if insert {
		out.Modifiers = append(out.Modifiers, Modifier{Text: keyword, Off: at})
	}
	for _, m := range d.Modifiers {
		if !insert && m.Off == at {
			out.Modifiers = append(out.Modifiers, Modifier{Text: keyword, Off: at})
			continue
		}
		out.Modifiers = append(out.Modifiers, Modifier{Text: m.Text, Off: shift(m.Off)})
	}
	slices.SortFunc(out.Modifiers, func(a, b Modifier) int { return a.Off - b.Off })
	for _, r := range d.text.Frozen {
		out.text.Frozen = append(out.text.Frozen, Range{Start: shift(r.Start), End: shift(r.End)})
	}
	return out
}
