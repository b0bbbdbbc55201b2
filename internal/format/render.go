package format

import (
	"io"
	"slices"
	"strings"

	"csmerge/internal/ast"
	"csmerge/internal/merge"
)

const (
	noAnalysisMarker = "// <auto-generated/>"
	namespaceKeyword = "namespace "
)

// Document is everything the renderer emits, already ordered where the
// order matters (comments, facts, attributes) and reconciled (imports).
type Document struct {
	NoSonar  bool
	Nullable string
	// Comments are raw texts of comment files.
	Comments     []string
	VersionFacts []string
	Imports      []string
	Attributes   []ast.Fragment
	NoWarn       []string
	Groups       []*merge.Group
}

// Render writes doc to w in the fixed section order:
//
//	no-analysis marker, #nullable, comment blocks, version facts, imports,
//	blank line, global attributes, #pragma warning disable,
//	namespace groups, #pragma warning restore.
func Render(w io.Writer, doc Document, opt Options) error {
	_, err := w.Write(RenderBytes(doc, opt))
	return err
}

// RenderBytes is Render into memory.
func RenderBytes(doc Document, opt Options) []byte {
	out := NewWriter(opt)

	if doc.NoSonar {
		out.Line(noAnalysisMarker)
	}
	if doc.Nullable != "" {
		out.Line("#nullable " + doc.Nullable)
	}
	for _, text := range doc.Comments {
		writeCommentBlock(out, strings.Split(normalizeComment(text), "\n"))
	}
	if len(doc.VersionFacts) > 0 {
		writeCommentBlock(out, doc.VersionFacts)
	}
	for _, imp := range doc.Imports {
		out.Line(imp)
	}
	out.BlankLine()

	if len(doc.Attributes) > 0 {
		for _, attr := range doc.Attributes {
			out.WriteFragment(attr)
		}
		out.BlankLine()
	}

	pragmaIDs := strings.Join(doc.NoWarn, ", ")
	if pragmaIDs != "" {
		out.Line("#pragma warning disable " + pragmaIDs)
	}
	for i, g := range doc.Groups {
		if i > 0 {
			out.BlankLine()
		}
		writeGroup(out, g)
	}
	if pragmaIDs != "" {
		out.Line("#pragma warning restore " + pragmaIDs)
	}
	return out.Bytes()
}

func writeCommentBlock(out *Writer, lines []string) {
	out.Line("/*")
	for _, l := range lines {
		out.Line(l)
	}
	out.Line("*/")
}

// normalizeComment убирает '\r', завершающие пустые строки и
// экранирует "*/", чтобы текст не закрыл блок комментария раньше времени.
func normalizeComment(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimRight(text, "\n")
	return strings.ReplaceAll(text, "*/", "* /")
}

func writeGroup(out *Writer, g *merge.Group) {
	if g.IsGlobal() {
		if g.Body.Text != "" {
			out.WriteFragment(g.Body)
		}
		return
	}
	out.Line(namespaceKeyword + g.Name)
	out.Line("{")
	out.IndentPush()
	usings := slices.Clone(g.Usings)
	slices.Sort(usings)
	for _, u := range usings {
		out.Line(u)
	}
	if len(g.Usings) > 0 && g.Body.Text != "" {
		out.BlankLine()
	}
	if g.Body.Text != "" {
		out.WriteFragment(g.Body)
	}
	out.IndentPop()
	out.Line("}")
}
