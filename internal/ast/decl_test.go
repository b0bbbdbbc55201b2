package ast

import (
	"strings"
	"testing"
)

func newTestDecl(text string, mods ...string) *Decl {
	var ms []Modifier
	pos := 0
	for _, m := range mods {
		off := strings.Index(text[pos:], m) + pos
		ms = append(ms, Modifier{Text: m, Off: off})
		pos = off + len(m)
	}
	kwOff := strings.Index(text, "class")
	if len(ms) > 0 {
		kwOff = ms[0].Off
	}
	return NewDecl(DeclClass, "X", sourceSpan(), Fragment{Text: text}, ms, kwOff)
}

func TestWithVisibilityReplacesPublic(t *testing.T) {
	orig := newTestDecl("\n    /// doc\n    [Obsolete] public sealed class X { public int A; }", "public", "sealed")
	got := orig.WithVisibility("internal")

	want := "\n    /// doc\n    [Obsolete] internal sealed class X { public int A; }"
	if got.Text() != want {
		t.Fatalf("WithVisibility:\nwant %q\ngot  %q", want, got.Text())
	}
	if got.Visibility() != "internal" {
		t.Errorf("Visibility() = %q", got.Visibility())
	}
	// исходный узел не меняется
	if orig.Visibility() != "public" || !strings.Contains(orig.Text(), "] public sealed") {
		t.Errorf("receiver mutated: %q", orig.Text())
	}
	sealed := got.Modifiers[1]
	if got.Text()[sealed.Off:sealed.Off+len(sealed.Text)] != "sealed" {
		t.Errorf("modifier offsets not shifted: %+v", got.Modifiers)
	}
}

func TestWithVisibilityInsertsWhenMissing(t *testing.T) {
	orig := newTestDecl("static class X {}", "static")
	got := orig.WithVisibility("internal")
	if got.Text() != "internal static class X {}" {
		t.Fatalf("got %q", got.Text())
	}
	if got.Visibility() != "internal" || got.Modifiers[1].Off != len("internal ") {
		t.Errorf("unexpected modifiers %+v", got.Modifiers)
	}
}

func TestWithVisibilityShiftsFrozenRanges(t *testing.T) {
	text := "public class X { string s = @\"a\nb\"; }"
	d := newTestDecl(text, "public")
	start := strings.Index(text, "@\"")
	d.text.Frozen = []Range{{Start: start, End: start + 6}}

	got := d.WithVisibility("internal")
	r := got.Fragment().Frozen[0]
	if got.Text()[r.Start:r.End] != "@\"a\nb\"" {
		t.Errorf("frozen range not shifted: %q", got.Text()[r.Start:r.End])
	}
}

func TestFragmentAppendAndFrozenLines(t *testing.T) {
	a := Fragment{Text: "x\n"}
	b := Fragment{Text: "s = @\"1\n2\";\n", Frozen: []Range{{Start: 4, End: 10}}}
	c := a.Append(b).AppendText("y\n")
	if c.Text != "x\ns = @\"1\n2\";\ny\n" {
		t.Fatalf("Append text = %q", c.Text)
	}
	// строка "2\";" начинается внутри литерала
	if !c.IsFrozenLine(strings.Index(c.Text, "2\"")) {
		t.Error("line inside verbatim literal must be frozen")
	}
	if c.IsFrozenLine(2) || c.IsFrozenLine(strings.Index(c.Text, "y")) {
		t.Error("ordinary lines must not be frozen")
	}
}
