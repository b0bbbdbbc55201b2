package parser_test

import (
	"slices"
	"strings"
	"testing"

	"csmerge/internal/ast"
	"csmerge/internal/diag"
	"csmerge/internal/lexer"
	"csmerge/internal/parser"
	"csmerge/internal/source"
	"csmerge/internal/testkit"
)

func parseSource(t *testing.T, input string) (*ast.Unit, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(input))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep})
	if !bag.HasErrors() {
		if err := testkit.CheckSpanInvariants(res.Unit, fs.Get(id)); err != nil {
			t.Errorf("span invariants: %v", err)
		}
	}
	return res.Unit, bag
}

func mustParse(t *testing.T, input string) *ast.Unit {
	t.Helper()
	unit, bag := parseSource(t, input)
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Errorf("unexpected diagnostic: %s %s", d.Code.ID(), d.Message)
		}
		t.FailNow()
	}
	return unit
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func importTexts(unit *ast.Unit) []string {
	out := make([]string, 0, len(unit.Imports))
	for _, d := range unit.Imports {
		out = append(out, d.Text)
	}
	return out
}

func TestImportsCanonicalForm(t *testing.T) {
	unit := mustParse(t, `extern alias Legacy;
using System;
using  Alias =  Foo.Bar ;
using static System.Math;
global using global::System.Linq;
using Dict = System.Collections.Generic.Dictionary<string, int>;

namespace N { }
`)
	want := []string{
		"extern alias Legacy;",
		"using System;",
		"using Alias = Foo.Bar;",
		"using static System.Math;",
		"global using global::System.Linq;",
		"using Dict = System.Collections.Generic.Dictionary<string, int>;",
	}
	if got := importTexts(unit); !slices.Equal(got, want) {
		t.Fatalf("imports:\n got %q\nwant %q", got, want)
	}
	if !unit.Imports[4].IsGlobal() || unit.Imports[1].IsGlobal() {
		t.Fatalf("IsGlobal misclassified")
	}
}

func TestGlobalAttributesVerbatim(t *testing.T) {
	unit := mustParse(t, `using System.Reflection;

[assembly: AssemblyVersion("1.2.3")]
[module:   System.CLSCompliant(true)]
`)
	if len(unit.Attributes) != 2 {
		t.Fatalf("expected 2 attribute lists, got %d", len(unit.Attributes))
	}
	if got := unit.Attributes[0].Text; got != `[assembly: AssemblyVersion("1.2.3")]` {
		t.Fatalf("attribute text: %q", got)
	}
	if got := unit.Attributes[1].Text; got != `[module:   System.CLSCompliant(true)]` {
		t.Fatalf("attribute text: %q", got)
	}
	if len(unit.Namespaces) != 0 {
		t.Fatalf("no namespaces expected, got %d", len(unit.Namespaces))
	}
}

func TestBlockNamespace(t *testing.T) {
	src := "namespace A.B\n{\n    using System.Text;\n\n    // c\n    public class C\n    {\n    }\n}\n"
	unit := mustParse(t, src)
	if len(unit.Namespaces) != 1 {
		t.Fatalf("expected 1 namespace, got %d", len(unit.Namespaces))
	}
	ns := unit.Namespaces[0]
	if ns.Name != "A.B" || ns.FileScoped {
		t.Fatalf("namespace = %q fileScoped=%v", ns.Name, ns.FileScoped)
	}
	if len(ns.Usings) != 1 || ns.Usings[0].Text != "using System.Text;" {
		t.Fatalf("usings = %+v", ns.Usings)
	}
	if len(ns.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(ns.Members))
	}
	c := ns.Members[0]
	if c.Kind != ast.DeclClass || c.Name != "C" || c.Visibility() != "public" {
		t.Fatalf("member = %s %s vis=%q", c.Kind, c.Name, c.Visibility())
	}
	wantText := "\n\n    // c\n    public class C\n    {\n    }"
	if c.Text() != wantText {
		t.Fatalf("member text:\n got %q\nwant %q", c.Text(), wantText)
	}
	if ns.Tail != "\n" {
		t.Fatalf("tail = %q", ns.Tail)
	}
}

func TestFileScopedNamespace(t *testing.T) {
	src := "#nullable enable\nnamespace N.M;\n\nusing X;\n\ninternal sealed class C { }\n// end\n"
	unit := mustParse(t, src)
	if len(unit.Namespaces) != 1 {
		t.Fatalf("expected 1 namespace, got %d", len(unit.Namespaces))
	}
	ns := unit.Namespaces[0]
	if !ns.FileScoped || ns.Name != "N.M" {
		t.Fatalf("namespace = %q fileScoped=%v", ns.Name, ns.FileScoped)
	}
	if !slices.Equal(ns.Header, []string{"#nullable enable"}) {
		t.Fatalf("header = %q", ns.Header)
	}
	if len(ns.Usings) != 1 || ns.Usings[0].Text != "using X;" {
		t.Fatalf("usings = %+v", ns.Usings)
	}
	if len(ns.Members) != 1 || ns.Members[0].Visibility() != "internal" {
		t.Fatalf("members = %+v", ns.Members)
	}
	if ns.Tail != "\n// end\n" {
		t.Fatalf("tail = %q", ns.Tail)
	}
}

func TestFileScopedAfterMembers(t *testing.T) {
	_, bag := parseSource(t, "class A {}\nnamespace N;\nclass B {}\n")
	if !hasCode(bag, diag.SynFileScopedMixed) {
		t.Fatalf("expected %s", diag.SynFileScopedMixed.ID())
	}
}

func TestTopLevelTypesGoToGlobalGroup(t *testing.T) {
	unit := mustParse(t, "using System;\n\nclass A { }\n\nenum E { X, Y }\n")
	if len(unit.Namespaces) != 1 {
		t.Fatalf("expected the global namespace only, got %d", len(unit.Namespaces))
	}
	ns := unit.Namespaces[0]
	if !ns.IsGlobal() {
		t.Fatalf("expected global namespace, got %q", ns.Name)
	}
	if len(ns.Members) != 2 || ns.Members[0].Name != "A" || ns.Members[1].Kind != ast.DeclEnum {
		t.Fatalf("members = %+v", ns.Members)
	}
	if ns.Tail != "\n" {
		t.Fatalf("tail = %q", ns.Tail)
	}
}

func TestNestedNamespaceIsOpaque(t *testing.T) {
	unit := mustParse(t, "namespace A\n{\n    namespace B.C\n    {\n        class D { }\n    }\n}\n")
	ns := unit.Namespaces[0]
	if len(ns.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(ns.Members))
	}
	inner := ns.Members[0]
	if inner.Kind != ast.DeclNamespace || inner.Name != "B.C" {
		t.Fatalf("inner = %s %q", inner.Kind, inner.Name)
	}
	if !strings.Contains(inner.Text(), "class D { }") {
		t.Fatalf("inner text lost body: %q", inner.Text())
	}
}

func TestDeclarationKinds(t *testing.T) {
	unit := mustParse(t, `namespace N
{
    [Serializable]
    public partial class Partial<T> : Base where T : new() { }
    public delegate Task<int> Handler<T>(T value, Dictionary<string, int> map);
    public record struct Point(int X, int Y);
    internal record Person(string Name) { }
    record Empty;
    interface IFoo { void Bar(); }
    readonly struct S { }
    file static class Hidden { }
}
`)
	type want struct {
		kind ast.DeclKind
		name string
		vis  string
	}
	wants := []want{
		{ast.DeclClass, "Partial", "public"},
		{ast.DeclDelegate, "Handler", "public"},
		{ast.DeclRecord, "Point", "public"},
		{ast.DeclRecord, "Person", "internal"},
		{ast.DeclRecord, "Empty", ""},
		{ast.DeclInterface, "IFoo", ""},
		{ast.DeclStruct, "S", ""},
		{ast.DeclClass, "Hidden", "file"},
	}
	members := unit.Namespaces[0].Members
	if len(members) != len(wants) {
		t.Fatalf("expected %d members, got %d", len(wants), len(members))
	}
	for i, w := range wants {
		m := members[i]
		if m.Kind != w.kind || m.Name != w.name || m.Visibility() != w.vis {
			t.Errorf("member %d: got %s %q vis=%q, want %s %q vis=%q",
				i, m.Kind, m.Name, m.Visibility(), w.kind, w.name, w.vis)
		}
	}
	if !strings.HasPrefix(strings.TrimLeft(members[0].Text(), " \n"), "[Serializable]") {
		t.Fatalf("attributes must stay in the declaration text: %q", members[0].Text())
	}
}

func TestFrozenVerbatimLiteral(t *testing.T) {
	src := "namespace N\n{\n    class C\n    {\n        string s = @\"a\n  b\";\n        string r = \"plain\";\n    }\n}\n"
	unit := mustParse(t, src)
	frag := unit.Namespaces[0].Members[0].Fragment()
	if len(frag.Frozen) != 1 {
		t.Fatalf("expected 1 frozen range, got %d", len(frag.Frozen))
	}
	r := frag.Frozen[0]
	if got := frag.Text[r.Start:r.End]; got != "@\"a\n  b\"" {
		t.Fatalf("frozen text = %q", got)
	}
	lineStart := strings.Index(frag.Text, "  b\"")
	if !frag.IsFrozenLine(lineStart) {
		t.Fatalf("continuation line must be frozen")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"top-level statement", "Console.WriteLine(1);\n", diag.SynTopLevelStatement},
		{"misplaced using", "class A { }\nusing X;\n", diag.SynMisplacedUsing},
		{"using after member in namespace", "namespace N { class A { } using X; }", diag.SynMisplacedUsing},
		{"unclosed class", "namespace N { class C {", diag.SynUnclosedBrace},
		{"unclosed namespace", "namespace N { class C { }", diag.SynUnclosedBrace},
		{"stray closer", "class A { }\n}\n", diag.SynUnexpectedCloser},
		{"missing semicolon", "using System", diag.SynExpectSemicolon},
		{"missing namespace name", "namespace { }", diag.SynExpectIdentifier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := parseSource(t, tc.input)
			if !hasCode(bag, tc.code) {
				var got []string
				for _, d := range bag.Items() {
					got = append(got, d.Code.ID())
				}
				t.Fatalf("expected %s, got %v", tc.code.ID(), got)
			}
		})
	}
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte("a(); b(); c(); d();"))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: 2})
	if res.Errors != 2 || bag.Len() != 2 {
		t.Fatalf("errors=%d bag=%d, want 2/2", res.Errors, bag.Len())
	}
}

func parseWithSymbols(t *testing.T, input string, symbols ...string) *ast.Unit {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(input))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep, Symbols: symbols})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %d", bag.Len())
	}
	return res.Unit
}

func TestConditionalAroundDroppedText(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		texts []string
		tail  string
	}{
		{
			name:  "endif of a using group is cut",
			src:   "#if NET\nusing X;\n#endif\n// doc\npublic class Foo { }\n",
			texts: []string{"// doc\npublic class Foo { }"},
			tail:  "\n",
		},
		{
			name:  "else branch of a using group is cut",
			src:   "namespace N\n{\n#if NET\n    using X;\n#elif OLD\n    using Y;\n#else\n    using Z;\n#endif\n    class C { }\n}\n",
			texts: []string{"    class C { }"},
			tail:  "\n",
		},
		{
			name:  "group inside a declaration is kept",
			src:   "namespace N\n{\n    using X;\n#if NET\n    class C { }\n#endif\n}\n",
			texts: []string{"\n#if NET\n    class C { }"},
			tail:  "\n#endif\n",
		},
		{
			name:  "closer lost to a namespace keyword",
			src:   "#if NET\nclass A { }\n#endif\nnamespace M { }\n",
			texts: []string{"#if NET\nclass A { }\n#endif"},
			tail:  "\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unit := parseWithSymbols(t, tc.src, "NET")
			ns := unit.Namespaces[0]
			if len(ns.Members) != len(tc.texts) {
				t.Fatalf("expected %d members, got %d", len(tc.texts), len(ns.Members))
			}
			for i, want := range tc.texts {
				if got := ns.Members[i].Text(); got != want {
					t.Errorf("member %d:\n got %q\nwant %q", i, got, want)
				}
			}
			if ns.Tail != tc.tail {
				t.Errorf("tail = %q, want %q", ns.Tail, tc.tail)
			}
		})
	}
}

func TestDeclarationOnBraceLine(t *testing.T) {
	unit := mustParse(t, "namespace N { [Serializable]\n    public sealed class A { }\n}\n")
	d := unit.Namespaces[0].Members[0]
	if want := "\n    [Serializable]\n    public sealed class A { }"; d.Text() != want {
		t.Fatalf("text:\n got %q\nwant %q", d.Text(), want)
	}
	for _, m := range d.Modifiers {
		if got := d.Text()[m.Off : m.Off+len(m.Text)]; got != m.Text {
			t.Errorf("modifier %q points at %q", m.Text, got)
		}
	}

	one := mustParse(t, "namespace N { class B { } }\n").Namespaces[0].Members[0]
	if one.Text() != "\nclass B { }" {
		t.Fatalf("one-line text = %q", one.Text())
	}
}
