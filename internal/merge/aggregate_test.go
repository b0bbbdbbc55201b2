package merge_test

import (
	"slices"
	"testing"

	"csmerge/internal/merge"
)

func TestAggregateGroupingOrder(t *testing.T) {
	agg := merge.NewAggregator()
	agg.Add(parseUnit(t, "1.cs", "namespace N\n{\n    class A { }\n\n    class B { }\n}\n"))
	agg.Add(parseUnit(t, "2.cs", "namespace M;\n\nclass C { }\n"))
	agg.Add(parseUnit(t, "3.cs", "namespace N\n{\n    using System;\n\n    // second\n    class D { }\n}\n"))

	groups := agg.Groups()
	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
	}
	if !slices.Equal(names, []string{"M", "N"}) {
		t.Fatalf("group order = %q", names)
	}

	n := groups[1]
	want := "class A { }\n\nclass B { }\n\n// second\nclass D { }"
	if n.Body.Text != want {
		t.Fatalf("N body:\n got %q\nwant %q", n.Body.Text, want)
	}
	if n.Chunks != 2 {
		t.Fatalf("chunks = %d", n.Chunks)
	}
	if !slices.Equal(n.Usings, []string{"using System;"}) {
		t.Fatalf("usings = %q", n.Usings)
	}
	if groups[0].Body.Text != "class C { }" {
		t.Fatalf("M body = %q", groups[0].Body.Text)
	}
}

func TestAggregateExactNames(t *testing.T) {
	agg := merge.NewAggregator()
	agg.Add(parseUnit(t, "1.cs", "namespace A.B { class X { } }"))
	agg.Add(parseUnit(t, "2.cs", "namespace A . B { class Y { } }"))
	if got := len(agg.Groups()); got != 2 {
		t.Fatalf("differently spelled names must stay distinct, got %d groups", got)
	}
}

func TestAggregateGlobalGroupAndAttributes(t *testing.T) {
	agg := merge.NewAggregator()
	agg.Add(parseUnit(t, "1.cs", "[assembly: CLSCompliant(true)]\n\nclass Top { }\n"))
	agg.Add(parseUnit(t, "2.cs", "namespace Empty { }\n"))

	groups := agg.Groups()
	if len(groups) != 1 || !groups[0].IsGlobal() {
		t.Fatalf("expected only the global group, got %d", len(groups))
	}
	attrs := agg.Attributes()
	if len(attrs) != 1 || attrs[0].Text != "[assembly: CLSCompliant(true)]" {
		t.Fatalf("attributes = %+v", attrs)
	}
}

func TestAggregateInternalizedChunk(t *testing.T) {
	unit := merge.Internalize(parseUnit(t, "X.cs", "namespace N\n{\n    public class X { }\n}\n"))
	agg := merge.NewAggregator()
	agg.Add(unit)
	if got := agg.Groups()[0].Body.Text; got != "internal class X { }" {
		t.Fatalf("body = %q", got)
	}
}

func TestAggregateExcludedUsings(t *testing.T) {
	agg := merge.NewAggregator()
	agg.ExcludeNamespaces([]string{"a.b"})
	agg.Add(parseUnit(t, "1.cs", "namespace N\n{\n    using A.B;\n    using C;\n\n    class Y { }\n}\n"))
	agg.Add(parseUnit(t, "2.cs", "namespace Only\n{\n    using A.B;\n}\n"))

	groups := agg.Groups()
	if len(groups) != 1 || groups[0].Name != "N" {
		t.Fatalf("a namespace left with excluded usings only must vanish, got %d groups", len(groups))
	}
	if !slices.Equal(groups[0].Usings, []string{"using C;"}) {
		t.Fatalf("usings = %q", groups[0].Usings)
	}
}

func TestChunkHeaderSpacing(t *testing.T) {
	unit := parseUnit(t, "1.cs", "#nullable enable\n\nnamespace N\n{\n\n    class A { }\n}\n")
	if got := merge.Chunk(unit.Namespaces[0]).Text; got != "#nullable enable\nclass A { }" {
		t.Fatalf("chunk = %q", got)
	}
}
