package diag

import (
	"testing"

	"csmerge/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	bag.Add(New(SevWarning, SynUnexpectedToken, source.Span{}, "w"))
	bag.Add(NewError(LexUnknownChar, source.Span{Start: 3, End: 4}, "e"))
	if bag.Add(NewError(LexUnknownChar, source.Span{}, "dropped")) {
		t.Fatal("expected Add to refuse diagnostics over the limit")
	}
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors")
	}
	first, ok := bag.FirstError()
	if !ok || first.Message != "e" {
		t.Fatalf("unexpected FirstError: %+v", first)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 0, Start: 9, End: 9}, "a"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b again"))
	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Message != "a" || items[1].Message != "b" {
		t.Fatalf("unexpected order: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "x", nil)
	r.Report(LexUnknownChar, SevError, sp, "x", nil)
	r.Report(LexUnknownChar, SevError, sp, "y", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")
	id := fs.Add("/work/src/A.cs", []byte("class A\n{\n"), 0)

	d := NewError(SynUnclosedBrace, source.Span{File: id, Start: 8, End: 9}, "missing '}'\nat end of file")
	want := "error SYN2002 src/A.cs:2:1 missing '}' at end of file"
	if got := FormatShort(d, fs); got != want {
		t.Fatalf("FormatShort:\nwant %q\ngot  %q", want, got)
	}
	if got := FormatShort(d, nil); got != "error SYN2002 missing '}' at end of file" {
		t.Fatalf("FormatShort without FileSet: %q", got)
	}
}
