package lexer

import (
	"testing"

	"csmerge/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("expected EOF state at end")
	}
}

func TestCursorPeekAtAndReset(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	m := cursor.Mark()
	if cursor.PeekAt(2) != 'c' || cursor.PeekAt(3) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
	if _, _, _, ok := cursor.Peek3(); !ok {
		t.Fatal("Peek3 must see three bytes")
	}
	cursor.Bump()
	cursor.Bump()
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 must fail with one byte left")
	}
	cursor.Reset(m)
	if !cursor.Eat('a') || cursor.Eat('z') {
		t.Fatal("Eat mismatch after Reset")
	}
}

func TestCursorAtLineStart(t *testing.T) {
	cursor := NewCursor(createFile("x\n  \t#if A"))
	if !cursor.AtLineStart() {
		t.Fatal("offset 0 is a line start")
	}
	cursor.Off = 1 // '\n'
	if cursor.AtLineStart() {
		t.Fatal("after 'x' is not a line start")
	}
	cursor.Off = 5 // '#'
	if !cursor.AtLineStart() {
		t.Fatal("indented '#' is at line start")
	}
	cursor.SkipLine()
	if !cursor.EOF() {
		t.Fatal("SkipLine must stop at EOF")
	}
}
