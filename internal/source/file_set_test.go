package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Program.cs", []byte("class A {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("Program.cs", []byte("class B {}"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("Program.cs")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Errorf("Expected first file content 'class A {}', got %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("a\r\nb\n"))
	file := fs.Get(id)

	if string(file.Content) != "a\nb\n" {
		t.Fatalf("Expected CRLF to be normalized, got %q", file.Content)
	}
	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLineAndSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	if got := file.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := file.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, want empty", got)
	}
	if got := file.Slice(Span{File: id, Start: 6, End: 12}); got != "second" {
		t.Errorf("Slice = %q", got)
	}
}

func TestLoadDecodesUTF16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Wide.cs")
	// "class W {}\r\n" в UTF-16LE с BOM
	text := "class W {}\r\n"
	raw := []byte{0xFF, 0xFE}
	for _, r := range text {
		raw = append(raw, byte(r), 0)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "class W {}\n" {
		t.Errorf("unexpected content %q", file.Content)
	}
	if file.Encoding != "utf-16" {
		t.Errorf("Encoding = %q, want utf-16", file.Encoding)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileTranscoded == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("unexpected flags %b", file.Flags)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.cs")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}

	got, err = RelativePath(filepath.Join(baseDir, "nested", "file.cs"), baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "nested/file.cs" {
		t.Fatalf("expected relative path, got %q", got)
	}
}
