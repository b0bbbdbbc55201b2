package source

import (
	"bytes"
	"testing"
)

func TestSniffEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, "utf-8"},
		{"utf16 le", []byte{0xFF, 0xFE, 'a', 0}, "utf-16"},
		{"utf16 be", []byte{0xFE, 0xFF, 0, 'a'}, "utf-16BE"},
		{"utf32 le", []byte{0xFF, 0xFE, 0, 0, 'a', 0, 0, 0}, "utf-32"},
		{"plain ascii", []byte("class A {}"), "utf-8"},
		{"latin1 bytes", []byte{'c', 0xE9, '!'}, "windows-1252"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffEncoding(tt.data).Name; got != tt.want {
				t.Errorf("SniffEncoding = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeANSI(t *testing.T) {
	out, err := ANSI.Decode([]byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(out) != "café" {
		t.Errorf("Decode = %q", out)
	}
}

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		value   string
		name    string
		bom     bool
		wantErr bool
	}{
		{"", "utf-8", true, false},
		{"utf-8", "utf-8", true, false},
		{"utf-8-nobom", "utf-8", false, false},
		{"65001", "utf-8", true, false},
		{"1252", "windows-1252", false, false},
		{"1200", "utf-16", true, false},
		{"iso-8859-1", "windows-1252", false, false}, // WHATWG сводит latin1 к windows-1252
		{"shift_jis", "shift_jis", false, false},
		{"99999", "", false, true},
		{"no-such-encoding", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			enc, err := LookupEncoding(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", enc.Name)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupEncoding: %v", err)
			}
			if enc.Name != tt.name {
				t.Errorf("Name = %q, want %q", enc.Name, tt.name)
			}
			if enc.HasBOM() != tt.bom {
				t.Errorf("HasBOM = %v, want %v", enc.HasBOM(), tt.bom)
			}
		})
	}
}

func TestWriterEmitsBOMAndReplacesUnsupported(t *testing.T) {
	var buf bytes.Buffer
	w := UTF8BOM.NewWriter(&buf)
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF, 'x'}) {
		t.Errorf("unexpected bytes % x", buf.Bytes())
	}

	buf.Reset()
	w = ANSI.NewWriter(&buf)
	if _, err := w.Write([]byte("a→b")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := buf.String(); got != "a\x1ab" {
		t.Errorf("unexpected replacement %q", got)
	}
}
