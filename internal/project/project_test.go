package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b, c := Sum([]byte("a")), Sum([]byte("b")), Sum([]byte("c"))
	if Combine(a, b, c) == Combine(a, c, b) {
		t.Fatalf("Combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("Combine must be deterministic")
	}
	if !(Digest{}).IsZero() || a.IsZero() {
		t.Fatalf("IsZero misreports")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest = %q", a.String())
	}
}

func TestFindBatchManifest(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := FindBatchManifest(deep); err != nil || ok {
		t.Fatalf("unexpected manifest: ok=%v err=%v", ok, err)
	}
	want := filepath.Join(root, BatchManifest)
	if err := os.WriteFile(want, []byte("[[merge]]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindBatchManifest(deep)
	if err != nil || !ok || got != want {
		t.Fatalf("FindBatchManifest = %q %v %v, want %q", got, ok, err, want)
	}
}
