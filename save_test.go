package bramble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenSaveStoreMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s, err := OpenSaveStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Keys()) != 0 || s.Dirty() {
		t.Error("missing file should give a clean empty store")
	}
	if s.Path() != path {
		t.Errorf("Path = %q", s.Path())
	}
}

func TestSaveStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "save.json")
	s, err := OpenSaveStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetFlags("classic", []int{1, 0, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFlags("puzzle.v2", []int{7}); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Fatal("SetFlags should mark the store dirty")
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("Flush should clear dirty")
	}

	r, err := OpenSaveStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Flags("classic"); !equalInts(got, []int{1, 0, 3}) {
		t.Errorf("classic = %v", got)
	}
	if got := r.Flags("puzzle.v2"); !equalInts(got, []int{7}) {
		t.Errorf("puzzle.v2 = %v", got)
	}
	if keys := r.Keys(); !equalStrings(keys, []string{"classic", "puzzle.v2"}) {
		t.Errorf("Keys = %v", keys)
	}
}

func TestSaveStoreFlushLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	s, _ := OpenSaveStore(filepath.Join(dir, "save.json"))
	s.SetFlags("a", []int{1})
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "save.json" {
		t.Errorf("dir holds %d entries, want only save.json", len(entries))
	}
}

func TestSaveStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenSaveStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Keys()) != 0 {
		t.Error("corrupt file should give an empty store")
	}
	if !s.Dirty() {
		t.Error("corrupt file should be rewritten on Flush")
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("rewritten file = %q", data)
	}
}

func TestOpenSaveStoreUnreadable(t *testing.T) {
	// a directory at the save path cannot be read as a file
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	s, err := OpenSaveStore(path)
	if err != nil {
		t.Fatalf("OpenSaveStore: %v, want nil", err)
	}
	if s == nil {
		t.Fatal("store is nil")
	}
	if len(s.Keys()) != 0 {
		t.Error("unreadable file should give an empty store")
	}
	if !s.Dirty() {
		t.Error("unreadable file should be marked dirty")
	}
	if err := s.SetFlags("garden", []int{1, 0}); err != nil {
		t.Fatal(err)
	}
	if got := s.Flags("garden"); !equalInts(got, []int{1, 0}) {
		t.Errorf("Flags = %v, want [1 0]", got)
	}
}

func TestSaveStoreMissingKey(t *testing.T) {
	s := NewMemorySaveStore()
	if s.Has("nope") || s.Flags("nope") != nil {
		t.Error("missing key should report nothing")
	}
}

func TestSaveStoreDelete(t *testing.T) {
	s := NewMemorySaveStore()
	s.SetFlags("a", []int{1})
	s.SetFlags("b", []int{2})
	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if s.Has("a") || !s.Has("b") {
		t.Errorf("Keys = %v, want [b]", s.Keys())
	}
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete of a missing key: %v", err)
	}
}

func TestSaveStoreEmptyFlags(t *testing.T) {
	s := NewMemorySaveStore()
	s.SetFlags("a", nil)
	if !s.Has("a") {
		t.Fatal("empty flags should still be stored")
	}
	if got := s.Flags("a"); len(got) != 0 {
		t.Errorf("Flags = %v, want empty", got)
	}
}

func TestMemorySaveStoreFlush(t *testing.T) {
	s := NewMemorySaveStore()
	s.SetFlags("a", []int{1})
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("memory Flush should clear dirty")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
