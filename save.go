package bramble

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// SaveStore is a JSON document of named integer arrays persisted to one
// file. Changes are held in memory until Flush.
type SaveStore struct {
	path  string
	data  []byte
	dirty bool
}

// OpenSaveStore loads the save file at path. A missing file yields an empty
// store. An unreadable or corrupt file is logged and the store starts empty,
// replacing the file on the next Flush.
func OpenSaveStore(path string) (*SaveStore, error) {
	s := &SaveStore{path: path, data: []byte("{}")}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		log.Printf("bramble: read save %s: %v", path, err)
		s.dirty = true
		return s, nil
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		log.Printf("bramble: save file %s is not a JSON object, starting fresh", path)
		s.dirty = true
		return s, nil
	}
	s.data = data
	return s, nil
}

// NewMemorySaveStore returns a store that is never written to disk.
func NewMemorySaveStore() *SaveStore {
	return &SaveStore{data: []byte("{}")}
}

// Path returns the backing file path, or "" for a memory store.
func (s *SaveStore) Path() string { return s.path }

// Has reports whether key has a value.
func (s *SaveStore) Has(key string) bool {
	return gjson.GetBytes(s.data, escapeKey(key)).Exists()
}

// Flags returns the integer array stored under key, or nil if there is none.
func (s *SaveStore) Flags(key string) []int {
	res := gjson.GetBytes(s.data, escapeKey(key))
	if !res.IsArray() {
		return nil
	}
	var out []int
	res.ForEach(func(_, v gjson.Result) bool {
		out = append(out, int(v.Int()))
		return true
	})
	return out
}

// SetFlags stores flags under key.
func (s *SaveStore) SetFlags(key string, flags []int) error {
	if flags == nil {
		flags = []int{}
	}
	out, err := sjson.SetBytes(s.data, escapeKey(key), flags)
	if err != nil {
		return fmt.Errorf("bramble: save %q: %w", key, err)
	}
	s.data = out
	s.dirty = true
	return nil
}

// Delete removes key. No-op if absent.
func (s *SaveStore) Delete(key string) error {
	if !s.Has(key) {
		return nil
	}
	out, err := sjson.DeleteBytes(s.data, escapeKey(key))
	if err != nil {
		return fmt.Errorf("bramble: delete %q: %w", key, err)
	}
	s.data = out
	s.dirty = true
	return nil
}

// Keys returns every top-level key in document order.
func (s *SaveStore) Keys() []string {
	var keys []string
	gjson.ParseBytes(s.data).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// Dirty reports whether there are unflushed changes.
func (s *SaveStore) Dirty() bool { return s.dirty }

// Flush writes pending changes. The file is replaced atomically by writing
// a sibling temp file and renaming it over the original.
func (s *SaveStore) Flush() error {
	if !s.dirty || s.path == "" {
		s.dirty = false
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bramble: save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("bramble: save: %w", err)
	}
	if _, err := tmp.Write(pretty.Pretty(s.data)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("bramble: save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("bramble: save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("bramble: save: %w", err)
	}
	s.dirty = false
	return nil
}

// escapeKey makes key a literal single-component gjson/sjson path.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '\\', '=', '<', '>', '%', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
