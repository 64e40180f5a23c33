// Package templates resolves template names to raw template text and renders
// that text against context data.
//
// A template is one file in the templates directory; its name is the file
// stem ("base.html" -> "base"). Subdirectories and dotfiles are skipped.
package templates

import (
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
	"git.home.luguber.info/inful/pagebuilder/internal/util/sets"
)

// Store resolves a template name to its raw text.
type Store interface {
	Lookup(name string) (string, error)
}

// DirStore reads templates from a directory on every Lookup. Nothing is
// cached, so edits between lookups are visible.
type DirStore struct {
	Dir string
}

// NewDirStore returns a store reading from dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{Dir: dir}
}

// Check verifies the template directory can be listed.
func (s *DirStore) Check() error {
	_, err := s.files()
	return err
}

// Names lists the distinct template names available in the directory, sorted.
func (s *DirStore) Names() ([]string, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	return stems(files), nil
}

// Lookup finds the file whose stem equals name. When several files share a
// stem the first in name order wins.
func (s *DirStore) Lookup(name string) (string, error) {
	files, err := s.files()
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if paths.Stem(f) != name {
			continue
		}
		path := filepath.Join(s.Dir, f)
		// #nosec G304 -- path is a direct child of the configured template directory.
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", berrors.TemplateFileMissing(name, path, err)
		}
		return string(raw), nil
	}
	return "", berrors.TemplateNotFound(name, stems(files)...)
}

func stems(files []string) []string {
	names := sets.New[string]()
	for _, f := range files {
		names.Insert(paths.Stem(f))
	}
	return sets.Sorted(names)
}

func (s *DirStore) files() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, berrors.DirectoryEnumeration(s.Dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || paths.IsHidden(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

// MemoryStore is an immutable name -> text snapshot.
type MemoryStore map[string]string

// Lookup returns the template text stored under name.
func (m MemoryStore) Lookup(name string) (string, error) {
	text, ok := m[name]
	if !ok {
		return "", berrors.TemplateNotFound(name, slices.Sorted(maps.Keys(m))...)
	}
	return text, nil
}

// LoadDir reads every template in dir once and returns the snapshot.
func LoadDir(dir string) (MemoryStore, error) {
	ds := NewDirStore(dir)
	files, err := ds.files()
	if err != nil {
		return nil, err
	}
	seen := sets.New[string]()
	store := make(MemoryStore, len(files))
	for _, f := range files {
		name := paths.Stem(f)
		if !seen.Insert(name) {
			slog.Warn("Duplicate template name, keeping first file",
				logfields.Template(name), logfields.File(f))
			continue
		}
		path := filepath.Join(dir, f)
		// #nosec G304 -- path is a direct child of the configured template directory.
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, berrors.TemplateFileMissing(name, path, err)
		}
		store[name] = string(raw)
	}
	slog.Debug("Loaded templates", logfields.Path(dir), logfields.Count(len(store)))
	return store, nil
}

// CachingStore memoizes successful lookups of an inner store for the
// lifetime of the value.
type CachingStore struct {
	inner Store
	mu    sync.Mutex
	cache map[string]string
}

// NewCachingStore wraps inner with a lookup cache.
func NewCachingStore(inner Store) *CachingStore {
	return &CachingStore{inner: inner, cache: make(map[string]string)}
}

// Lookup returns the cached text or resolves it from the inner store.
func (c *CachingStore) Lookup(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if text, ok := c.cache[name]; ok {
		return text, nil
	}
	text, err := c.inner.Lookup(name)
	if err != nil {
		return "", err
	}
	c.cache[name] = text
	return text, nil
}
