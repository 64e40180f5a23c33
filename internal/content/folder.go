package content

import (
	"log/slog"
	"os"
	"path/filepath"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
)

// File is one content file found directly under a folder.
type File struct {
	Name string // file name, e.g. "hello.md"
	Stem string // name without its final extension, e.g. "hello"
	Path string // dir joined with Name
}

// ListFiles returns the non-directory, non-hidden entries directly under dir
// in name order.
func ListFiles(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, berrors.DirectoryEnumeration(dir, err)
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if paths.IsHidden(e.Name()) {
			slog.Debug("Skipping hidden file", logfields.File(filepath.Join(dir, e.Name())))
			continue
		}
		files = append(files, File{
			Name: e.Name(),
			Stem: paths.Stem(e.Name()),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return files, nil
}

// Resolve finds the file in dir whose stem is stem.
func Resolve(dir, stem string) (string, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if f.Stem == stem {
			return f.Path, nil
		}
	}
	return "", berrors.ContentFileMissing(filepath.Join(dir, stem), os.ErrNotExist)
}

// Entry pairs a file's front-matter with where it came from.
type Entry[T any] struct {
	Stem string
	Path string
	Meta T
}

// Entries reads the front-matter of every file in dir, in name order.
// Bodies are not converted.
func Entries[T any](dir string, opts Options) ([]Entry[T], error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	loader := &Loader[T]{Options: opts}
	out := make([]Entry[T], 0, len(files))
	for _, f := range files {
		meta, err := loader.Metadata(f.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry[T]{Stem: f.Stem, Path: f.Path, Meta: meta})
	}
	return out, nil
}

// AllMetadata returns the decoded front-matter of every file in dir in
// enumeration (name) order. Callers sort when they need another order.
func AllMetadata[T any](dir string) ([]T, error) {
	entries, err := Entries[T](dir, Options{})
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Meta)
	}
	return out, nil
}
