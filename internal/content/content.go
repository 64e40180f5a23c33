// Package content loads content files: a Markdown body converted to HTML plus
// YAML front-matter decoded into a caller-chosen record shape.
package content

import (
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/markdown"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
	"git.home.luguber.info/inful/pagebuilder/internal/value"
)

// Fields is the record shape for content kinds without a fixed schema.
type Fields = map[string]any

// Record is one loaded content file.
type Record[T any] struct {
	Path           string
	Meta           T
	Body           string
	HasFrontMatter bool
}

// Options tune how content files are interpreted.
type Options struct {
	// RequireFrontMatter turns a missing front-matter block into an error.
	RequireFrontMatter bool `yaml:"require_front_matter"`
	// DeriveTitle fills a missing `title` context field from the file stem
	// ("hello-world.md" -> "Hello World").
	DeriveTitle bool `yaml:"derive_title"`
}

// Loader reads content files whose front-matter decodes into T.
type Loader[T any] struct {
	Markdown markdown.Converter
	Options  Options
}

// NewLoader returns a loader converting bodies with md.
func NewLoader[T any](md markdown.Converter, opts Options) *Loader[T] {
	return &Loader[T]{Markdown: md, Options: opts}
}

// Load reads path, decodes its front-matter into T and converts the body to
// HTML. An empty body yields an empty string.
func (l *Loader[T]) Load(path string) (Record[T], error) {
	rec := Record[T]{Path: path}

	block, err := l.split(path)
	if err != nil {
		return rec, err
	}
	if err := frontmatter.Decode(block.Raw, &rec.Meta); err != nil {
		return rec, berrors.FrontMatterParse(path, err)
	}
	rec.HasFrontMatter = block.Present

	html, err := l.Markdown.Convert(block.Body)
	if err != nil {
		return rec, berrors.MarkdownConversion(path, err)
	}
	rec.Body = html
	return rec, nil
}

// Metadata reads only the front-matter of path; the body is not converted.
func (l *Loader[T]) Metadata(path string) (T, error) {
	var meta T
	block, err := l.split(path)
	if err != nil {
		return meta, err
	}
	if err := frontmatter.Decode(block.Raw, &meta); err != nil {
		return meta, berrors.FrontMatterParse(path, err)
	}
	return meta, nil
}

// LoadContext loads path and projects its record into context data. It lets
// the render engine bind leaves to files without knowing T.
func (l *Loader[T]) LoadContext(path string) (value.Value, string, error) {
	rec, err := l.Load(path)
	if err != nil {
		return value.Value{}, "", err
	}
	meta, err := rec.Context()
	if err != nil {
		return value.Value{}, "", berrors.FrontMatterParse(path, err)
	}
	if l.Options.DeriveTitle {
		meta = withDerivedTitle(meta, path)
	}
	return meta, rec.Body, nil
}

// Context projects the record's front-matter into a context value.
func (r Record[T]) Context() (value.Value, error) {
	v, err := value.FromRecord(r.Meta)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsNull() {
		return value.EmptyMap(), nil
	}
	return v, nil
}

func (l *Loader[T]) split(path string) (frontmatter.Block, error) {
	// #nosec G304 -- content paths come from the configured content directory.
	raw, err := os.ReadFile(path)
	if err != nil {
		return frontmatter.Block{}, berrors.ContentFileMissing(path, err)
	}
	block, err := frontmatter.Split(raw)
	if err != nil {
		return block, berrors.FrontMatterParse(path, err)
	}
	if !block.Present && l.Options.RequireFrontMatter {
		return block, berrors.New(berrors.CategoryFrontMatterParse, berrors.SeverityFatal, "front matter is required").
			WithContext("path", path)
	}
	return block, nil
}

func withDerivedTitle(meta value.Value, path string) value.Value {
	if !meta.IsMap() {
		return meta
	}
	if t, ok := meta.Get("title"); ok && !t.IsNull() {
		return meta
	}
	stem := paths.Stem(path)
	title := cases.Title(language.English).String(replaceSeparators(stem))
	slog.Debug("Derived title from file name", logfields.File(filepath.Base(path)), slog.String("title", title))
	return meta.With("title", value.String(title))
}

func replaceSeparators(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == '-' || r == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}
