package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/markdown"
)

type postMeta struct {
	Title  string   `yaml:"title"`
	Author string   `yaml:"author"`
	Tags   []string `yaml:"tags"`
	Date   string   `yaml:"date"`
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newLoader[T any](opts Options) *Loader[T] {
	return NewLoader[T](markdown.New(markdown.DefaultOptions()), opts)
}

func TestLoad_TypedRecordAndBody(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.md",
		"---\ntitle: Hi\nauthor: Ann\ntags: [go]\ndate: 2024-01-01\nextra: ignored\n---\n# Hello\n")

	rec, err := newLoader[postMeta](Options{}).Load(path)
	require.NoError(t, err)
	require.True(t, rec.HasFrontMatter)
	require.Equal(t, postMeta{Title: "Hi", Author: "Ann", Tags: []string{"go"}, Date: "2024-01-01"}, rec.Meta)
	require.Equal(t, "<h1>Hello</h1>", rec.Body)
}

func TestLoad_EmptyBodyIsNotAnError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.md", "---\ntitle: Empty\n---\n")

	rec, err := newLoader[postMeta](Options{}).Load(path)
	require.NoError(t, err)
	require.Empty(t, rec.Body)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newLoader[postMeta](Options{}).Load(filepath.Join(t.TempDir(), "nope.md"))
	require.True(t, berrors.IsCategory(err, berrors.CategoryContentFileMissing), "got %v", err)
}

func TestLoad_FrontMatterShapeMismatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.md", "---\ntags:\n  a: b\n---\nbody\n")

	_, err := newLoader[postMeta](Options{}).Load(path)
	require.True(t, berrors.IsCategory(err, berrors.CategoryFrontMatterParse), "got %v", err)
}

func TestLoad_UnclosedFrontMatter(t *testing.T) {
	path := writeFile(t, t.TempDir(), "open.md", "---\ntitle: x\nbody\n")

	_, err := newLoader[postMeta](Options{}).Load(path)
	require.True(t, berrors.IsCategory(err, berrors.CategoryFrontMatterParse), "got %v", err)
}

func TestLoad_RequireFrontMatter(t *testing.T) {
	path := writeFile(t, t.TempDir(), "plain.md", "# Just a body\n")

	rec, err := newLoader[postMeta](Options{}).Load(path)
	require.NoError(t, err)
	require.False(t, rec.HasFrontMatter)

	_, err = newLoader[postMeta](Options{RequireFrontMatter: true}).Load(path)
	require.True(t, berrors.IsCategory(err, berrors.CategoryFrontMatterParse), "got %v", err)
}

func TestLoadContext_ProjectsRecordFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.md", "---\ntitle: Hi\nextra: dropped\n---\nbody\n")

	meta, body, err := newLoader[postMeta](Options{}).LoadContext(path)
	require.NoError(t, err)
	require.Equal(t, "<p>body</p>", body)
	require.Equal(t, []string{"author", "date", "tags", "title"}, meta.Keys())

	dyn, _, err := newLoader[Fields](Options{}).LoadContext(path)
	require.NoError(t, err)
	require.Equal(t, []string{"extra", "title"}, dyn.Keys())
}

func TestLoadContext_DeriveTitle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hello-big_world.md", "no front matter\n")

	meta, _, err := newLoader[Fields](Options{DeriveTitle: true}).LoadContext(path)
	require.NoError(t, err)
	title, ok := meta.Get("title")
	require.True(t, ok)
	require.Equal(t, "Hello Big World", title.Str())

	explicit := writeFile(t, dir, "x.md", "---\ntitle: Kept\n---\n")
	meta, _, err = newLoader[Fields](Options{DeriveTitle: true}).LoadContext(explicit)
	require.NoError(t, err)
	title, _ = meta.Get("title")
	require.Equal(t, "Kept", title.Str())
}
