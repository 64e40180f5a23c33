package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
)

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestDirStore_LookupByStem(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"base.html": "<html>{{{content}}}</html>",
		"post.hbs":  "<h1>{{title}}</h1>",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "partials"), 0o750))

	store := NewDirStore(dir)
	text, err := store.Lookup("base")
	require.NoError(t, err)
	require.Equal(t, "<html>{{{content}}}</html>", text)

	names, err := store.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"base", "post"}, names)
}

func TestDirStore_RereadsOnEveryLookup(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"page.html": "v1"})
	store := NewDirStore(dir)

	text, err := store.Lookup("page")
	require.NoError(t, err)
	require.Equal(t, "v1", text)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("v2"), 0o600))
	text, err = store.Lookup("page")
	require.NoError(t, err)
	require.Equal(t, "v2", text)
}

func TestDirStore_MissingTemplate(t *testing.T) {
	store := NewDirStore(writeTemplates(t, map[string]string{"base.html": "", "post.html": "", "post.txt": ""}))
	_, err := store.Lookup("missing")
	require.True(t, berrors.IsCategory(err, berrors.CategoryTemplateNotFound), "got %v", err)
	require.Contains(t, err.Error(), "available: base, post")
	require.Contains(t, err.Error(), "[template=missing]")
}

func TestMemoryStore_MissingTemplateListsNames(t *testing.T) {
	_, err := MemoryStore{"post": "", "base": ""}.Lookup("page")
	require.True(t, berrors.IsCategory(err, berrors.CategoryTemplateNotFound), "got %v", err)
	require.Contains(t, err.Error(), "available: base, post")
}

func TestDirStore_MissingDirectory(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "nope"))
	require.True(t, berrors.IsCategory(store.Check(), berrors.CategoryDirectoryEnumeration))
}

func TestLoadDir_SnapshotIsImmutable(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"page.html": "v1", ".hidden": "x"})
	store, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, store, 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("v2"), 0o600))
	text, err := store.Lookup("page")
	require.NoError(t, err)
	require.Equal(t, "v1", text)
}

func TestLoadDir_DuplicateStemKeepsFirst(t *testing.T) {
	store, err := LoadDir(writeTemplates(t, map[string]string{"a.hbs": "hbs", "a.html": "html"}))
	require.NoError(t, err)
	require.Equal(t, "hbs", store["a"])
}

type countingStore struct {
	MemoryStore
	calls int
}

func (c *countingStore) Lookup(name string) (string, error) {
	c.calls++
	return c.MemoryStore.Lookup(name)
}

func TestCachingStore_ResolvesOnce(t *testing.T) {
	inner := &countingStore{MemoryStore: MemoryStore{"base": "x"}}
	store := NewCachingStore(inner)

	for range 3 {
		text, err := store.Lookup("base")
		require.NoError(t, err)
		require.Equal(t, "x", text)
	}
	require.Equal(t, 1, inner.calls)

	_, err := store.Lookup("missing")
	require.Error(t, err)
}
