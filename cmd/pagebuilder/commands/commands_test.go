package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

// run parses args against a fresh CLI and runs the selected command,
// returning what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var out bytes.Buffer
	parser, err := kong.New(&cli, kong.Name("pagebuilder"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "base.hbs"), "<html>{{{content}}}</html>")
	writeFile(t, filepath.Join(dir, "templates", "post.hbs"), "<h1>{{title}}</h1>{{{content}}}")
	writeFile(t, filepath.Join(dir, "content", "posts", "hello.md"), "---\ntitle: \"Hi\"\ndate: \"2024-01-01\"\n---\n# Hello\n")
	writeFile(t, filepath.Join(dir, "content", "posts", "next.md"), "---\ntitle: Next\ndate: \"2024-02-01\"\n---\n")
	writeFile(t, filepath.Join(dir, "site.yaml"), `
folders:
  - folder: posts
    node: {template: base, child: {template: post}}
`)
	return dir
}

func TestBuildCmd(t *testing.T) {
	dir := newSite(t)
	metricsFile := filepath.Join(dir, "metrics.prom")

	out, err := run(t, "-c", filepath.Join(dir, "site.yaml"), "build", "--metrics-file", metricsFile)
	require.NoError(t, err)
	require.Contains(t, out, "Built 2 files")

	got, err := os.ReadFile(filepath.Join(dir, "public", "posts", "hello.html"))
	require.NoError(t, err)
	require.Equal(t, "<html><h1>Hi</h1><h1>Hello</h1></html>", string(got))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), `pagebuilder_files_rendered_total{task="folder:posts"} 2`)
}

func TestBuildCmd_OutputOverride(t *testing.T) {
	dir := newSite(t)
	alt := filepath.Join(t.TempDir(), "alt")

	_, err := run(t, "-c", filepath.Join(dir, "site.yaml"), "build", "-o", alt)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(alt, "posts", "next.html"))
}

func TestBuildCmd_MissingTemplate(t *testing.T) {
	dir := newSite(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "templates", "post.hbs")))

	_, err := run(t, "-c", filepath.Join(dir, "site.yaml"), "build")
	require.True(t, berrors.IsCategory(err, berrors.CategoryTemplateNotFound), "got %v", err)
	require.NoFileExists(t, filepath.Join(dir, "public", "posts", "hello.html"))
	require.Equal(t, 3, berrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestBuildCmd_MissingConfig(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "site.yaml"), "build")
	require.True(t, berrors.IsCategory(err, berrors.CategoryConfig), "got %v", err)
}

func TestRenderCmd(t *testing.T) {
	dir := newSite(t)
	t.Chdir(dir)

	out, err := run(t, "render", "--file", filepath.Join("content", "posts", "hello.md"), "-t", "base", "-t", "post")
	require.NoError(t, err)
	require.Equal(t, "<html><h1>Hi</h1><h1>Hello</h1></html>\n", out)

	out, err = run(t, "render", "-t", "base", "-t", "post")
	require.NoError(t, err)
	require.Equal(t, "<html><h1></h1></html>\n", out)
}

func TestMetadataCmd(t *testing.T) {
	dir := newSite(t)

	out, err := run(t, "-c", filepath.Join(dir, "site.yaml"), "metadata", "posts", "--sort-by", "date", "--descending")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	require.Equal(t, "Next", got[0]["title"])
	require.Equal(t, "Hi", got[1]["title"])
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")

	out, err := run(t, "-c", path, "init")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote")
	require.FileExists(t, path)

	_, err = run(t, "-c", path, "init")
	require.Error(t, err)
	_, err = run(t, "-c", path, "init", "--force")
	require.NoError(t, err)
}
