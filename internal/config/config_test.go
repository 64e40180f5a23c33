package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/render"
	"git.home.luguber.info/inful/pagebuilder/internal/value"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	require.Equal(t, "content", cfg.ContentDir)
	require.Equal(t, "templates", cfg.TemplatesDir)
	require.Equal(t, "public", cfg.OutputDir)
	require.Equal(t, ".html", cfg.OutputExt)
	require.True(t, cfg.Markdown.GFM)
	require.False(t, cfg.ContinueOnError)
}

func TestParse_OutputExtGetsDot(t *testing.T) {
	cfg, err := Parse([]byte("output_ext: htm\n"))
	require.NoError(t, err)
	require.Equal(t, ".htm", cfg.OutputExt)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing template", "pages:\n  - output: index\n    node: {}\n"},
		{"missing child template", "pages:\n  - output: index\n    node: {template: base, child: {}}\n"},
		{"escaping output", "pages:\n  - output: ../x\n    node: {template: base}\n"},
		{"duplicate output", "pages:\n  - output: a\n    node: {template: t}\n  - output: a\n    node: {template: t}\n"},
		{"duplicate folder", "folders:\n  - folder: p\n    node: {template: t}\n  - folder: p\n    node: {template: t}\n"},
		{"unknown collection", "pages:\n  - output: a\n    node: {template: t, collections: [posts]}\n"},
		{"empty collection folder", "collections:\n  posts: {}\n"},
		{"separator in ext", "output_ext: .a/b\n"},
		{"bad yaml", "pages: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			require.True(t, berrors.IsCategory(err, berrors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoad_ExpandsEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PB_OUT", "from-env")
	writeFile(t, filepath.Join(dir, ".env"), "PB_OUT=from-dotenv\nPB_EXT=.txt\n")
	writeFile(t, filepath.Join(dir, "site.yaml"), "output_dir: ${PB_OUT}\noutput_ext: ${PB_EXT}\n")
	t.Cleanup(func() { _ = os.Unsetenv("PB_EXT") })

	cfg, err := Load(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.OutputDir)
	require.Equal(t, ".txt", cfg.OutputExt)
	require.Equal(t, filepath.Join(dir, "from-env"), cfg.Resolve(cfg.OutputDir))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "site.yaml"))
	require.True(t, berrors.IsCategory(err, berrors.CategoryConfig), "got %v", err)
}

func TestNodeSpec_Build_Variants(t *testing.T) {
	none := func(string) (value.Value, error) { return value.Value{}, nil }

	tests := []struct {
		name string
		node NodeSpec
		want render.Node
	}{
		{"leaf", NodeSpec{Template: "a"}, render.Leaf{Template: "a"}},
		{
			"leaf with context",
			NodeSpec{Template: "a", Context: map[string]any{"k": "v"}},
			render.LeafWithContext{Template: "a", Context: value.Object("k", "v")},
		},
		{
			"branch",
			NodeSpec{Template: "a", Child: &NodeSpec{Template: "b"}},
			render.Branch{Template: "a", Child: render.Leaf{Template: "b"}},
		},
		{
			"branch with context",
			NodeSpec{Template: "a", Context: map[string]any{"n": 1}, Child: &NodeSpec{Template: "b"}},
			render.BranchWithContext{Template: "a", Context: value.Object("n", 1), Child: render.Leaf{Template: "b"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.Build(none)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollection_SortedWithStemAndURL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "content", "posts", "a.md"), "---\ntitle: A\ndate: 2024-01-01\n---\n")
	writeFile(t, filepath.Join(dir, "content", "posts", "b.md"), "---\ntitle: B\ndate: 2024-03-01\n---\n")
	writeFile(t, filepath.Join(dir, "content", "posts", "c.md"), "---\ntitle: C\ndate: 2024-02-01\n---\n")
	writeFile(t, filepath.Join(dir, "site.yaml"), "collections:\n  posts: {folder: posts, sort_by: date, descending: true}\n")

	cfg, err := Load(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)

	items, err := cfg.Collection("posts")
	require.NoError(t, err)
	var stems, urls []string
	for _, it := range items.Items() {
		s, _ := it.Get("stem")
		u, _ := it.Get("url")
		stems = append(stems, s.Str())
		urls = append(urls, u.Str())
	}
	require.Equal(t, []string{"b", "c", "a"}, stems)
	require.Equal(t, []string{"posts/b.html", "posts/c.html", "posts/a.html"}, urls)
}

func TestBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "base.hbs"), "<html>{{{content}}}</html>")
	writeFile(t, filepath.Join(dir, "templates", "post.hbs"), "<h1>{{title}}</h1>{{{content}}}")
	writeFile(t, filepath.Join(dir, "templates", "index.hbs"),
		"<h1>{{heading}}</h1>{{#each posts}}<a href=\"{{url}}\">{{title}}</a>{{/each}}")
	writeFile(t, filepath.Join(dir, "content", "posts", "hello.md"), "---\ntitle: \"Hi\"\ndate: \"2024-01-01\"\n---\n# Hello\n")
	writeFile(t, filepath.Join(dir, "content", "posts", "later.md"), "---\ntitle: Later\ndate: \"2024-02-01\"\n---\n")
	writeFile(t, filepath.Join(dir, "site.yaml"), `
collections:
  posts: {folder: posts, sort_by: date, descending: true}
pages:
  - output: index
    node: {template: base, child: {template: index, collections: [posts], context: {heading: Blog}}}
folders:
  - folder: posts
    node: {template: base, child: {template: post}}
`)

	cfg, err := Load(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)
	tasks, err := cfg.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	report, err := cfg.Generator().Run(tasks...)
	require.NoError(t, err)
	require.Equal(t, []string{"index.html", "posts/hello.html", "posts/later.html"}, report.Files)

	hello, err := os.ReadFile(filepath.Join(dir, "public", "posts", "hello.html"))
	require.NoError(t, err)
	require.Equal(t, "<html><h1>Hi</h1><h1>Hello</h1></html>", string(hello))

	index, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
	require.NoError(t, err)
	require.Equal(t,
		`<html><h1>Blog</h1><a href="posts/later.html">Later</a><a href="posts/hello.html">Hi</a></html>`,
		string(index))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.True(t, berrors.IsCategory(err, berrors.CategoryConfig), "got %v", err)
	require.NoError(t, Init(path, true))

	t.Setenv("SITE_TITLE", "My Site")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Pages, 1)
	require.Equal(t, "My Site", cfg.Pages[0].Node.Child.Context["heading"])
}
