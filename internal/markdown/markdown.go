// Package markdown converts Markdown bodies (front-matter already removed)
// into HTML using goldmark.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Converter turns a Markdown body into an HTML string.
type Converter interface {
	Convert(body []byte) (string, error)
}

// Options selects goldmark extensions and renderer behavior.
type Options struct {
	GFM            bool `yaml:"gfm"`
	UnsafeHTML     bool `yaml:"unsafe_html"`
	HardWraps      bool `yaml:"hard_wraps"`
	AutoHeadingIDs bool `yaml:"auto_heading_ids"`
	Typographer    bool `yaml:"typographer"`
}

// DefaultOptions enables GitHub Flavored Markdown and nothing else.
func DefaultOptions() Options {
	return Options{GFM: true}
}

// Goldmark is a Converter backed by a configured goldmark instance.
type Goldmark struct {
	md goldmark.Markdown
}

// New builds a goldmark converter for opts.
func New(opts Options) *Goldmark {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var parserOpts []parser.Option
	if opts.AutoHeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	var rendererOpts []goldmark.Option
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
	}
	if opts.UnsafeHTML {
		htmlOpts = append(htmlOpts, gmhtml.WithUnsafe())
	}
	rendererOpts = append(rendererOpts,
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(htmlOpts...),
	)

	return &Goldmark{md: goldmark.New(rendererOpts...)}
}

// Convert renders body to HTML. The trailing newline goldmark emits after the
// last block is trimmed so the fragment embeds cleanly into templates. An
// empty body converts to an empty string.
func (g *Goldmark) Convert(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := g.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\r\n")), nil
}
