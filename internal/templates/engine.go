package templates

import (
	"strings"

	"github.com/aymerick/raymond"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/value"
)

// Engine renders raw template text against context data. name is used for
// diagnostics only.
type Engine interface {
	Render(name, source string, data value.Value) (string, error)
}

// Handlebars renders templates with the handlebars syntax: `{{key}}` is
// HTML-escaped, `{{{key}}}` is inserted verbatim, block helpers such as
// `{{#each}}` and `{{#if}}` come from the engine.
type Handlebars struct {
	helpers map[string]any
}

// NewHandlebars returns an engine with the given extra helpers registered on
// every template it renders.
func NewHandlebars(helpers map[string]any) *Handlebars {
	return &Handlebars{helpers: helpers}
}

// Render parses source and executes it with data.
func (h *Handlebars) Render(name, source string, data value.Value) (string, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return "", berrors.TemplateRender(name, err).WithContext("stage", "parse")
	}
	if len(h.helpers) > 0 {
		tpl.RegisterHelpers(h.helpers)
	}
	out, err := tpl.Exec(data.ToAny())
	if err != nil {
		return "", berrors.TemplateRender(name, err).WithContext("stage", "exec")
	}
	return out, nil
}

// DefaultHelpers are the helpers the CLI registers: `join` concatenates list
// items with a separator, `lower` and `upper` change case.
func DefaultHelpers() map[string]any {
	return map[string]any{
		"join": func(items []any, sep string) string {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				parts = append(parts, raymond.Str(it))
			}
			return strings.Join(parts, sep)
		},
		"lower": func(s string) string { return strings.ToLower(s) },
		"upper": func(s string) string { return strings.ToUpper(s) },
	}
}
