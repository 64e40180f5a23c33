package commands

import (
	"fmt"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/render"
	"git.home.luguber.info/inful/pagebuilder/internal/templates"
)

// RenderCmd implements the 'render' command: Chain(templates...) evaluated
// once and printed, bound to --file when given.
type RenderCmd struct {
	File      string   `short:"f" help:"Content file to bind every leaf to" type:"existingfile"`
	Templates []string `short:"t" name:"template" help:"Template chain, outermost first (repeatable)" required:""`
}

func (c *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, true)
	if err != nil {
		return err
	}
	gen := cfg.Generator()

	store := templates.NewCachingStore(templates.NewDirStore(gen.TemplatesDir))
	r := render.New(store, gen.Engine, content.NewLoader[content.Fields](gen.Markdown, gen.ContentOptions))

	node := render.Chain(c.Templates...)
	if node == nil {
		return berrors.ValidationFailed("template", "at least one template is required")
	}
	var out string
	if c.File != "" {
		out, err = r.RenderFile(node, c.File)
	} else {
		out, err = r.Render(node)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.out(), out)
	return nil
}
