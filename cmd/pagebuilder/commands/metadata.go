package commands

import (
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/site"
	"git.home.luguber.info/inful/pagebuilder/internal/value"
)

// MetadataCmd implements the 'metadata' command.
type MetadataCmd struct {
	Folder     string `arg:"" help:"Content folder, relative to the content directory"`
	SortBy     string `name:"sort-by" help:"Front-matter key to sort by"`
	Descending bool   `help:"Sort in descending order"`
}

func (m *MetadataCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, true)
	if err != nil {
		return err
	}
	metas, err := site.Metadata[content.Fields](cfg.Generator(), m.Folder)
	if err != nil {
		return err
	}

	items := make([]value.Value, 0, len(metas))
	for _, meta := range metas {
		v, err := value.FromAny(meta)
		if err != nil {
			return berrors.InternalError("front matter is not representable", err)
		}
		items = append(items, v)
	}
	if m.SortBy != "" {
		value.SortBy(items, m.SortBy, m.Descending)
	}

	enc := yaml.NewEncoder(g.out())
	enc.SetIndent(2)
	if err := enc.Encode(value.Array(items...).ToAny()); err != nil {
		return berrors.InternalError("failed to encode metadata", err)
	}
	return enc.Close()
}
