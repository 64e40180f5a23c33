package config

import (
	"path"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/markdown"
	"git.home.luguber.info/inful/pagebuilder/internal/render"
	"git.home.luguber.info/inful/pagebuilder/internal/site"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
	"git.home.luguber.info/inful/pagebuilder/internal/value"
)

// CollectionResolver returns the items of a named collection.
type CollectionResolver func(name string) (value.Value, error)

// Build turns n into a render tree. Collections named by a level are
// resolved and added to its context under the collection name.
func (n *NodeSpec) Build(resolve CollectionResolver) (render.Node, error) {
	var (
		ctx    value.Value
		hasCtx bool
	)
	if n.Context != nil || len(n.Collections) > 0 {
		v, err := value.FromAny(n.Context)
		if err != nil {
			return nil, berrors.ValidationFailed("context", err.Error()).WithContext("template", n.Template)
		}
		if v.IsNull() {
			v = value.EmptyMap()
		}
		for _, name := range n.Collections {
			items, err := resolve(name)
			if err != nil {
				return nil, err
			}
			v = v.With(name, items)
		}
		ctx, hasCtx = v, true
	}

	if n.Child == nil {
		if hasCtx {
			return render.LeafWithContext{Template: n.Template, Context: ctx}, nil
		}
		return render.Leaf{Template: n.Template}, nil
	}

	child, err := n.Child.Build(resolve)
	if err != nil {
		return nil, err
	}
	if hasCtx {
		return render.BranchWithContext{Template: n.Template, Context: ctx, Child: child}, nil
	}
	return render.Branch{Template: n.Template, Child: child}, nil
}

// Generator returns a generator configured from c. Paths are resolved
// against BaseDir.
func (c *Config) Generator() *site.Generator {
	g := site.New(c.Resolve(c.ContentDir), c.Resolve(c.TemplatesDir), c.Resolve(c.OutputDir))
	g.OutputExt = c.OutputExt
	g.CacheTemplates = c.TemplateCache
	g.ContinueOnError = c.ContinueOnError
	g.ContentOptions = c.Content
	g.Markdown = markdown.New(c.Markdown)
	return g
}

// Tasks returns the production tasks of the site: pages first, then folders,
// each in file order.
func (c *Config) Tasks() ([]site.Task, error) {
	resolve := c.collectionResolver()
	tasks := make([]site.Task, 0, len(c.Pages)+len(c.Folders))
	for _, p := range c.Pages {
		node, err := p.Node.Build(resolve)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, site.File(p.Output, node))
	}
	for _, f := range c.Folders {
		node, err := f.Node.Build(resolve)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, site.ContentFolder[content.Fields](f.Folder, node))
	}
	return tasks, nil
}

// Collection loads the items of a named collection: the front-matter of
// each file with its "stem" and "url" added, sorted as configured.
func (c *Config) Collection(name string) (value.Value, error) {
	col, ok := c.Collections[name]
	if !ok {
		return value.Value{}, berrors.ValidationFailed("collections", "unknown collection "+name)
	}
	dir, err := paths.Within(c.Resolve(c.ContentDir), col.Folder)
	if err != nil {
		return value.Value{}, berrors.DirectoryEnumeration(col.Folder, err)
	}
	entries, err := content.Entries[content.Fields](dir, c.Content)
	if err != nil {
		return value.Value{}, err
	}

	items := make([]value.Value, 0, len(entries))
	for _, e := range entries {
		item, err := value.FromAny(e.Meta)
		if err != nil {
			return value.Value{}, berrors.FrontMatterParse(e.Path, err)
		}
		if item.IsNull() {
			item = value.EmptyMap()
		}
		item = item.With("stem", value.String(e.Stem)).
			With("url", value.String(path.Join(col.Folder, e.Stem)+c.OutputExt))
		items = append(items, item)
	}
	if col.SortBy != "" {
		value.SortBy(items, col.SortBy, col.Descending)
	}
	return value.Array(items...), nil
}

// collectionResolver memoizes Collection for one Tasks call.
func (c *Config) collectionResolver() CollectionResolver {
	cache := map[string]value.Value{}
	return func(name string) (value.Value, error) {
		if v, ok := cache[name]; ok {
			return v, nil
		}
		v, err := c.Collection(name)
		if err != nil {
			return value.Value{}, err
		}
		cache[name] = v
		return v, nil
	}
}
