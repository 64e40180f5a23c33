package config

import (
	"fmt"
	"strings"

	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/render"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
	"git.home.luguber.info/inful/pagebuilder/internal/util/sets"
)

// Validate checks the configuration for errors that would only surface
// halfway through a build.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.OutputExt, `/\`) {
		return berrors.ValidationFailed("output_ext", "must not contain a path separator")
	}
	for name, col := range c.Collections {
		if _, err := paths.Within(".", col.Folder); err != nil {
			return berrors.ValidationFailed(fmt.Sprintf("collections.%s.folder", name), err.Error())
		}
	}

	outputs := sets.New[string]()
	for i, p := range c.Pages {
		field := fmt.Sprintf("pages[%d]", i)
		if _, err := paths.Within(".", p.Output); err != nil {
			return berrors.ValidationFailed(field+".output", err.Error())
		}
		if !outputs.Insert(p.Output) {
			return berrors.ValidationFailed(field+".output", fmt.Sprintf("duplicate output %q", p.Output))
		}
		if err := c.validateNode(field+".node", &p.Node, 0); err != nil {
			return err
		}
	}

	folders := sets.New[string]()
	for i, f := range c.Folders {
		field := fmt.Sprintf("folders[%d]", i)
		if _, err := paths.Within(".", f.Folder); err != nil {
			return berrors.ValidationFailed(field+".folder", err.Error())
		}
		if !folders.Insert(f.Folder) {
			return berrors.ValidationFailed(field+".folder", fmt.Sprintf("duplicate folder %q", f.Folder))
		}
		if err := c.validateNode(field+".node", &f.Node, 0); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateNode(field string, n *NodeSpec, depth int) error {
	if depth >= render.MaxDepth {
		return berrors.ValidationFailed(field, fmt.Sprintf("nesting exceeds %d levels", render.MaxDepth))
	}
	if strings.TrimSpace(n.Template) == "" {
		return berrors.ValidationFailed(field+".template", "template name is required")
	}
	for _, name := range n.Collections {
		if _, ok := c.Collections[name]; !ok {
			return berrors.ValidationFailed(field+".collections", fmt.Sprintf("unknown collection %q", name))
		}
		if _, clash := n.Context[name]; clash {
			return berrors.ValidationFailed(field+".collections", fmt.Sprintf("collection %q shadows a context key", name))
		}
	}
	if n.Child != nil {
		return c.validateNode(field+".child", n.Child, depth+1)
	}
	return nil
}
