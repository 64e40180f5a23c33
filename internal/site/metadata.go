package site

import (
	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
)

// Metadata returns the front-matter of every file directly under
// <content>/<folder>, decoded into T, in name order.
func Metadata[T any](g *Generator, folder string) ([]T, error) {
	dir, err := paths.Within(g.ContentDir, folder)
	if err != nil {
		return nil, berrors.DirectoryEnumeration(folder, err)
	}
	return content.AllMetadata[T](dir)
}
