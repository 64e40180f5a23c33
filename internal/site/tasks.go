package site

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/render"
	"git.home.luguber.info/inful/pagebuilder/internal/util/paths"
)

type fileTask struct {
	base string
	root render.Node
}

// File renders root with literal contexts and writes it to
// <output>/<outputBaseName><ext>. outputBaseName may contain "/".
func File(outputBaseName string, root render.Node) Task {
	return fileTask{base: outputBaseName, root: root}
}

func (t fileTask) Name() string { return "page:" + t.base }

func (t fileTask) run(r *run) error {
	out, err := r.renderer.Render(t.root)
	if err == nil {
		err = r.write(t.base, out)
	}
	if err != nil {
		return r.fail(err)
	}
	return nil
}

type contentFolderTask[T any] struct {
	folder string
	root   render.Node
}

// ContentFolder renders root once per file directly under
// <content>/<folder>, each evaluation bound to that file, and writes
// <output>/<folder>/<stem><ext>. T is the front-matter record shape; a
// file whose front-matter does not decode into T fails to render.
func ContentFolder[T any](folder string, root render.Node) Task {
	return contentFolderTask[T]{folder: folder, root: root}
}

func (t contentFolderTask[T]) Name() string { return "folder:" + t.folder }

func (t contentFolderTask[T]) run(r *run) error {
	src, err := paths.Within(r.gen.ContentDir, t.folder)
	if err != nil {
		return r.fail(berrors.DirectoryEnumeration(t.folder, err))
	}
	if _, err := paths.Within(r.gen.OutputDir, t.folder); err != nil {
		return r.fail(berrors.OutputWrite(t.folder, err))
	}
	if err := os.MkdirAll(filepath.Join(r.gen.OutputDir, t.folder), dirPerm); err != nil {
		return r.fail(berrors.OutputWrite(filepath.Join(r.gen.OutputDir, t.folder), err))
	}

	files, err := content.ListFiles(src)
	if err != nil {
		return r.fail(err)
	}
	renderer := *r.renderer
	renderer.Content = content.NewLoader[T](r.gen.Markdown, r.gen.ContentOptions)

	// stem -> file name that claimed the output first
	owners := make(map[string]string, len(files))

	r.logger.Info("Rendering folder", logfields.Folder(t.folder), logfields.Count(len(files)))
	for _, f := range files {
		rel := filepath.Join(t.folder, f.Stem)
		if first, taken := owners[f.Stem]; taken {
			err := fmt.Errorf("%s and %s both produce %s%s", first, f.Name, f.Stem, r.gen.outputExt())
			if err := r.fail(berrors.OutputWrite(rel+r.gen.outputExt(), err).WithContext("file", f.Path)); err != nil {
				return err
			}
			continue
		}
		owners[f.Stem] = f.Name

		out, err := renderer.RenderFile(t.root, f.Path)
		if err == nil {
			err = r.write(rel, out)
		}
		if err != nil {
			if err := r.fail(err); err != nil {
				return err
			}
		}
	}
	return nil
}
