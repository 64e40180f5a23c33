package render

import (
	"errors"
	"log/slog"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/templates"
	"git.home.luguber.info/inful/pagebuilder/internal/value"
)

// MaxDepth bounds tree nesting; deeper trees are rejected, which also stops
// cycles built from pointers.
const MaxDepth = 64

// ContentSource loads a content file as context data plus rendered body.
// content.Loader implements it for any record shape.
type ContentSource interface {
	LoadContext(path string) (meta value.Value, body string, err error)
}

// Renderer evaluates render trees against a template store.
type Renderer struct {
	Store   templates.Store
	Engine  templates.Engine
	Content ContentSource
	// Logger receives per-template debug lines; slog.Default() when nil.
	Logger *slog.Logger
}

// New returns a renderer. content may be nil when only Render is used.
func New(store templates.Store, engine templates.Engine, content ContentSource) *Renderer {
	return &Renderer{Store: store, Engine: engine, Content: content}
}

// Render evaluates node with literal contexts only.
func (r *Renderer) Render(node Node) (string, error) {
	return r.eval(node, &evaluation{r: r})
}

// RenderFile evaluates node with every leaf bound to the content file at path.
func (r *Renderer) RenderFile(node Node, path string) (string, error) {
	if r.Content == nil {
		return "", berrors.InternalError("file-bound render without a content source", nil).
			WithContext("path", path)
	}
	if path == "" {
		return "", berrors.ContentFileMissing(path, errors.New("no content file given"))
	}
	return r.eval(node, &evaluation{r: r, path: path, bound: true})
}

// RenderForFile resolves stem to a file directly under contentRoot and
// evaluates node bound to it.
func (r *Renderer) RenderForFile(node Node, contentRoot, stem string) (string, error) {
	path, err := content.Resolve(contentRoot, stem)
	if err != nil {
		return "", err
	}
	return r.RenderFile(node, path)
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Renderer) eval(node Node, ev *evaluation) (string, error) {
	if node == nil {
		return "", berrors.InternalError("render tree is empty", nil)
	}
	return node.eval(ev, 0)
}

// evaluation is the state of one Render/RenderFile call. The bound file is
// loaded at most once, on first use by a leaf.
type evaluation struct {
	r     *Renderer
	path  string
	bound bool

	loaded bool
	meta   value.Value
	body   string
}

func (ev *evaluation) fileBound() bool { return ev.bound }

func (ev *evaluation) load() (value.Value, string, error) {
	if !ev.loaded {
		meta, body, err := ev.r.Content.LoadContext(ev.path)
		if err != nil {
			return value.Value{}, "", err
		}
		ev.meta, ev.body, ev.loaded = meta, body, true
	}
	return ev.meta, ev.body, nil
}

// leafData computes a leaf's context. Literal mode uses the explicit context
// (or {}). File-bound mode merges, in order of increasing precedence, the
// file's front-matter, the explicit context, and {"content": body}, so the
// body is never shadowed by a front-matter field of the same name.
func (ev *evaluation) leafData(explicit value.Value, hasExplicit bool) (value.Value, error) {
	if !ev.fileBound() {
		if hasExplicit {
			return explicit, nil
		}
		return value.EmptyMap(), nil
	}
	meta, body, err := ev.load()
	if err != nil {
		return value.Value{}, err
	}
	data := meta
	if hasExplicit {
		data = value.Merge(data, explicit)
	}
	return value.Merge(data, contentOnly(body)), nil
}

func (ev *evaluation) apply(name string, depth int, data func() (value.Value, error)) (string, error) {
	source, err := ev.r.Store.Lookup(name)
	if err != nil {
		return "", err
	}
	ctx, err := data()
	if err != nil {
		return "", err
	}
	out, err := ev.r.Engine.Render(name, source, ctx)
	if err != nil {
		return "", err
	}
	ev.r.logger().Debug("Rendered template", logfields.Template(name), slog.Int("depth", depth))
	return out, nil
}

func (ev *evaluation) child(parent string, child Node, depth int) (string, error) {
	if child == nil {
		return "", berrors.InternalError("branch node has no child", nil).WithContext("template", parent)
	}
	if depth+1 >= MaxDepth {
		return "", berrors.InternalError("render tree exceeds maximum depth", nil).
			WithContext("template", parent).
			WithContext("max_depth", MaxDepth)
	}
	return child.eval(ev, depth+1)
}

func contentOnly(s string) value.Value {
	return value.EmptyMap().With(ContentKey, value.String(s))
}

func (n Leaf) eval(ev *evaluation, depth int) (string, error) {
	return ev.apply(n.Template, depth, func() (value.Value, error) {
		return ev.leafData(value.Value{}, false)
	})
}

func (n LeafWithContext) eval(ev *evaluation, depth int) (string, error) {
	return ev.apply(n.Template, depth, func() (value.Value, error) {
		return ev.leafData(n.Context, true)
	})
}

func (n Branch) eval(ev *evaluation, depth int) (string, error) {
	inner, err := ev.child(n.Template, n.Child, depth)
	if err != nil {
		return "", err
	}
	return ev.apply(n.Template, depth, func() (value.Value, error) {
		return contentOnly(inner), nil
	})
}

func (n BranchWithContext) eval(ev *evaluation, depth int) (string, error) {
	inner, err := ev.child(n.Template, n.Child, depth)
	if err != nil {
		return "", err
	}
	// The branch's own context is the base; the child output is merged last.
	return ev.apply(n.Template, depth, func() (value.Value, error) {
		return value.Merge(n.Context, contentOnly(inner)), nil
	})
}
