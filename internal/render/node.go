// Package render evaluates render trees: nested descriptions of which named
// templates wrap which, and what context data each level contributes.
//
// A tree is built from four node shapes:
//
//	Leaf{Template}                           template rendered with {}
//	LeafWithContext{Template, Context}       template rendered with Context
//	Branch{Template, Child}                  Child first, then template with {"content": child}
//	BranchWithContext{Template, Context, Child}
//	                                         Child first, then template with merge(Context, {"content": child})
//
// Evaluation is post-order: a child is fully rendered before its parent's
// template is looked up. In file-bound mode every leaf additionally receives
// the front-matter of the target content file as base data and its rendered
// body under "content".
package render

import "git.home.luguber.info/inful/pagebuilder/internal/value"

// ContentKey is the context key a parent template reads its child's output
// (or a file-bound leaf reads the file body) from.
const ContentKey = "content"

// Node is one level of template composition. The set of implementations is
// closed to this package.
type Node interface {
	// TemplateName is the template this level renders.
	TemplateName() string
	eval(ev *evaluation, depth int) (string, error)
}

// Leaf renders a template with an empty context.
type Leaf struct {
	Template string
}

// LeafWithContext renders a template with explicit context data.
type LeafWithContext struct {
	Template string
	Context  value.Value
}

// Branch renders Child and wraps it in Template under "content".
type Branch struct {
	Template string
	Child    Node
}

// BranchWithContext renders Child and wraps it in Template, which also
// receives Context.
type BranchWithContext struct {
	Template string
	Context  value.Value
	Child    Node
}

func (n Leaf) TemplateName() string              { return n.Template }
func (n LeafWithContext) TemplateName() string   { return n.Template }
func (n Branch) TemplateName() string            { return n.Template }
func (n BranchWithContext) TemplateName() string { return n.Template }

// Chain builds the common "layout wraps layout wraps page" shape:
// Chain("base", "post") is Branch{base, Leaf{post}}. The last name becomes
// the leaf. It returns nil for no names.
func Chain(templates ...string) Node {
	if len(templates) == 0 {
		return nil
	}
	var n Node = Leaf{Template: templates[len(templates)-1]}
	for i := len(templates) - 2; i >= 0; i-- {
		n = Branch{Template: templates[i], Child: n}
	}
	return n
}
