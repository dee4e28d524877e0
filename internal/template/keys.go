package template

import (
	"fmt"
	"strings"
	"text/template/parse"

	"github.com/stevehiehn/plix/internal/keyset"
)

// builtins are the functions text/template predeclares. An identifier
// naming one of them is a call, not a free variable, unless it stands
// alone at the head of a pipeline: {{print}} reads a variable "print".
var builtins = keyset.New(
	"and", "call", "html", "index", "slice", "js", "len", "not", "or",
	"print", "printf", "println", "urlquery",
	"eq", "ge", "gt", "le", "lt", "ne",
)

// FindRequiredKeys returns the free variables referenced by the templates
// in objs. Mapping keys are not scanned. A malformed template is an error.
func FindRequiredKeys(objs ...Object) (keyset.Set, error) {
	keys := keyset.New()
	for _, obj := range objs {
		if err := collectKeys(obj, keys); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func collectKeys(obj Object, keys keyset.Set) error {
	switch o := obj.(type) {
	case Text:
		found, err := keysOf(string(o))
		if err != nil {
			return err
		}
		keys.Add(found...)
	case Sequence:
		for _, item := range o {
			if err := collectKeys(item, keys); err != nil {
				return err
			}
		}
	case Mapping:
		for _, item := range o {
			if err := collectKeys(item, keys); err != nil {
				return err
			}
		}
	}
	return nil
}

// keysOf parses s and lists its free variables. Both {{name}} and {{.name}}
// reference the variable "name"; $-variables are declared in the template
// itself and never free, except for $.name.
func keysOf(s string) ([]string, error) {
	if !strings.Contains(s, "{{") {
		return nil, nil
	}
	trees, err := parseTrees(s)
	if err != nil {
		return nil, err
	}
	w := &keyWalker{keys: keyset.New()}
	for _, tree := range trees {
		if tree.Root != nil {
			w.walk(tree.Root, true)
		}
	}
	return w.keys.Sorted(), nil
}

// parseTrees parses s without resolving functions, so undeclared
// identifiers survive into the tree.
func parseTrees(s string) ([]*parse.Tree, error) {
	const name = "template"
	t := parse.New(name)
	t.Mode = parse.SkipFuncCheck
	treeSet := map[string]*parse.Tree{}
	if _, err := t.Parse(s, "", "", treeSet); err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", s, err)
	}
	trees := []*parse.Tree{t}
	for n, tree := range treeSet {
		if n != name {
			trees = append(trees, tree)
		}
	}
	return trees, nil
}

type keyWalker struct {
	keys keyset.Set
}

// walk visits node. rootDot is false inside range/with bodies, where the
// dot no longer refers to the context.
func (w *keyWalker) walk(node parse.Node, rootDot bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			w.walk(child, rootDot)
		}
	case *parse.ActionNode:
		w.walk(n.Pipe, rootDot)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for i, cmd := range n.Cmds {
			if i == 0 && len(cmd.Args) == 1 {
				if id, ok := cmd.Args[0].(*parse.IdentifierNode); ok {
					w.keys.Add(id.Ident)
					continue
				}
			}
			w.walk(cmd, rootDot)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			w.walk(arg, rootDot)
		}
	case *parse.IdentifierNode:
		if !builtins.Has(n.Ident) {
			w.keys.Add(n.Ident)
		}
	case *parse.FieldNode:
		if rootDot && len(n.Ident) > 0 {
			w.keys.Add(n.Ident[0])
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			w.keys.Add(n.Ident[1])
		}
	case *parse.ChainNode:
		w.walk(n.Node, rootDot)
	case *parse.IfNode:
		w.walkBranch(&n.BranchNode, rootDot, rootDot)
	case *parse.RangeNode:
		w.walkBranch(&n.BranchNode, rootDot, false)
	case *parse.WithNode:
		w.walkBranch(&n.BranchNode, rootDot, false)
	case *parse.TemplateNode:
		w.walk(n.Pipe, rootDot)
	}
}

func (w *keyWalker) walkBranch(b *parse.BranchNode, rootDot, bodyRootDot bool) {
	w.walk(b.Pipe, rootDot)
	w.walk(b.List, bodyRootDot)
	w.walk(b.ElseList, rootDot)
}
