package resolver

import (
	"fmt"
	"io"

	"github.com/agilira/chiron-sub000/internal/manifest"
)

// Node is one entry of a dependency tree.
type Node struct {
	Name       string  `json:"name"`
	Version    string  `json:"version,omitempty"`
	Via        string  `json:"via,omitempty"`        // capability the plugin was reached through
	Constraint string  `json:"constraint,omitempty"` // declared by the parent
	Optional   bool    `json:"optional,omitempty"`
	Deduped    bool    `json:"deduped,omitempty"` // already expanded elsewhere in the tree
	Missing    bool    `json:"missing,omitempty"`
	Cycle      bool    `json:"cycle,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// Tree builds the dependency tree rooted at name, required edges first and
// optional edges after. Unlike Resolve it does not stop at problems: missing
// dependencies and cycles are marked on the nodes.
func (r *Resolver) Tree(name string) (*Node, error) {
	reg := r.Registry()
	if reg == nil {
		return nil, ErrRegistryNotLoaded
	}

	w := newWalk(reg, true)
	target, ok := w.lookup(name, "")
	if !ok {
		return nil, &ResolutionError{Diagnostic: Diagnostic{
			Kind:    KindNotFound,
			Plugin:  name,
			Message: fmt.Sprintf("plugin %q not found in registry", name),
		}}
	}

	b := &treeBuilder{w: w, seen: make(map[string]bool), path: make(map[string]bool)}
	root := b.node(target, manifest.DependencySpec{Name: name}, false)
	return root, nil
}

type treeBuilder struct {
	w    *walk
	seen map[string]bool
	path map[string]bool
}

func (b *treeBuilder) node(target string, spec manifest.DependencySpec, optional bool) *Node {
	n := &Node{Name: target, Constraint: spec.Version, Optional: optional}
	if spec.Name != target {
		n.Via = spec.Name
	}

	desc, err := b.w.reg.Get(target)
	if err != nil {
		n.Missing = true
		return n
	}
	n.Version = desc.Version

	switch {
	case b.path[target]:
		n.Cycle = true
		return n
	case b.seen[target]:
		n.Deduped = true
		return n
	}
	b.seen[target] = true
	b.path[target] = true
	defer delete(b.path, target)

	add := func(specs []manifest.DependencySpec, optional bool) {
		for _, dep := range specs {
			child, ok := b.w.lookup(dep.Name, target)
			if !ok {
				n.Children = append(n.Children, &Node{
					Name:       dep.Name,
					Constraint: dep.Version,
					Optional:   optional,
					Missing:    true,
				})
				continue
			}
			n.Children = append(n.Children, b.node(child, dep, optional))
		}
	}
	add(desc.Dependencies.Required, false)
	add(desc.Dependencies.Optional, true)
	return n
}

// PrintTree prints the dependency tree with box-drawing characters.
func PrintTree(w io.Writer, node *Node, prefix string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	if prefix == "" {
		fmt.Fprintf(w, "  %s\n", node.label())
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, node.label())
	}

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		childPrefix = " "
	}

	for i, child := range node.Children {
		PrintTree(w, child, childPrefix, i == len(node.Children)-1)
	}
}

func (n *Node) label() string {
	label := n.Name
	if n.Version != "" {
		label += "@" + n.Version
	}
	if n.Via != "" {
		label = fmt.Sprintf("%s (provides %s)", label, n.Via)
	}
	if n.Constraint != "" {
		label += " [" + n.Constraint + "]"
	}
	if n.Optional {
		label += " (optional)"
	}
	switch {
	case n.Missing:
		label += " (missing)"
	case n.Cycle:
		label += " (cycle)"
	case n.Deduped:
		label += " (deduped)"
	}
	return label
}
