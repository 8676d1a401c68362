// Package tree folds documentation blocks into an ordered category hierarchy.
//
// Category paths use "=>" between segments ("Forms => Inputs"). Segments are
// trimmed and otherwise compared verbatim, so "Forms" and "forms" are distinct
// nodes. Category and item order is first-seen order.
package tree

import (
	"errors"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/block"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// Separator delimits category path segments.
const Separator = "=>"

// ErrMissingCategory is returned by Fold for a block without a category.
var ErrMissingCategory = errors.New("block has no category path")

// Node is one category path segment.
type Node struct {
	Name  string
	Path  []string
	Items []*block.Block
	// Subcat is nil until the node gets its first child.
	Subcat *Categories
}

// Category returns the node's full path joined with " => ".
func (n *Node) Category() string {
	return strings.Join(n.Path, " "+Separator+" ")
}

// HasChildren reports whether the node has sub-categories.
func (n *Node) HasChildren() bool {
	return n.Subcat != nil && n.Subcat.Len() > 0
}

// Categories is an insertion-ordered mapping from segment name to node. The
// root of a tree is a *Categories.
type Categories struct {
	names []string
	nodes map[string]*Node
}

// NewRoot returns an empty tree root.
func NewRoot() *Categories {
	return &Categories{nodes: make(map[string]*Node)}
}

// Len returns the number of direct children.
func (c *Categories) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns child names in insertion order.
func (c *Categories) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Nodes returns child nodes in insertion order.
func (c *Categories) Nodes() []*Node {
	if c == nil {
		return nil
	}
	out := make([]*Node, len(c.names))
	for i, name := range c.names {
		out[i] = c.nodes[name]
	}
	return out
}

// Get returns the direct child with the given name.
func (c *Categories) Get(name string) (*Node, bool) {
	if c == nil {
		return nil, false
	}
	n, ok := c.nodes[name]
	return n, ok
}

// Lookup walks path segments from c and returns the node at the end.
func (c *Categories) Lookup(path ...string) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := c
	var node *Node
	for _, seg := range path {
		n, ok := cur.Get(seg)
		if !ok {
			return nil, false
		}
		node, cur = n, n.Subcat
	}
	return node, true
}

func (c *Categories) child(name string, parent []string) *Node {
	if n, ok := c.nodes[name]; ok {
		return n
	}
	path := make([]string, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = name
	n := &Node{Name: name, Path: path, Items: []*block.Block{}}
	c.nodes[name] = n
	c.names = append(c.names, name)
	return n
}

// Walk visits every node depth-first in insertion order. Returning false from fn
// skips the node's children.
func (c *Categories) Walk(fn func(*Node) bool) {
	for _, n := range c.Nodes() {
		if fn(n) {
			n.Subcat.Walk(fn)
		}
	}
}

// Count returns the number of blocks in the tree.
func (c *Categories) Count() int {
	total := 0
	c.Walk(func(n *Node) bool {
		total += len(n.Items)
		return true
	})
	return total
}

// SplitPath splits a category string on "=>" and trims each segment.
func SplitPath(category string) []string {
	parts := strings.Split(category, Separator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Fold adds blocks to root in order and returns root. A nil root starts a new tree.
func Fold(root *Categories, blocks []*block.Block) (*Categories, error) {
	if root == nil {
		root = NewRoot()
	}
	for _, b := range blocks {
		if err := root.Add(b); err != nil {
			return root, err
		}
	}
	return root, nil
}

// Add files one block under its category path, creating missing nodes.
func (c *Categories) Add(b *block.Block) error {
	if b == nil || strings.TrimSpace(b.Info.Category) == "" {
		eb := ferrors.WrapError(ErrMissingCategory, ferrors.CategoryValidation, ErrMissingCategory.Error()).Fatal()
		if b != nil {
			eb = eb.WithContext("path", b.Source).WithContext("line", b.Line)
		}
		return eb.Build()
	}

	segments := SplitPath(b.Info.Category)
	cur := c
	var node *Node
	for i, seg := range segments {
		node = cur.child(seg, segments[:i])
		if i < len(segments)-1 {
			if node.Subcat == nil {
				node.Subcat = NewRoot()
			}
			cur = node.Subcat
		}
	}
	node.Items = append(node.Items, b)
	return nil
}
