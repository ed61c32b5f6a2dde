// Builds a generic attributed tree out of SVG markup.
// A node only knows its tag, its attributes and its children,
// grouped by tag name. No SVG semantic is applied here: see
// svginspect for the analysis of the tree.
package svgtree

import (
	"errors"
	"io"
)

var errNoElement = errors.New("invalid svg xml document: no element found")

// Node is one element of the document.
type Node struct {
	Tag   string
	Attrs map[string]string // nil if the element has no attribute

	// Children are grouped by tag name; siblings sharing
	// a tag are stored in document order.
	Children map[string][]*Node
}

// NewNode returns an empty node for the given tag.
func NewNode(tag string) *Node { return &Node{Tag: tag} }

// Attr returns the value of the attribute `name`, and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// SetAttr adds or replaces an attribute, and returns the node
// to ease chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

// ChildrenOf returns the children with the given tag, in document order.
func (n *Node) ChildrenOf(tag string) []*Node { return n.Children[tag] }

// AddChild appends `c` after its siblings sharing the same tag.
func (n *Node) AddChild(c *Node) *Node {
	if n.Children == nil {
		n.Children = make(map[string][]*Node)
	}
	n.Children[c.Tag] = append(n.Children[c.Tag], c)
	return n
}

// Builder turns markup into a tree.
// The returned node is the root element of the document.
type Builder interface {
	Build(r io.Reader) (*Node, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(r io.Reader) (*Node, error)

func (f BuilderFunc) Build(r io.Reader) (*Node, error) { return f(r) }

// ByName returns the builder registered under `name`:
// "xml" (the default, also used for an empty name) or "lex".
func ByName(name string) (Builder, bool) {
	switch name {
	case "", "xml":
		return XML{}, true
	case "lex":
		return Lex{}, true
	}
	return nil, false
}

// stack keeps the chain of open elements while building.
type stack []*Node

func (s *stack) push(n *Node) {
	if len(*s) > 0 {
		(*s)[len(*s)-1].AddChild(n)
	}
	*s = append(*s, n)
}

func (s *stack) pop() *Node {
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top
}

func (s stack) top() *Node {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}
