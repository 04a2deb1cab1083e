package model

import "errors"

// ErrNodeAccess marks a failure reading a node (or one of its children)
// from the host accessibility layer.
var ErrNodeAccess = errors.New("node access failed")

// Node is a read-only view of one on-screen element owned by the host.
// A Node is only valid for the duration of a single capture; implementations
// may return ErrNodeAccess (or panic) once the underlying element is gone.
type Node interface {
	Text() string
	ContentDescription() string
	Identifier() string
	ClassName() string
	Bounds() [4]int // [x, y, width, height]
	ChildCount() int
	Child(i int) (Node, error)
}

// Element is an owned snapshot of a UI element tree, as recorded from the
// host. It implements Node so recorded trees go through the same code paths
// as live ones.
type Element struct {
	Text        string    `yaml:"t,omitempty"  json:"t,omitempty"`  // Visible text
	Description string    `yaml:"d,omitempty"  json:"d,omitempty"`  // Content description
	ID          string    `yaml:"id,omitempty" json:"id,omitempty"` // Resource identifier, e.g. "com.tencent.mobileqq:id/9u"
	Class       string    `yaml:"c,omitempty"  json:"c,omitempty"`  // Widget class name
	Bounds      [4]int    `yaml:"b"            json:"b"`            // [x, y, width, height]
	Children    []Element `yaml:"ch,omitempty" json:"ch,omitempty"` // Child elements
}

// AsNode returns the element as a Node. A nil element yields a nil Node.
func (e *Element) AsNode() Node {
	if e == nil {
		return nil
	}
	return elementNode{e}
}

type elementNode struct{ el *Element }

func (n elementNode) Text() string               { return n.el.Text }
func (n elementNode) ContentDescription() string { return n.el.Description }
func (n elementNode) Identifier() string         { return n.el.ID }
func (n elementNode) ClassName() string          { return n.el.Class }
func (n elementNode) Bounds() [4]int             { return n.el.Bounds }
func (n elementNode) ChildCount() int            { return len(n.el.Children) }

func (n elementNode) Child(i int) (Node, error) {
	if i < 0 || i >= len(n.el.Children) {
		return nil, ErrNodeAccess
	}
	return elementNode{&n.el.Children[i]}, nil
}

// IsEmptyRoot reports whether a root carries nothing usable: no children and
// no class name. Some messengers expose such a placeholder on their active
// window to block assistive reads.
func IsEmptyRoot(n Node) bool {
	return n != nil && n.ChildCount() == 0 && n.ClassName() == ""
}
