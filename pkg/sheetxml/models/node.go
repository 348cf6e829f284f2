package models

// Attr is a single node attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the output tree. A node carries either text or
// children, never both. Attribute names are unique; they are kept in the
// order they were first set so output is deterministic.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// NewNode creates an empty node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// SetAttr sets an attribute, replacing any existing value.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AddChild appends child and clears any text. It returns child.
func (n *Node) AddChild(child *Node) *Node {
	n.Text = ""
	n.Children = append(n.Children, child)
	return child
}

// SetText sets the text content and drops any children.
func (n *Node) SetText(text string) {
	n.Children = nil
	n.Text = text
}
