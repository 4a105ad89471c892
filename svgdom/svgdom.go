// Provides a mutable element tree for SVG documents.
// Documents are parsed with encoding/xml into plain nodes,
// which can be rewritten in place and serialized back to markup.
// See svganim for the transforms consuming this representation.
package svgdom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Document binds a parsed tree to the URL it was loaded from.
// URL is empty for trees built in memory.
type Document struct {
	Root *Node
	URL  string
}

// Node is one element or character-data leaf of the tree.
// Elements have a non empty Tag; character data carries Text only.
type Node struct {
	Tag      string
	Attrs    []xml.Attr
	Text     string
	Parent   *Node
	Children []*Node
}

// NewElement returns a detached element node.
func NewElement(tag string) *Node {
	return &Node{Tag: tag}
}

// NewText returns a detached character-data node.
func NewText(text string) *Node {
	return &Node{Text: text}
}

// IsElement reports whether n is an element (and not character data).
func (n *Node) IsElement() bool { return n.Tag != "" }

// Parse reads an XML document from the given io.Reader.
// Non UTF-8 encodings are handled through the declared charset.
// Comments, directives and processing instructions are dropped;
// whitespace-only character data between elements is not kept.
func Parse(stream io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *Node
		stack []*Node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if root == nil {
					return nil, errors.New("invalid xml document: no root element")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			n := &Node{Tag: se.Name.Local, Attrs: append([]xml.Attr{}, se.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("invalid xml document: multiple root elements")
				}
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if text := string(se); strings.TrimSpace(text) != "" {
				stack[len(stack)-1].AppendChild(NewText(text))
			}
		}
	}
	return &Document{Root: root}, nil
}

// ParseString parses the document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the named file and records its path as the document URL.
func ParseFile(name string) (*Document, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	doc, err := Parse(fin)
	if err != nil {
		return nil, err
	}
	doc.URL = name
	return doc, nil
}

// Attr returns the value of the attribute with the given local name.
// The namespace prefix is ignored, so "href" matches both href and xlink:href.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or `def` when the attribute is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// SetAttr sets the attribute with the given local name,
// updating an existing entry in place to keep attribute order stable.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// RemoveAttr deletes every attribute with the given local name.
func (n *Node) RemoveAttr(name string) {
	kept := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name.Local != name {
			kept = append(kept, a)
		}
	}
	n.Attrs = kept
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// ReplaceChild substitutes repl for old among the children of n.
// It reports whether old was found.
func (n *Node) ReplaceChild(old, repl *Node) bool {
	for i, c := range n.Children {
		if c == old {
			repl.Parent = n
			old.Parent = nil
			n.Children[i] = repl
			return true
		}
	}
	return false
}

// RemoveChild detaches c from n and reports whether it was a child.
func (n *Node) RemoveChild(c *Node) bool {
	for i, k := range n.Children {
		if k == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.Parent = nil
			return true
		}
	}
	return false
}

// Root walks up the parent chain to the topmost ancestor.
// For an attached node this is the document root; for a node inside
// a detached fragment it is the fragment root.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Walk visits n and its descendants in document order.
// Returning false from fn prunes the subtree below the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns a flat snapshot of the elements below n (n included)
// whose tag is one of the given names. The snapshot stays valid while
// the tree is mutated, which structural rewrites rely on.
func (n *Node) FindAll(tags ...string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		for _, t := range tags {
			if c.Tag == t {
				out = append(out, c)
				break
			}
		}
		return true
	})
	return out
}

// ElementByID finds the first element with the given id below n, or nil.
func (n *Node) ElementByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := c.Attr("id"); ok && v == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Clone returns a deep, detached copy of n.
func (n *Node) Clone() *Node {
	c := &Node{Tag: n.Tag, Text: n.Text, Attrs: append([]xml.Attr{}, n.Attrs...)}
	for _, k := range n.Children {
		c.AppendChild(k.Clone())
	}
	return c
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d.Root == nil {
		return &Document{URL: d.URL}
	}
	return &Document{Root: d.Root.Clone(), URL: d.URL}
}
