package svgdom

import (
	"encoding/xml"
	"io"
	"strings"
)

// This file implements the markup writer.
// Namespace handling is deliberately narrow: the decoder resolves
// prefixes to namespace URLs, and only the prefixes that occur in
// SVG documents in practice are mapped back on output.

const (
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
)

func attrName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	case "xml", xmlNamespace:
		return "xml:" + name.Local
	case xlinkNamespace, "xlink":
		return "xlink:" + name.Local
	default:
		// unknown prefix: the local name is the best we can do
		return name.Local
	}
}

func escape(sb *strings.Builder, s string) {
	_ = xml.EscapeText(sb, []byte(s))
}

func writeNode(sb *strings.Builder, n *Node) {
	if !n.IsElement() {
		escape(sb, n.Text)
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(attrName(a.Name))
		sb.WriteString(`="`)
		escape(sb, a.Value)
		sb.WriteByte('"')
	}
	if len(n.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, c := range n.Children {
		writeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// Serialize renders the subtree rooted at n as markup.
// The output carries no added indentation, so serializing a parsed
// document and parsing it again yields an equivalent tree.
func (n *Node) Serialize() string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// Serialize renders the whole document as markup.
func (d *Document) Serialize() string {
	if d.Root == nil {
		return ""
	}
	return d.Root.Serialize()
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	k, err := io.WriteString(w, d.Serialize())
	return int64(k), err
}
