package renderer

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// element creates an html element. Each value is added according to its type:
// attributes are set, nodes are appended as children and strings become text nodes.
func element(a atom.Atom, values ...interface{}) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
	}
	for _, value := range values {
		switch v := value.(type) {
		case html.Attribute:
			node.Attr = append(node.Attr, v)
		case *html.Node:
			node.AppendChild(v)
		case string:
			node.AppendChild(text(v))
		}
	}
	return node
}

func attr(key string, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
