package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page
type Document struct {
	Root  *Element
	title string
	all   []*Element
}

// Parse reads an HTML document and builds its element tree
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := &Document{}
	for n := node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			doc.Root = doc.build(n, nil)
			break
		}
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("document has no root element")
	}

	return doc, nil
}

// ParseString parses an HTML document held in a string
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an already built element tree
func NewDocument(root *Element, title string) *Document {
	doc := &Document{Root: root, title: title}
	root.Walk(func(el *Element) {
		doc.all = append(doc.all, el)
	})
	return doc
}

// Title returns the trimmed text of the <title> element
func (d *Document) Title() string {
	return d.title
}

// All returns every element with the given tag in document order.
// An empty tag returns every element.
func (d *Document) All(tag string) []*Element {
	tag = strings.ToLower(tag)
	var out []*Element
	for _, el := range d.all {
		if tag == "" || el.Tag == tag {
			out = append(out, el)
		}
	}
	return out
}

func (d *Document) build(n *html.Node, parent *Element) *Element {
	el := &Element{
		Tag:    strings.ToLower(n.Data),
		Parent: parent,
	}
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "id":
			el.ID = attr.Val
		case "type":
			el.Type = strings.ToLower(attr.Val)
		case "class":
			el.ClassName = attr.Val
		case "alt":
			el.Alt = attr.Val
		case "src":
			el.Src = attr.Val
		}
	}
	d.all = append(d.all, el)

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			child := d.build(c, el)
			el.Children = append(el.Children, child)
			text.WriteString(child.Text)
		}
	}
	el.Text = text.String()

	if el.Tag == "title" && d.title == "" {
		d.title = strings.TrimSpace(el.Text)
	}

	return el
}
