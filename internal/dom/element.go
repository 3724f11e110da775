// Package dom provides a minimal element tree built from an HTML document.
// It carries just enough of the browser DOM for the tracker: tag names,
// identifying attributes, text content and ancestry.
package dom

import "strings"

// Element represents a single HTML element
type Element struct {
	Tag       string // lower-case tag name
	ID        string
	Type      string // value of the type attribute, if any
	ClassName string // raw class attribute
	Alt       string
	Src       string
	Text      string // concatenated descendant text, as DOM textContent

	Parent   *Element
	Children []*Element
}

// NewElement creates a detached element with the given tag
func NewElement(tag string) *Element {
	return &Element{Tag: strings.ToLower(tag)}
}

// AppendChild attaches child under e and returns the child
func (e *Element) AppendChild(child *Element) *Element {
	child.Parent = e
	e.Children = append(e.Children, child)
	return child
}

// TextContent returns the element's descendant text
func (e *Element) TextContent() string {
	return e.Text
}

// Closest returns the nearest element, starting with e itself, whose tag
// matches tag. It returns nil when no ancestor matches.
func (e *Element) Closest(tag string) *Element {
	tag = strings.ToLower(tag)
	for el := e; el != nil; el = el.Parent {
		if el.Tag == tag {
			return el
		}
	}
	return nil
}

// HasClass reports whether the class attribute contains name as a whole class
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.ClassName) {
		if c == name {
			return true
		}
	}
	return false
}

// Walk visits e and all its descendants in document order
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, child := range e.Children {
		child.Walk(fn)
	}
}
