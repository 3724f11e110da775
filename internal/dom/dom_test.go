package dom

import (
	"errors"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>  Portfolio Home </title></head>
<body>
  <nav><ul><li><a id="home" href="/">Home</a></li><li>About</li></ul></nav>
  <section id="intro"><h1>Welcome</h1><p class="lead text">Hello <b>there</b></p></section>
  <section><img src="/img/cat.png"><img alt="Logo" src="/img/logo.svg"></section>
  <form><input type="TEXT" name="q"><span class="icon search-icon"></span></form>
</body>
</html>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc
}

func TestParseBuildsTree(t *testing.T) {
	doc := mustParse(t)

	if doc.Root.Tag != "html" {
		t.Errorf("Expected root tag html, got %s", doc.Root.Tag)
	}
	if doc.Title() != "Portfolio Home" {
		t.Errorf("Expected title 'Portfolio Home', got %q", doc.Title())
	}
	if got := len(doc.All("section")); got != 2 {
		t.Errorf("Expected 2 sections, got %d", got)
	}
	if got := len(doc.All("img")); got != 2 {
		t.Errorf("Expected 2 images, got %d", got)
	}

	input := doc.All("input")[0]
	if input.Type != "text" {
		t.Errorf("Expected lower-cased input type 'text', got %q", input.Type)
	}
}

func TestTextContentIncludesDescendants(t *testing.T) {
	doc := mustParse(t)

	p, err := doc.Query(".lead")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if p.TextContent() != "Hello there" {
		t.Errorf("Expected 'Hello there', got %q", p.TextContent())
	}
}

func TestClosest(t *testing.T) {
	doc := mustParse(t)

	link, err := doc.Query("#home")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if link.Closest("nav") == nil {
		t.Error("Expected link to be inside nav")
	}
	if link.Closest("form") != nil {
		t.Error("Expected link not to be inside a form")
	}
	if link.Closest("a") != link {
		t.Error("Expected Closest to include the element itself")
	}
}

func TestQuery(t *testing.T) {
	doc := mustParse(t)

	tests := []struct {
		selector string
		wantTag  string
		wantErr  bool
	}{
		{selector: "#intro", wantTag: "section"},
		{selector: ".icon", wantTag: "span"},
		{selector: "img[1]", wantTag: "img"},
		{selector: "LI", wantTag: "li"},
		{selector: "section[1]", wantTag: "section"},
		{selector: "#missing", wantErr: true},
		{selector: "img[5]", wantErr: true},
		{selector: "img[x]", wantErr: true},
		{selector: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			el, err := doc.Query(tt.selector)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.selector)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if el.Tag != tt.wantTag {
				t.Errorf("Expected tag %s, got %s", tt.wantTag, el.Tag)
			}
		})
	}

	img, _ := doc.Query("img[1]")
	if img.Alt != "Logo" {
		t.Errorf("Expected second image alt Logo, got %q", img.Alt)
	}

	_, err := doc.Query("#missing")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Expected ErrNoMatch, got %v", err)
	}
}

func TestNewDocument(t *testing.T) {
	root := NewElement("BODY")
	nav := root.AppendChild(NewElement("nav"))
	nav.AppendChild(NewElement("a"))

	doc := NewDocument(root, "Manual")
	if len(doc.All("")) != 3 {
		t.Errorf("Expected 3 elements, got %d", len(doc.All("")))
	}
	if doc.All("a")[0].Closest("nav") != nav {
		t.Error("Expected anchor parent chain to reach nav")
	}
	if root.Tag != "body" {
		t.Errorf("Expected lower-cased tag, got %s", root.Tag)
	}
}
