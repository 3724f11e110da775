// Package tracker turns page interaction events into log sink entries.
package tracker

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/yildizm/SiteLens/internal/dom"
)

const (
	maxDescriptionLen = 30
	truncatedLen      = 27
)

// tagLabels maps tags that are classified by tag alone
var tagLabels = map[string]string{
	"a":        "link",
	"button":   "button",
	"img":      "image",
	"select":   "dropdown",
	"textarea": "textarea",
}

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// classHints are checked in order against the raw class attribute
var classHints = []struct {
	substring string
	label     string
}{
	{"btn", "button"},
	{"card", "card"},
	{"icon", "icon"},
}

// Classify returns a single label for el. Rules are tried in order and the
// first match wins; the raw tag name is the final fallback.
func Classify(el *dom.Element) string {
	if label, ok := tagLabels[el.Tag]; ok {
		return label
	}
	if el.Tag == "input" {
		if el.Type != "" {
			return "input-" + el.Type
		}
		return "input"
	}

	if el.Closest("nav") != nil {
		return "navigation"
	}
	if el.Tag == "li" {
		return "list-item"
	}
	if headingTags[el.Tag] {
		return "heading"
	}
	if el.Closest("form") != nil {
		return "form-element"
	}

	if el.ClassName != "" {
		for _, hint := range classHints {
			if strings.Contains(el.ClassName, hint.substring) {
				return hint.label
			}
		}
	}

	return el.Tag
}

// Describe returns a short human-readable description of el. It never
// returns an empty string.
func Describe(el *dom.Element) string {
	if el.ID != "" {
		return "#" + el.ID
	}

	// Markup indentation and line breaks collapse to single spaces
	if text := strings.Join(strings.Fields(el.TextContent()), " "); text != "" {
		return truncate(text)
	}

	if el.ClassName != "" {
		return "." + strings.ReplaceAll(el.ClassName, " ", ".")
	}

	if el.Tag == "img" {
		if alt := strings.Join(strings.Fields(el.Alt), " "); alt != "" {
			return alt
		}
		if name := lastPathSegment(el.Src); name != "" {
			return name
		}
	}

	return el.Tag
}

func truncate(text string) string {
	if utf8.RuneCountInString(text) <= maxDescriptionLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:truncatedLen]) + "..."
}

func lastPathSegment(src string) string {
	if src == "" || strings.HasSuffix(src, "/") {
		return ""
	}
	return path.Base(src)
}
