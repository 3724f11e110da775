package dom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoMatch is returned when a selector matches no element
var ErrNoMatch = errors.New("no element matches selector")

// Query resolves a simple selector against the document.
//
// Supported forms are "#id", ".class" and "tag", each optionally followed by
// a zero-based index in brackets ("img[2]") to pick among several matches.
// Without an index the first match in document order is returned.
func (d *Document) Query(selector string) (*Element, error) {
	base, index, err := splitIndex(strings.TrimSpace(selector))
	if err != nil {
		return nil, err
	}
	if base == "" {
		return nil, fmt.Errorf("empty selector")
	}

	var matches []*Element
	for _, el := range d.all {
		if matchSelector(el, base) {
			matches = append(matches, el)
		}
	}

	if index >= len(matches) {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return matches[index], nil
}

func matchSelector(el *Element, base string) bool {
	switch {
	case strings.HasPrefix(base, "#"):
		return el.ID != "" && el.ID == base[1:]
	case strings.HasPrefix(base, "."):
		return el.HasClass(base[1:])
	default:
		return el.Tag == strings.ToLower(base)
	}
}

func splitIndex(selector string) (string, int, error) {
	open := strings.LastIndex(selector, "[")
	if open < 0 || !strings.HasSuffix(selector, "]") {
		return selector, 0, nil
	}

	index, err := strconv.Atoi(selector[open+1 : len(selector)-1])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("invalid selector index in %q", selector)
	}
	return selector[:open], index, nil
}
