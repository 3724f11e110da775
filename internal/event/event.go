// Package event models page interaction events and the single-threaded
// dispatch loop that delivers them to registered handlers.
package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind identifies what happened on the page
type Kind string

const (
	KindLoad      Kind = "load"      // document finished loading
	KindClick     Kind = "click"     // an element was clicked
	KindIntersect Kind = "intersect" // an element's visible ratio changed
	KindImageLoad Kind = "imageload" // an image finished loading
	KindExport    Kind = "export"    // the user pressed the export control
)

// Event is one interaction delivered to the dispatcher
type Event struct {
	Kind   Kind    `json:"type"`
	Target string  `json:"target,omitempty"` // element selector
	Ratio  float64 `json:"ratio,omitempty"`  // visible area ratio for intersect events
}

// Validate checks that the event is well formed for its kind
func (e Event) Validate() error {
	switch e.Kind {
	case KindLoad, KindExport:
		return nil
	case KindClick, KindImageLoad:
		if e.Target == "" {
			return fmt.Errorf("%s event requires a target", e.Kind)
		}
		return nil
	case KindIntersect:
		if e.Target == "" {
			return fmt.Errorf("%s event requires a target", e.Kind)
		}
		if e.Ratio < 0 || e.Ratio > 1 {
			return fmt.Errorf("intersection ratio %v out of range [0, 1]", e.Ratio)
		}
		return nil
	default:
		return fmt.Errorf("unknown event type: %q", e.Kind)
	}
}

// ParseLine decodes a single JSON event line.
// Blank lines and lines starting with '#' yield ok=false and no error.
func ParseLine(line string) (ev Event, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Event{}, false, nil
	}

	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		return Event{}, false, fmt.Errorf("failed to decode event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, false, err
	}
	return ev, true, nil
}

// ReadAll decodes an event script: one JSON object per line
func ReadAll(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		ev, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if ok {
			events = append(events, ev)
		}
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("scanner error: %w", err)
	}
	return events, nil
}
